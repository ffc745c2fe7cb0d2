package service

import (
	"context"
	"net/url"

	"github.com/seoworks/indexable/internal/frontend"
	"github.com/seoworks/indexable/internal/model"
	"github.com/seoworks/indexable/internal/repository"
	"github.com/seoworks/indexable/internal/store"
)

var objectTypes = map[string]bool{
	model.ObjectTypePost:            true,
	model.ObjectTypeTerm:            true,
	model.ObjectTypeUser:            true,
	model.ObjectTypeHomePage:        true,
	model.ObjectTypeDateArchive:     true,
	model.ObjectTypePostTypeArchive: true,
	model.ObjectTypeSystemPage:      true,
	model.ObjectTypeUnknown:         true,
}

// NewIndexableService creates a new IndexableService.
func NewIndexableService(repo *repository.Repository, classifier frontend.Classifier, store store.Store) *IndexableService {
	return &IndexableService{
		repo:       repo,
		classifier: classifier,
		store:      store,
	}
}

// IndexableService exposes the indexable repository to the HTTP API and the
// CLI, validating inputs before they reach it.
type IndexableService struct {
	repo       *repository.Repository
	classifier frontend.Classifier
	store      store.Store
}

// ResolveURL classifies a request URL and resolves the indexable of the page
// it addresses, creating one when the page was never seen before.
func (s *IndexableService) ResolveURL(ctx context.Context, rawURL string) (*model.Indexable, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, ErrInvalidURL
	}

	loc, err := s.classifier.Classify(ctx, u)
	if err != nil {
		return nil, err
	}

	return s.repo.FindForCurrentPage(ctx, loc)
}

// GetByPermalink looks up the indexable stored under a permalink. Never
// creates one.
func (s *IndexableService) GetByPermalink(ctx context.Context, permalink string) (*model.Indexable, error) {
	if permalink == "" {
		return nil, ErrEmptyPermalink
	}

	return s.repo.FindByPermalink(ctx, permalink)
}

// GetByObject resolves the indexable of one content object.
func (s *IndexableService) GetByObject(ctx context.Context, objectID int64, objectType string, autoCreate bool) (*model.Indexable, error) {
	if !objectTypes[objectType] {
		return nil, ErrUnknownObjectType
	}

	return s.repo.FindByIDAndType(ctx, objectID, objectType, autoCreate)
}

// GetByObjects resolves the indexables of several content objects of one type.
func (s *IndexableService) GetByObjects(ctx context.Context, objectIDs []int64, objectType string, autoCreate bool) ([]*model.Indexable, error) {
	if !objectTypes[objectType] {
		return nil, ErrUnknownObjectType
	}

	return s.repo.FindByMultipleIDsAndType(ctx, objectIDs, objectType, autoCreate)
}

// ListByType lists all indexables of one object type, optionally narrowed to
// a sub-type.
func (s *IndexableService) ListByType(ctx context.Context, objectType, objectSubType string) ([]*model.Indexable, error) {
	if !objectTypes[objectType] {
		return nil, ErrUnknownObjectType
	}

	if objectSubType != "" {
		return s.repo.FindAllByTypeAndSubType(ctx, objectType, objectSubType)
	}

	return s.repo.FindAllByType(ctx, objectType)
}

// Ancestors returns the ordered ancestor chain of an indexable.
func (s *IndexableService) Ancestors(ctx context.Context, indexableID int64) ([]*model.Indexable, error) {
	ind, err := s.store.GetIndexableByID(ctx, indexableID)
	if err != nil {
		return nil, err
	}

	return s.repo.Ancestors(ctx, ind)
}

// CountOutdatedProminentWords counts posts whose prominent words are stale.
func (s *IndexableService) CountOutdatedProminentWords(ctx context.Context, version int64, postTypes []string) (int64, error) {
	return s.repo.CountPostsWithOutdatedProminentWords(ctx, version, postTypes)
}

// FindOutdatedProminentWords returns ids of posts whose prominent words are stale.
func (s *IndexableService) FindOutdatedProminentWords(ctx context.Context, version int64, postTypes []string, limit int) ([]int64, error) {
	return s.repo.FindPostsWithOutdatedProminentWords(ctx, version, postTypes, limit)
}
