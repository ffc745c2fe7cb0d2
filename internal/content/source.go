package content

import (
	"context"
	"net/url"
	"strings"

	"github.com/seoworks/indexable/internal/store"
)

// Source resolves the canonical URL for each kind of content object. Lookups
// for objects that do not exist return store.ErrNotFound.
type Source interface {
	// PostPermalink returns the canonical URL of a post.
	PostPermalink(ctx context.Context, id int64) (string, error)
	// AttachmentURL returns the file URL of an attachment post.
	AttachmentURL(ctx context.Context, id int64) (string, error)
	// TermLink returns the archive URL of a taxonomy term.
	TermLink(ctx context.Context, id int64) (string, error)
	// AuthorURL returns the author archive URL of a user.
	AuthorURL(ctx context.Context, id int64) (string, error)
	// PostTypeArchiveURL returns the archive URL of a post type.
	PostTypeArchiveURL(ctx context.Context, postType string) (string, error)
	// SearchURL returns the search results URL.
	SearchURL(ctx context.Context) (string, error)
}

// StoreSource builds URLs from the configured site base URL and the content
// tables the service owns.
type StoreSource struct {
	store   store.ContentStore
	siteURL string
}

var _ Source = (*StoreSource)(nil)

func NewStoreSource(store store.ContentStore, siteURL string) *StoreSource {
	return &StoreSource{
		store:   store,
		siteURL: strings.TrimRight(siteURL, "/"),
	}
}

func (s *StoreSource) PostPermalink(ctx context.Context, id int64) (string, error) {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return "", err
	}

	return s.siteURL + "/" + post.Slug + "/", nil
}

func (s *StoreSource) AttachmentURL(ctx context.Context, id int64) (string, error) {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return "", err
	}

	if post.FileURL != "" {
		return post.FileURL, nil
	}

	return s.siteURL + "/media/" + post.Slug, nil
}

func (s *StoreSource) TermLink(ctx context.Context, id int64) (string, error) {
	term, err := s.store.GetTerm(ctx, id)
	if err != nil {
		return "", err
	}

	return s.siteURL + "/" + term.Taxonomy + "/" + term.Slug + "/", nil
}

func (s *StoreSource) AuthorURL(ctx context.Context, id int64) (string, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return "", err
	}

	return s.siteURL + "/author/" + user.Slug + "/", nil
}

func (s *StoreSource) PostTypeArchiveURL(ctx context.Context, postType string) (string, error) {
	return s.siteURL + "/" + url.PathEscape(postType) + "/", nil
}

func (s *StoreSource) SearchURL(ctx context.Context) (string, error) {
	return s.siteURL + "/?s=", nil
}
