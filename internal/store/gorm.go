package store

import (
	"context"
	"errors"

	"github.com/seoworks/indexable/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) CreateIndexable(ctx context.Context, ind *model.Indexable) error {
	return g.db.WithContext(ctx).Create(ind).Error
}

func (g *GormStore) SaveIndexable(ctx context.Context, ind *model.Indexable) error {
	return g.db.WithContext(ctx).Save(ind).Error
}

func (g *GormStore) GetIndexableByID(ctx context.Context, id int64) (*model.Indexable, error) {
	var ind model.Indexable
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&ind).Error
	if err != nil {
		return nil, mapNotFound(err)
	}

	return &ind, nil
}

func (g *GormStore) GetIndexableByObject(ctx context.Context, objectID int64, objectType string) (*model.Indexable, error) {
	var ind model.Indexable
	err := g.db.WithContext(ctx).
		Where("object_id = ? AND object_type = ?", objectID, objectType).
		First(&ind).Error
	if err != nil {
		return nil, mapNotFound(err)
	}

	return &ind, nil
}

func (g *GormStore) ListIndexablesByObjects(ctx context.Context, objectIDs []int64, objectType string) ([]*model.Indexable, error) {
	var inds []*model.Indexable
	err := g.db.WithContext(ctx).
		Where("object_id IN ?", objectIDs).
		Where("object_type = ?", objectType).
		Find(&inds).Error

	return inds, err
}

func (g *GormStore) GetIndexableByType(ctx context.Context, objectType string) (*model.Indexable, error) {
	var ind model.Indexable
	err := g.db.WithContext(ctx).
		Where("object_type = ?", objectType).
		First(&ind).Error
	if err != nil {
		return nil, mapNotFound(err)
	}

	return &ind, nil
}

func (g *GormStore) GetIndexableByTypeAndSubType(ctx context.Context, objectType, objectSubType string) (*model.Indexable, error) {
	var ind model.Indexable
	err := g.db.WithContext(ctx).
		Where("object_type = ? AND object_sub_type = ?", objectType, objectSubType).
		First(&ind).Error
	if err != nil {
		return nil, mapNotFound(err)
	}

	return &ind, nil
}

// GetIndexableByPermalink matches on the hash to narrow the index scan and on
// the raw permalink to guard against hash collisions.
func (g *GormStore) GetIndexableByPermalink(ctx context.Context, permalinkHash, permalink string) (*model.Indexable, error) {
	var ind model.Indexable
	err := g.db.WithContext(ctx).
		Where("permalink_hash = ? AND permalink = ?", permalinkHash, permalink).
		First(&ind).Error
	if err != nil {
		return nil, mapNotFound(err)
	}

	return &ind, nil
}

func (g *GormStore) ListIndexablesByIDs(ctx context.Context, ids []int64) ([]*model.Indexable, error) {
	var inds []*model.Indexable
	err := g.db.WithContext(ctx).Where("id IN ?", ids).Find(&inds).Error

	return inds, err
}

func (g *GormStore) ListIndexablesByType(ctx context.Context, objectType string) ([]*model.Indexable, error) {
	var inds []*model.Indexable
	err := g.db.WithContext(ctx).Where("object_type = ?", objectType).Find(&inds).Error

	return inds, err
}

func (g *GormStore) ListIndexablesByTypeAndSubType(ctx context.Context, objectType, objectSubType string) ([]*model.Indexable, error) {
	var inds []*model.Indexable
	err := g.db.WithContext(ctx).
		Where("object_type = ? AND object_sub_type = ?", objectType, objectSubType).
		Find(&inds).Error

	return inds, err
}

func (g *GormStore) ListIndexablesMissingPermalink(ctx context.Context, limit int) ([]*model.Indexable, error) {
	var inds []*model.Indexable
	err := g.db.WithContext(ctx).
		Where("permalink IS NULL").
		Limit(limit).
		Find(&inds).Error

	return inds, err
}

// outdatedProminentWordsQuery selects posts of the given types, in a visible
// status, whose id is absent from the set of indexables already at the given
// prominent words version. The IS NOT NULL guard keeps the NOT IN subselect
// well-defined.
func (g *GormStore) outdatedProminentWordsQuery(ctx context.Context, version int64, postTypes []string) *gorm.DB {
	upToDate := g.db.Model(&model.Indexable{}).
		Select("object_id").
		Where("object_type = ?", model.ObjectTypePost).
		Where("object_sub_type IN ?", postTypes).
		Where("prominent_words_version = ?", version).
		Where("object_id IS NOT NULL")

	return g.db.WithContext(ctx).Model(&model.Post{}).
		Where("post_status IN ?", model.VisiblePostStatuses).
		Where("post_type IN ?", postTypes).
		Where("id NOT IN (?)", upToDate)
}

func (g *GormStore) CountPostsWithOutdatedProminentWords(ctx context.Context, version int64, postTypes []string) (int64, error) {
	var count int64
	err := g.outdatedProminentWordsQuery(ctx, version, postTypes).Count(&count).Error

	return count, err
}

func (g *GormStore) FindPostsWithOutdatedProminentWords(ctx context.Context, version int64, postTypes []string, limit int) ([]int64, error) {
	var ids []int64
	err := g.outdatedProminentWordsQuery(ctx, version, postTypes).
		Limit(limit).
		Pluck("id", &ids).Error

	return ids, err
}

func (g *GormStore) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, mapNotFound(err)
	}

	return &post, nil
}

func (g *GormStore) GetPostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	var post model.Post
	err := g.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error
	if err != nil {
		return nil, mapNotFound(err)
	}

	return &post, nil
}

func (g *GormStore) GetTerm(ctx context.Context, id int64) (*model.Term, error) {
	var term model.Term
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&term).Error
	if err != nil {
		return nil, mapNotFound(err)
	}

	return &term, nil
}

func (g *GormStore) GetTermBySlug(ctx context.Context, taxonomy, slug string) (*model.Term, error) {
	var term model.Term
	err := g.db.WithContext(ctx).
		Where("taxonomy = ? AND slug = ?", taxonomy, slug).
		First(&term).Error
	if err != nil {
		return nil, mapNotFound(err)
	}

	return &term, nil
}

func (g *GormStore) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, mapNotFound(err)
	}

	return &user, nil
}

func (g *GormStore) GetUserBySlug(ctx context.Context, slug string) (*model.User, error) {
	var user model.User
	err := g.db.WithContext(ctx).Where("slug = ?", slug).First(&user).Error
	if err != nil {
		return nil, mapNotFound(err)
	}

	return &user, nil
}

func (g *GormStore) ListPostTypes(ctx context.Context) ([]string, error) {
	var types []string
	err := g.db.WithContext(ctx).Model(&model.Post{}).Distinct().Pluck("post_type", &types).Error

	return types, err
}

func (g *GormStore) GetSetting(ctx context.Context, key string) (string, error) {
	var setting model.Setting
	err := g.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		return "", mapNotFound(err)
	}

	return setting.Value, nil
}

func (g *GormStore) SaveSetting(ctx context.Context, key, value string) error {
	setting := &model.Setting{Key: key, Value: value}

	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(setting).Error
}

func (g *GormStore) ListSettings(ctx context.Context) ([]*model.Setting, error) {
	var settings []*model.Setting
	err := g.db.WithContext(ctx).Order("key").Find(&settings).Error

	return settings, err
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	return err
}
