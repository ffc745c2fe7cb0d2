package permalink

import (
	"context"
	"errors"
	"testing"

	"github.com/seoworks/indexable/internal/model"
	"github.com/seoworks/indexable/internal/store"
	"github.com/stretchr/testify/assert"
)

type fakeSource struct {
	termErr error
}

func (f fakeSource) PostPermalink(ctx context.Context, id int64) (string, error) {
	return "http://example.test/post/", nil
}

func (f fakeSource) AttachmentURL(ctx context.Context, id int64) (string, error) {
	return "http://example.test/media/file.jpg", nil
}

func (f fakeSource) TermLink(ctx context.Context, id int64) (string, error) {
	if f.termErr != nil {
		return "", f.termErr
	}

	return "http://example.test/category/news/", nil
}

func (f fakeSource) AuthorURL(ctx context.Context, id int64) (string, error) {
	return "http://example.test/author/bob/", nil
}

func (f fakeSource) PostTypeArchiveURL(ctx context.Context, postType string) (string, error) {
	return "http://example.test/" + postType + "/", nil
}

func (f fakeSource) SearchURL(ctx context.Context) (string, error) {
	return "http://example.test/?s=", nil
}

func TestResolver_Resolve(t *testing.T) {
	resolver := NewResolver(fakeSource{})

	tests := []struct {
		name string
		ind  *model.Indexable
		want string
	}{
		{
			"post",
			&model.Indexable{ObjectType: model.ObjectTypePost, ObjectID: ptr(1), ObjectSubType: "post"},
			"http://example.test/post/",
		},
		{
			"attachment",
			&model.Indexable{ObjectType: model.ObjectTypePost, ObjectID: ptr(1), ObjectSubType: model.SubTypeAttachment},
			"http://example.test/media/file.jpg",
		},
		{
			"home page with front page",
			&model.Indexable{ObjectType: model.ObjectTypeHomePage, ObjectID: ptr(2)},
			"http://example.test/post/",
		},
		{
			"home page without object id",
			&model.Indexable{ObjectType: model.ObjectTypeHomePage},
			"",
		},
		{
			"term",
			&model.Indexable{ObjectType: model.ObjectTypeTerm, ObjectID: ptr(3)},
			"http://example.test/category/news/",
		},
		{
			"search page",
			&model.Indexable{ObjectType: model.ObjectTypeSystemPage, ObjectSubType: model.SubTypeSearchPage},
			"http://example.test/?s=",
		},
		{
			"404 page",
			&model.Indexable{ObjectType: model.ObjectTypeSystemPage, ObjectSubType: model.SubTypeNotFound},
			"",
		},
		{
			"post type archive",
			&model.Indexable{ObjectType: model.ObjectTypePostTypeArchive, ObjectSubType: "book"},
			"http://example.test/book/",
		},
		{
			"author",
			&model.Indexable{ObjectType: model.ObjectTypeUser, ObjectID: ptr(4)},
			"http://example.test/author/bob/",
		},
		{
			"date archive has no permalink",
			&model.Indexable{ObjectType: model.ObjectTypeDateArchive},
			"",
		},
		{
			"unknown has no permalink",
			&model.Indexable{ObjectType: model.ObjectTypeUnknown},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(context.TODO(), tt.ind)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_TermErrorsCollapseToNull(t *testing.T) {
	ind := &model.Indexable{ObjectType: model.ObjectTypeTerm, ObjectID: ptr(3)}

	// Missing term.
	resolver := NewResolver(fakeSource{termErr: store.ErrNotFound})
	got, err := resolver.Resolve(context.TODO(), ind)
	assert.NoError(t, err)
	assert.Empty(t, got)

	// Any other term failure collapses too.
	resolver = NewResolver(fakeSource{termErr: errors.New("ambiguous term")})
	got, err = resolver.Resolve(context.TODO(), ind)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolver_MissingPostCollapsesToNull(t *testing.T) {
	resolver := NewResolver(missingSource{})

	got, err := resolver.Resolve(context.TODO(), &model.Indexable{ObjectType: model.ObjectTypePost, ObjectID: ptr(1)})
	assert.NoError(t, err)
	assert.Empty(t, got)
}

type missingSource struct {
	fakeSource
}

func (m missingSource) PostPermalink(ctx context.Context, id int64) (string, error) {
	return "", store.ErrNotFound
}

func ptr(v int64) *int64 {
	return &v
}
