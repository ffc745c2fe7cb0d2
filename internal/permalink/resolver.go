package permalink

import (
	"context"
	"errors"

	"github.com/seoworks/indexable/internal/content"
	"github.com/seoworks/indexable/internal/model"
	"github.com/seoworks/indexable/internal/store"
	"github.com/sirupsen/logrus"
)

// Resolver computes permalinks for indexables by dispatching on object type
// and sub-type. It never persists anything.
type Resolver struct {
	source content.Source
}

func NewResolver(source content.Source) *Resolver {
	return &Resolver{source: source}
}

// Resolve returns the permalink for an indexable, or the empty string when no
// permalink is resolvable for its type. A failing term lookup resolves to the
// empty string rather than an error.
func (r *Resolver) Resolve(ctx context.Context, ind *model.Indexable) (string, error) {
	switch ind.ObjectType {
	case model.ObjectTypePost, model.ObjectTypeHomePage:
		if ind.ObjectID == nil {
			return "", nil
		}
		if ind.ObjectSubType == model.SubTypeAttachment {
			return r.objectURL(r.source.AttachmentURL(ctx, *ind.ObjectID))
		}

		return r.objectURL(r.source.PostPermalink(ctx, *ind.ObjectID))

	case model.ObjectTypeTerm:
		if ind.ObjectID == nil {
			return "", nil
		}

		link, err := r.source.TermLink(ctx, *ind.ObjectID)
		if err != nil {
			// Ambiguous or missing terms resolve to no permalink.
			logrus.Debugf("term link lookup failed for term %d: %v", *ind.ObjectID, err)
			return "", nil
		}

		return link, nil

	case model.ObjectTypeSystemPage:
		if ind.ObjectSubType == model.SubTypeSearchPage {
			return r.source.SearchURL(ctx)
		}

		return "", nil

	case model.ObjectTypePostTypeArchive:
		return r.source.PostTypeArchiveURL(ctx, ind.ObjectSubType)

	case model.ObjectTypeUser:
		if ind.ObjectID == nil {
			return "", nil
		}

		return r.objectURL(r.source.AuthorURL(ctx, *ind.ObjectID))

	default:
		return "", nil
	}
}

func (r *Resolver) objectURL(link string, err error) (string, error) {
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return link, nil
}
