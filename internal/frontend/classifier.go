package frontend

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/seoworks/indexable/internal/store"
)

// SettingFrontPageID is the admin setting holding the id of the post serving
// as the static home page. Unset means the home page lists the latest posts.
const SettingFrontPageID = "front_page_id"

var datePathPattern = regexp.MustCompile(`^\d{4}(/\d{2}){0,2}$`)

// Classifier maps a request URL to the page it addresses.
type Classifier interface {
	Classify(ctx context.Context, u *url.URL) (Location, error)
}

// StoreClassifier classifies request URLs against the content tables and the
// saved admin settings.
type StoreClassifier struct {
	store store.Store
}

var _ Classifier = (*StoreClassifier)(nil)

func NewStoreClassifier(store store.Store) *StoreClassifier {
	return &StoreClassifier{store: store}
}

// Classify resolves a URL to a Location. Unroutable URLs classify as
// KindNotFound; classification itself never fails on absence.
func (c *StoreClassifier) Classify(ctx context.Context, u *url.URL) (Location, error) {
	if u.Query().Has("s") {
		return Location{Kind: KindSearch}, nil
	}

	path := strings.Trim(u.Path, "/")

	if path == "" {
		return c.classifyHome(ctx)
	}

	if datePathPattern.MatchString(path) {
		return Location{Kind: KindDateArchive}, nil
	}

	segments := strings.Split(path, "/")

	if segments[0] == "author" && len(segments) == 2 {
		user, err := c.store.GetUserBySlug(ctx, segments[1])
		if errors.Is(err, store.ErrNotFound) {
			return Location{Kind: KindNotFound}, nil
		}
		if err != nil {
			return Location{}, err
		}

		return Location{Kind: KindAuthorArchive, ObjectID: user.ID}, nil
	}

	if len(segments) == 2 {
		term, err := c.store.GetTermBySlug(ctx, segments[0], segments[1])
		if err == nil {
			return Location{Kind: KindTermArchive, ObjectID: term.ID}, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return Location{}, err
		}
	}

	if len(segments) == 1 {
		post, err := c.store.GetPostBySlug(ctx, segments[0])
		if err == nil {
			return Location{Kind: KindSimple, ObjectID: post.ID}, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return Location{}, err
		}

		archive, err := c.classifyPostTypeArchive(ctx, segments[0])
		if err != nil {
			return Location{}, err
		}
		if archive.Kind == KindPostTypeArchive {
			return archive, nil
		}
	}

	return Location{Kind: KindNotFound}, nil
}

func (c *StoreClassifier) classifyHome(ctx context.Context) (Location, error) {
	value, err := c.store.GetSetting(ctx, SettingFrontPageID)
	if errors.Is(err, store.ErrNotFound) {
		return Location{Kind: KindPostsHome}, nil
	}
	if err != nil {
		return Location{}, err
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id == 0 {
		return Location{Kind: KindPostsHome}, nil
	}

	return Location{Kind: KindStaticHome, ObjectID: id}, nil
}

func (c *StoreClassifier) classifyPostTypeArchive(ctx context.Context, segment string) (Location, error) {
	types, err := c.store.ListPostTypes(ctx)
	if err != nil {
		return Location{}, err
	}

	for _, t := range types {
		if t == segment {
			return Location{Kind: KindPostTypeArchive, PostType: t}, nil
		}
	}

	return Location{Kind: KindNone}, nil
}
