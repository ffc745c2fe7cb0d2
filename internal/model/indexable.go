package model

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"
)

// Object types an indexable can represent.
const (
	ObjectTypePost            = "post"
	ObjectTypeTerm            = "term"
	ObjectTypeUser            = "user"
	ObjectTypeHomePage        = "home-page"
	ObjectTypeDateArchive     = "date-archive"
	ObjectTypePostTypeArchive = "post-type-archive"
	ObjectTypeSystemPage      = "system-page"
	ObjectTypeUnknown         = "unknown"
)

// Object sub-types with special handling.
const (
	SubTypeAttachment = "attachment"
	SubTypeSearchPage = "search-page"
	SubTypeNotFound   = "404"
)

// PostStatusUnindexed marks fallback rows that represent no real content object.
const PostStatusUnindexed = "unindexed"

// VisiblePostStatuses are the post statuses considered when looking for posts
// with outdated prominent words.
var VisiblePostStatuses = []string{"future", "draft", "pending", "private", "publish"}

// Indexable represents one SEO-relevant subject (a post, a term, an archive, a
// user or a system page) plus its lazily computed permalink.
type Indexable struct {
	ID                    int64   `gorm:"primaryKey;autoIncrement"`
	ObjectID              *int64  `gorm:"index:idx_indexable_object,priority:2"`
	ObjectType            string  `gorm:"size:32;not null;index:idx_indexable_object,priority:1"`
	ObjectSubType         string  `gorm:"size:32;index"`
	PostStatus            string  `gorm:"size:20"`
	Permalink             *string `gorm:"size:2048"`
	PermalinkHash         *string `gorm:"size:64;index"`
	ProminentWordsVersion *int64
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// AncestorChain caches the resolved ancestor list for this record within
	// a request. Never persisted.
	AncestorChain []*Indexable `gorm:"-" json:"-"`
}

func (i *Indexable) TableName() string {
	return "indexables"
}

// PermalinkHash derives the indexed fast-path lookup key for a permalink:
// the permalink length and its md5 digest joined by a colon.
func PermalinkHash(permalink string) string {
	return fmt.Sprintf("%d:%x", len(permalink), md5.Sum([]byte(permalink)))
}

// SetPermalink stores the permalink together with its derived hash.
func (i *Indexable) SetPermalink(permalink string) {
	hash := PermalinkHash(permalink)
	i.Permalink = &permalink
	i.PermalinkHash = &hash
}

// HasPermalink reports whether a permalink has been resolved for this record.
func (i *Indexable) HasPermalink() bool {
	return i.Permalink != nil && *i.Permalink != ""
}

func (i *Indexable) MarshalBinary() ([]byte, error) {
	return json.Marshal(i)
}
