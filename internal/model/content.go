package model

import "time"

// Post is a content row of the site the service fronts. Attachments are posts
// with PostType "attachment".
type Post struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	PostType   string `gorm:"size:32;not null;index"`
	PostStatus string `gorm:"size:20;not null;index"`
	Slug       string `gorm:"size:200;index"`
	Title      string
	ParentID   int64 `gorm:"index"`
	AuthorID   int64
	FileURL    string // attachments only
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p *Post) TableName() string {
	return "posts"
}

// Term is a taxonomy term row. Terms form a hierarchy through ParentID.
type Term struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Taxonomy  string `gorm:"size:32;not null;index"`
	Slug      string `gorm:"size:200;index"`
	Name      string
	ParentID  int64 `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Term) TableName() string {
	return "terms"
}

// User is an author row. The slug is the path segment of the author archive.
type User struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Slug        string `gorm:"size:100;index"`
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (u *User) TableName() string {
	return "users"
}

// Setting is one key/value pair managed by the admin settings page.
type Setting struct {
	Key       string `gorm:"primaryKey;size:100"`
	Value     string
	UpdatedAt time.Time
}

func (s *Setting) TableName() string {
	return "settings"
}
