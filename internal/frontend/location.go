package frontend

// Kind classifies what kind of page a request is for. The values are ordered
// by resolution priority, a request is always classified as the first kind
// that matches.
type Kind int

const (
	// KindNone means no classification matched at all.
	KindNone Kind = iota
	// KindSimple is a single post or page.
	KindSimple
	// KindStaticHome is the home page backed by a designated front page post.
	KindStaticHome
	// KindPostsHome is the home page showing the latest posts.
	KindPostsHome
	// KindTermArchive is a taxonomy term archive.
	KindTermArchive
	// KindDateArchive is a year/month/day archive.
	KindDateArchive
	// KindSearch is the search results page.
	KindSearch
	// KindPostTypeArchive is the archive of one post type.
	KindPostTypeArchive
	// KindAuthorArchive is an author archive.
	KindAuthorArchive
	// KindNotFound is the 404 page.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindStaticHome:
		return "static-home"
	case KindPostsHome:
		return "posts-home"
	case KindTermArchive:
		return "term-archive"
	case KindDateArchive:
		return "date-archive"
	case KindSearch:
		return "search"
	case KindPostTypeArchive:
		return "post-type-archive"
	case KindAuthorArchive:
		return "author-archive"
	case KindNotFound:
		return "not-found"
	default:
		return "none"
	}
}

// Location identifies the page a request is for. Only the fields relevant to
// the kind are set.
type Location struct {
	Kind Kind
	// ObjectID is the post id for simple and static home pages, the term id
	// for term archives and the user id for author archives.
	ObjectID int64
	// PostType is set for post type archives.
	PostType string
}
