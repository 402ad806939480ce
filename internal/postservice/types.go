package postservice

import "time"

// Metadata is the frontmatter block of a post file.
type Metadata struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	PublishedAt    time.Time `json:"published_at"`
	LastModifiedAt time.Time `json:"last_modified_at"`
	Tags           []string  `json:"tags"`
	// TimeToRead is in minutes. Computed from the body when the
	// frontmatter omits it.
	TimeToRead int `json:"time_to_read"`
}

// Post is a single published article. The content pipeline owns the files;
// this service only reads them.
type Post struct {
	Slug     string   `json:"slug"`
	Metadata Metadata `json:"metadata"`
	// Body is the markdown-stripped plain text of the post.
	Body string `json:"-"`
}

type PostService struct {
	dir string
}
