package searchservice

import "github.com/jaehyunkim/engage/internal/postservice"

// RankedResult is a single search hit.
type RankedResult struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Score       int      `json:"score"`
	// Snippet is a bounded excerpt around the first body match, empty
	// when only the metadata matched.
	Snippet string `json:"snippet,omitempty"`
}

// PostSource yields the documents a query scans, in filesystem order.
// That order breaks score ties. Satisfied by *postservice.PostService.
type PostSource interface {
	GetSlugs() ([]string, error)
	GetPost(slug, locale string) (*postservice.Post, error)
}

type SearchService struct {
	posts PostSource
}
