package searchservice

import (
	"context"
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jaehyunkim/engage/internal/postservice"
)

const (
	// snippetLength is the maximum snippet size in characters, match
	// included.
	snippetLength = 150

	ellipsis = "..."
)

const (
	scoreTitlePrefix = 10
	scoreTitle       = 5
	scoreDescription = 3
	scoreTag         = 2
	scoreBody        = 1
)

func New(posts PostSource) *SearchService {
	return &SearchService{posts: posts}
}

// Search scans every post for the query and returns scored matches, best
// first. The whole corpus is re-read per call; nothing is indexed.
func (s *SearchService) Search(ctx context.Context, locale, query string, limit int) ([]RankedResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	needle := strings.ToLower(query)

	slugs, err := s.posts.GetSlugs()
	if err != nil {
		return nil, err
	}

	var results []RankedResult
	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		post, err := s.posts.GetPost(slug, locale)
		if err != nil {
			if errors.Is(err, postservice.ErrPostNotFound) {
				continue
			}
			return nil, err
		}

		score, snippet := scorePost(post, needle)
		if score == 0 {
			continue
		}

		results = append(results, RankedResult{
			Slug:        post.Slug,
			Title:       post.Metadata.Title,
			Description: post.Metadata.Description,
			Tags:        post.Metadata.Tags,
			Score:       score,
			Snippet:     snippet,
		})
	}

	// Stable sort keeps filesystem order between equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

func scorePost(post *postservice.Post, needle string) (int, string) {
	var score int

	if idx := strings.Index(strings.ToLower(post.Metadata.Title), needle); idx >= 0 {
		if idx == 0 {
			score += scoreTitlePrefix
		} else {
			score += scoreTitle
		}
	}

	if strings.Contains(strings.ToLower(post.Metadata.Description), needle) {
		score += scoreDescription
	}

	for _, tag := range post.Metadata.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			score += scoreTag
			break
		}
	}

	var snippet string
	if strings.Contains(strings.ToLower(post.Body), needle) {
		score += scoreBody
		snippet = extractSnippet(post.Body, needle, snippetLength)
	}

	return score, snippet
}

// extractSnippet takes a window of at most maxLen characters centered on
// the first match, padding context evenly on both sides. Ellipsis marks
// whichever ends fall short of the true string boundaries.
func extractSnippet(body, needle string, maxLen int) string {
	lowered := strings.ToLower(body)
	idx := strings.Index(lowered, needle)
	if idx < 0 {
		return ""
	}

	// Lowercasing maps rune for rune but can shrink byte widths, so the
	// byte offset only converts to a rune offset against lowered itself.
	runes := []rune(body)
	matchStart := utf8.RuneCountInString(lowered[:idx])
	matchLen := utf8.RuneCountInString(needle)

	if matchLen >= maxLen {
		return string(runes[matchStart : matchStart+matchLen])
	}

	context := (maxLen - matchLen) / 2

	start := matchStart - context
	if start < 0 {
		start = 0
	}
	end := start + maxLen
	if end > len(runes) {
		end = len(runes)
		if start = end - maxLen; start < 0 {
			start = 0
		}
	}

	snippet := string(runes[start:end])
	if start > 0 {
		snippet = ellipsis + snippet
	}
	if end < len(runes) {
		snippet += ellipsis
	}

	return snippet
}
