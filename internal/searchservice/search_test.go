package searchservice

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaehyunkim/engage/internal/postservice"
)

// fakeSource serves posts from memory, preserving insertion order the way
// the filesystem source preserves directory order.
type fakeSource struct {
	order []string
	posts map[string]*postservice.Post
}

func newFakeSource() *fakeSource {
	return &fakeSource{posts: make(map[string]*postservice.Post)}
}

func (f *fakeSource) add(slug, title, description, body string, tags ...string) {
	f.order = append(f.order, slug)
	f.posts[slug] = &postservice.Post{
		Slug: slug,
		Metadata: postservice.Metadata{
			Title:       title,
			Description: description,
			Tags:        tags,
		},
		Body: body,
	}
}

func (f *fakeSource) GetSlugs() ([]string, error) {
	return f.order, nil
}

func (f *fakeSource) GetPost(slug, locale string) (*postservice.Post, error) {
	post, ok := f.posts[slug]
	if !ok {
		return nil, postservice.ErrPostNotFound
	}
	return post, nil
}

func TestSearchEmptyQuery(t *testing.T) {
	src := newFakeSource()
	src.add("p1", "Title", "desc", "body")
	s := New(src)

	for _, query := range []string{"", "   ", "\t"} {
		results, err := s.Search(context.Background(), "ko", query, 10)
		assert.NoError(t, err)
		assert.Empty(t, results)
	}
}

func TestSearchTitlePrefixOutranksBodyMatch(t *testing.T) {
	src := newFakeSource()
	src.add("p2", "다른 주제", "설명", "여기에 설계 이야기가 나옵니다")
	src.add("p1", "설계 노트", "설명", "본문")
	s := New(src)

	results, err := s.Search(context.Background(), "ko", "설계", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "p1", results[0].Slug)
	assert.Equal(t, scoreTitlePrefix, results[0].Score)
	assert.Equal(t, "p2", results[1].Slug)
	assert.Equal(t, scoreBody, results[1].Score)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearchScoring(t *testing.T) {
	testCases := []struct {
		name        string
		title       string
		description string
		body        string
		tags        []string
		want        int
	}{
		{
			name:  "title at position zero",
			title: "go patterns",
			want:  scoreTitlePrefix,
		},
		{
			name:  "title elsewhere",
			title: "notes on go",
			want:  scoreTitle,
		},
		{
			name:        "description only",
			title:       "something else",
			description: "all about go",
			want:        scoreDescription,
		},
		{
			name:  "tag only",
			title: "something else",
			tags:  []string{"go", "web"},
			want:  scoreTag,
		},
		{
			name:  "body only",
			title: "something else",
			body:  "written in go",
			want:  scoreBody,
		},
		{
			name:        "everything combined",
			title:       "go patterns",
			description: "go notes",
			body:        "more go",
			tags:        []string{"go"},
			want:        scoreTitlePrefix + scoreDescription + scoreTag + scoreBody,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src := newFakeSource()
			src.add("p", tc.title, tc.description, tc.body, tc.tags...)
			s := New(src)

			results, err := s.Search(context.Background(), "en", "go", 10)
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, tc.want, results[0].Score)
		})
	}
}

func TestSearchTieKeepsSourceOrder(t *testing.T) {
	src := newFakeSource()
	src.add("b-post", "irrelevant", "", "go in the body")
	src.add("a-post", "irrelevant", "", "go in the body too")
	s := New(src)

	results, err := s.Search(context.Background(), "en", "go", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "b-post", results[0].Slug)
	assert.Equal(t, "a-post", results[1].Slug)
}

func TestSearchLimit(t *testing.T) {
	src := newFakeSource()
	for _, slug := range []string{"p1", "p2", "p3"} {
		src.add(slug, "go "+slug, "", "")
	}
	s := New(src)

	results, err := s.Search(context.Background(), "en", "go", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchCaseInsensitive(t *testing.T) {
	src := newFakeSource()
	src.add("p1", "Design Patterns", "", "")
	s := New(src)

	results, err := s.Search(context.Background(), "en", "dEsIgN", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, scoreTitlePrefix, results[0].Score)
}

func TestExtractSnippetInterior(t *testing.T) {
	body := strings.Repeat("앞", 30) + " 설계 패턴은 매우 유용합니다 " + strings.Repeat("뒤", 30)

	snippet := extractSnippet(body, "패턴", 20)

	assert.Contains(t, snippet, "패턴")
	assert.True(t, strings.HasPrefix(snippet, ellipsis))
	assert.True(t, strings.HasSuffix(snippet, ellipsis))
	// ellipsis markers sit outside the window budget
	assert.LessOrEqual(t, len([]rune(snippet)), 20+2*len(ellipsis))
}

func TestExtractSnippetAtStart(t *testing.T) {
	body := "패턴 이야기로 시작해서 " + strings.Repeat("긴", 50)

	snippet := extractSnippet(body, "패턴", 20)

	assert.True(t, strings.HasPrefix(snippet, "패턴"))
	assert.True(t, strings.HasSuffix(snippet, ellipsis))
}

func TestExtractSnippetShortBody(t *testing.T) {
	snippet := extractSnippet("짧은 패턴 본문", "패턴", 150)

	assert.Equal(t, "짧은 패턴 본문", snippet)
}

func TestExtractSnippetWidthChangingFold(t *testing.T) {
	// İ (U+0130) lowercases to a narrower byte encoding, shifting every
	// byte offset after it; the window must still land on the match.
	body := strings.Repeat("İ", 10) + " 설계 패턴은 매우 유용합니다"

	snippet := extractSnippet(body, "패턴", 8)

	assert.Contains(t, snippet, "패턴")
}
