package postservice

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrPostNotFound   = errors.New("post not found")
	ErrBadFrontmatter = errors.New("malformed frontmatter")
)

var (
	frontmatterRX = regexp.MustCompile(`(?s)^---\s*\n(.*?)\n---\s*\n?`)

	headingRX     = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	boldRX        = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRX      = regexp.MustCompile(`\*(.*?)\*`)
	codeBlockRX   = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRX  = regexp.MustCompile("`(.*?)`")
	imageRX       = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`)
	linkRX        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	bulletItemRX  = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	orderedItemRX = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	blankRX       = regexp.MustCompile(`\n+`)

	hangulRX  = regexp.MustCompile(`[가-힣]`)
	latinWord = regexp.MustCompile(`[A-Za-z0-9]+`)
)

func New(contentDir string) *PostService {
	return &PostService{dir: contentDir}
}

// GetSlugs lists the post directories in filesystem order. That order is
// the tie-break order for search ranking.
func (s *PostService) GetSlugs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("could not read content dir: %w", err)
	}

	var slugs []string
	for _, e := range entries {
		if e.IsDir() {
			slugs = append(slugs, e.Name())
		}
	}

	return slugs, nil
}

// GetPost loads one post for a locale, parsing its frontmatter and
// stripping the body down to plain text.
func (s *PostService) GetPost(slug, locale string) (*Post, error) {
	path := filepath.Join(s.dir, slug, locale+".md")

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	meta, body, err := parseFrontmatter(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", slug, err)
	}

	plain := stripMarkdown(body)

	if meta.TimeToRead == 0 {
		meta.TimeToRead = readingTime(plain)
	}

	return &Post{Slug: slug, Metadata: *meta, Body: plain}, nil
}

// GetPosts loads every post for a locale, newest first. Posts missing a
// translation for the locale are skipped.
func (s *PostService) GetPosts(locale string) ([]*Post, error) {
	slugs, err := s.GetSlugs()
	if err != nil {
		return nil, err
	}

	var posts []*Post
	for _, slug := range slugs {
		post, err := s.GetPost(slug, locale)
		if err != nil {
			if errors.Is(err, ErrPostNotFound) {
				continue
			}
			return nil, err
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Metadata.PublishedAt.After(posts[j].Metadata.PublishedAt)
	})

	return posts, nil
}

func parseFrontmatter(content string) (*Metadata, string, error) {
	match := frontmatterRX.FindStringSubmatch(content)
	if match == nil {
		return nil, "", ErrBadFrontmatter
	}

	body := strings.TrimSpace(strings.TrimPrefix(content, match[0]))

	var meta Metadata
	for _, line := range strings.Split(match[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		switch key {
		case "title":
			meta.Title = value
		case "description":
			meta.Description = value
		case "publishedAt":
			t, err := time.Parse("2006-01-02", value)
			if err != nil {
				return nil, "", fmt.Errorf("publishedAt: %w", err)
			}
			meta.PublishedAt = t
		case "lastModifiedAt":
			t, err := time.Parse("2006-01-02", value)
			if err != nil {
				return nil, "", fmt.Errorf("lastModifiedAt: %w", err)
			}
			meta.LastModifiedAt = t
		case "tags":
			for _, tag := range strings.Split(value, ",") {
				tag = strings.TrimSpace(tag)
				if tag != "" {
					meta.Tags = append(meta.Tags, tag)
				}
			}
		case "timeToRead":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, "", fmt.Errorf("timeToRead: %w", err)
			}
			meta.TimeToRead = n
		}
	}

	if meta.Title == "" || meta.Description == "" || meta.PublishedAt.IsZero() {
		return nil, "", ErrBadFrontmatter
	}

	return &meta, body, nil
}

// stripMarkdown reduces a markdown body to searchable plain text.
func stripMarkdown(body string) string {
	plain := codeBlockRX.ReplaceAllString(body, "")
	plain = headingRX.ReplaceAllString(plain, "")
	plain = boldRX.ReplaceAllString(plain, "$1")
	plain = italicRX.ReplaceAllString(plain, "$1")
	plain = inlineCodeRX.ReplaceAllString(plain, "$1")
	plain = imageRX.ReplaceAllString(plain, "")
	plain = linkRX.ReplaceAllString(plain, "$1")
	plain = bulletItemRX.ReplaceAllString(plain, "")
	plain = orderedItemRX.ReplaceAllString(plain, "")
	plain = blankRX.ReplaceAllString(plain, " ")

	return strings.TrimSpace(plain)
}

// readingTime estimates minutes to read mixed Korean and English text.
// Korean reads at about 300 characters a minute, English at 250 words.
func readingTime(plain string) int {
	koreanChars := len(hangulRX.FindAllString(plain, -1))
	englishWords := len(latinWord.FindAllString(hangulRX.ReplaceAllString(plain, " "), -1))

	minutes := float64(englishWords)/250 + float64(koreanChars)/300

	if rounded := int(math.Round(minutes)); rounded > 1 {
		return rounded
	}
	return 1
}
