// Package blog serves the crawled blog posts embedded with the binary.
package blog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed posts.json
var postsJSON []byte

type Post struct {
	URL         string  `json:"url"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Content     string  `json:"content"`
}

type Library struct {
	posts []Post
}

func Load() (*Library, error) {
	var posts []Post
	if err := json.Unmarshal(postsJSON, &posts); err != nil {
		return nil, fmt.Errorf("parse posts: %w", err)
	}
	return &Library{posts: posts}, nil
}

func (l *Library) All() []Post {
	return l.posts
}

func (l *Library) BySlug(slug string) *Post {
	for i := range l.posts {
		if l.posts[i].Slug == slug {
			return &l.posts[i]
		}
	}
	return nil
}

// Excerpt returns the first maxLength characters of the post body, skipping
// the title line and appending an ellipsis when truncated.
func Excerpt(content string, maxLength int) string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	if len(lines) <= 1 {
		return ""
	}
	body := strings.Join(lines[1:], " ")
	if len(body) <= maxLength {
		return body
	}
	return strings.TrimSpace(body[:maxLength]) + "..."
}

// ReadingTime estimates minutes to read at 200 words per minute, rounded up.
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	return (words + 199) / 200
}

// Paragraphs splits post content into display paragraphs.
func Paragraphs(content string) []string {
	var out []string
	for _, block := range strings.Split(content, "\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			out = append(out, block)
		}
	}
	return out
}
