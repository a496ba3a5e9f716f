package models

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PostTitleMinLen   = 5
	PostTitleMaxLen   = 100
	PostContentMinLen = 10
	PostContentMaxLen = 1000
	PostMaxTags       = 10

	// Content must carry at least this many non-whitespace characters
	// so a body of blanks cannot pass the length check.
	PostContentMinMeaningful = 5
)

var imageURLPattern = regexp.MustCompile(`(?i)^https?://[^\s$.?#].[^\s]*$`)

type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`

	Title   string             `bson:"title" json:"title"`
	Content string             `bson:"content" json:"content"`

	// AuthorID is immutable after creation; AuthorName is denormalized
	// from the user at write time and may go stale on rename.
	AuthorID   primitive.ObjectID `bson:"author_id" json:"authorId"`
	AuthorName string             `bson:"author_name" json:"authorName"`

	Tags  []string `bson:"tags" json:"tags"`
	Image string   `bson:"image" json:"image"`
	Likes int      `bson:"likes" json:"likes"`
	Views int      `bson:"views" json:"views"`
}

// Normalize trims the fields that are stored trimmed.
func (p *Post) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Content = strings.TrimSpace(p.Content)
	p.Image = strings.TrimSpace(p.Image)
}

// Validate checks the schema constraints enforced on every write.
func (p *Post) Validate() error {
	if p.Title == "" {
		return &ValidationError{Field: "title", Message: "Title must be provided"}
	}
	if len(p.Title) < PostTitleMinLen {
		return &ValidationError{Field: "title", Message: "Title should be greater than 5 valid characters"}
	}
	if len(p.Title) > PostTitleMaxLen {
		return &ValidationError{Field: "title", Message: "Title should not exceed 100 characters"}
	}
	if p.Content == "" {
		return &ValidationError{Field: "content", Message: "Content cannot be empty"}
	}
	if len(p.Content) < PostContentMinLen {
		return &ValidationError{Field: "content", Message: "Minimum content should be 10 characters"}
	}
	if len(p.Content) > PostContentMaxLen {
		return &ValidationError{Field: "content", Message: "Cannot upload content of more than 1000 characters"}
	}
	if p.AuthorID.IsZero() {
		return &ValidationError{Field: "authorId", Message: "Author is required"}
	}
	if strings.TrimSpace(p.AuthorName) == "" {
		return &ValidationError{Field: "authorName", Message: "Author name is required"}
	}
	if len(p.Tags) > PostMaxTags {
		return &ValidationError{Field: "tags", Message: "A post cannot have more than 10 tags"}
	}
	if p.Image != "" && !imageURLPattern.MatchString(p.Image) {
		return &ValidationError{Field: "image", Message: "Image must be a valid URL"}
	}
	if p.Likes < 0 {
		return &ValidationError{Field: "likes", Message: "Likes cannot be negative"}
	}
	if p.Views < 0 {
		return &ValidationError{Field: "views", Message: "Views cannot be negative"}
	}
	return nil
}

// HasMeaningfulContent reports whether the content carries enough
// non-whitespace characters to count as a real post body.
func HasMeaningfulContent(content string) bool {
	return len(strings.TrimSpace(content)) >= PostContentMinMeaningful
}

// NormalizeTags accepts the tag field as the API takes it — either a
// comma-separated string or a JSON list — and returns a trimmed list
// with empty entries dropped and the count capped at PostMaxTags.
func NormalizeTags(raw interface{}) []string {
	var tags []string
	switch v := raw.(type) {
	case nil:
		return []string{}
	case string:
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	case []string:
		for _, t := range v {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					tags = append(tags, s)
				}
			}
		}
	}
	if tags == nil {
		tags = []string{}
	}
	if len(tags) > PostMaxTags {
		tags = tags[:PostMaxTags]
	}
	return tags
}
