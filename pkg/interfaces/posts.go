package interfaces

import (
	"context"
	"io"
	"time"
)

// PostStatus is the publication state stored in the target posts table.
type PostStatus string

const (
	PostStatusPublished PostStatus = "published"
	PostStatusDraft     PostStatus = "draft"
)

// RawPost carries the fields read from a single WXR item before any
// normalization. Values are exactly what the export contained, except that
// absent optional elements are reported as empty strings.
type RawPost struct {
	// LegacyID is the textual wp:post_id value.
	LegacyID string
	Title    string
	// Slug is the wp:post_name value; empty when WordPress never assigned one.
	Slug    string
	Content string
	Excerpt string
	// PubDate is the RSS pubDate string (RFC 1123 with numeric zone).
	PubDate       string
	Status        string
	Category      string
	FeaturedImage string
	// Link is the permalink recorded in the export, kept for diagnostics.
	Link string
}

// Export is the result of walking a WXR document.
type Export struct {
	Title   string
	Link    string
	Posts   []RawPost
	Skipped int
}

// Post is a normalized record ready to be rendered. Instances are built once
// by the normalizer and treated as read-only afterwards.
type Post struct {
	LegacyID        int64
	Title           string
	Slug            string
	Excerpt         string
	Content         string
	Category        string
	FeaturedImage   string
	Status          PostStatus
	PublishedAt     time.Time
	LegacyURL       string
	MetaTitle       string
	MetaDescription string
}

// Extractor walks an export document and yields the qualifying items.
type Extractor interface {
	Extract(ctx context.Context, r io.Reader) (*Export, error)
}

// Normalizer turns a raw export item into a Post.
type Normalizer interface {
	Normalize(raw RawPost) (Post, error)
}

// Renderer serializes normalized posts into SQL text.
type Renderer interface {
	RenderPost(post Post) (string, error)
	Render(posts []Post) (string, error)
}

// Sink receives the rendered SQL text.
type Sink interface {
	Write(ctx context.Context, sql []byte) error
	// Location describes where the output went, for logs and summaries.
	Location() string
}
