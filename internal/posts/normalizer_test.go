package posts_test

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-wpmigrate/internal/posts"
	"github.com/goliatone/go-wpmigrate/internal/runtimeconfig"
	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
)

var slugAlphabet = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func newNormalizer(t *testing.T, mutate ...func(*runtimeconfig.PostsConfig)) *posts.Normalizer {
	t.Helper()
	cfg := runtimeconfig.DefaultConfig().Posts
	for _, fn := range mutate {
		fn(&cfg)
	}
	return posts.NewNormalizer(cfg)
}

func rawPost() interfaces.RawPost {
	return interfaces.RawPost{
		LegacyID: "42",
		Title:    "Hello",
		Content:  "<p>Hello world</p>",
		PubDate:  "Mon, 02 Jan 2023 10:00:00 +0000",
		Status:   "publish",
		Category: "News",
	}
}

func TestNormalize_HelloWorldRecord(t *testing.T) {
	post, err := newNormalizer(t).Normalize(rawPost())
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}

	if post.LegacyID != 42 {
		t.Fatalf("expected legacy id 42, got %d", post.LegacyID)
	}
	if post.Slug != "hello" {
		t.Fatalf("expected derived slug hello, got %q", post.Slug)
	}
	if post.Excerpt != "<p>Hello world</p>" {
		t.Fatalf("expected content fallback excerpt, got %q", post.Excerpt)
	}
	if post.MetaDescription != "<p>Hello world</p>" {
		t.Fatalf("expected meta description from excerpt, got %q", post.MetaDescription)
	}
	if post.MetaTitle != "Hello" {
		t.Fatalf("expected meta title Hello, got %q", post.MetaTitle)
	}
	if post.Status != interfaces.PostStatusPublished {
		t.Fatalf("expected published status, got %q", post.Status)
	}
	if post.LegacyURL != "https://vexim.vn/blog/hello" {
		t.Fatalf("unexpected legacy url %q", post.LegacyURL)
	}
	if got := post.PublishedAt.Format("2006-01-02T15:04:05-07:00"); got != "2023-01-02T10:00:00+00:00" {
		t.Fatalf("unexpected published_at %s", got)
	}
	if post.Category != "News" {
		t.Fatalf("expected category News, got %q", post.Category)
	}
}

func TestNormalize_SourceSlugUsedVerbatim(t *testing.T) {
	raw := rawPost()
	raw.Slug = "Giu-Nguyen_Slug"

	post, err := newNormalizer(t).Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if post.Slug != "Giu-Nguyen_Slug" {
		t.Fatalf("expected source slug to pass through, got %q", post.Slug)
	}
	if post.LegacyURL != "https://vexim.vn/blog/Giu-Nguyen_Slug" {
		t.Fatalf("unexpected legacy url %q", post.LegacyURL)
	}
}

func TestNormalize_DerivedSlugFromVietnameseTitle(t *testing.T) {
	raw := rawPost()
	raw.Title = "Tin Tức Mới"

	post, err := newNormalizer(t).Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if post.Slug != "tin-tuc-moi" {
		t.Fatalf("expected tin-tuc-moi, got %q", post.Slug)
	}
}

func TestNormalize_EmptyDerivedSlugFallsBackToID(t *testing.T) {
	raw := rawPost()
	raw.Title = "!!! ???"

	post, err := newNormalizer(t).Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if post.Slug != "post-42" {
		t.Fatalf("expected fallback slug post-42, got %q", post.Slug)
	}
}

func TestNormalize_GoSlugStrategyKeepsAlphabet(t *testing.T) {
	raw := rawPost()
	raw.Title = "Xuất khẩu  Cà phê -- 2024!"

	post, err := newNormalizer(t, func(cfg *runtimeconfig.PostsConfig) {
		cfg.SlugStrategy = runtimeconfig.SlugStrategyGoSlug
	}).Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if !slugAlphabet.MatchString(post.Slug) {
		t.Fatalf("slug %q violates the slug alphabet", post.Slug)
	}
}

func TestNormalize_ExcerptLimits(t *testing.T) {
	long := strings.Repeat("ế", 700)

	t.Run("source excerpt", func(t *testing.T) {
		raw := rawPost()
		raw.Excerpt = long
		post, err := newNormalizer(t).Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize() error: %v", err)
		}
		if n := utf8.RuneCountInString(post.Excerpt); n != 500 {
			t.Fatalf("expected 500 rune excerpt, got %d", n)
		}
		if n := utf8.RuneCountInString(post.MetaDescription); n != 160 {
			t.Fatalf("expected 160 rune meta description, got %d", n)
		}
		if !utf8.ValidString(post.Excerpt) {
			t.Fatalf("excerpt truncated inside a rune")
		}
	})

	t.Run("content fallback", func(t *testing.T) {
		raw := rawPost()
		raw.Excerpt = "   "
		raw.Content = long
		post, err := newNormalizer(t).Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize() error: %v", err)
		}
		if n := utf8.RuneCountInString(post.Excerpt); n != 200 {
			t.Fatalf("expected 200 rune fallback excerpt, got %d", n)
		}
		if n := utf8.RuneCountInString(post.MetaDescription); n != 160 {
			t.Fatalf("expected 160 rune meta description, got %d", n)
		}
	})
}

func TestNormalize_StatusMapping(t *testing.T) {
	cases := map[string]interfaces.PostStatus{
		"publish": interfaces.PostStatusPublished,
		"draft":   interfaces.PostStatusDraft,
		"private": interfaces.PostStatusDraft,
		"Publish": interfaces.PostStatusDraft,
		"":        interfaces.PostStatusDraft,
	}
	for input, want := range cases {
		raw := rawPost()
		raw.Status = input
		post, err := newNormalizer(t).Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", input, err)
		}
		if post.Status != want {
			t.Fatalf("status %q mapped to %q, want %q", input, post.Status, want)
		}
	}
}

func TestNormalize_CleansCaptionsAndBlocks(t *testing.T) {
	raw := rawPost()
	raw.Content = "<!-- wp:image -->\n[caption id=\"attachment_7\" align=\"alignnone\"]<img src=\"a.jpg\">\nPhoto[/caption]\n<!-- /wp:image -->"

	post, err := newNormalizer(t, func(cfg *runtimeconfig.PostsConfig) {
		cfg.StripBlockComments = true
	}).Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	want := "\n<img src=\"a.jpg\">\nPhoto\n"
	if post.Content != want {
		t.Fatalf("unexpected cleaned content %q", post.Content)
	}
}

func TestNormalize_DefaultCategoryWhenMissing(t *testing.T) {
	raw := rawPost()
	raw.Category = ""

	post, err := newNormalizer(t).Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if post.Category != "Tin tức" {
		t.Fatalf("expected default category, got %q", post.Category)
	}
}

func TestNormalize_SingleDigitDayAndOffset(t *testing.T) {
	raw := rawPost()
	raw.PubDate = "Tue, 5 Mar 2024 08:30:00 +0700"

	post, err := newNormalizer(t).Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if got := post.PublishedAt.Format("2006-01-02T15:04:05-07:00"); got != "2024-03-05T08:30:00+07:00" {
		t.Fatalf("unexpected published_at %s", got)
	}
	if !post.PublishedAt.Equal(time.Date(2024, 3, 5, 1, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected instant %v", post.PublishedAt)
	}
}

func TestNormalize_RecordErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*interfaces.RawPost)
		code   string
	}{
		{"bad date", func(r *interfaces.RawPost) { r.PubDate = "Mon, 30 Nov -0001 00:00:00 +0000" }, posts.TextCodeInvalidDate},
		{"empty date", func(r *interfaces.RawPost) { r.PubDate = "" }, posts.TextCodeInvalidDate},
		{"missing id", func(r *interfaces.RawPost) { r.LegacyID = "" }, posts.TextCodeInvalidID},
		{"non numeric id", func(r *interfaces.RawPost) { r.LegacyID = "abc" }, posts.TextCodeInvalidID},
		{"zero id", func(r *interfaces.RawPost) { r.LegacyID = "0" }, posts.TextCodeInvalidID},
		{"blank title", func(r *interfaces.RawPost) { r.Title = "  " }, posts.TextCodeTitleRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := rawPost()
			tc.mutate(&raw)

			_, err := newNormalizer(t).Normalize(raw)
			if err == nil {
				t.Fatal("expected record error")
			}
			var recordErr *posts.RecordError
			if !errors.As(err, &recordErr) {
				t.Fatalf("expected *posts.RecordError, got %T", err)
			}
			if recordErr.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, recordErr.Code)
			}
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation category, got %v", err)
			}
			var tagged *goerrors.Error
			if !errors.As(err, &tagged) || tagged.TextCode != tc.code {
				t.Fatalf("expected text code %s on wrapped error", tc.code)
			}
		})
	}
}
