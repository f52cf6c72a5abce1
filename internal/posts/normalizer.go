package posts

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
	"github.com/goliatone/go-wpmigrate/internal/logging"
	"github.com/goliatone/go-wpmigrate/internal/runtimeconfig"
	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
)

// pubDateLayouts accept RSS dates with a numeric zone, with or without a
// zero-padded day.
var pubDateLayouts = []string{
	time.RFC1123Z,
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

var legacyIDPattern = regexp.MustCompile(`^[0-9]+$`)

var errNonPositiveID = errors.New("must be a positive integer")

// Option mutates a Normalizer during construction.
type Option func(*Normalizer)

// WithLogger sets the logger used for per-record diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithSlugFunc replaces the title slugger selected by configuration.
func WithSlugFunc(fn SlugFunc) Option {
	return func(n *Normalizer) {
		if fn != nil {
			n.slugify = fn
		}
	}
}

// Normalizer converts raw export items into posts ready for rendering.
type Normalizer struct {
	cfg     runtimeconfig.PostsConfig
	slugify SlugFunc
	logger  interfaces.Logger
}

var _ interfaces.Normalizer = (*Normalizer)(nil)

// NewNormalizer builds a Normalizer from the posts configuration.
func NewNormalizer(cfg runtimeconfig.PostsConfig, opts ...Option) *Normalizer {
	n := &Normalizer{
		cfg:     cfg,
		slugify: Slugify,
		logger:  logging.NoOp(),
	}
	if strings.EqualFold(strings.TrimSpace(cfg.SlugStrategy), runtimeconfig.SlugStrategyGoSlug) {
		n.slugify = GoSlugFunc(slug.Default())
	}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	return n
}

// Normalize validates the raw item and derives every column value. The
// returned RecordError names the offending field.
func (n *Normalizer) Normalize(raw interfaces.RawPost) (interfaces.Post, error) {
	legacyID, err := parseLegacyID(raw.LegacyID)
	if err != nil {
		return interfaces.Post{}, newRecordError(TextCodeInvalidID, "legacy_id", raw.LegacyID, err)
	}

	title := strings.TrimSpace(raw.Title)
	if err := validation.Validate(title, validation.Required); err != nil {
		return interfaces.Post{}, newRecordError(TextCodeTitleRequired, "title", raw.LegacyID, err)
	}

	publishedAt, err := ParsePubDate(raw.PubDate)
	if err != nil {
		return interfaces.Post{}, newRecordError(TextCodeInvalidDate, "published_at", raw.LegacyID, err)
	}

	content := CleanContent(raw.Content, n.cfg.StripBlockComments)
	postSlug := n.resolveSlug(raw.Slug, title, legacyID)
	excerpt := n.resolveExcerpt(raw.Excerpt, content)

	category := strings.TrimSpace(raw.Category)
	if category == "" {
		category = n.cfg.DefaultCategory
	}

	return interfaces.Post{
		LegacyID:        legacyID,
		Title:           title,
		Slug:            postSlug,
		Excerpt:         excerpt,
		Content:         content,
		Category:        category,
		FeaturedImage:   strings.TrimSpace(raw.FeaturedImage),
		Status:          MapStatus(raw.Status),
		PublishedAt:     publishedAt,
		LegacyURL:       LegacyURL(n.cfg.LegacyURLTemplate, postSlug),
		MetaTitle:       title,
		MetaDescription: truncateRunes(excerpt, n.cfg.MetaDescriptionLimit),
	}, nil
}

func (n *Normalizer) resolveSlug(source, title string, legacyID int64) string {
	if trimmed := strings.TrimSpace(source); trimmed != "" {
		return trimmed
	}
	derived := n.slugify(title)
	if derived == "" {
		derived = fallbackSlug(legacyID)
	}
	n.logger.Debug("posts.normalize.slug_derived",
		"legacy_id", legacyID,
		"slug", derived,
	)
	return derived
}

func (n *Normalizer) resolveExcerpt(source, content string) string {
	var excerpt string
	if strings.TrimSpace(source) != "" {
		excerpt = truncateRunes(source, n.cfg.ExcerptLimit)
	} else {
		excerpt = truncateRunes(content, n.cfg.ExcerptFallbackLimit)
	}
	return truncateRunes(excerpt, n.cfg.ExcerptLimit)
}

func parseLegacyID(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if err := validation.Validate(trimmed,
		validation.Required,
		validation.Match(legacyIDPattern).Error("must contain digits only"),
	); err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errNonPositiveID
	}
	return id, nil
}

// ParsePubDate parses an RSS pubDate with a numeric zone offset.
func ParsePubDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, errors.New("publish date is empty")
	}
	var lastErr error
	for _, layout := range pubDateLayouts {
		parsed, err := time.Parse(layout, trimmed)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("publish date %q: %w", trimmed, lastErr)
}

// MapStatus maps a WordPress status onto the two stored states. Only the
// exact value "publish" counts as published.
func MapStatus(status string) interfaces.PostStatus {
	if status == "publish" {
		return interfaces.PostStatusPublished
	}
	return interfaces.PostStatusDraft
}

// LegacyURL substitutes slug into the redirect template.
func LegacyURL(template, postSlug string) string {
	return strings.ReplaceAll(template, runtimeconfig.SlugPlaceholder, postSlug)
}
