package wxr

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goliatone/go-wpmigrate/internal/logging"
	"github.com/goliatone/go-wpmigrate/internal/runtimeconfig"
	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
	"github.com/mmcdole/gofeed/rss"
	"golang.org/x/text/encoding/htmlindex"
)

// Prefixes under which gofeed files WXR elements, taken from the namespace
// declarations of the export.
const (
	prefixWordPress = "wp"
	prefixExcerpt   = "excerpt"
)

const (
	postTypePost       = "post"
	postTypeAttachment = "attachment"
	statusPublish      = "publish"
	categoryDomain     = "category"
	thumbnailMetaKey   = "_thumbnail_id"
)

var errNoRootElement = errors.New("document has no root element")

// Option mutates an Extractor during construction.
type Option func(*Extractor)

// WithLogger sets the logger used for extraction diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Extractor reads WordPress WXR exports and yields post items.
type Extractor struct {
	defaultCategory string
	publishedOnly   bool
	logger          interfaces.Logger
}

var _ interfaces.Extractor = (*Extractor)(nil)

// NewExtractor builds an Extractor from the posts configuration.
func NewExtractor(cfg runtimeconfig.PostsConfig, opts ...Option) *Extractor {
	e := &Extractor{
		defaultCategory: cfg.DefaultCategory,
		publishedOnly:   cfg.PublishedOnly,
		logger:          logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// ExtractFile opens path and extracts it.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*interfaces.Export, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wxr: open export: %w", err)
	}
	defer file.Close()
	return e.extract(ctx, file, path)
}

// Extract reads the whole document, verifies it is well-formed and returns
// the post items in document order.
func (e *Extractor) Extract(ctx context.Context, r io.Reader) (*interfaces.Export, error) {
	return e.extract(ctx, r, "")
}

// ExtractSource behaves like Extract and reports source in logs and parse errors.
func (e *Extractor) ExtractSource(ctx context.Context, r io.Reader, source string) (*interfaces.Export, error) {
	return e.extract(ctx, r, source)
}

func (e *Extractor) extract(ctx context.Context, r io.Reader, source string) (*interfaces.Export, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("wxr: read export: %w", err)
	}
	if err := checkWellFormed(data); err != nil {
		return nil, toParseError(source, err)
	}

	parser := &rss.Parser{}
	feed, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, newParseError(source, 0, err)
	}

	logger := e.logger
	if source != "" {
		logger = logging.WithFields(logger, map[string]any{"source": source})
	}

	attachments := attachmentURLs(feed.Items)
	export := &interfaces.Export{
		Title: feed.Title,
		Link:  feed.Link,
		Posts: make([]interfaces.RawPost, 0, len(feed.Items)),
	}

	for _, item := range feed.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}

		postType := extensionValue(item.Extensions, prefixWordPress, "post_type")
		legacyID := extensionValue(item.Extensions, prefixWordPress, "post_id")
		if postType != postTypePost {
			export.Skipped++
			logger.Trace("wxr.extract.item_skipped",
				"legacy_id", legacyID,
				"post_type", postType,
			)
			continue
		}

		status := extensionValue(item.Extensions, prefixWordPress, "status")
		if e.publishedOnly && status != statusPublish {
			export.Skipped++
			logger.Debug("wxr.extract.unpublished_skipped",
				"legacy_id", legacyID,
				"status", status,
			)
			continue
		}

		export.Posts = append(export.Posts, interfaces.RawPost{
			LegacyID:      legacyID,
			Title:         item.Title,
			Slug:          extensionValue(item.Extensions, prefixWordPress, "post_name"),
			Content:       item.Content,
			Excerpt:       extensionValue(item.Extensions, prefixExcerpt, "encoded"),
			PubDate:       item.PubDate,
			Status:        status,
			Category:      e.category(item),
			FeaturedImage: featuredImage(item, attachments),
			Link:          item.Link,
		})
	}

	logger.Info("wxr.extract.completed",
		"items", len(feed.Items),
		"posts", len(export.Posts),
		"skipped", export.Skipped,
	)
	return export, nil
}

func (e *Extractor) category(item *rss.Item) string {
	for _, category := range item.Categories {
		if category == nil || category.Domain != categoryDomain {
			continue
		}
		if value := strings.TrimSpace(category.Value); value != "" {
			return value
		}
	}
	return e.defaultCategory
}

// checkWellFormed runs a strict token pass over the document. The feed parser
// recovers from many syntax errors, so malformed exports are rejected here.
func checkWellFormed(data []byte) error {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = true
	decoder.CharsetReader = charsetReader

	sawRoot := false
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			if !sawRoot {
				return errNoRootElement
			}
			return nil
		}
		if err != nil {
			return err
		}
		if _, ok := tok.(xml.StartElement); ok {
			sawRoot = true
		}
	}
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, err
	}
	return enc.NewDecoder().Reader(input), nil
}

func toParseError(source string, err error) *ParseError {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return newParseError(source, syntaxErr.Line, syntaxErr)
	}
	return newParseError(source, 0, err)
}
