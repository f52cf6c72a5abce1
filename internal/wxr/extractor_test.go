package wxr_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-wpmigrate/internal/runtimeconfig"
	"github.com/goliatone/go-wpmigrate/internal/wxr"
	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
)

func newExtractor(mutate ...func(*runtimeconfig.PostsConfig)) *wxr.Extractor {
	cfg := runtimeconfig.DefaultConfig().Posts
	for _, fn := range mutate {
		fn(&cfg)
	}
	return wxr.NewExtractor(cfg)
}

func extractFixture(t *testing.T, extractor *wxr.Extractor) *interfaces.Export {
	t.Helper()
	export, err := extractor.ExtractFile(context.Background(), filepath.Join("testdata", "export.xml"))
	if err != nil {
		t.Fatalf("ExtractFile() error: %v", err)
	}
	return export
}

func postByID(t *testing.T, export *interfaces.Export, id string) interfaces.RawPost {
	t.Helper()
	for _, post := range export.Posts {
		if post.LegacyID == id {
			return post
		}
	}
	t.Fatalf("post %s not extracted", id)
	return interfaces.RawPost{}
}

func TestExtract_KeepsOnlyPostsInDocumentOrder(t *testing.T) {
	export := extractFixture(t, newExtractor())

	var ids []string
	for _, post := range export.Posts {
		ids = append(ids, post.LegacyID)
	}
	if got := strings.Join(ids, ","); got != "101,102,103,104" {
		t.Fatalf("unexpected post ids %s", got)
	}
	if export.Skipped != 2 {
		t.Fatalf("expected page and attachment to be skipped, got %d", export.Skipped)
	}
	if export.Title != "Vexim Global" {
		t.Fatalf("unexpected channel title %q", export.Title)
	}
}

func TestExtract_ReadsWordPressFields(t *testing.T) {
	export := extractFixture(t, newExtractor())
	post := postByID(t, export, "101")

	if post.Title != "Xuất khẩu cà phê tăng mạnh" {
		t.Fatalf("unexpected title %q", post.Title)
	}
	if post.Slug != "xuat-khau-ca-phe-tang-manh" {
		t.Fatalf("unexpected slug %q", post.Slug)
	}
	if post.Status != "publish" {
		t.Fatalf("unexpected status %q", post.Status)
	}
	if post.PubDate != "Tue, 05 Mar 2024 08:30:00 +0700" {
		t.Fatalf("unexpected pubDate %q", post.PubDate)
	}
	if post.Excerpt != "Cà phê Việt Nam lập kỷ lục xuất khẩu." {
		t.Fatalf("unexpected excerpt %q", post.Excerpt)
	}
	if !strings.HasPrefix(post.Content, "[caption id=\"attachment_77\"") {
		t.Fatalf("expected raw content with caption shortcode, got %q", post.Content)
	}
	if post.Category != "Thị trường" {
		t.Fatalf("expected first category-domain term, got %q", post.Category)
	}
	if post.FeaturedImage != "https://vexim.vn/wp-content/uploads/coffee.jpg" {
		t.Fatalf("expected thumbnail resolved through attachment, got %q", post.FeaturedImage)
	}
}

func TestExtract_MissingOptionalElements(t *testing.T) {
	export := extractFixture(t, newExtractor())
	post := postByID(t, export, "102")

	if post.Content != "" || post.Excerpt != "" {
		t.Fatalf("expected empty content and excerpt, got %q / %q", post.Content, post.Excerpt)
	}
	if post.Slug != "" {
		t.Fatalf("expected empty source slug, got %q", post.Slug)
	}
	if post.Category != "Tin tức" {
		t.Fatalf("expected default category when only tags are present, got %q", post.Category)
	}
	if post.FeaturedImage != "" {
		t.Fatalf("expected no featured image, got %q", post.FeaturedImage)
	}
}

func TestExtract_ThumbnailURLPreferred(t *testing.T) {
	export := extractFixture(t, newExtractor())
	post := postByID(t, export, "103")

	if post.FeaturedImage != "https://vexim.vn/wp-content/uploads/hello.png" {
		t.Fatalf("unexpected featured image %q", post.FeaturedImage)
	}
	if post.Content != "<p>Hello world</p>" {
		t.Fatalf("unexpected content %q", post.Content)
	}
}

func TestExtract_PublishedOnly(t *testing.T) {
	export := extractFixture(t, newExtractor(func(cfg *runtimeconfig.PostsConfig) {
		cfg.PublishedOnly = true
	}))

	if len(export.Posts) != 2 {
		t.Fatalf("expected two published posts, got %d", len(export.Posts))
	}
	if export.Skipped != 4 {
		t.Fatalf("expected four skipped items, got %d", export.Skipped)
	}
}

func TestExtract_CustomDefaultCategory(t *testing.T) {
	export := extractFixture(t, newExtractor(func(cfg *runtimeconfig.PostsConfig) {
		cfg.DefaultCategory = "News"
	}))
	if got := postByID(t, export, "102").Category; got != "News" {
		t.Fatalf("expected configured default category, got %q", got)
	}
}

func TestExtract_MalformedInput(t *testing.T) {
	cases := map[string]string{
		"unclosed element": "<rss>\n<channel>\n<item>\n</channel>\n</rss>",
		"empty document":   "",
		"not rss":          `<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"></feed>`,
		"truncated":        `<rss version="2.0"><channel><title>x</title>`,
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := newExtractor().Extract(context.Background(), strings.NewReader(input))
			if err == nil {
				t.Fatal("expected parse error")
			}
			var parseErr *wxr.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *wxr.ParseError, got %T: %v", err, err)
			}
			if !goerrors.IsCategory(err, goerrors.CategoryBadInput) {
				t.Fatalf("expected bad input category, got %v", err)
			}
		})
	}
}

func TestExtract_SyntaxErrorReportsLine(t *testing.T) {
	_, err := newExtractor().Extract(context.Background(), strings.NewReader("<rss>\n<channel>\n<item>\n</channel>\n</rss>"))
	var parseErr *wxr.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *wxr.ParseError, got %v", err)
	}
	if parseErr.Line != 4 {
		t.Fatalf("expected error on line 4, got %d", parseErr.Line)
	}
}

func TestExtract_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newExtractor().ExtractFile(ctx, filepath.Join("testdata", "export.xml"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestExtract_TrimsExtensionValues(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"
	xmlns:excerpt="http://wordpress.org/export/1.2/excerpt/"
	xmlns:content="http://purl.org/rss/1.0/modules/content/"
	xmlns:wp="http://wordpress.org/export/1.2/">
<channel>
	<title>Vexim Global</title>
	<item>
		<title>Padded</title>
		<content:encoded><![CDATA[<p>body</p>]]></content:encoded>
		<excerpt:encoded><![CDATA[  padded excerpt  ]]></excerpt:encoded>
		<wp:post_id>301</wp:post_id>
		<wp:post_name><![CDATA[  padded-slug ]]></wp:post_name>
		<wp:status>publish</wp:status>
		<wp:post_type>post</wp:post_type>
	</item>
</channel>
</rss>`

	export, err := newExtractor().Extract(context.Background(), strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	post := postByID(t, export, "301")
	if post.Excerpt != "padded excerpt" {
		t.Fatalf("expected trimmed excerpt, got %q", post.Excerpt)
	}
	if post.Slug != "padded-slug" {
		t.Fatalf("expected trimmed slug, got %q", post.Slug)
	}
}
