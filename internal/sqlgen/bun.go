package sqlgen

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-wpmigrate/internal/runtimeconfig"
	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

// postRow maps a post onto the target columns. published_at is carried as
// preformatted text so the statement keeps the ISO 8601 offset form.
type postRow struct {
	bun.BaseModel `bun:"table:posts"`

	WordPressID     int64  `bun:"wordpress_id"`
	Title           string `bun:"title"`
	Slug            string `bun:"slug"`
	Excerpt         string `bun:"excerpt"`
	Content         string `bun:"content"`
	Category        string `bun:"category"`
	FeaturedImage   string `bun:"featured_image"`
	Status          string `bun:"status"`
	PublishedAt     string `bun:"published_at"`
	WordPressURL    string `bun:"wordpress_url"`
	MetaTitle       string `bun:"meta_title"`
	MetaDescription string `bun:"meta_description"`
}

func newPostRow(post interfaces.Post) *postRow {
	return &postRow{
		WordPressID:     post.LegacyID,
		Title:           post.Title,
		Slug:            post.Slug,
		Excerpt:         post.Excerpt,
		Content:         post.Content,
		Category:        post.Category,
		FeaturedImage:   post.FeaturedImage,
		Status:          string(post.Status),
		PublishedAt:     formatTimestamp(post),
		WordPressURL:    post.LegacyURL,
		MetaTitle:       post.MetaTitle,
		MetaDescription: post.MetaDescription,
	}
}

// bunBuilder formats statements with bun's query builder. The DB handle has
// no connection; it only carries the dialect used for quoting.
type bunBuilder struct {
	db    *bun.DB
	table string
	now   string
}

func newBunBuilder(table, dialectName, now string) (*bunBuilder, error) {
	var dialect schema.Dialect
	switch strings.ToLower(strings.TrimSpace(dialectName)) {
	case "", runtimeconfig.DialectPostgres:
		dialect = pgdialect.New()
	case runtimeconfig.DialectSQLite:
		dialect = sqlitedialect.New()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDialect, dialectName)
	}
	return &bunBuilder{
		db:    bun.NewDB(nil, dialect),
		table: table,
		now:   now,
	}, nil
}

func (b *bunBuilder) statement(post interfaces.Post) (string, error) {
	query := b.db.NewInsert().
		Model(newPostRow(post)).
		ModelTableExpr(b.table).
		On("CONFLICT (" + conflictTarget + ") DO UPDATE")
	for _, assignment := range updateAssignments(b.now) {
		query = query.Set(assignment)
	}

	buf, err := query.AppendQuery(b.db.QueryGen(), nil)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}
