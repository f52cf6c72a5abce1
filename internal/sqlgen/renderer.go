package sqlgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-wpmigrate/internal/logging"
	"github.com/goliatone/go-wpmigrate/internal/runtimeconfig"
	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
)

// TimestampLayout renders published_at as ISO 8601 with a colon offset.
const TimestampLayout = "2006-01-02T15:04:05-07:00"

// Columns lists the inserted columns in statement order.
var Columns = []string{
	"wordpress_id", "title", "slug", "excerpt", "content", "category",
	"featured_image", "status", "published_at", "wordpress_url",
	"meta_title", "meta_description",
}

const conflictTarget = "wordpress_id"

var (
	ErrUnknownEngine  = errors.New("sqlgen: unknown render engine")
	ErrUnknownDialect = errors.New("sqlgen: unknown dialect")
)

// statementBuilder produces one upsert statement without the trailing
// terminator.
type statementBuilder interface {
	statement(post interfaces.Post) (string, error)
}

// Option mutates a Renderer during construction.
type Option func(*Renderer)

// WithLogger sets the logger used for render diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer serializes posts into upsert statements keyed on wordpress_id.
type Renderer struct {
	builder statementBuilder
	logger  interfaces.Logger
}

var _ interfaces.Renderer = (*Renderer)(nil)

// New selects the statement engine and dialect from configuration.
func New(cfg runtimeconfig.RenderConfig, opts ...Option) (*Renderer, error) {
	table := strings.TrimSpace(cfg.Table)
	if table == "" {
		return nil, runtimeconfig.ErrRenderTableRequired
	}
	now, err := nowExpression(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	r := &Renderer{logger: logging.NoOp()}
	switch strings.ToLower(strings.TrimSpace(cfg.Engine)) {
	case "", runtimeconfig.EngineText:
		r.builder = textBuilder{table: table, now: now}
	case runtimeconfig.EngineBun:
		builder, err := newBunBuilder(table, cfg.Dialect, now)
		if err != nil {
			return nil, err
		}
		r.builder = builder
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, cfg.Engine)
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// RenderPost returns a single statement terminated by a semicolon.
func (r *Renderer) RenderPost(post interfaces.Post) (string, error) {
	stmt, err := r.builder.statement(post)
	if err != nil {
		return "", fmt.Errorf("sqlgen: render post %d: %w", post.LegacyID, err)
	}
	return stmt + ";", nil
}

// Render joins the statements of every post with a blank line. An empty batch
// renders as the empty string; otherwise the text ends with a newline.
func (r *Renderer) Render(posts []interfaces.Post) (string, error) {
	if len(posts) == 0 {
		return "", nil
	}
	statements := make([]string, 0, len(posts))
	for _, post := range posts {
		stmt, err := r.RenderPost(post)
		if err != nil {
			return "", err
		}
		statements = append(statements, stmt)
	}
	r.logger.Debug("sqlgen.render.completed", "statements", len(statements))
	return strings.Join(statements, "\n\n") + "\n", nil
}

func nowExpression(dialect string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "", runtimeconfig.DialectPostgres:
		return "NOW()", nil
	case runtimeconfig.DialectSQLite:
		return "CURRENT_TIMESTAMP", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownDialect, dialect)
	}
}

func updateAssignments(now string) []string {
	return []string{
		"title = EXCLUDED.title",
		"content = EXCLUDED.content",
		"updated_at = " + now,
	}
}

func formatTimestamp(post interfaces.Post) string {
	return post.PublishedAt.Format(TimestampLayout)
}
