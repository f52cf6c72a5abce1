package sqlgen

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
)

const indent = "    "

// textBuilder lays statements out one value per line for manual review.
type textBuilder struct {
	table string
	now   string
}

func (b textBuilder) statement(post interfaces.Post) (string, error) {
	values := []string{
		strconv.FormatInt(post.LegacyID, 10),
		quote(post.Title),
		quote(post.Slug),
		quote(post.Excerpt),
		quote(post.Content),
		quote(post.Category),
		quote(post.FeaturedImage),
		quote(string(post.Status)),
		quote(formatTimestamp(post)),
		quote(post.LegacyURL),
		quote(post.MetaTitle),
		quote(post.MetaDescription),
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(b.table)
	sb.WriteString(" (\n")
	sb.WriteString(indent + strings.Join(Columns[:6], ", ") + ",\n")
	sb.WriteString(indent + strings.Join(Columns[6:10], ", ") + ",\n")
	sb.WriteString(indent + strings.Join(Columns[10:], ", ") + "\n")
	sb.WriteString(") VALUES (\n")
	sb.WriteString(indent + strings.Join(values, ",\n"+indent) + "\n")
	sb.WriteString(") ON CONFLICT (" + conflictTarget + ") DO UPDATE SET\n")
	sb.WriteString(indent + strings.Join(updateAssignments(b.now), ",\n"+indent))
	return sb.String(), nil
}

// quote wraps value in single quotes, doubling embedded quotes and dropping
// NUL characters, which no target database accepts in text.
func quote(value string) string {
	var sb strings.Builder
	sb.Grow(len(value) + 2)
	sb.WriteByte('\'')
	for _, r := range value {
		switch r {
		case 0:
			continue
		case '\'':
			sb.WriteString("''")
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}
