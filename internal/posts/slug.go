package posts

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/goliatone/go-slug"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// vietnameseFolds lists every accented vowel form per base letter plus the
// stroked d. Order matters only for readability; classes do not overlap.
var vietnameseFolds = []struct {
	base     rune
	variants string
}{
	{'a', "àáạảãâầấậẩẫăằắặẳẵ"},
	{'e', "èéẹẻẽêềếệểễ"},
	{'i', "ìíịỉĩ"},
	{'o', "òóọỏõôồốộổỗơờớợởỡ"},
	{'u', "ùúụủũưừứựửữ"},
	{'y', "ỳýỵỷỹ"},
	{'d', "đ"},
}

var foldTable = buildFoldTable()

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

func buildFoldTable() map[rune]rune {
	table := make(map[rune]rune, 80)
	for _, fold := range vietnameseFolds {
		for _, r := range fold.variants {
			table[r] = fold.base
		}
	}
	return table
}

// Transliterate lowercases value and folds accented letters onto plain Latin.
// The Vietnamese table runs first; marks left over from other languages are
// dropped after canonical decomposition.
func Transliterate(value string) string {
	lowered := norm.NFC.String(strings.ToLower(value))
	folded := strings.Map(func(r rune) rune {
		if base, ok := foldTable[r]; ok {
			return base
		}
		return r
	}, lowered)

	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripMarks, folded)
	if err != nil {
		return folded
	}
	return stripped
}

// Slugify derives a URL slug from a title: transliterate, collapse every
// non-alphanumeric run to a single hyphen, trim hyphens.
func Slugify(title string) string {
	return finalizeSlug(Transliterate(title))
}

func finalizeSlug(value string) string {
	collapsed := nonSlugRun.ReplaceAllString(strings.ToLower(value), "-")
	return strings.Trim(collapsed, "-")
}

func fallbackSlug(legacyID int64) string {
	return "post-" + strconv.FormatInt(legacyID, 10)
}

// SlugFunc derives a slug from a title. Implementations may return an empty
// string; the normalizer substitutes a fallback.
type SlugFunc func(title string) string

// GoSlugFunc runs the transliterated title through a go-slug normalizer and
// enforces the slug alphabet on the result.
func GoSlugFunc(normalizer slug.Normalizer) SlugFunc {
	if normalizer == nil {
		normalizer = slug.Default()
	}
	return func(title string) string {
		transliterated := Transliterate(title)
		normalized, err := normalizer.Normalize(transliterated)
		if err != nil || strings.TrimSpace(normalized) == "" {
			return finalizeSlug(transliterated)
		}
		return finalizeSlug(normalized)
	}
}
