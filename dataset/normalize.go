package dataset

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName returns the title-case identity of a name: surrounding and
// repeated whitespace removed, first letter of each word upper case, the rest
// lower case. A letter after an apostrophe is upper case too, so "o'neil"
// becomes "O'Neil". "  bELLA  " and "Bella" normalize to the same string.
//
// A cases.Caser is stateful, so one is built per call. Bulk callers go
// through a nameCache instead.
func NormalizeName(name string) string {
	return normalize(cases.Title(language.Und), name)
}

// NormalizeNames normalizes every element and drops blanks and duplicates,
// keeping first-seen order.
func NormalizeNames(names []string) []string {
	cache := newNameCache()
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		key := cache.normalize(n)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}

func normalize(caser cases.Caser, name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	return upperAfterApostrophe(caser.String(name))
}

func upperAfterApostrophe(s string) string {
	if !strings.ContainsAny(s, "'’") {
		return s
	}
	runes := []rune(s)
	for i := 1; i < len(runes); i++ {
		if (runes[i-1] == '\'' || runes[i-1] == '’') && unicode.IsLetter(runes[i]) {
			runes[i] = unicode.ToUpper(runes[i])
		}
	}
	return string(runes)
}

// nameCache normalizes with a single caser and remembers each raw spelling.
// Not safe for concurrent use.
type nameCache struct {
	caser cases.Caser
	seen  map[string]string
}

func newNameCache() *nameCache {
	return &nameCache{
		caser: cases.Title(language.Und),
		seen:  make(map[string]string),
	}
}

func (c *nameCache) normalize(name string) string {
	if key, ok := c.seen[name]; ok {
		return key
	}
	key := normalize(c.caser, name)
	c.seen[name] = key
	return key
}
