package canonical

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// variants maps folded, prefix-stripped lottery names to their canonical form.
var variants = map[string]string{
	"leidsa noche":              "Quiniela Leidsa",
	"loteka noche":              "Quiniela Loteka",
	"real tarde":                "Quiniela Real",
	"nacional noche":            "Lotería Nacional",
	"nacional tarde (gana mas)": "Gana Más",
	"florida noche":             "Florida Noche",
	"florida tarde":             "Florida Día",
	"la suerte noche":           "La Suerte 18:00",
	"la suerte medio dia":       "La Suerte 12:30",
	"king lottery noche":        "King Lottery 7:30",
	"king lottery medio dia":    "King Lottery 12:30",
	"king lottery tarde":        "King Lottery 7:30",
	"la primera tarde":          "La Primera Día",
	"la primera noche":          "Primera Noche",
	"new york noche":            "New York Noche",
	"new york tarde":            "New York Tarde",
	"anguila manana 8am":        "Anguila Mañana",
	"anguila manana 11am":       "Anguila Mañana",
	"anguila medio dia 12pm":    "Anguila Medio Día",
	"anguila tarde 1:00pm":      "Anguila Tarde",
	"anguila tarde 2pm":         "Anguila Tarde",
	"anguila tarde 3pm":         "Anguila Tarde",
	"anguila tarde 4pm":         "Anguila Tarde",
	"anguila tarde 5pm":         "Anguila Tarde",
	"anguila tarde 6:00pm":      "Anguila Tarde",
	"anguila noche 7pm":         "Anguila Noche",
	"anguila noche 8pm":         "Anguila Noche",
	"anguila noche 9:00pm":      "Anguila Noche",
	"anguila noche 10pm":        "Anguila Noche",
}

var leadingToken = regexp.MustCompile(`^(loteria|lottery)\s+`)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Fold strips diacritics, lowercases and collapses whitespace.
func Fold(s string) string {
	// transformers carry state, so a fresh chain per call keeps Fold safe for concurrent use
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}
	return strings.Join(strings.Fields(strings.ToLower(plain)), " ")
}

// Canonicalize maps a free-text lottery name to its canonical identity.
// Names without a known variant are returned unchanged.
func Canonicalize(raw string) string {
	key := leadingToken.ReplaceAllString(Fold(raw), "")
	if name, ok := variants[key]; ok {
		return name
	}
	return raw
}

// Slug turns a name into a push topic fragment: "Lotería Nacional" -> "loteria_nacional".
func Slug(name string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(Fold(name), "_"), "_")
}

// Variants returns a copy of the variant table, for operator tooling.
func Variants() map[string]string {
	out := make(map[string]string, len(variants))
	for k, v := range variants {
		out[k] = v
	}
	return out
}
