package canonical

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalize_KnownVariants(t *testing.T) {
	tests := map[string]string{
		"Loteria Nacional Noche":    "Lotería Nacional",
		"Lotería  Nacional   Noche": "Lotería Nacional",
		"LEIDSA NOCHE":              "Quiniela Leidsa",
		"Lottery Leidsa Noche":      "Quiniela Leidsa",
		"Loteka Noche":              "Quiniela Loteka",
		"Nacional Tarde (Gana Más)": "Gana Más",
		"Florida Tarde":             "Florida Día",
		"La Suerte Medio Día":       "La Suerte 12:30",
		"King Lottery Noche":        "King Lottery 7:30",
		"Anguila Mañana 8AM":        "Anguila Mañana",
		"  anguila noche 9:00pm ":   "Anguila Noche",
		"Loteria Real Tarde":        "Quiniela Real",
		"New York Tarde":            "New York Tarde",
	}
	for raw, want := range tests {
		assert.Equal(t, want, Canonicalize(raw), raw)
	}
}

func TestCanonicalize_UnknownPassesThrough(t *testing.T) {
	assert.Equal(t, "Pega 3 Más", Canonicalize("Pega 3 Más"))
	assert.Equal(t, "", Canonicalize(""))
	assert.Equal(t, "  Quiniela Pale ", Canonicalize("  Quiniela Pale "))
}

func TestCanonicalize_OnlyOneLeadingTokenStripped(t *testing.T) {
	assert.Equal(t, "Loteria Loteria Leidsa Noche", Canonicalize("Loteria Loteria Leidsa Noche"))
}

func TestCanonicalize_CanonicalValuesAreFixedPoints(t *testing.T) {
	for _, name := range Variants() {
		assert.Equal(t, name, Canonicalize(name), name)
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "loteria nacional", Fold("  LOTERÍA\tNacional "))
	assert.Equal(t, "anguila manana", Fold("Anguila Mañana"))
	assert.Equal(t, "", Fold("   "))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "loteria_nacional", Slug("Lotería Nacional"))
	assert.Equal(t, "la_suerte_18_00", Slug("La Suerte 18:00"))
	assert.Equal(t, "gana_mas", Slug("Gana Más"))
	assert.Equal(t, "king_lottery_7_30", Slug("  King Lottery 7:30!! "))
	assert.Equal(t, "", Slug("¡¿?!"))
}

func TestVariants_ReturnsCopy(t *testing.T) {
	v := Variants()
	v["leidsa noche"] = "changed"
	assert.Equal(t, "Quiniela Leidsa", Canonicalize("Leidsa Noche"))
}

func TestCanonicalize_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	names := gen.OneGenOf(
		gen.AnyString(),
		gen.AlphaString(),
		gen.OneConstOf(
			"Loteria Nacional Noche", "leidsa noche", "Lottery Florida Noche", "Anguila Tarde 3PM",
			"King Lottery Medio Dia", "La Primera Noche", "Quiniela Leidsa", "Gana Más",
		),
	)

	properties.Property("idempotent", prop.ForAll(
		func(raw string) bool {
			once := Canonicalize(raw)
			return Canonicalize(once) == once
		},
		names,
	))

	properties.Property("total: result is the input or a canonical name", prop.ForAll(
		func(raw string) bool {
			out := Canonicalize(raw)
			if out == raw {
				return true
			}
			for _, name := range variants {
				if out == name {
					return true
				}
			}
			return false
		},
		names,
	))

	properties.Property("deterministic", prop.ForAll(
		func(raw string) bool {
			return Canonicalize(raw) == Canonicalize(raw)
		},
		names,
	))

	properties.TestingRun(t)
}
