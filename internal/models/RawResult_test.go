package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawResult_TimeValue(t *testing.T) {
	r := RawResult{}
	assert.Equal(t, "", r.TimeValue())
	assert.False(t, r.HasTime())

	r.Time = StringPtr("  7:30PM ")
	assert.Equal(t, "7:30PM", r.TimeValue())
	assert.True(t, r.HasTime())

	r.Time = StringPtr("")
	assert.False(t, r.HasTime())
}

func TestRawResult_IsComplete(t *testing.T) {
	assert.True(t, (&RawResult{LotteryNameRaw: "Leidsa", Numbers: []string{"07"}}).IsComplete())
	assert.False(t, (&RawResult{LotteryNameRaw: " ", Numbers: []string{"07"}}).IsComplete())
	assert.False(t, (&RawResult{LotteryNameRaw: "Leidsa"}).IsComplete())
	assert.False(t, (&RawResult{LotteryNameRaw: "Leidsa", Numbers: []string{"", " "}}).IsComplete())
}

func TestSanitizeLogo(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/leidsa.png", SanitizeLogo("https://cdn.example.com/leidsa.png?v=3&w=64"))
	assert.Equal(t, "https://cdn.example.com/leidsa.png", SanitizeLogo("https://cdn.example.com/leidsa.png#top"))
	assert.Equal(t, "/img/real.png", SanitizeLogo("/img/real.png"))
	assert.Equal(t, "", SanitizeLogo(""))
}

func TestRawResult_JSONKeys(t *testing.T) {
	r := RawResult{
		Source:         "loteriasdominicanas.com",
		LotteryNameRaw: "Leidsa Noche",
		LogoURL:        "https://loteriasdominicanas.com/img/leidsa.png",
		Numbers:        []string{"07", "14", "22"},
		DateRaw:        "15-07-2025",
		DateNormalized: "2025-07-15",
		ObservedAt:     "2025-07-15 21:05:00",
	}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"fuente": "loteriasdominicanas.com",
		"loteria": "Leidsa Noche",
		"img": "https://loteriasdominicanas.com/img/leidsa.png",
		"numeros": ["07", "14", "22"],
		"fecha_original": "15-07-2025",
		"fecha": "2025-07-15",
		"hora": null,
		"hora_scrapeo": "2025-07-15 21:05:00"
	}`, string(data))
}
