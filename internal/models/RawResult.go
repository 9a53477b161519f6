package models

import "strings"

// ObservedAtLayout is the capture timestamp format. It sorts lexicographically.
const ObservedAtLayout = "2006-01-02 15:04:05"

// RawResult is one lottery result as harvested from a source. The JSON keys are
// the ones used by the persisted store since its first version.
type RawResult struct {
	Source         string   `json:"fuente"`
	LotteryNameRaw string   `json:"loteria"`
	LogoURL        string   `json:"img"`
	Numbers        []string `json:"numeros"`
	DateRaw        string   `json:"fecha_original"`
	DateNormalized string   `json:"fecha"`
	Time           *string  `json:"hora"`
	ObservedAt     string   `json:"hora_scrapeo"`
}

// TimeValue returns the reported draw time, or "" when the source did not report one.
func (r *RawResult) TimeValue() string {
	if r.Time == nil {
		return ""
	}
	return strings.TrimSpace(*r.Time)
}

func (r *RawResult) HasTime() bool {
	return r.TimeValue() != ""
}

// IsComplete reports whether the record carries the fields reconciliation needs.
func (r *RawResult) IsComplete() bool {
	if strings.TrimSpace(r.LotteryNameRaw) == "" {
		return false
	}
	for _, n := range r.Numbers {
		if strings.TrimSpace(n) != "" {
			return true
		}
	}
	return false
}

// SanitizeLogo drops the query string and fragment from a logo URL.
func SanitizeLogo(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		return url[:i]
	}
	return url
}

func StringPtr(s string) *string {
	return &s
}
