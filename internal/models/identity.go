package models

import (
	"sort"
	"strings"
)

const (
	keySep     = "\x1f"
	numbersSep = "\x1e"
)

// HistoricalKey identifies a record in the store: raw name, numbers in printed
// order, normalized date and time. A missing time and an empty one are equal.
type HistoricalKey string

func NewHistoricalKey(r RawResult) HistoricalKey {
	return HistoricalKey(strings.Join([]string{
		r.LotteryNameRaw,
		strings.Join(r.Numbers, numbersSep),
		r.DateNormalized,
		r.TimeValue(),
	}, keySep))
}

// GroupKey identifies one draw across sources. Numbers are compared as a set.
type GroupKey string

func NewGroupKey(canonicalName string, r RawResult) GroupKey {
	tokens := make([]string, 0, len(r.Numbers))
	for _, n := range r.Numbers {
		if tok := groupToken(n); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	sort.SliceStable(tokens, func(i, j int) bool { return lessNumeric(tokens[i], tokens[j]) })

	return GroupKey(strings.Join([]string{
		canonicalName,
		r.DateNormalized,
		strings.Join(tokens, numbersSep),
	}, keySep))
}

// NotificationKey is the idempotency key of a push: canonical name, date and the
// numeric-only numbers, e.g. "Quiniela Leidsa|2025-07-15|07-14-22".
type NotificationKey string

func NewNotificationKey(canonicalName, date string, numbers []string) NotificationKey {
	return NotificationKey(canonicalName + "|" + date + "|" + JoinDigits(numbers))
}

// JoinDigits keeps only the digits of every number, pads each to two places and
// joins them with "-". Numbers without digits are dropped.
func JoinDigits(numbers []string) string {
	parts := make([]string, 0, len(numbers))
	for _, n := range numbers {
		if d := digitsOnly(n); d != "" {
			parts = append(parts, padTwo(d))
		}
	}
	return strings.Join(parts, "-")
}

// FormatNumbers renders numbers for display: numeric values are padded to two
// places, anything without digits is kept as printed.
func FormatNumbers(numbers []string) string {
	parts := make([]string, 0, len(numbers))
	for _, n := range numbers {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if d := digitsOnly(n); d != "" {
			parts = append(parts, padTwo(d))
		} else {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, "-")
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func padTwo(d string) string {
	if len(d) < 2 {
		return strings.Repeat("0", 2-len(d)) + d
	}
	return d
}

func groupToken(n string) string {
	n = strings.TrimSpace(n)
	if d := digitsOnly(n); d != "" {
		return padTwo(d)
	}
	return strings.ToLower(n)
}

// lessNumeric orders digit strings by value without parsing, so arbitrarily long
// numbers never overflow. Non-numeric tokens sort after numeric ones.
func lessNumeric(a, b string) bool {
	an, bn := isDigits(a), isDigits(b)
	if an != bn {
		return an
	}
	if !an {
		return a < b
	}
	a, b = strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
