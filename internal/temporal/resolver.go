package temporal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"lrn/internal/models"
	"lrn/internal/structures"
)

const isoLayout = "2006-01-02"

const (
	defaultHour   = 12
	defaultMinute = 0
)

var months = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"setiembre":  time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

var (
	dayMonthYear = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})`)
	dayMonthName = regexp.MustCompile(`^(\d{1,2})\s+(?:de\s+)?(\p{L}+)`)
	isoDate      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockTime    = regexp.MustCompile(`(?i)^(\d{1,2})\s*:\s*(\d{2})\s*([ap])\.?\s*m\.?$`)
	utcOffset    = regexp.MustCompile(`^([+-])(\d{2}):(\d{2})$`)
)

// DateResolution is the outcome of normalizing a source date. When Resolved is
// false, Value holds the input unchanged.
type DateResolution struct {
	Value    string
	Resolved bool
}

// Resolver interprets source dates and times in one fixed local zone.
type Resolver struct {
	loc   *time.Location
	clock Clock
}

func NewResolver(conf *structures.Config, clock Clock) (*Resolver, error) {
	loc, err := ParseOffset(conf.Timezone.Offset)
	if err != nil {
		return nil, err
	}
	return &Resolver{loc: loc, clock: clock}, nil
}

// ParseOffset builds a fixed zone from "+HH:MM" or "-HH:MM".
func ParseOffset(offset string) (*time.Location, error) {
	m := utcOffset.FindStringSubmatch(strings.TrimSpace(offset))
	if m == nil {
		return nil, fmt.Errorf("invalid timezone offset %q, expected ±HH:MM", offset)
	}
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	if hours > 14 || minutes > 59 {
		return nil, fmt.Errorf("timezone offset %q out of range", offset)
	}
	seconds := hours*3600 + minutes*60
	if m[1] == "-" {
		seconds = -seconds
	}
	return time.FixedZone("UTC"+m[0], seconds), nil
}

func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Now is the current instant in the local zone.
func (r *Resolver) Now() time.Time {
	return r.clock.Now().In(r.loc)
}

// ResolveDate normalizes "dd-MM-yyyy" and "d <mes>" to yyyy-MM-dd. The second form
// carries no year and takes the current local one.
func (r *Resolver) ResolveDate(raw string) DateResolution {
	s := strings.TrimSpace(raw)

	if m := dayMonthYear.FindStringSubmatch(s); m != nil {
		value := m[3] + "-" + m[2] + "-" + m[1]
		if _, err := time.Parse(isoLayout, value); err == nil {
			return DateResolution{Value: value, Resolved: true}
		}
		return DateResolution{Value: raw}
	}

	if m := dayMonthName.FindStringSubmatch(s); m != nil {
		month, ok := months[strings.ToLower(m[2])]
		if !ok {
			return DateResolution{Value: raw}
		}
		day, _ := strconv.Atoi(m[1])
		year := r.Now().Year()
		value := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		if _, err := time.Parse(isoLayout, value); err != nil {
			return DateResolution{Value: raw}
		}
		return DateResolution{Value: value, Resolved: true}
	}

	return DateResolution{Value: raw}
}

// ResolveInstant combines the record's date and optional draw time into a local
// instant. A missing or unreadable time means midday.
func (r *Resolver) ResolveInstant(rec models.RawResult) (time.Time, bool) {
	date := strings.TrimSpace(rec.DateNormalized)
	if !isoDate.MatchString(date) {
		res := r.ResolveDate(rec.DateRaw)
		if !res.Resolved {
			return time.Time{}, false
		}
		date = res.Value
	}

	day, err := time.ParseInLocation(isoLayout, date, r.loc)
	if err != nil {
		return time.Time{}, false
	}

	hour, minute, ok := ParseClock(rec.TimeValue())
	if !ok {
		hour, minute = defaultHour, defaultMinute
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, r.loc), true
}

// IsToday compares calendar days in the local zone.
func (r *Resolver) IsToday(instant time.Time) bool {
	y1, m1, d1 := instant.In(r.loc).Date()
	y2, m2, d2 := r.Now().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ParseClock reads "H:MM AM/PM" in 12-hour form and returns the 24-hour clock.
func ParseClock(s string) (hour, minute int, ok bool) {
	m := clockTime.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, 0, false
	}
	hour %= 12
	if strings.EqualFold(m[3], "p") {
		hour += 12
	}
	return hour, minute, true
}
