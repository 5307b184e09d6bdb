package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// reportDateRe accepts a bare calendar date and nothing around it.
var reportDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ReportDate is the calendar day a report represents, at 00:00 UTC.
type ReportDate struct {
	day time.Time
}

// ParseReportDate parses a YYYY-MM-DD date. Anything else, including
// surrounding whitespace or a time component, is rejected.
func ParseReportDate(s string) (ReportDate, error) {
	if !reportDateRe.MatchString(s) {
		return ReportDate{}, fmt.Errorf("%w: %q: expected YYYY-MM-DD", ErrInvalidReportDate, s)
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return ReportDate{}, fmt.Errorf("%w: %q: %v", ErrInvalidReportDate, s, err)
	}
	return ReportDate{day: t}, nil
}

// Day returns the date at midnight UTC.
func (d ReportDate) Day() time.Time { return d.day }

// String returns the date as YYYY-MM-DD.
func (d ReportDate) String() string { return d.day.Format(time.DateOnly) }

// Fragment returns the digits-only form embedded in Registro ids, e.g. "20250804".
func (d ReportDate) Fragment() string { return d.day.Format("20060102") }

// Criteria are the keys a row is tested against for one report date.
type Criteria struct {
	RegistryDay string // YYYY-MM-DD compared with the Registro date
	Fragment    string // digits compared with ids
}

// Resolve computes the matching keys for a report date. offsetDays shifts the
// registry day for crews that log a report on the following day.
func Resolve(date ReportDate, offsetDays int) Criteria {
	return Criteria{
		RegistryDay: date.Day().AddDate(0, 0, offsetDays).Format(time.DateOnly),
		Fragment:    date.Fragment(),
	}
}

// MatchPolicy selects how Registros are matched to a report date.
type MatchPolicy string

const (
	// PolicyExactDate matches on the Registro date only.
	PolicyExactDate MatchPolicy = "exact"
	// PolicyIDFragment matches on the id containing the date digits only.
	PolicyIDFragment MatchPolicy = "fragment"
	// PolicyFallback tries the exact date, then the id fragment if nothing matched.
	PolicyFallback MatchPolicy = "fallback"
)

// ParseMatchPolicy validates a policy name. Empty selects PolicyFallback.
func ParseMatchPolicy(s string) (MatchPolicy, error) {
	switch p := MatchPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyFallback, nil
	case PolicyExactDate, PolicyIDFragment, PolicyFallback:
		return p, nil
	default:
		return "", fmt.Errorf("unknown match policy %q", s)
	}
}

// MatchStrategy records which rule produced a report's rows.
type MatchStrategy string

const (
	MatchExactDate      MatchStrategy = "exact_date"
	MatchIDFragment     MatchStrategy = "id_fragment"
	MatchLegacyFragment MatchStrategy = "legacy_fragment"
	MatchNone           MatchStrategy = "none"
)

// RegistroMatch is the outcome of matching Registros against a report date.
type RegistroMatch struct {
	Registros []Registro
	Strategy  MatchStrategy
}

// MatchRegistros selects the Registros that belong to the report date under
// the given policy. Order is preserved and duplicates are kept.
func MatchRegistros(regs []Registro, c Criteria, policy MatchPolicy) RegistroMatch {
	if policy != PolicyIDFragment {
		if m := filterRegistros(regs, c.matchesDate); len(m) > 0 {
			return RegistroMatch{Registros: m, Strategy: MatchExactDate}
		}
		if policy == PolicyExactDate {
			return RegistroMatch{Registros: []Registro{}, Strategy: MatchNone}
		}
	}
	if m := filterRegistros(regs, c.matchesFragment); len(m) > 0 {
		return RegistroMatch{Registros: m, Strategy: MatchIDFragment}
	}
	return RegistroMatch{Registros: []Registro{}, Strategy: MatchNone}
}

func (c Criteria) matchesDate(r Registro) bool {
	if r.Date == nil {
		return false
	}
	return r.Date.UTC().Format(time.DateOnly) == c.RegistryDay
}

func (c Criteria) matchesFragment(r Registro) bool {
	return c.Fragment != "" && strings.Contains(r.ID, c.Fragment)
}

func filterRegistros(regs []Registro, keep func(Registro) bool) []Registro {
	out := make([]Registro, 0)
	for _, r := range regs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// LinkageKeys is the set of Registro ids dependent rows must belong to.
type LinkageKeys map[string]struct{}

// LinkageKeysOf collects the non-empty ids of the given Registros.
func LinkageKeysOf(regs []Registro) LinkageKeys {
	keys := make(LinkageKeys, len(regs))
	for _, r := range regs {
		if r.ID != "" {
			keys[r.ID] = struct{}{}
		}
	}
	return keys
}

// Has reports exact membership of id.
func (k LinkageKeys) Has(id string) bool {
	if id == "" {
		return false
	}
	_, ok := k[id]
	return ok
}

// Linked is a row tied to a Registro by id.
type Linked interface {
	LinkageID() string
}

// FilterByKeys keeps the rows whose linkage id is in keys.
func FilterByKeys[T Linked](rows []T, keys LinkageKeys) []T {
	out := make([]T, 0)
	for _, r := range rows {
		if keys.Has(r.LinkageID()) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByFragment keeps the rows whose non-empty linkage id contains fragment.
func FilterByFragment[T Linked](rows []T, fragment string) []T {
	out := make([]T, 0)
	if fragment == "" {
		return out
	}
	for _, r := range rows {
		if id := r.LinkageID(); id != "" && strings.Contains(id, fragment) {
			out = append(out, r)
		}
	}
	return out
}
