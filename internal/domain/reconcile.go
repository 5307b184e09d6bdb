package domain

import "slices"

// RawSheets holds the raw rows of the four tabs, header rows included.
// Unavailable lists the tabs whose fetch failed; their rows are ignored.
type RawSheets struct {
	Registros   [][]any
	DMAs        [][]any
	Naves       [][]any
	ROVs        [][]any
	Unavailable []string
}

func (r RawSheets) available(s Sheet) bool {
	return !slices.Contains(r.Unavailable, s.Name)
}

// ReconcileOptions configure report matching.
type ReconcileOptions struct {
	Policy     MatchPolicy
	OffsetDays int
}

// Reconciled holds the rows belonging to one report date.
type Reconciled struct {
	Registros    []Registro
	DMAs         []DMA
	Naves        []Nave
	ROVs         []ROV
	MatchedBy    MatchStrategy
	FailedSheets []string
}

// Reconcile parses the raw tabs and keeps the rows belonging to date.
//
// Registros are matched with opts.Policy. When any match, dependent rows are
// kept on exact membership in the matched ids. When none match, dependent rows
// are matched on the id fragment instead. Without the Registros tab every
// collection is empty. Reconcile is pure; the same input gives the same output.
func Reconcile(raw RawSheets, date ReportDate, opts ReconcileOptions) Reconciled {
	out := Reconciled{
		Registros:    []Registro{},
		DMAs:         []DMA{},
		Naves:        []Nave{},
		ROVs:         []ROV{},
		MatchedBy:    MatchNone,
		FailedSheets: slices.Clone(raw.Unavailable),
	}
	if !raw.available(SheetRegistros) {
		return out
	}

	policy := opts.Policy
	if policy == "" {
		policy = PolicyFallback
	}
	criteria := Resolve(date, opts.OffsetDays)

	match := MatchRegistros(ParseRegistros(raw.Registros), criteria, policy)
	out.Registros = match.Registros
	out.MatchedBy = match.Strategy

	dmas := ParseDMAs(raw.rows(SheetDMAs))
	naves := ParseNaves(raw.rows(SheetNaves))
	rovs := ParseROVs(raw.rows(SheetROVs))

	if len(match.Registros) > 0 {
		keys := LinkageKeysOf(match.Registros)
		out.DMAs = FilterByKeys(dmas, keys)
		out.Naves = FilterByKeys(naves, keys)
		out.ROVs = FilterByKeys(rovs, keys)
		return out
	}

	out.DMAs = FilterByFragment(dmas, criteria.Fragment)
	out.Naves = FilterByFragment(naves, criteria.Fragment)
	out.ROVs = FilterByFragment(rovs, criteria.Fragment)
	if len(out.DMAs)+len(out.Naves)+len(out.ROVs) > 0 {
		out.MatchedBy = MatchLegacyFragment
	}
	return out
}

func (r RawSheets) rows(s Sheet) [][]any {
	if !r.available(s) {
		return nil
	}
	switch s.Name {
	case SheetRegistros.Name:
		return r.Registros
	case SheetDMAs.Name:
		return r.DMAs
	case SheetNaves.Name:
		return r.Naves
	case SheetROVs.Name:
		return r.ROVs
	}
	return nil
}
