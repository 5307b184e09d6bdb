// Package domain models the daily operational report built from the shared
// operations spreadsheet: the Registros, DMAs, Naves and ROVs tabs.
//
// # Data Source
//
// Field crews fill a Google Sheets workbook with one tab per entity kind.
// Every request reads the four tabs again; nothing derived from them is kept
// between requests. The first row of every tab is a header and is skipped.
//
// Layout (0-indexed columns):
//
//	Registros!A:N  id, date, port status (Directemar), port status (concession),
//	               operation day, equipment total, inoperative, pumping, client,
//	               center, responsible, weather conditions, details, weather files
//	DMAs!A:O       id, equipment state, unit number, platform, platform state,
//	               central, central state, hose (manga), hose (manguera), nozzle,
//	               nozzle state, station, point, pumping hours, observations
//	Naves!A:C      id, vessel name, observations
//	ROVs!A:F       id, unit number, responsible, state, location, observations
//
// # Cell Conventions
//
// Values arrive untyped: absent, string or number. The validators ([ToText],
// [ToNumber], [ToDate]) never fail; a malformed cell resolves to "", 0 or a nil
// date. Numbers may use a comma as decimal separator ("12,5"). Dates arrive
// either as formatted strings or as date-serials: a day count from
// 1899-12-30T00:00:00Z, fractional part being the time of day.
//
// # Linkage
//
// The Registro id (e.g. "20250804-01") is the key that ties DMA, Nave and ROV
// rows to a daily record. By convention it embeds the report date as digits.
//
// Report matching runs in two stages. First the Registros for the report date
// are found with the configured [MatchPolicy]: exact calendar day (optionally
// shifted by an offset, since some crews log the report the day after) and/or
// the id fragment. Their ids form the linkage key set, and dependent rows are
// kept only on exact id membership. When no Registro matches at all, dependent
// rows are matched on the id fragment directly (legacy sheets that predate the
// Registros tab).
package domain
