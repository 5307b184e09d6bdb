package domain

import (
	"context"
	"strings"
	"time"
)

// TabularSource is a read-only spreadsheet: it returns the rows of an A1
// range (e.g. "Registros!A:N") as untyped cells. Cells are nil, string or
// float64; trailing empty cells may be omitted from a row.
type TabularSource interface {
	GetRange(ctx context.Context, sheetRange string) ([][]any, error)
}

// Sheet describes one tab of the operations workbook.
type Sheet struct {
	Name     string
	Columns  string // A1 column span, e.g. "A:N"
	ColCount int
}

// Range returns the A1 range for the tab, e.g. "Registros!A:N".
func (s Sheet) Range() string {
	return s.Name + "!" + s.Columns
}

var (
	SheetRegistros = Sheet{Name: "Registros", Columns: "A:N", ColCount: 14}
	SheetDMAs      = Sheet{Name: "DMAs", Columns: "A:O", ColCount: 15}
	SheetNaves     = Sheet{Name: "Naves", Columns: "A:C", ColCount: 3}
	SheetROVs      = Sheet{Name: "ROVs", Columns: "A:F", ColCount: 6}
)

// Sheets lists the tabs in fetch order.
var Sheets = []Sheet{SheetRegistros, SheetDMAs, SheetNaves, SheetROVs}

// Registro is the daily summary record anchoring a report date to a linkage id.
type Registro struct {
	ID                   string     `json:"id_registro"`
	Date                 *time.Time `json:"fecha"`
	PortStatusDirectemar string     `json:"estado_puerto_directemar"`
	PortStatusConcession string     `json:"estado_puerto_concesion"`
	OperationDay         int        `json:"dia_operacion"`
	EquipmentTotal       int        `json:"num_equipos"`
	EquipmentInoperative int        `json:"num_equipos_inoperativos"`
	EquipmentPumping     int        `json:"num_equipos_bombeando"`
	Client               string     `json:"cliente"`
	Center               string     `json:"centro"`
	Responsible          string     `json:"responsable"`
	WeatherConditions    string     `json:"condiciones_clima"`
	Details              string     `json:"detalles"`
	WeatherFiles         string     `json:"archivos_clima"`
}

// DMA is a pump unit line of a daily record.
type DMA struct {
	RegistroID    string  `json:"id_registro"`
	State         string  `json:"estado_equipo"`
	Number        string  `json:"dma_numero"`
	Platform      string  `json:"plataforma"`
	PlatformState string  `json:"plataforma_estado"`
	Central       string  `json:"central"`
	CentralState  string  `json:"central_estado"`
	HoseA         string  `json:"manga"`
	HoseB         string  `json:"manguera"`
	Nozzle        string  `json:"tobera"`
	NozzleState   string  `json:"tobera_estado"`
	Station       string  `json:"estacion"`
	Point         string  `json:"punto"`
	PumpingHours  float64 `json:"horas_bombeo"`
	Observations  string  `json:"observaciones"`
}

// Nave is a vessel line of a daily record.
type Nave struct {
	RegistroID   string `json:"id_registro"`
	Name         string `json:"nave_nombre"`
	Observations string `json:"nave_observaciones"`
}

// ROV is a remote-operated vehicle line of a daily record.
type ROV struct {
	RegistroID   string `json:"id_registro"`
	Number       string `json:"rov_numero"`
	Responsible  string `json:"responsable"`
	State        string `json:"estado"`
	Location     string `json:"ubicacion"`
	Observations string `json:"observaciones"`
}

func (r Registro) LinkageID() string { return r.ID }
func (d DMA) LinkageID() string      { return d.RegistroID }
func (n Nave) LinkageID() string     { return n.RegistroID }
func (r ROV) LinkageID() string      { return r.RegistroID }

// EquipmentStatus classifies a DMA by its free-text state.
type EquipmentStatus string

const (
	StatusPumping     EquipmentStatus = "pumping"
	StatusInoperative EquipmentStatus = "inoperative"
	StatusStandby     EquipmentStatus = "standby"
)

// Status maps "Bombeando" to pumping, "Inoperativo" to inoperative and
// anything else to standby, ignoring case.
func (d DMA) Status() EquipmentStatus {
	switch strings.ToUpper(strings.TrimSpace(d.State)) {
	case "BOMBEANDO":
		return StatusPumping
	case "INOPERATIVO":
		return StatusInoperative
	default:
		return StatusStandby
	}
}

// Operational reports whether the ROV state is "Operativo".
func (r ROV) Operational() bool {
	return strings.EqualFold(strings.TrimSpace(r.State), "Operativo")
}

// Report is the combined result for one report date.
type Report struct {
	Date         string        `json:"date"`
	Registros    []Registro    `json:"registros"`
	DMAs         []DMA         `json:"dmas"`
	Naves        []Nave        `json:"naves"`
	ROVs         []ROV         `json:"rovs"`
	Summary      Summary       `json:"summary"`
	MatchedBy    MatchStrategy `json:"matchedBy"`
	FailedSheets []string      `json:"failedSheets,omitempty"`
	LastUpdate   time.Time     `json:"lastUpdate"`
}

// NewReport assembles a report from reconciled collections and stamps it
// with the current time.
func NewReport(date ReportDate, rec Reconciled) Report {
	return Report{
		Date:         date.String(),
		Registros:    rec.Registros,
		DMAs:         rec.DMAs,
		Naves:        rec.Naves,
		ROVs:         rec.ROVs,
		Summary:      Summarize(rec),
		MatchedBy:    rec.MatchedBy,
		FailedSheets: rec.FailedSheets,
		LastUpdate:   clock.Now().UTC(),
	}
}
