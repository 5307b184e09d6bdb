package domain

// Column indexes of the Registros tab.
const (
	regColID = iota
	regColDate
	regColPortDirectemar
	regColPortConcession
	regColOperationDay
	regColEquipmentTotal
	regColEquipmentInoperative
	regColEquipmentPumping
	regColClient
	regColCenter
	regColResponsible
	regColWeather
	regColDetails
	regColWeatherFiles
)

// Column indexes of the DMAs tab.
const (
	dmaColID = iota
	dmaColState
	dmaColNumber
	dmaColPlatform
	dmaColPlatformState
	dmaColCentral
	dmaColCentralState
	dmaColHoseA
	dmaColHoseB
	dmaColNozzle
	dmaColNozzleState
	dmaColStation
	dmaColPoint
	dmaColPumpingHours
	dmaColObservations
)

// Column indexes of the ROVs tab.
const (
	rovColID = iota
	rovColNumber
	rovColResponsible
	rovColState
	rovColLocation
	rovColObservations
)

// cellAt returns the cell at index i, or nil when the row is shorter.
func cellAt(row []any, i int) any {
	if i < len(row) {
		return row[i]
	}
	return nil
}

// dataRows drops the header row.
func dataRows(rows [][]any) [][]any {
	if len(rows) < 2 {
		return nil
	}
	return rows[1:]
}

// ParseRegistros maps the Registros tab (header included) to records.
func ParseRegistros(rows [][]any) []Registro {
	data := dataRows(rows)
	out := make([]Registro, 0, len(data))
	for _, row := range data {
		out = append(out, Registro{
			ID:                   ToText(cellAt(row, regColID)),
			Date:                 ToDate(cellAt(row, regColDate)),
			PortStatusDirectemar: ToText(cellAt(row, regColPortDirectemar)),
			PortStatusConcession: ToText(cellAt(row, regColPortConcession)),
			OperationDay:         ToInt(cellAt(row, regColOperationDay)),
			EquipmentTotal:       ToInt(cellAt(row, regColEquipmentTotal)),
			EquipmentInoperative: ToInt(cellAt(row, regColEquipmentInoperative)),
			EquipmentPumping:     ToInt(cellAt(row, regColEquipmentPumping)),
			Client:               ToText(cellAt(row, regColClient)),
			Center:               ToText(cellAt(row, regColCenter)),
			Responsible:          ToText(cellAt(row, regColResponsible)),
			WeatherConditions:    ToText(cellAt(row, regColWeather)),
			Details:              ToText(cellAt(row, regColDetails)),
			WeatherFiles:         ToText(cellAt(row, regColWeatherFiles)),
		})
	}
	return out
}

// ParseDMAs maps the DMAs tab (header included) to records. Negative pumping
// hours are treated as missing.
func ParseDMAs(rows [][]any) []DMA {
	data := dataRows(rows)
	out := make([]DMA, 0, len(data))
	for _, row := range data {
		hours := ToNumber(cellAt(row, dmaColPumpingHours))
		if hours < 0 {
			hours = 0
		}
		out = append(out, DMA{
			RegistroID:    ToText(cellAt(row, dmaColID)),
			State:         ToText(cellAt(row, dmaColState)),
			Number:        ToText(cellAt(row, dmaColNumber)),
			Platform:      ToText(cellAt(row, dmaColPlatform)),
			PlatformState: ToText(cellAt(row, dmaColPlatformState)),
			Central:       ToText(cellAt(row, dmaColCentral)),
			CentralState:  ToText(cellAt(row, dmaColCentralState)),
			HoseA:         ToText(cellAt(row, dmaColHoseA)),
			HoseB:         ToText(cellAt(row, dmaColHoseB)),
			Nozzle:        ToText(cellAt(row, dmaColNozzle)),
			NozzleState:   ToText(cellAt(row, dmaColNozzleState)),
			Station:       ToText(cellAt(row, dmaColStation)),
			Point:         ToText(cellAt(row, dmaColPoint)),
			PumpingHours:  hours,
			Observations:  ToText(cellAt(row, dmaColObservations)),
		})
	}
	return out
}

// ParseNaves maps the Naves tab (header included) to records.
func ParseNaves(rows [][]any) []Nave {
	data := dataRows(rows)
	out := make([]Nave, 0, len(data))
	for _, row := range data {
		out = append(out, Nave{
			RegistroID:   ToText(cellAt(row, 0)),
			Name:         ToText(cellAt(row, 1)),
			Observations: ToText(cellAt(row, 2)),
		})
	}
	return out
}

// ParseROVs maps the ROVs tab (header included) to records.
func ParseROVs(rows [][]any) []ROV {
	data := dataRows(rows)
	out := make([]ROV, 0, len(data))
	for _, row := range data {
		out = append(out, ROV{
			RegistroID:   ToText(cellAt(row, rovColID)),
			Number:       ToText(cellAt(row, rovColNumber)),
			Responsible:  ToText(cellAt(row, rovColResponsible)),
			State:        ToText(cellAt(row, rovColState)),
			Location:     ToText(cellAt(row, rovColLocation)),
			Observations: ToText(cellAt(row, rovColObservations)),
		})
	}
	return out
}
