package xlsx

import (
	"fmt"

	"github.com/couchcryptid/ops-report-service/internal/domain"
)

var (
	registrosHeader = []any{"ID Registro", "Fecha", "Estado Puerto Directemar", "Estado Puerto Concesión", "Día Operación", "N° Equipos", "N° Inoperativos", "N° Bombeando", "Cliente", "Centro", "Responsable", "Condiciones Clima", "Detalles", "Archivos Clima"}
	dmasHeader      = []any{"ID Registro", "Estado Equipo", "DMA", "Plataforma", "Estado Plataforma", "Central", "Estado Central", "Manga", "Manguera", "Tobera", "Estado Tobera", "Estación", "Punto", "Horas Bombeo", "Observaciones"}
	navesHeader     = []any{"ID Registro", "Nave", "Observaciones"}
	rovsHeader      = []any{"ID Registro", "ROV", "Responsable", "Estado", "Ubicación", "Observaciones"}
)

// MockTabs returns a workbook with one daily record per day for the given
// number of days ending at date. Each day has three DMAs (one per status),
// a vessel and two ROVs. Dates are stored as serials.
func MockTabs(date domain.ReportDate, days int) []Tab {
	if days < 1 {
		days = 1
	}
	registros := [][]any{registrosHeader}
	dmas := [][]any{dmasHeader}
	naves := [][]any{navesHeader}
	rovs := [][]any{rovsHeader}

	for i := days - 1; i >= 0; i-- {
		day := date.Day().AddDate(0, 0, -i)
		id := fmt.Sprintf("%s-01", day.Format("20060102"))
		registros = append(registros, []any{
			id, domain.ToSerial(day), "Abierto", "Abierto", float64(days - i), 3.0, 1.0, 1.0,
			"Salmones Sur", "Aracena 19", "J. Pérez", "Viento NW 15 kn", "Sin novedad", "",
		})
		dmas = append(dmas,
			[]any{id, "Bombeando", 1.0, "P-1", "OK", "C-1", "OK", "M-1", "MG-1", "T-1", "OK", "Norte", "1", 6.5, ""},
			[]any{id, "Inoperativo", 2.0, "P-2", "Falla", "C-1", "OK", "M-2", "MG-2", "T-2", "OK", "Norte", "2", nil, "Bomba sin presión"},
			[]any{id, "Standby", 3.0, "P-3", "OK", "C-2", "OK", "M-3", "MG-3", "T-3", "OK", "Sur", "3", 1.5, ""},
		)
		naves = append(naves, []any{id, "Don Pancho", "Descarga de alimento"})
		rovs = append(rovs,
			[]any{id, 1.0, "L. Soto", "Operativo", "Jaula 3", ""},
			[]any{id, 2.0, "L. Soto", "En mantención", "Muelle", "Cambio de cámara"},
		)
	}

	return []Tab{
		{Name: domain.SheetRegistros.Name, Rows: registros},
		{Name: domain.SheetDMAs.Name, Rows: dmas},
		{Name: domain.SheetNaves.Name, Rows: naves},
		{Name: domain.SheetROVs.Name, Rows: rovs},
	}
}
