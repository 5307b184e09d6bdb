package pipeline_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/ops-report-service/internal/domain"
)

// mockWorkbook returns the tabs of a small workbook covering two days. The
// 2025-08-04 Registro is dated with a serial, the 2025-08-05 one with a string.
func mockWorkbook() map[string][][]any {
	return map[string][][]any{
		domain.SheetRegistros.Range(): {
			{"ID Registro", "Fecha", "Estado Puerto Directemar", "Estado Puerto Concesión", "Día Operación", "N° Equipos", "N° Inoperativos", "N° Bombeando", "Cliente", "Centro", "Responsable", "Condiciones Clima", "Detalles", "Archivos Clima"},
			{"20250804-01", 45873.0, "Abierto", "Abierto", 12.0, 3.0, 1.0, 1.0, "Salmones Sur", "Aracena 19", "J. Pérez", "Viento NW 20 kn", "Sin novedad", ""},
			{"20250805-01", "05/08/2025", "Cerrado", "Abierto", 13.0, 2.0, 0.0, 2.0, "Salmones Sur", "Aracena 19", "J. Pérez", "Lluvia", "", ""},
		},
		domain.SheetDMAs.Range(): {
			{"ID Registro", "Estado Equipo", "DMA", "Plataforma", "Estado Plataforma", "Central", "Estado Central", "Manga", "Manguera", "Tobera", "Estado Tobera", "Estación", "Punto", "Horas Bombeo", "Observaciones"},
			{"20250804-01", "Bombeando", 1.0, "P-1", "OK", "C-1", "OK", "M-1", "MG-1", "T-1", "OK", "Norte", "1", 6.5, ""},
			{"20250804-01", "Inoperativo", 2.0, "P-2", "Falla", "C-1", "OK", "M-2", "MG-2", "T-2", "OK", "Norte", "2", "", "Bomba sin presión"},
			{"20250804-01", "Standby", 3.0, "P-3", "OK", "C-2", "OK", "M-3", "MG-3", "T-3", "OK", "Sur", "3", "1,5"},
			{"20250805-01", "Bombeando", 1.0, "P-1", "OK", "C-1", "OK", "M-1", "MG-1", "T-1", "OK", "Norte", "1", 8.0, ""},
		},
		domain.SheetNaves.Range(): {
			{"ID Registro", "Nave", "Observaciones"},
			{"20250804-01", "Don Pancho", "Descarga de alimento"},
			{"20250805-01", "Doña Rosa", ""},
		},
		domain.SheetROVs.Range(): {
			{"ID Registro", "ROV", "Responsable", "Estado", "Ubicación", "Observaciones"},
			{"20250804-01", 1.0, "L. Soto", "Operativo", "Jaula 3", ""},
			{"20250804-01", 2.0, "L. Soto", "En mantención", "Muelle", "Cambio de cámara"},
		},
	}
}

// mockSource serves ranges from a map. Ranges listed in fail return an error.
type mockSource struct {
	tabs  map[string][][]any
	fail  map[string]error
	calls atomic.Int64
}

func newMockSource() *mockSource {
	return &mockSource{tabs: mockWorkbook(), fail: map[string]error{}}
}

func (m *mockSource) GetRange(_ context.Context, sheetRange string) ([][]any, error) {
	m.calls.Add(1)
	if err, ok := m.fail[sheetRange]; ok {
		return nil, err
	}
	return m.tabs[sheetRange], nil
}

// barrierSource holds every call until all four tabs have been requested, so
// it only succeeds when the fetches run concurrently.
type barrierSource struct {
	mu      sync.Mutex
	arrived int
	all     chan struct{}
	tabs    map[string][][]any
}

func newBarrierSource() *barrierSource {
	return &barrierSource{all: make(chan struct{}), tabs: mockWorkbook()}
}

func (b *barrierSource) GetRange(ctx context.Context, sheetRange string) ([][]any, error) {
	b.mu.Lock()
	b.arrived++
	if b.arrived == len(domain.Sheets) {
		close(b.all)
	}
	b.mu.Unlock()

	select {
	case <-b.all:
		return b.tabs[sheetRange], nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(2 * time.Second):
		return nil, errors.New("fetches did not overlap")
	}
}

type mockPublisher struct {
	mu        sync.Mutex
	published []domain.Report
	err       error
}

func (m *mockPublisher) Publish(_ context.Context, report domain.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, report)
	return nil
}
