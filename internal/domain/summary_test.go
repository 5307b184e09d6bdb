package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	rec := Reconciled{
		DMAs: []DMA{
			{State: "Bombeando", PumpingHours: 6.5},
			{State: "BOMBEANDO", PumpingHours: 2},
			{State: "Inoperativo"},
			{State: "Standby", PumpingHours: 0.5},
			{State: ""},
		},
		ROVs:  []ROV{{State: "Operativo"}, {State: "Falla"}},
		Naves: []Nave{{Name: "Don Pancho"}},
	}

	assert.Equal(t, Summary{
		Critical:        1,
		Warning:         2,
		Operational:     2,
		Total:           5,
		PumpingHours:    9,
		ROVsOperational: 1,
		ROVsTotal:       2,
		Vessels:         1,
	}, Summarize(rec))
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(Reconciled{}))
}

func TestNewReport(t *testing.T) {
	now := time.Date(2025, 8, 4, 14, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(now))
	t.Cleanup(func() { SetClock(nil) })

	rec := Reconcile(sampleSheets(), mustDate(t, "2025-08-04"), ReconcileOptions{})
	report := NewReport(mustDate(t, "2025-08-04"), rec)

	assert.Equal(t, "2025-08-04", report.Date)
	assert.Equal(t, now, report.LastUpdate)
	assert.Equal(t, MatchExactDate, report.MatchedBy)
	assert.Equal(t, 3, report.Summary.Total)
	assert.Equal(t, 1, report.Summary.Critical)
	assert.Equal(t, 1, report.Summary.Operational)
	assert.Equal(t, 1, report.Summary.Warning)
	assert.Equal(t, 6.5, report.Summary.PumpingHours)
	assert.Equal(t, 1, report.Summary.ROVsOperational)
	assert.Nil(t, report.FailedSheets)
}
