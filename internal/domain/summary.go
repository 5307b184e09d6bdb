package domain

// Summary holds the headline figures of a report.
type Summary struct {
	Critical        int     `json:"critical"`    // DMAs Inoperativo
	Warning         int     `json:"warning"`     // DMAs neither pumping nor inoperative
	Operational     int     `json:"operational"` // DMAs Bombeando
	Total           int     `json:"total"`
	PumpingHours    float64 `json:"pumpingHours"`
	ROVsOperational int     `json:"rovsOperational"`
	ROVsTotal       int     `json:"rovsTotal"`
	Vessels         int     `json:"vessels"`
}

// Summarize counts equipment by status over the reconciled rows.
func Summarize(rec Reconciled) Summary {
	s := Summary{
		Total:     len(rec.DMAs),
		ROVsTotal: len(rec.ROVs),
		Vessels:   len(rec.Naves),
	}
	for _, d := range rec.DMAs {
		switch d.Status() {
		case StatusInoperative:
			s.Critical++
		case StatusPumping:
			s.Operational++
		default:
			s.Warning++
		}
		s.PumpingHours += d.PumpingHours
	}
	for _, r := range rec.ROVs {
		if r.Operational() {
			s.ROVsOperational++
		}
	}
	return s
}
