package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// serialEpoch is day zero of the spreadsheet date-serial encoding.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// maxSerial is 9999-12-31; larger serials are not dates.
const maxSerial = 2958465

// dateLayouts are the string encodings accepted by ToDate, tried in order.
// Strings without a zone are read as UTC. Slash dates are day-first, as the
// workbook is kept in the es-CL locale.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"2-1-2006",
}

// ToText stringifies and trims a cell. Absent cells become "".
func ToText(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return ToText(float64(v))
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return strings.TrimSpace(v.String())
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.UTC().Format(time.RFC3339)
	default:
		return ""
	}
}

// ToNumber parses a cell as a decimal, accepting a comma as decimal separator.
// Anything unparseable, NaN or infinite becomes 0.
func ToNumber(cell any) float64 {
	var v float64
	switch c := cell.(type) {
	case float64:
		v = c
	case float32:
		v = float64(c)
	case int:
		v = float64(c)
	case int64:
		v = float64(c)
	case json.Number:
		v = parseDecimal(c.String())
	case string:
		v = parseDecimal(c)
	default:
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ToInt is ToNumber truncated toward zero, for counter columns.
func ToInt(cell any) int {
	v := ToNumber(cell)
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0
	}
	return int(v)
}

func parseDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ToDate decodes a date cell: a formatted date string, or a positive
// date-serial number. Returns nil when the cell is neither.
func ToDate(cell any) *time.Time {
	switch v := cell.(type) {
	case string:
		return parseDateString(v)
	case float64:
		return fromSerial(v)
	case float32:
		return fromSerial(float64(v))
	case int:
		return fromSerial(float64(v))
	case int64:
		return fromSerial(float64(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil
		}
		return fromSerial(f)
	case time.Time:
		if v.IsZero() {
			return nil
		}
		t := v.UTC()
		return &t
	default:
		return nil
	}
}

func parseDateString(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// fromSerial converts a day count since serialEpoch; the fractional part is
// the time of day, rounded to the millisecond.
func fromSerial(days float64) *time.Time {
	if math.IsNaN(days) || math.IsInf(days, 0) || days <= 0 || days > maxSerial {
		return nil
	}
	whole := math.Floor(days)
	ms := math.Round((days - whole) * float64(24*time.Hour/time.Millisecond))
	t := serialEpoch.AddDate(0, 0, int(whole)).Add(time.Duration(ms) * time.Millisecond)
	return &t
}

// ToSerial encodes t as a date-serial, the inverse of the numeric ToDate path.
func ToSerial(t time.Time) float64 {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	whole := (midnight.Unix() - serialEpoch.Unix()) / 86400
	return float64(whole) + float64(t.Sub(midnight))/float64(24*time.Hour)
}
