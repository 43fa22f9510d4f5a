package reporte

import "time"

// InicioDelDia returns 00:00:00 of t's day in t's location.
func InicioDelDia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FinDelDia returns the last nanosecond of t's day, so a "hasta" date
// includes the whole day.
func FinDelDia(t time.Time) time.Time {
	return InicioDelDia(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Hoy returns the bounds of the current day.
func Hoy(now time.Time) (time.Time, time.Time) {
	return InicioDelDia(now), FinDelDia(now)
}

// ParseFecha parses a YYYY-MM-DD date in loc. Empty input yields nil.
func ParseFecha(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
