package source

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// gpsEpochUnix is 1980-01-06T00:00:00Z as a Unix timestamp.
const gpsEpochUnix = 315964800

// pickStr returns the first non-empty string among keys.
func pickStr(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

// pickFloat returns the first numeric value among keys. Numeric strings are
// accepted; null, NaN and anything else is treated as absent.
func pickFloat(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		var v float64
		switch t := m[k].(type) {
		case float64:
			v = t
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
			if err != nil {
				continue
			}
			v = f
		default:
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		return v, true
	}
	return 0, false
}

// optional rounds the value at key to dp decimals, nil when absent.
func optional(m map[string]any, key string, dp int) *float64 {
	v, ok := pickFloat(m, key)
	if !ok {
		return nil
	}
	if dp >= 0 {
		v = round(v, dp)
	}
	return &v
}

func round(v float64, dp int) float64 {
	p := math.Pow(10, float64(dp))
	return math.Round(v*p) / p
}

// gpsDate converts GPS seconds to a UTC calendar date. Leap seconds are
// ignored, which never shifts a date by more than a few seconds around
// midnight.
func gpsDate(gps float64) string {
	sec, frac := math.Modf(gps + gpsEpochUnix)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC().Format("2006-01-02")
}

// massesFromChirp solves Mc = (m1 m2)^(3/5) / (m1+m2)^(1/5) with q = m2/m1.
func massesFromChirp(mc, q float64) (m1, m2 float64) {
	m1 = mc * math.Pow(1+q, 1.0/5) * math.Pow(q, -3.0/5)
	return m1, q * m1
}

func defaultDur(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}
