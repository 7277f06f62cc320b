package repository

import (
	"fmt"
	"time"
)

// sqliteTimeFormats are the text layouts SQLite may hand back for a
// TIMESTAMP column: CURRENT_TIMESTAMP output first, then what the driver
// writes for time.Time values.
var sqliteTimeFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	time.RFC3339Nano,
}

// timestamp scans a created_at value regardless of whether the driver
// returns it as time.Time (lib/pq, sqlite with a declared type) or as text
// (sqlite RETURNING clauses).
type timestamp struct {
	t *time.Time
}

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.t = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case nil:
		*ts.t = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (ts timestamp) parse(s string) error {
	for _, layout := range sqliteTimeFormats {
		if parsed, err := time.Parse(layout, s); err == nil {
			*ts.t = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}
