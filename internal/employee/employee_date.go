package employee

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar day held as YYYY-MM-DD. DATE columns come back from the
// driver as time.Time and remote stores may answer with a full timestamp;
// both are cut down to the day.
type Date string

// ParseDate normalizes a YYYY-MM-DD or RFC 3339 value. Other input is kept
// as is so validation can report it.
func ParseDate(s string) Date {
	if s == "" {
		return ""
	}
	if _, err := time.Parse(DateLayout, s); err == nil {
		return Date(s)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Date(t.Format(DateLayout))
	}
	return Date(s)
}

func (d Date) String() string {
	return string(d)
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = Date(v.Format(DateLayout))
	case string:
		*d = ParseDate(v)
	case []byte:
		*d = ParseDate(string(v))
	default:
		return fmt.Errorf("employee: cannot scan %T into Date", src)
	}
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	return string(d), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = ParseDate(s)
	return nil
}
