package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// IntMap is a jsonb map of string keys to integer counts (point breakdowns,
// commendation tallies, pillar metrics).
type IntMap map[string]int64

// Scan implements the sql.Scanner interface
func (m *IntMap) Scan(src interface{}) error {
	if src == nil {
		*m = IntMap{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("IntMap: cannot scan type %T", src)
	}
}

// Value implements the driver.Valuer interface
func (m IntMap) Value() (driver.Value, error) {
	if m == nil {
		m = IntMap{}
	}
	return json.Marshal(m)
}

// StringList is a jsonb array of strings (special permissions, badges).
type StringList []string

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("StringList: cannot scan type %T", src)
	}
}

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}
