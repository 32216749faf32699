package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Label is the kind of a punch. The four structural labels take part in
// sequencing and time accounting; Other is a free-form side entry.
type Label int

const (
	LabelUnset Label = iota
	FirstIn
	FirstOut
	SecondIn
	SecondOut
	Other
)

// Cycle is the canonical order of structural labels within a day.
var Cycle = [4]Label{FirstIn, FirstOut, SecondIn, SecondOut}

var labelNames = map[Label]string{
	FirstIn:   "Primeira Entrada",
	FirstOut:  "Primeira Saída",
	SecondIn:  "Segunda Entrada",
	SecondOut: "Segunda Saída",
	Other:     "Outro",
}

var labelAliases = map[string]Label{
	"first_in":   FirstIn,
	"first_out":  FirstOut,
	"second_in":  SecondIn,
	"second_out": SecondOut,
	"other":      Other,
}

func (l Label) String() string {
	if name, ok := labelNames[l]; ok {
		return name
	}
	return ""
}

// ParseLabel maps a display name or identifier back to a Label.
// Unknown values are treated as free-form entries.
func ParseLabel(s string) Label {
	s = strings.TrimSpace(s)
	if s == "" {
		return LabelUnset
	}
	for l, name := range labelNames {
		if strings.EqualFold(name, s) {
			return l
		}
	}
	if l, ok := labelAliases[strings.ToLower(s)]; ok {
		return l
	}
	return Other
}

func (l Label) IsStructural() bool {
	return l >= FirstIn && l <= SecondOut
}

func (l Label) IsEntry() bool {
	return l == FirstIn || l == SecondIn
}

func (l Label) IsExit() bool {
	return l == FirstOut || l == SecondOut
}

// Next returns the label expected after l. Anything that is not a
// structural label restarts the cycle.
func (l Label) Next() Label {
	switch l {
	case FirstIn:
		return FirstOut
	case FirstOut:
		return SecondIn
	case SecondIn:
		return SecondOut
	default:
		return FirstIn
	}
}

func (l Label) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Label) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid label: %w", err)
	}
	*l = ParseLabel(s)
	return nil
}

func (l Label) Value() (driver.Value, error) {
	return l.String(), nil
}

func (l *Label) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*l = ParseLabel(v)
	case []byte:
		*l = ParseLabel(string(v))
	case nil:
		*l = LabelUnset
	default:
		return fmt.Errorf("cannot scan %T into Label", src)
	}
	return nil
}
