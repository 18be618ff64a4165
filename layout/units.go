package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Page coordinates are PDF points. tdewolff/canvas works in millimetres, so
// renderers convert at the boundary.

// Unit is the unit a length was written in.
type Unit int

const (
	UnitPT Unit = iota // points, also used for bare numbers
	UnitMM
	UnitCM
	UnitIN
)

// Conversion constants between pt and mm.
const (
	PtToMm = 25.4 / 72
	MmToPt = 72 / 25.4
)

func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	default:
		return "pt"
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// PT converts the length to points.
func (l Length) PT() float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value * MmToPt
	case UnitCM:
		return l.Value * 10 * MmToPt
	case UnitIN:
		return l.Value * 72
	default:
		return l.Value
	}
}

// MM converts the length to millimetres.
func (l Length) MM() float64 { return l.PT() * PtToMm }

// ParseLength parses "12", "12pt", "4.2mm", "1cm" or "0.5in".
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("empty length")
	}
	unit := UnitPT
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			v = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q: %w", value, err)
	}
	return Length{Value: f, Unit: unit}, nil
}
