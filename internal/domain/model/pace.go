package model

import (
	"encoding/json"
	"math"
)

// Pace is a minutes-per-kilometre value that may be undefined.
// The zero value is undefined, so an unset Pace never reads as the fastest pace.
type Pace struct {
	minPerKm float64
	defined  bool
}

// PaceOf returns a defined pace. Non-finite input yields an undefined pace.
func PaceOf(minPerKm float64) Pace {
	if math.IsNaN(minPerKm) || math.IsInf(minPerKm, 0) {
		return Pace{}
	}
	return Pace{minPerKm: minPerKm, defined: true}
}

// UndefinedPace returns the undefined pace.
func UndefinedPace() Pace { return Pace{} }

// Defined reports whether the pace carries a value.
func (p Pace) Defined() bool { return p.defined }

// Value returns the pace and whether it is defined.
func (p Pace) Value() (float64, bool) { return p.minPerKm, p.defined }

// Faster reports whether p is strictly faster than o.
// An undefined pace is never faster, and anything defined is faster than undefined.
func (p Pace) Faster(o Pace) bool {
	if !p.defined {
		return false
	}
	if !o.defined {
		return true
	}
	return p.minPerKm < o.minPerKm
}

// MarshalJSON encodes an undefined pace as null.
func (p Pace) MarshalJSON() ([]byte, error) {
	if !p.defined {
		return []byte("null"), nil
	}
	return json.Marshal(p.minPerKm)
}

// UnmarshalJSON decodes null into an undefined pace.
func (p *Pace) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Pace{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = PaceOf(v)
	return nil
}
