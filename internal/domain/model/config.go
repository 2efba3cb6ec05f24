package model

import (
	"fmt"
	"math"
	"strings"
)

// PaceWindow is an inclusive pace range in minutes per kilometre.
type PaceWindow struct {
	Min float64 `json:"min" koanf:"min"`
	Max float64 `json:"max" koanf:"max"`
}

// Validate rejects windows that could never match or hold non-finite bounds.
func (w PaceWindow) Validate() error {
	if !finite(w.Min) || !finite(w.Max) {
		return fmt.Errorf("pace window [%v, %v] must be finite: %w", w.Min, w.Max, ErrInvalidConfig)
	}
	if w.Min < 0 {
		return fmt.Errorf("pace window min %v is negative: %w", w.Min, ErrInvalidConfig)
	}
	if w.Min > w.Max {
		return fmt.Errorf("pace window min %v > max %v: %w", w.Min, w.Max, ErrInvalidConfig)
	}
	return nil
}

// Contains reports whether p is defined and lies inside the window.
func (w PaceWindow) Contains(p Pace) bool {
	v, ok := p.Value()
	return ok && v >= w.Min && v <= w.Max
}

// DistanceCategory is a nominal race distance with an inclusive tolerance window.
type DistanceCategory struct {
	Label string  `json:"label" koanf:"label"`
	MinKm float64 `json:"min_km" koanf:"min_km"`
	MaxKm float64 `json:"max_km" koanf:"max_km"`
}

// Validate rejects unnamed categories and inverted or non-finite windows.
func (c DistanceCategory) Validate() error {
	if strings.TrimSpace(c.Label) == "" {
		return fmt.Errorf("category label is empty: %w", ErrInvalidConfig)
	}
	if !finite(c.MinKm) || !finite(c.MaxKm) || c.MinKm < 0 {
		return fmt.Errorf("category %q window [%v, %v] is not a valid distance range: %w", c.Label, c.MinKm, c.MaxKm, ErrInvalidConfig)
	}
	if c.MinKm > c.MaxKm {
		return fmt.Errorf("category %q min_km %v > max_km %v: %w", c.Label, c.MinKm, c.MaxKm, ErrInvalidConfig)
	}
	return nil
}

// Contains reports whether km lies inside the category window.
func (c DistanceCategory) Contains(km float64) bool {
	return km >= c.MinKm && km <= c.MaxKm
}

// ValidateCategories validates each category and rejects duplicate labels.
func ValidateCategories(categories []DistanceCategory) error {
	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, dup := seen[c.Label]; dup {
			return fmt.Errorf("duplicate category label %q: %w", c.Label, ErrInvalidConfig)
		}
		seen[c.Label] = struct{}{}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
