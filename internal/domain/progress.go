package domain

import "time"

// Progress is a continue-watching marker.
// Fraction is clamped to [0, 1] by Offset.
type Progress struct {
	Fraction  float64   // Portion already watched
	UpdatedAt time.Time // When the marker was last written
}

// Offset converts the fraction into a position within total
func (p Progress) Offset(total time.Duration) time.Duration {
	f := p.Fraction
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return total
	}
	return time.Duration(float64(total) * f).Truncate(time.Second)
}

// Percent returns the watched portion as a whole percentage
func (p Progress) Percent() int {
	switch {
	case p.Fraction <= 0:
		return 0
	case p.Fraction >= 1:
		return 100
	}
	return int(p.Fraction * 100)
}
