// Package band classifies dBFS loudness values into four ordered bands.
package band

// Band is one of the four loudness categories, ordered from quietest to
// loudest.
type Band int

const (
	Quiet Band = iota
	Moderate
	Loud
	VeryLoud
)

// All lists the bands in ascending loudness order.
var All = []Band{Quiet, Moderate, Loud, VeryLoud}

func (b Band) String() string {
	switch b {
	case Quiet:
		return "Quiet"
	case Moderate:
		return "Moderate"
	case Loud:
		return "Loud"
	case VeryLoud:
		return "Very Loud"
	}
	return "Unknown"
}

// Slug returns the wallpaper folder name for the band.
func (b Band) Slug() string {
	switch b {
	case Quiet:
		return "quiet"
	case Moderate:
		return "moderate"
	case Loud:
		return "loud"
	case VeryLoud:
		return "very_loud"
	}
	return "unknown"
}

// Color returns the ANSI escape for the band's display color.
func (b Band) Color() string {
	switch b {
	case Quiet:
		return "\x1b[32m" // green
	case Moderate:
		return "\x1b[33m" // yellow
	case Loud:
		return "\x1b[35m" // magenta
	case VeryLoud:
		return "\x1b[31m" // red
	}
	return ""
}

// Thresholds holds the dBFS cutoffs partitioning the decibel axis into the
// four bands. Each cutoff is inclusive for its band.
type Thresholds struct {
	Quiet    float64
	Moderate float64
	Loud     float64
}

// DefaultThresholds returns the standard cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Quiet:    -40.0,
		Moderate: -20.0,
		Loud:     -8.0,
	}
}

// Valid reports whether the cutoffs are strictly ascending.
func (t Thresholds) Valid() bool {
	return t.Quiet < t.Moderate && t.Moderate < t.Loud
}

// Classify maps a dBFS value to its band. Every real value (including the
// infinities) lands in exactly one band.
func (t Thresholds) Classify(db float64) Band {
	switch {
	case db <= t.Quiet:
		return Quiet
	case db <= t.Moderate:
		return Moderate
	case db <= t.Loud:
		return Loud
	default:
		return VeryLoud
	}
}
