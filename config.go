package pixelsort

import (
	"fmt"
	"math"
	"strings"
)

// Direction selects the axis along which an image is cut into lines.
type Direction uint8

const (
	// Horizontal sorts rows.
	Horizontal Direction = iota
	// Vertical sorts columns.
	Vertical
)

// String returns "horizontal" or "vertical".
func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if d > Vertical {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDirection, uint8(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDirection parses "horizontal"/"h"/"rows" or "vertical"/"v"/"columns".
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "horizontal", "h", "row", "rows":
		return Horizontal, nil
	case "vertical", "v", "column", "columns":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("%w: %q", ErrUnknownDirection, name)
}

// Config describes one sorting run. The zero value is valid: it sorts rows by
// luminance, and with Threshold 0 every pixel qualifies.
//
// A Config must not change while an image is being processed.
type Config struct {
	// SortKey orders pixels within a segment. KeyDefault means Luminance.
	SortKey KeyFunction

	// ThresholdKey decides segment membership. KeyDefault means SortKey.
	ThresholdKey KeyFunction

	// Threshold is compared against the threshold key, in [0, 1].
	Threshold float64

	// UnderThreshold inverts the membership test: pixels whose threshold key
	// is below Threshold form segments.
	UnderThreshold bool

	// Reverse sorts segments in descending key order.
	Reverse bool

	// Direction selects rows or columns. It is only consulted by the host
	// layer; SortLine ignores it.
	Direction Direction

	// MaxShift, when positive, rotates each line left by a pseudorandom
	// offset in [0, MaxShift] before segmentation, capped at the line
	// length minus one.
	MaxShift int

	// Seed makes the per-line shift reproducible.
	Seed uint64
}

// Resolve returns a copy of c with both key functions made concrete.
func (c Config) Resolve() Config {
	if c.SortKey == KeyDefault {
		c.SortKey = Luminance
	}
	if c.ThresholdKey == KeyDefault {
		c.ThresholdKey = c.SortKey
	}
	return c
}

// Validate reports the first precondition c violates, or nil.
func (c Config) Validate() error {
	if !c.SortKey.Valid() {
		return fmt.Errorf("sort key: %w: %d", ErrUnknownKeyFunction, uint8(c.SortKey))
	}
	if !c.ThresholdKey.Valid() {
		return fmt.Errorf("threshold key: %w: %d", ErrUnknownKeyFunction, uint8(c.ThresholdKey))
	}
	if math.IsNaN(c.Threshold) || c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, c.Threshold)
	}
	if c.Direction > Vertical {
		return fmt.Errorf("%w: %d", ErrUnknownDirection, uint8(c.Direction))
	}
	if c.MaxShift < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidShift, c.MaxShift)
	}
	return nil
}

// qualifies reports whether p belongs to a segment under c.
// c must be resolved.
func (c *Config) qualifies(p Pixel) bool {
	return c.UnderThreshold != (EvaluateKey(p, c.ThresholdKey) >= c.Threshold)
}
