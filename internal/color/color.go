// Package color converts between integer channel encodings and the unit
// float range used by pixelsort.
package color

// Channel scales.
const (
	maxU8  = 255.0
	maxU16 = 65535.0
)
