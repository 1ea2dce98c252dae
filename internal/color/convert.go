package color

// U8ToUnit maps a uint8 component [0,255] to float64 [0,1].
func U8ToUnit(v uint8) float64 {
	return float64(v) / maxU8
}

// U16ToUnit maps a uint16 component [0,65535] to float64 [0,1].
func U16ToUnit(v uint16) float64 {
	return float64(v) / maxU16
}

// UnitToU8 clamps v to [0,1] and maps it to uint8 with rounding.
func UnitToU8(v float64) uint8 {
	if !(v > 0) { // also catches NaN
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*maxU8 + 0.5)
}

// UnitToU16 clamps v to [0,1] and maps it to uint16 with rounding.
func UnitToU16(v float64) uint16 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 65535
	}
	return uint16(v*maxU16 + 0.5)
}
