package pixelsort

import (
	"fmt"
	"strings"
)

// KeyFunction selects the scalar derived from a pixel, either to order pixels
// within a segment (sort key) or to decide segment membership (threshold key).
type KeyFunction uint8

const (
	// KeyDefault is the zero value. As a sort key it evaluates Luminance;
	// as a threshold key it inherits the sort key. See Config.Resolve.
	KeyDefault KeyFunction = iota

	// Luminance is the BT.709 luma: 0.2126 R + 0.7152 G + 0.0722 B.
	Luminance

	// RgbMax is max(R, G, B), the HSV value.
	RgbMax

	// Hue is the HSL hue normalized to [0, 1). Achromatic pixels have hue 0.
	Hue

	// Saturation is the HSL saturation. Achromatic pixels have saturation 0.
	Saturation

	// Red is the red channel.
	Red

	// Green is the green channel.
	Green

	// Blue is the blue channel.
	Blue

	// White evaluates max(R, G, B). Paired with UnderThreshold=false it
	// segments bright runs.
	White

	// Black evaluates max(R, G, B). Paired with UnderThreshold=true it
	// segments dark runs.
	Black

	keyFunctionCount
)

// BT.709 luma weights.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

var keyFunctionNames = [keyFunctionCount]string{
	KeyDefault: "default",
	Luminance:  "luminance",
	RgbMax:     "rgbmax",
	Hue:        "hue",
	Saturation: "saturation",
	Red:        "red",
	Green:      "green",
	Blue:       "blue",
	White:      "white",
	Black:      "black",
}

var keyFunctionAliases = map[string]KeyFunction{
	"":      KeyDefault,
	"luma":  Luminance,
	"max":   RgbMax,
	"value": RgbMax,
	"sat":   Saturation,
}

// EvaluateKey returns the key of p under f. It is pure and total over finite
// channel values. Hue and Saturation return exactly 0 for achromatic pixels.
func EvaluateKey(p Pixel, f KeyFunction) float64 {
	switch f {
	case KeyDefault, Luminance:
		return lumaR*p.R + lumaG*p.G + lumaB*p.B
	case RgbMax, White, Black:
		return max(p.R, p.G, p.B)
	case Hue:
		return hue(p.R, p.G, p.B)
	case Saturation:
		return saturation(p.R, p.G, p.B)
	case Red:
		return p.R
	case Green:
		return p.G
	case Blue:
		return p.B
	default:
		panic(fmt.Sprintf("pixelsort: EvaluateKey called with %v", f))
	}
}

// Key is shorthand for EvaluateKey(p, f).
func (f KeyFunction) Key(p Pixel) float64 {
	return EvaluateKey(p, f)
}

// hue returns the HSL hue of (r, g, b) in [0, 1).
func hue(r, g, b float64) float64 {
	hi := max(r, g, b)
	lo := min(r, g, b)
	if hi == lo {
		return 0
	}
	d := hi - lo

	var h float64
	switch hi {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h /= 6

	// 6 - epsilon can round up to a full turn.
	if h >= 1 {
		h = 0
	}
	return h
}

// saturation returns the HSL saturation of (r, g, b).
func saturation(r, g, b float64) float64 {
	hi := max(r, g, b)
	lo := min(r, g, b)
	if hi == lo {
		return 0
	}
	l := (hi + lo) / 2
	den := 1 - abs(2*l-1)
	if den == 0 {
		return 0
	}
	return (hi - lo) / den
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Valid reports whether f is one of the defined key functions.
func (f KeyFunction) Valid() bool {
	return f < keyFunctionCount
}

// String returns the canonical lower-case name of f.
func (f KeyFunction) String() string {
	if f.Valid() {
		return keyFunctionNames[f]
	}
	return fmt.Sprintf("KeyFunction(%d)", uint8(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f KeyFunction) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKeyFunction, uint8(f))
	}
	return []byte(keyFunctionNames[f]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so a KeyFunction can be
// bound with flag.TextVar.
func (f *KeyFunction) UnmarshalText(text []byte) error {
	k, err := ParseKeyFunction(string(text))
	if err != nil {
		return err
	}
	*f = k
	return nil
}

// ParseKeyFunction parses a key function name. Matching is case-insensitive
// and accepts the aliases "luma", "max", "value" and "sat".
func ParseKeyFunction(name string) (KeyFunction, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyFunctionAliases[s]; ok {
		return k, nil
	}
	for k, n := range keyFunctionNames {
		if n == s {
			return KeyFunction(k), nil
		}
	}
	return KeyDefault, fmt.Errorf("%w: %q", ErrUnknownKeyFunction, name)
}

// KeyFunctions returns every concrete key function, excluding KeyDefault.
func KeyFunctions() []KeyFunction {
	out := make([]KeyFunction, 0, keyFunctionCount-1)
	for k := Luminance; k < keyFunctionCount; k++ {
		out = append(out, k)
	}
	return out
}
