package pixelsort

import "errors"

// Precondition violations. The sorting transform itself never fails on
// well-formed input; these are returned when a caller breaks a contract.
var (
	// ErrInvalidBufferLength is returned when a scratch buffer is shorter than
	// the line being sorted, or when an output line differs in length from
	// its input line.
	ErrInvalidBufferLength = errors.New("pixelsort: invalid buffer length")

	// ErrInvalidThreshold is returned when Config.Threshold is outside [0, 1]
	// or is NaN.
	ErrInvalidThreshold = errors.New("pixelsort: threshold out of range")

	// ErrUnknownKeyFunction is returned for key function values or names
	// outside the closed set.
	ErrUnknownKeyFunction = errors.New("pixelsort: unknown key function")

	// ErrUnknownDirection is returned for direction values or names other
	// than horizontal and vertical.
	ErrUnknownDirection = errors.New("pixelsort: unknown direction")

	// ErrInvalidShift is returned when Config.MaxShift is negative.
	ErrInvalidShift = errors.New("pixelsort: negative max shift")

	// ErrInvalidChannels is returned by the legacy byte sorter when the
	// channel count is outside [1, 4] or does not divide the row length.
	ErrInvalidChannels = errors.New("pixelsort: invalid channel count")

	// ErrNilRaster is returned when a nil raster or image is passed to a
	// host-level entry point.
	ErrNilRaster = errors.New("pixelsort: nil raster")
)
