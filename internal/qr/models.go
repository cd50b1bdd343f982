// Package qr implements the QR code generation pipeline: input validation,
// capacity checking per error-correction level, matrix encoding, and
// rendering into raster, vector, and document formats.
package qr

import (
	"fmt"
)

// Size is a closed set of supported output size classes.
type Size string

const (
	SizeSmall  Size = "small"  // 150x150 pixels
	SizeMedium Size = "medium" // 300x300 pixels
	SizeLarge  Size = "large"  // 600x600 pixels
)

// Pixels returns the square pixel dimension for the size class.
func (s Size) Pixels() int {
	switch s {
	case SizeSmall:
		return 150
	case SizeLarge:
		return 600
	default:
		return 300
	}
}

// ParseSize validates and converts a size string.
func ParseSize(s string) (Size, error) {
	switch Size(s) {
	case SizeSmall, SizeMedium, SizeLarge:
		return Size(s), nil
	}
	return "", fmt.Errorf("invalid size %q, valid sizes: small, medium, large", s)
}

// Format is a closed set of supported output formats.
type Format string

const (
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatJPEG Format = "jpeg"
	FormatPDF  Format = "pdf"
)

// ContentType returns the HTTP media type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	case FormatJPEG:
		return "image/jpeg"
	default:
		return "image/png"
	}
}

// ParseFormat validates and converts a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPNG, FormatSVG, FormatJPEG, FormatPDF:
		return Format(s), nil
	}
	return "", fmt.Errorf("invalid format %q, valid formats: png, svg, jpeg, pdf", s)
}

// ECCLevel is a QR error-correction level, trading data capacity for
// resilience to damage.
type ECCLevel string

const (
	ECCLow      ECCLevel = "L" // ~7% correction capacity
	ECCMedium   ECCLevel = "M" // ~15% correction capacity
	ECCQuartile ECCLevel = "Q" // ~25% correction capacity
	ECCHigh     ECCLevel = "H" // ~30% correction capacity
)

// ParseECCLevel validates and converts an error-correction level string.
func ParseECCLevel(s string) (ECCLevel, error) {
	switch ECCLevel(s) {
	case ECCLow, ECCMedium, ECCQuartile, ECCHigh:
		return ECCLevel(s), nil
	}
	return "", fmt.Errorf("invalid error correction %q, valid levels: L, M, Q, H", s)
}

// Encoding selects how the generated bytes are delivered.
type Encoding string

const (
	EncodingBinary Encoding = "binary"
	EncodingBase64 Encoding = "base64"
)

// ParseEncoding validates and converts an output encoding string.
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(s) {
	case EncodingBinary, EncodingBase64:
		return Encoding(s), nil
	}
	return "", fmt.Errorf("invalid output format %q, valid values: binary, base64", s)
}

// capacityTable maps each error-correction level to the maximum payload in
// bytes (version 40 symbols, binary mode). Capacity decreases monotonically
// as correction strength increases.
var capacityTable = map[ECCLevel]int{
	ECCLow:      1663,
	ECCMedium:   1273,
	ECCQuartile: 927,
	ECCHigh:     713,
}

// Capacity returns the maximum payload byte length for the level.
func (l ECCLevel) Capacity() int {
	return capacityTable[l]
}

// Request is a fully parsed, typed QR generation request.
type Request struct {
	Data            string
	Size            Size
	Format          Format
	ErrorCorrection ECCLevel
	OutputEncoding  Encoding
}
