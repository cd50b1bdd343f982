package qr

import (
	qrcode "github.com/skip2/go-qrcode"

	dErrors "qrgate/pkg/domain-errors"
)

// Matrix is a square grid of QR modules, true meaning a dark module. It
// includes the 4-module quiet zone on every edge and lives only on the
// encoder-to-renderer handoff; it is never persisted.
type Matrix [][]bool

// Side returns the matrix side length in modules, quiet zone included.
func (m Matrix) Side() int {
	return len(m)
}

var eccToRecovery = map[ECCLevel]qrcode.RecoveryLevel{
	ECCLow:      qrcode.Low,
	ECCMedium:   qrcode.Medium,
	ECCQuartile: qrcode.High,
	ECCHigh:     qrcode.Highest,
}

// Encode produces the module matrix for the payload at the given
// error-correction level. The underlying library auto-fits the smallest QR
// version that holds the data.
//
// A library-level capacity failure is still possible on payloads the
// Validator passed (the pre-check uses worst-case binary capacities); it is
// surfaced as an encoding error so the caller maps it to a generation
// failure, not a validation one.
func Encode(data string, ecc ECCLevel) (Matrix, error) {
	code, err := qrcode.New(data, eccToRecovery[ecc])
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncoding, "Failed to encode QR code: "+err.Error())
	}
	return Matrix(code.Bitmap()), nil
}
