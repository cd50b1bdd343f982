package handler

import (
	"qrgate/internal/qr"
	dErrors "qrgate/pkg/domain-errors"
)

// GenerateRequest is the wire shape of a QR generation request. Optional
// fields fall back to the configured defaults before parsing.
type GenerateRequest struct {
	Data            string `json:"data" validate:"required"`
	Size            string `json:"size,omitempty"`
	Format          string `json:"format,omitempty"`
	ErrorCorrection string `json:"error_correction,omitempty"`
	OutputFormat    string `json:"output_format,omitempty"`
}

// Defaults carries the configured fallback values for optional fields.
type Defaults struct {
	Size            string
	Format          string
	ErrorCorrection string
}

// ApplyDefaults fills unset optional fields.
func (r *GenerateRequest) ApplyDefaults(d Defaults) {
	if r.Size == "" {
		r.Size = d.Size
	}
	if r.Format == "" {
		r.Format = d.Format
	}
	if r.ErrorCorrection == "" {
		r.ErrorCorrection = d.ErrorCorrection
	}
	if r.OutputFormat == "" {
		r.OutputFormat = string(qr.EncodingBinary)
	}
}

// ToDomain parses the wire request into the typed domain request. Every
// enum failure is a validation error; payload content is checked later by
// the Validator.
func (r *GenerateRequest) ToDomain() (qr.Request, error) {
	size, err := qr.ParseSize(r.Size)
	if err != nil {
		return qr.Request{}, dErrors.New(dErrors.CodeValidation, err.Error())
	}
	format, err := qr.ParseFormat(r.Format)
	if err != nil {
		return qr.Request{}, dErrors.New(dErrors.CodeValidation, err.Error())
	}
	level, err := qr.ParseECCLevel(r.ErrorCorrection)
	if err != nil {
		return qr.Request{}, dErrors.New(dErrors.CodeValidation, err.Error())
	}
	encoding, err := qr.ParseEncoding(r.OutputFormat)
	if err != nil {
		return qr.Request{}, dErrors.New(dErrors.CodeValidation, err.Error())
	}

	return qr.Request{
		Data:            r.Data,
		Size:            size,
		Format:          format,
		ErrorCorrection: level,
		OutputEncoding:  encoding,
	}, nil
}

// Base64Response is the JSON body returned when output_format=base64.
type Base64Response struct {
	Data            string `json:"data"`
	Format          string `json:"format"`
	Encoding        string `json:"encoding"`
	Size            string `json:"size"`
	ErrorCorrection string `json:"error_correction"`
}
