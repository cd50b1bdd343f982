package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/go-pdf/fpdf"
	xdraw "golang.org/x/image/draw"

	dErrors "qrgate/pkg/domain-errors"
)

const (
	// boxSize is the native pixel size of one module before resampling.
	boxSize = 10
	// jpegQuality matches the fixed encoder quality for JPEG output.
	jpegQuality = 85
)

// Render converts a module matrix into the requested output format.
// Raster formats are resampled to exactly Size.Pixels() square; SVG output
// is intrinsically sized by the module grid and ignores the size class;
// PDF embeds the raster centered on a Letter page.
func Render(m Matrix, req Request) ([]byte, error) {
	switch req.Format {
	case FormatPNG:
		return renderPNG(m, req.Size.Pixels())
	case FormatJPEG:
		return renderJPEG(m, req.Size.Pixels())
	case FormatSVG:
		return renderSVG(m), nil
	case FormatPDF:
		return renderPDF(m, req), nil
	default:
		// Formats are a closed set; reaching this is a programming error
		// and must fail loudly rather than fall back to a default format.
		return nil, dErrors.New(dErrors.CodeRender, fmt.Sprintf("unsupported output format %q", string(req.Format)))
	}
}

// rasterize draws the matrix at native resolution, one module per
// boxSize x boxSize block, black on white.
func rasterize(m Matrix) *image.Gray {
	side := m.Side() * boxSize
	img := image.NewGray(image.Rect(0, 0, side, side))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	for row, cols := range m {
		for col, dark := range cols {
			if !dark {
				continue
			}
			for y := row * boxSize; y < (row+1)*boxSize; y++ {
				for x := col * boxSize; x < (col+1)*boxSize; x++ {
					img.SetGray(x, y, color.Gray{Y: 0})
				}
			}
		}
	}
	return img
}

// resample scales the native raster to exactly targetPx on each axis using
// Catmull-Rom interpolation.
func resample(src *image.Gray, targetPx int) *image.Gray {
	if src.Bounds().Dx() == targetPx {
		return src
	}
	dst := image.NewGray(image.Rect(0, 0, targetPx, targetPx))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func renderPNG(m Matrix, targetPx int) ([]byte, error) {
	img := resample(rasterize(m), targetPx)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeRender, "Failed to encode PNG output")
	}
	return buf.Bytes(), nil
}

func renderJPEG(m Matrix, targetPx int) ([]byte, error) {
	img := resample(rasterize(m), targetPx)

	// JPEG has no alpha channel: flatten onto an opaque white canvas
	// before encoding.
	flat := image.NewRGBA(img.Bounds())
	xdraw.Draw(flat, flat.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	xdraw.Draw(flat, flat.Bounds(), img, img.Bounds().Min, xdraw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeRender, "Failed to encode JPEG output")
	}
	return buf.Bytes(), nil
}

// renderSVG emits a minimal XML document: a white background rectangle and
// one black rectangle per dark module. Output resolution is intrinsic to
// the module grid; the requested pixel size does not apply since vector
// output is scale-free.
func renderSVG(m Matrix) []byte {
	svgSize := m.Side() * boxSize

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n", svgSize, svgSize)
	b.WriteString(`<rect width="100%" height="100%" fill="white"/>` + "\n")

	for row, cols := range m {
		for col, dark := range cols {
			if !dark {
				continue
			}
			fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="black"/>`+"\n",
				col*boxSize, row*boxSize, boxSize, boxSize)
		}
	}

	b.WriteString("</svg>")
	return []byte(b.String())
}

// renderPDF embeds the PNG raster centered on a Letter page, scaled to the
// requested pixel size in points. Any failure along the image path degrades
// to a text-only fallback page; the PDF response is never empty.
func renderPDF(m Matrix, req Request) []byte {
	pngBytes, err := renderPNG(m, req.Size.Pixels())
	if err != nil {
		return fallbackPDF(req)
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(pngBytes))

	pageW, pageH := pdf.GetPageSize()
	size := float64(req.Size.Pixels())
	pdf.ImageOptions("qr", (pageW-size)/2, (pageH-size)/2, size, size, false, opts, 0, "")

	if pdf.Err() {
		return fallbackPDF(req)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil || buf.Len() == 0 {
		return fallbackPDF(req)
	}
	return buf.Bytes()
}

// fallbackPDF produces a plain-text page listing the generation parameters.
// It uses only core fonts and text operations, so it has no failure path.
func fallbackPDF(req Request) []byte {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(pageW/2-100, pageH/2-50, "QR Code Generator API")

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(pageW/2-150, pageH/2, "Data: "+truncate(req.Data, 60))
	pdf.Text(pageW/2-150, pageH/2+30,
		fmt.Sprintf("Size: %s (%dx%dpx)", string(req.Size), req.Size.Pixels(), req.Size.Pixels()))
	pdf.Text(pageW/2-150, pageH/2+50,
		"Error Correction: "+string(req.ErrorCorrection))

	pdf.SetFont("Helvetica", "I", 10)
	pdf.Text(pageW/2-150, pageH/2+80,
		"Note: QR code image generation failed - showing text representation")

	var buf bytes.Buffer
	_ = pdf.Output(&buf)
	return buf.Bytes()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
