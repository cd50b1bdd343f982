package qr

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"qrgate/internal/platform/metrics"
	dErrors "qrgate/pkg/domain-errors"
)

// Generator runs the generation pipeline: validate, encode, render. It is
// stateless and safe for concurrent use; every request is handled
// independently with no shared mutable state.
type Generator struct {
	validator *Validator
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer

	// slowThreshold is advisory: generations past it are logged and
	// counted, never cancelled. Rendering is in-memory and CPU bound, so
	// its duration is a function of input size alone.
	slowThreshold time.Duration
}

// NewGenerator creates a Generator.
func NewGenerator(validator *Validator, logger *slog.Logger, m *metrics.Metrics, slowThreshold time.Duration) *Generator {
	return &Generator{
		validator:     validator,
		logger:        logger,
		metrics:       m,
		tracer:        otel.Tracer("qrgate/qr"),
		slowThreshold: slowThreshold,
	}
}

// Generate produces the QR code bytes for the request and reports the
// generation duration. Validation failures and encoder/renderer failures
// come back as domain errors with distinct codes.
func (g *Generator) Generate(ctx context.Context, req Request) ([]byte, time.Duration, error) {
	start := time.Now()

	ctx, span := g.tracer.Start(ctx, "qr.generate", trace.WithAttributes(
		attribute.String("qr.format", string(req.Format)),
		attribute.String("qr.size", string(req.Size)),
		attribute.String("qr.error_correction", string(req.ErrorCorrection)),
		attribute.Int("qr.data_length", len(req.Data)),
	))

	data, err := g.generate(ctx, req)
	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		return nil, duration, err
	}
	span.End()

	g.observe(ctx, req, duration)
	return data, duration, nil
}

func (g *Generator) generate(ctx context.Context, req Request) ([]byte, error) {
	if err := g.validator.Validate(req.Data, req.ErrorCorrection); err != nil {
		if g.metrics != nil {
			reason := "invalid_data"
			if dErrors.HasCode(err, dErrors.CodeCapacityExceeded) {
				reason = "capacity_exceeded"
			}
			g.metrics.ValidationFailures.WithLabelValues(reason).Inc()
		}
		return nil, err
	}

	matrix, err := Encode(req.Data, req.ErrorCorrection)
	if err != nil {
		return nil, err
	}

	return Render(matrix, req)
}

func (g *Generator) observe(ctx context.Context, req Request, duration time.Duration) {
	if g.metrics != nil {
		g.metrics.QRGenerated.WithLabelValues(string(req.Format)).Inc()
		g.metrics.GenerationLatency.WithLabelValues(string(req.Format)).Observe(duration.Seconds())
	}

	g.logger.InfoContext(ctx, "qr code generated",
		"data_length", len(req.Data),
		"size", string(req.Size),
		"format", string(req.Format),
		"error_correction", string(req.ErrorCorrection),
		"duration_ms", duration.Milliseconds(),
	)

	if g.slowThreshold > 0 && duration > g.slowThreshold {
		if g.metrics != nil {
			g.metrics.SlowGenerations.Inc()
		}
		g.logger.WarnContext(ctx, "qr generation exceeded advisory timeout",
			"duration_ms", duration.Milliseconds(),
			"threshold_ms", g.slowThreshold.Milliseconds(),
			"data_length", len(req.Data),
			"format", string(req.Format),
		)
	}
}
