package handler

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"qrgate/internal/platform/middleware"
	"qrgate/internal/qr"
	"qrgate/pkg/platform/httputil"
	"qrgate/pkg/validation"
)

// Handler handles the QR generation endpoint. The route is protected: the
// request gate has already verified the bearer token and attached the
// subject before this handler runs.
type Handler struct {
	generator *qr.Generator
	logger    *slog.Logger
	defaults  Defaults
}

// New creates a new QR Handler.
func New(generator *qr.Generator, logger *slog.Logger, defaults Defaults) *Handler {
	return &Handler{
		generator: generator,
		logger:    logger,
		defaults:  defaults,
	}
}

// Register registers the QR routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/qr-code", h.HandleGenerate)
}

// HandleGenerate implements POST /qr-code.
//
// Input: { "data": "...", "size"?, "format"?, "error_correction"?, "output_format"? }
// Binary output streams the image bytes with the format's media type;
// base64 output wraps them in a JSON envelope. Either way the response
// carries the generation time and the effective parameters as headers.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeJSON[GenerateRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	req.ApplyDefaults(h.defaults)
	if err := validation.Validate(req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	domainReq, err := req.ToDomain()
	if err != nil {
		h.logger.WarnContext(ctx, "rejected generation request",
			"error", err,
			"request_id", requestID,
			"subject", middleware.GetSubject(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	data, duration, err := h.generator.Generate(ctx, domainReq)
	if err != nil {
		h.logger.WarnContext(ctx, "qr generation failed",
			"error", err,
			"request_id", requestID,
			"subject", middleware.GetSubject(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("X-Generation-Time-Ms", strconv.FormatInt(duration.Milliseconds(), 10))
	w.Header().Set("X-QR-Size", string(domainReq.Size))
	w.Header().Set("X-Error-Correction", string(domainReq.ErrorCorrection))

	if domainReq.OutputEncoding == qr.EncodingBase64 {
		w.Header().Set("X-Output-Format", "base64")
		httputil.WriteJSON(w, http.StatusOK, Base64Response{
			Data:            base64.StdEncoding.EncodeToString(data),
			Format:          string(domainReq.Format),
			Encoding:        "base64",
			Size:            string(domainReq.Size),
			ErrorCorrection: string(domainReq.ErrorCorrection),
		})
		return
	}

	w.Header().Set("X-Output-Format", "binary")
	w.Header().Set("Content-Type", domainReq.Format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
