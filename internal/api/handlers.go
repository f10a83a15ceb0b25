package api

import (
	"encoding/json"
	"net/http"

	"github.com/carmex/tierMCP/pkg/buildinfo"
	"github.com/carmex/tierMCP/pkg/errors"
	"github.com/carmex/tierMCP/pkg/pipeline"
)

// errorResponse is the JSON body for every failed request.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleRender renders a tier list and returns the PNG.
//
// The request body is the pipeline options JSON:
//
//	{"config": {...}, "geometry": {...}, "refresh": false}
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options

	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&opts); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "decode request body: %v", err))
		return
	}

	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))
	opts.Fetcher = s.fetcher

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Config-Hash", result.ConfigHash)
	if result.CacheInfo.ArtifactHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	_, _ = w.Write(result.PNG)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps an error to its HTTP status and JSON body. Internal
// faults surface with an opaque message.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusForCode(code), errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

// statusForCode maps the error taxonomy onto HTTP statuses: malformed
// input is a plain bad request, safety rejections are unprocessable,
// upstream image failures are a bad gateway.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrCodeTooManyItems, errors.ErrCodeCanvasTooTall,
		errors.ErrCodeUnsafeResource, errors.ErrCodeInvalidScheme:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeFetchFailed, errors.ErrCodeDecodeFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
