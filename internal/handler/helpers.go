package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ============================================================
// Shared helper functions
// ============================================================

const maxPageSize = 100

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"error_kind,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// statusOf maps an action outcome to the HTTP status returned to the browser.
func statusOf(kind domain.ErrorKind, okStatus int) int {
	switch kind {
	case domain.KindNone:
		return okStatus
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindNotFound, domain.KindPrecondition:
		return http.StatusNotFound
	case domain.KindCircuitOpen:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func logOutcome(logger *zap.Logger, r *http.Request, kind domain.ErrorKind) {
	if kind == domain.KindNone {
		return
	}
	logger.Debug("action failed",
		zap.String("path", r.URL.Path),
		zap.String("kind", string(kind)),
	)
}

// writePage writes a list result. Data is always an array, never null.
func writePage[T any](w http.ResponseWriter, r *http.Request, logger *zap.Logger, p domain.Page[T]) {
	if p.Data == nil {
		p.Data = []T{}
	}
	logOutcome(logger, r, p.Kind)
	writeJSON(w, statusOf(p.Kind, http.StatusOK), p)
}

// writeOutcome writes a singular result with okStatus on success.
func writeOutcome[T any](w http.ResponseWriter, r *http.Request, logger *zap.Logger, o domain.Outcome[T], okStatus int) {
	logOutcome(logger, r, o.Kind)
	writeJSON(w, statusOf(o.Kind, okStatus), o)
}

func parsePagination(r *http.Request) domain.PageRequest {
	req := domain.PageRequest{Page: domain.DefaultPage, PageSize: domain.DefaultPageSize}
	if size, ok := r.Context().Value(pageSizeKey).(int); ok {
		req.PageSize = size
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			req.Page = p
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if ps, err := strconv.Atoi(v); err == nil && ps > 0 && ps <= maxPageSize {
			req.PageSize = ps
		}
	}
	return req
}

// uuidParam reads a uuid route parameter, answering 400 when it is malformed.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := chi.URLParam(r, name)
	if err := uuid.Validate(id); err != nil {
		writeError(w, http.StatusBadRequest, name+" must be a uuid")
		return "", false
	}
	return id, true
}

// int64Param reads a numeric route parameter, answering 400 when it is not one.
func int64Param(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// decodeBody decodes a JSON request body into dst. An empty body is an error.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		msg := "invalid request body"
		if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		writeError(w, http.StatusBadRequest, msg)
		return false
	}
	return true
}

// decodeFields decodes a partial entity body.
func decodeFields(w http.ResponseWriter, r *http.Request) (domain.Fields, bool) {
	fields := domain.Fields{}
	if !decodeBody(w, r, &fields) {
		return nil, false
	}
	return fields, true
}
