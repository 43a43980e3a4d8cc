package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mfaulds/driftline/core"
	"github.com/mfaulds/driftline/internal/contract"
	"github.com/mfaulds/driftline/schema"
)

// handleUpload accepts a CSV series either as a multipart "file" field or as
// a raw request body, runs the analysis pipeline on it and returns the
// persisted record summary.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	raw, filename, ok := readUpload(w, r)
	if !ok {
		return
	}

	summary, err := core.RunAnalysis(r.Context(), s.scorer, s.store, s.cfg, owner, filename, raw)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, summary)
}

// readUpload extracts the CSV bytes and filename from the request. Multipart
// uploads carry their own filename; a raw body is stored under a default name.
// On failure it writes the 400 response and returns ok=false.
func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			writeErrorMsg(w, http.StatusBadRequest, "expected multipart form with a 'file' field")
			return nil, "", false
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeErrorMsg(w, http.StatusBadRequest, "missing 'file' field")
			return nil, "", false
		}
		defer func() { _ = file.Close() }()

		raw, err := io.ReadAll(file)
		if err != nil {
			writeErrorMsg(w, http.StatusBadRequest, "failed to read upload")
			return nil, "", false
		}
		return raw, header.Filename, true
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "failed to read upload")
		return nil, "", false
	}
	return raw, "upload.csv", true
}

// handleList returns the caller's record summaries, most-recent first.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	summaries, err := s.store.ListByOwner(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	if summaries == nil {
		// An owner with no records gets an empty array, not null.
		summaries = []schema.RecordSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

// handleDownload streams a stored record back as annotated CSV.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	recordID, err := strconv.ParseInt(chi.URLParam(r, "recordID"), 10, 64)
	if err != nil || recordID <= 0 {
		writeErrorMsg(w, http.StatusBadRequest, "record id must be a positive integer")
		return
	}

	data, err := core.DownloadRecord(r.Context(), s.store, owner, recordID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=record-%d.csv", recordID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// requireOwner extracts the owner token or writes a 401 response.
func requireOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner := r.Header.Get(OwnerHeader)
	if owner == "" {
		writeErrorMsg(w, http.StatusUnauthorized, fmt.Sprintf("%s header is required", OwnerHeader))
		return "", false
	}
	return owner, true
}

// writeError maps a pipeline error to its HTTP status.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contract.ErrMalformedInput), errors.Is(err, contract.ErrInsufficientData):
		writeErrorMsg(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, contract.ErrScorerUnavailable):
		writeErrorMsg(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, contract.ErrScorerContractViolation):
		writeErrorMsg(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, contract.ErrNotFound):
		writeErrorMsg(w, http.StatusNotFound, err.Error())
	default:
		writeErrorMsg(w, http.StatusInternalServerError, err.Error())
	}
}

// writeErrorMsg writes a JSON error body with the given status.
func writeErrorMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes data as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
