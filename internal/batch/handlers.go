package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chrisdevelops/receipt-to-spendee-to-csv/internal/extraction"
)

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// jsonError writes a JSON error body with CORS headers set
func jsonError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// handleIndex serves the HTML interface
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// handleExtractReceipt accepts a multipart "image" field, forwards it to the
// extraction provider, and returns the normalized draft fields
func (s *Server) handleExtractReceipt(w http.ResponseWriter, r *http.Request) {
	// Max 50MB to handle high-resolution phone photos
	maxFormSize := int64(50 << 20)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		jsonError(w, "No image provided", http.StatusBadRequest)
		return
	}

	f, header, err := r.FormFile("image")
	if err != nil {
		jsonError(w, "No image provided", http.StatusBadRequest)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading image data", "error", err, "filename", header.Filename)
		jsonError(w, "Failed to process receipt image", http.StatusInternalServerError)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = contentTypeFromExt(header.Filename)
	}

	draft, err := s.extractor.ExtractReceipt(data, contentType)
	if err != nil {
		var cfgErr *extraction.ConfigError
		switch {
		case errors.As(err, &cfgErr):
			// No secret in the message, safe to surface verbatim
			slog.Error("Extraction credential missing", "error", err)
			jsonError(w, cfgErr.Error(), http.StatusInternalServerError)
		case errors.Is(err, extraction.ErrNoContent):
			slog.Error("Provider returned no content", "filename", header.Filename)
			jsonError(w, "No response from AI", http.StatusInternalServerError)
		case errors.Is(err, extraction.ErrBadResponse):
			slog.Error("Provider response was not valid JSON",
				"filename", header.Filename,
				"error", err,
			)
			jsonError(w, "Failed to process receipt image", http.StatusInternalServerError)
		default:
			slog.Error("Error processing receipt",
				"filename", header.Filename,
				"content_type", contentType,
				"file_size", len(data),
				"error", err,
			)
			jsonError(w, "Failed to process receipt image", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(draft); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleAcceptReceipt accepts a reviewed draft into the batch
func (s *Server) handleAcceptReceipt(w http.ResponseWriter, r *http.Request) {
	var req Draft
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	receiptType := TypePersonal
	if req.Type != "" {
		var err error
		receiptType, err = ParseReceiptType(string(req.Type))
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	draft := s.service.StageDraft(&extraction.DraftFields{
		Date:     req.Date,
		Amount:   req.Amount,
		Tax:      req.Tax,
		Category: req.Category,
		Note:     req.Note,
	}, receiptType)
	draft.RawText = req.RawText
	draft.ImageURL = req.ImageURL

	receipt, err := s.service.AcceptDraft(draft)
	if err != nil {
		var valErr *ValidationError
		if errors.As(err, &valErr) {
			jsonError(w, valErr.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("Error accepting receipt", "error", err)
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(receipt); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleListReceipts returns the batch, optionally filtered to one partition
func (s *Server) handleListReceipts(w http.ResponseWriter, r *http.Request) {
	var (
		receipts []*Receipt
		err      error
	)

	if typeParam := r.URL.Query().Get("type"); typeParam != "" {
		receiptType, parseErr := ParseReceiptType(typeParam)
		if parseErr != nil {
			jsonError(w, parseErr.Error(), http.StatusBadRequest)
			return
		}
		receipts, err = s.service.Partition(receiptType)
	} else {
		receipts, err = s.service.List()
	}
	if err != nil {
		slog.Error("Error listing receipts", "error", err)
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Ensure we always return an array, not nil
	if receipts == nil {
		receipts = []*Receipt{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(receipts); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleRemoveReceipt removes a receipt from the batch. Removing an unknown
// ID is a no-op and still succeeds.
func (s *Server) handleRemoveReceipt(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		jsonError(w, "Receipt ID required", http.StatusBadRequest)
		return
	}
	if err := s.service.Remove(id); err != nil {
		slog.Error("Error removing receipt", "id", id, "error", err)
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleExportCSV downloads one partition as a Spendee CSV document
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	receiptType, err := ParseReceiptType(r.PathValue("type"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, filename, err := s.service.ExportCSV(receiptType)
	if err != nil {
		if errors.Is(err, ErrNothingToExport) {
			jsonError(w, fmt.Sprintf("No %s receipts to export", receiptType), http.StatusNotFound)
			return
		}
		slog.Error("Error exporting CSV", "type", receiptType, "error", err)
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// handleStaticCSS serves the CSS file
func (s *Server) handleStaticCSS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/css")
	w.Write(appCSS)
}

// handleStaticJS serves the JavaScript file
func (s *Server) handleStaticJS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write(appJS)
}

// contentTypeFromExt guesses a MIME type from a filename extension when the
// upload did not declare one
func contentTypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}
