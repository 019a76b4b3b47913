package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/mmynk/groceries/internal/grocery"
	"github.com/mmynk/groceries/internal/storage"
)

// maxSaveBody bounds the payload accepted by POST /api/save.
const maxSaveBody = 10 << 20

type saveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

func (s *Server) handleSaveHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "OK", Message: "Save server is running"})
}

// handleSave writes the posted item array, indented, as the unowned items
// document. The grocery service starts new owners from that document.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSaveBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, saveResponse{Message: "Failed to read request", Error: err.Error()})
		return
	}

	items, err := grocery.DecodeItems(body)
	if err != nil {
		slog.Warn("Save rejected", "error", err)
		writeJSON(w, http.StatusBadRequest, saveResponse{Message: "Failed to save data", Error: err.Error()})
		return
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, bytes.TrimSpace(body), "", "  "); err != nil {
		writeJSON(w, http.StatusBadRequest, saveResponse{Message: "Failed to save data", Error: err.Error()})
		return
	}

	if err := s.saveStore.Save(r.Context(), "", storage.ItemsDocument, indented.Bytes()); err != nil {
		slog.Error("Error saving data", "error", err)
		writeJSON(w, http.StatusInternalServerError, saveResponse{Message: "Failed to save data", Error: err.Error()})
		return
	}

	slog.Info("Data saved", "document", storage.ItemsDocument, "count", len(items))
	writeJSON(w, http.StatusOK, saveResponse{Success: true, Message: "Data saved successfully!"})
}
