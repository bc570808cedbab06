package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/blacksmith/atlas/internal/service"
)

// envelope is the JSON shape every endpoint answers with. List
// endpoints set Total.
type envelope struct {
	Data  any    `json:"data,omitempty"`
	Total *int64 `json:"total,omitempty"`
	Error string `json:"error,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) int {
	return writeJSON(w, status, envelope{Data: data})
}

func writeList(w http.ResponseWriter, data any, total int64) int {
	return writeJSON(w, http.StatusOK, envelope{Data: data, Total: &total})
}

func writeError(w http.ResponseWriter, err error) int {
	return writeJSON(w, statusFor(err), envelope{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body envelope) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Errorf("encoding response failed: %v", err)
	}
	return status
}

// statusFor maps the service sentinels onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrAssetNotFound),
		errors.Is(err, service.ErrNodeNotFound),
		errors.Is(err, service.ErrEdgeNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEdgeExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnknownRelation),
		errors.Is(err, service.ErrInvalidVersion),
		errors.Is(err, service.ErrAssetNotTrashed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(w http.ResponseWriter, msg string) int {
	return writeJSON(w, http.StatusBadRequest, envelope{Error: msg})
}
