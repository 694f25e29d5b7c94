package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gpstrack/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps service errors onto HTTP statuses. Out-of-scope and
// absent records share the not-found branch.
func writeDomainError(w http.ResponseWriter, err error) {
	var fieldErr *domain.FieldError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrUsernameTaken):
		writeError(w, http.StatusBadRequest, "username already taken")
	case errors.As(err, &fieldErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"field": fieldErr.Field,
			"error": fieldErr.Message,
		})
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type deviceResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"user_id"`
}

func newDeviceResponse(d *domain.Device) deviceResponse {
	return deviceResponse{
		ID:     d.ID.String(),
		Name:   d.Name,
		UserID: d.UserID.String(),
	}
}

func newDeviceListResponse(devices []*domain.Device) []deviceResponse {
	out := make([]deviceResponse, 0, len(devices))
	for _, d := range devices {
		out = append(out, newDeviceResponse(d))
	}
	return out
}

type footprintResponse struct {
	ID          string  `json:"id"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	PublishedAt string  `json:"published_at"`
	DeviceID    string  `json:"device_id"`
}

func newFootprintResponse(fp *domain.Footprint) footprintResponse {
	return footprintResponse{
		ID:          fp.ID.String(),
		Lat:         fp.Lat,
		Lng:         fp.Lng,
		PublishedAt: fp.PublishedAt.Format(time.RFC3339Nano),
		DeviceID:    fp.DeviceID.String(),
	}
}

func newFootprintListResponse(footprints []*domain.Footprint) []footprintResponse {
	out := make([]footprintResponse, 0, len(footprints))
	for _, fp := range footprints {
		out = append(out, newFootprintResponse(fp))
	}
	return out
}
