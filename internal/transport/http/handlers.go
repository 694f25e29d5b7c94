package http

import (
	"encoding/json"
	"net/http"

	"gpstrack/internal/dto"
	"gpstrack/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handler struct {
	auth       service.AuthService
	tokens     service.TokenService
	devices    service.DeviceService
	footprints service.FootprintService
}

// ====== Auth / tokens ======

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	res, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) handleObtainToken(w http.ResponseWriter, r *http.Request) {
	var req dto.ObtainTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	res, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	res, err := h.tokens.Refresh(r.Context(), req.Refresh)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ====== Devices ======

func (h *Handler) handleListDevices(w http.ResponseWriter, r *http.Request) {
	owner, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	devices, err := h.devices.List(r.Context(), owner)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newDeviceListResponse(devices))
}

func (h *Handler) handleCreateDevice(w http.ResponseWriter, r *http.Request) {
	owner, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req dto.DeviceCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	device, err := h.devices.Create(r.Context(), owner, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newDeviceResponse(device))
}

func (h *Handler) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.resourceScope(w, r, "deviceID")
	if !ok {
		return
	}
	device, err := h.devices.Get(r.Context(), owner, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newDeviceResponse(device))
}

func (h *Handler) handlePatchDevice(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.resourceScope(w, r, "deviceID")
	if !ok {
		return
	}
	var req dto.DevicePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	device, err := h.devices.Update(r.Context(), owner, id, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newDeviceResponse(device))
}

func (h *Handler) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.resourceScope(w, r, "deviceID")
	if !ok {
		return
	}
	if err := h.devices.Delete(r.Context(), owner, id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ====== Footprints ======

func (h *Handler) handleListFootprints(w http.ResponseWriter, r *http.Request) {
	owner, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	query := dto.FootprintQuery{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	footprints, err := h.footprints.List(r.Context(), owner, query)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newFootprintListResponse(footprints))
}

func (h *Handler) handleCreateFootprint(w http.ResponseWriter, r *http.Request) {
	owner, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req dto.FootprintCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	fp, err := h.footprints.Create(r.Context(), owner, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newFootprintResponse(fp))
}

func (h *Handler) handleGetFootprint(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.resourceScope(w, r, "footprintID")
	if !ok {
		return
	}
	fp, err := h.footprints.Get(r.Context(), owner, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newFootprintResponse(fp))
}

func (h *Handler) handlePatchFootprint(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.resourceScope(w, r, "footprintID")
	if !ok {
		return
	}
	var req dto.FootprintPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	fp, err := h.footprints.Update(r.Context(), owner, id, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newFootprintResponse(fp))
}

func (h *Handler) handleDeleteFootprint(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.resourceScope(w, r, "footprintID")
	if !ok {
		return
	}
	if err := h.footprints.Delete(r.Context(), owner, id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// resourceScope pulls the principal and the path identifier out of the
// request. A malformed identifier can never match a record, so it reads as
// not-found rather than as a validation failure.
func (h *Handler) resourceScope(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, uuid.UUID, bool) {
	owner, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return uuid.Nil, uuid.Nil, false
	}
	return owner, id, true
}
