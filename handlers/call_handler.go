package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"transferadmin/calling"
	"transferadmin/models"
)

// CallHandler exposes the ringing call to the dashboard widget as JSON.
type CallHandler struct {
	*Pages
	Hub *calling.Hub
}

// Incoming is called by the calling kit when a user rings the admins.
func (h *CallHandler) Incoming(w http.ResponseWriter, r *http.Request) {
	var caller models.Caller
	if err := json.NewDecoder(r.Body).Decode(&caller); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Message: "Invalid request payload: " + err.Error()})
		return
	}
	caller.ID = strings.TrimSpace(caller.ID)
	if caller.ID == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Message: "Caller id is required"})
		return
	}

	snap, err := h.Hub.Incoming(caller)
	if errors.Is(err, calling.ErrBusy) {
		writeJSON(w, http.StatusConflict, ApiResponse{Message: err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Ringing", Data: snap})
}

// Current returns the visible call, or 204 when nothing is ringing.
func (h *CallHandler) Current(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.Hub.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}

func (h *CallHandler) Accept(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Hub.Accept(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Call accepted", Data: caller})
}

// Decline hides the call and reports it to the backend. A failed report is
// logged; the call is declined regardless.
func (h *CallHandler) Decline(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Hub.Decline(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Message: err.Error()})
		return
	}

	if err := h.session(r).DeclineCall(r.Context(), caller.ID); err != nil {
		h.Logger.WarnContext(r.Context(), "failed to report declined call", "caller_id", caller.ID, "error", err)
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Call declined", Data: caller})
}
