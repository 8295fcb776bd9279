package handlers

import (
	"net/http"

	"github.com/dmavani25/teammatch-system/services"
)

type ParticipantHandler struct {
	ingestService services.IngestService
}

func NewParticipantHandler(ingestService services.IngestService) *ParticipantHandler {
	return &ParticipantHandler{
		ingestService: ingestService,
	}
}

func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	participants, err := h.ingestService.ListParticipants(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"participants": participants,
		"count":        len(participants),
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ParticipantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participant, err := h.ingestService.GetParticipant(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"participant": participant,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Clear removes every stored participant, typically between matching events.
func (h *ParticipantHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.ingestService.ClearParticipants(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
