package handlers

import (
	"net/http"

	"github.com/dmavani25/teammatch-system/services"
)

type MatchingHandler struct {
	matchingService services.MatchingService
}

func NewMatchingHandler(matchingService services.MatchingService) *MatchingHandler {
	return &MatchingHandler{
		matchingService: matchingService,
	}
}

// CreateRun starts a new match run over the currently stored participants.
// The response carries the pending run; progress streams over the run's
// WebSocket room and the final state is available via GetRun.
func (h *MatchingHandler) CreateRun(w http.ResponseWriter, r *http.Request) {
	var input services.RunInput

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	run, err := h.matchingService.StartRun(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"run": run,
	}

	if err := writeJSON(w, http.StatusAccepted, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchingHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "runID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	run, err := h.matchingService.GetRun(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"run": run,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchingHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.matchingService.ListRuns(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"runs": runs,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchingHandler) GetRunTeams(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "runID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := h.matchingService.GetRunTeams(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"teams": teams,
		"count": len(teams),
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
