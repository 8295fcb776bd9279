package handlers

import (
	"errors"
	"net/http"

	"github.com/dmavani25/teammatch-system/services"
)

const maxUploadSize = 10 << 20 // 10MB

type UploadHandler struct {
	ingestService services.IngestService
}

func NewUploadHandler(ingestService services.IngestService) *UploadHandler {
	return &UploadHandler{
		ingestService: ingestService,
	}
}

// UploadSurvey accepts a multipart form with a single "file" field holding a
// survey CSV export and imports its respondents as participants.
func (h *UploadHandler) UploadSurvey(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		badRequestResponse(w, r, errors.New("request must be multipart form data with a file field"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequestResponse(w, r, errors.New("file field is required"))
		return
	}
	defer file.Close()

	summary, err := h.ingestService.ImportSurvey(r.Context(), header.Filename, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"summary": summary,
	}

	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
