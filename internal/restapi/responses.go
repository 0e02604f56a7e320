package restapi

import (
	"encoding/json"
	"net/http"

	"hydroroute.org/internal/logging"
	"hydroroute.org/internal/models"
)

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	setJSONResponseType(w)
	encodeResponse(w, r, response)
}

func (api *RestAPI) sendStatus(w http.ResponseWriter, r *http.Request, status int, text string) {
	setJSONResponseType(w)
	w.WriteHeader(status)
	encodeResponse(w, r, models.NewResponse(status, nil, text))
}

func encodeResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to encode response", err)
	}
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	api.sendStatus(w, r, http.StatusNotFound, "resource not found")
}

// sendNoPath reports that the snapped start and end nodes are not connected.
func (api *RestAPI) sendNoPath(w http.ResponseWriter, r *http.Request) {
	api.sendStatus(w, r, http.StatusNotFound, "no path found between the selected nodes")
}

func setJSONResponseType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
}
