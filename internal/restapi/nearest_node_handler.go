package restapi

import (
	"net/http"

	"hydroroute.org/internal/models"
	"hydroroute.org/internal/utils"
)

func (api *RestAPI) nearestNodeHandler(w http.ResponseWriter, r *http.Request) {
	query, fieldErrors := utils.ParseCoordinateParams(r.URL.Query(), "lat", "lon", nil)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	snap, err := api.Planner.Nearest(query)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewSnap(snap)))
}
