package restapi

import (
	"net/http"

	"hydroroute.org/internal/models"
	"hydroroute.org/internal/utils"
)

func (api *RestAPI) networkHandler(w http.ResponseWriter, r *http.Request) {
	snapshot := api.Planner.Snapshot()
	entry := models.NewNetworkEntry(snapshot.Network, snapshot.Dataset.Source,
		snapshot.Dataset.Skipped, snapshot.EdgeWeights, snapshot.BuiltAt)
	api.sendResponse(w, r, models.NewEntryResponse(entry))
}

func (api *RestAPI) segmentsHandler(w http.ResponseWriter, r *http.Request) {
	segments := api.Planner.Network().Segments()

	list := make([]models.SegmentEntry, 0, len(segments))
	for _, segment := range segments {
		list = append(list, models.NewSegmentEntry(segment))
	}
	api.sendResponse(w, r, models.NewListResponse(list))
}

func (api *RestAPI) segmentHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	for _, segment := range api.Planner.Network().Segments() {
		if segment.ID == id {
			api.sendResponse(w, r, models.NewEntryResponse(models.NewSegmentEntry(segment)))
			return
		}
	}
	api.sendNotFound(w, r)
}
