package restapi

import (
	"errors"
	"log/slog"
	"net/http"

	"hydroroute.org/internal/models"
	"hydroroute.org/internal/network"
	"hydroroute.org/internal/utils"
)

// snapThresholdHandler rebuilds the network with the threshold given in
// the query and answers with the new network statistics.
func (api *RestAPI) snapThresholdHandler(w http.ResponseWriter, r *http.Request) {
	threshold, fieldErrors := utils.RequireFloatParam(r.URL.Query(), "threshold", nil)
	if len(fieldErrors) == 0 && threshold < 0 {
		fieldErrors["threshold"] = []string{network.ErrInvalidThreshold.Error()}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	err := api.Planner.SetSnapThreshold(threshold)
	if errors.Is(err, network.ErrInvalidThreshold) {
		api.validationErrorResponse(w, r, map[string][]string{"threshold": {err.Error()}})
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if api.Logger != nil {
		api.Logger.Info("snap threshold changed", slog.Float64("snap_threshold", threshold))
	}

	snapshot := api.Planner.Snapshot()
	entry := models.NewNetworkEntry(snapshot.Network, snapshot.Dataset.Source,
		snapshot.Dataset.Skipped, snapshot.EdgeWeights, snapshot.BuiltAt)
	api.sendResponse(w, r, models.NewEntryResponse(entry))
}
