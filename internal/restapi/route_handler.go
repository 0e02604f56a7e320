package restapi

import (
	"context"
	"errors"
	"net/http"

	"hydroroute.org/internal/models"
	"hydroroute.org/internal/network"
	"hydroroute.org/internal/utils"
)

func (api *RestAPI) routeHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start, fieldErrors := utils.ParseCoordinateParams(query, "startLat", "startLon", nil)
	end, fieldErrors := utils.ParseCoordinateParams(query, "endLat", "endLon", fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	ctx := r.Context()
	if api.Config.RouteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, api.Config.RouteTimeout)
		defer cancel()
	}

	plan, err := api.Planner.PlanRoute(ctx, start, end)
	if errors.Is(err, network.ErrNoPathFound) {
		api.sendNoPath(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entry := models.NewRouteEntry(plan.Result, plan.Start, plan.End, api.costRate())
	api.sendResponse(w, r, models.NewEntryResponse(entry))
}

func (api *RestAPI) costRate() float64 {
	if api.Config.CostRate > 0 {
		return api.Config.CostRate
	}
	return models.DefaultCostRate
}
