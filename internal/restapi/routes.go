package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"hydroroute.org/internal/appconf"
	"hydroroute.org/internal/metrics"
)

func validateAPIKey(api *RestAPI, finalHandler http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/route.json", validateAPIKey(api, api.routeHandler))
	router.Handler(http.MethodGet, "/api/nearest-node.json", validateAPIKey(api, api.nearestNodeHandler))
	router.Handler(http.MethodGet, "/api/network.json", validateAPIKey(api, api.networkHandler))
	router.Handler(http.MethodGet, "/api/segments.json", validateAPIKey(api, api.segmentsHandler))
	router.Handler(http.MethodGet, "/api/segment/:id", validateAPIKey(api, api.segmentHandler))
	router.Handler(http.MethodGet, "/metrics", metrics.Handler())
	if api.Config.Env != appconf.Production {
		router.Handler(http.MethodPost, "/api/snap-threshold", validateAPIKey(api, api.snapThresholdHandler))
	}
}
