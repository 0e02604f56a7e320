package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"hydroroute.org/internal/app"
)

// WebUI serves debugging pages that dump the network currently in use.
type WebUI struct {
	*app.Application
}

func (webUI *WebUI) SetWebUIRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/debug/", webUI.debugIndexHandler)
}
