package app

import (
	"log/slog"

	"hydroroute.org/internal/appconf"
	"hydroroute.org/internal/planner"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config        appconf.Config
	PlannerConfig planner.Config
	Logger        *slog.Logger
	Planner       *planner.Manager
}
