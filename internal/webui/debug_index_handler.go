package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"hydroroute.org/internal/network"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

var dataTypes = []string{"stats", "segments", "nodes", "adjacency", "snaps"}

// Maps are dumped with sorted keys so the page is stable between reloads.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

type debugData struct {
	Title     string
	Pre       string
	DataTypes []string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := debugTemplate.Execute(w, debugData{
		Title:     title,
		Pre:       dumper.Sdump(data),
		DataTypes: dataTypes,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	snapshot := webUI.Planner.Snapshot()
	n := snapshot.Network

	var data interface{}
	var title string

	switch r.URL.Query().Get("dataType") {
	case "stats":
		data = n.Stats()
		title = "Network - Build Statistics"
	case "segments":
		data = n.Segments()
		title = "Network - Segments"
	case "nodes":
		data = n.Graph().Nodes()
		title = "Network - Nodes"
	case "adjacency":
		data = adjacency(n.Graph())
		title = "Network - Adjacency"
	case "snaps":
		data = snappedCoordinates(n.CanonicalMap())
		title = "Network - Snapped Coordinates"
	default:
		data = map[string]string{
			"error": "Please use one of the following: stats, segments, nodes, adjacency, snaps.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}

// adjacency lists every node with its neighbours and edge weights in km.
func adjacency(g *network.Graph) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, g.NodeCount())
	for _, node := range g.Nodes() {
		edges := make(map[string]float64)
		for _, neighbor := range g.Neighbors(node) {
			weight, _ := g.Weight(node, neighbor)
			edges[neighbor.String()] = weight
		}
		out[node.String()] = edges
	}
	return out
}

// snappedCoordinates returns the raw coordinates that were moved onto a
// different canonical coordinate.
func snappedCoordinates(m network.CanonicalMap) map[string]string {
	out := make(map[string]string)
	for raw, canonical := range m {
		if raw != canonical {
			out[raw.String()] = canonical.String()
		}
	}
	return out
}
