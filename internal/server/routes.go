package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

type RouteDoc struct {
	Method  string `json:"method"`
	Pattern string `json:"pattern"`
	Summary string `json:"summary,omitempty"`
}

// RouteRegistry collects the routes as they are registered so the server
// can list its own API.
type RouteRegistry struct {
	routes []RouteDoc
}

func (rr *RouteRegistry) Add(doc RouteDoc) {
	rr.routes = append(rr.routes, doc)
}

func (rr *RouteRegistry) List() []RouteDoc {
	out := make([]RouteDoc, len(rr.routes))
	copy(out, rr.routes)
	return out
}

func Handle(router *mux.Router, rr *RouteRegistry, method, pattern, summary string, h http.HandlerFunc) {
	rr.Add(RouteDoc{Method: method, Pattern: pattern, Summary: summary})
	router.HandleFunc(pattern, h).Methods(method)
}
