package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matt-g-everett/animseq/stream"
)

// Engine is the sequence the API controls.
type Engine interface {
	Play(play bool)
	Playing() bool
	Span() float64
	States() []stream.StepState
	StyleSheet() string
}

// Api serves a running sequence over HTTP.
type Api struct {
	engine   Engine
	gatherer prometheus.Gatherer
}

// NewApi creates an Api. gatherer may be nil, in which case /metrics is not
// served.
func NewApi(engine Engine, gatherer prometheus.Gatherer) *Api {
	return &Api{engine: engine, gatherer: gatherer}
}

type timingsResponse struct {
	Playing bool               `json:"playing"`
	Span    float64            `json:"span"`
	Steps   []stream.StepState `json:"steps"`
}

// Handler returns the router.
func (a *Api) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/sheet.css", a.getSheet)
	r.Get("/timings", a.getTimings)
	r.Post("/play", a.play(true))
	r.Post("/reverse", a.play(false))
	if a.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(a.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Serve listens on addr until the listener fails.
func (a *Api) Serve(addr string) error {
	log.Printf("api: listening on %s", addr)
	return http.ListenAndServe(addr, a.Handler())
}

func (a *Api) getSheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if _, err := w.Write([]byte(a.engine.StyleSheet())); err != nil {
		log.Printf("api: writing sheet: %v", err)
	}
}

func (a *Api) getTimings(w http.ResponseWriter, r *http.Request) {
	a.writeTimings(w)
}

func (a *Api) play(play bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.engine.Play(play)
		a.writeTimings(w)
	}
}

func (a *Api) writeTimings(w http.ResponseWriter) {
	resp := timingsResponse{
		Playing: a.engine.Playing(),
		Span:    a.engine.Span(),
		Steps:   a.engine.States(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("api: encoding timings: %v", err)
	}
}
