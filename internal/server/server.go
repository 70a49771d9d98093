package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/playback"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/product"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/simulation"
)

// Server is the local development server for interactive playback.
type Server struct {
	session *simulation.Session
	hub     *Hub
	router  *mux.Router
	server  *http.Server
}

// New creates a server for a session. The session's sync callback should
// publish to hub.
func New(addr string, session *simulation.Session, hub *Hub) *Server {
	router := mux.NewRouter()
	s := &Server{
		session: session,
		hub:     hub,
		router:  router,
		server: &http.Server{
			Addr:         addr,
			WriteTimeout: 15 * time.Second,
			ReadTimeout:  15 * time.Second,
			IdleTimeout:  60 * time.Second,
			Handler:      router,
		},
	}
	s.registerRoutes()
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

// Start launches the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	log.Printf("[server] cropsim starting on http://localhost%s", s.server.Addr)
	log.Printf("[server] session %s: %s", s.session.ID, s.session.Spec.Name)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server and playback.
func (s *Server) Shutdown(ctx context.Context) error {
	s.session.Close()
	return s.server.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	r := s.router
	r.HandleFunc("/ws/days", s.handleDaysSocket)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/field", s.handleField).Methods(http.MethodGet)
	api.HandleFunc("/timeline", s.handleTimeline).Methods(http.MethodGet)
	api.HandleFunc("/report", s.handleReport).Methods(http.MethodGet)
	api.HandleFunc("/validation", s.handleValidation).Methods(http.MethodGet)

	api.HandleFunc("/day", s.handleDay).Methods(http.MethodGet)
	api.HandleFunc("/day/next", s.handleNext).Methods(http.MethodPost)
	api.HandleFunc("/day/prev", s.handlePrev).Methods(http.MethodPost)
	api.HandleFunc("/day/{index:-?[0-9]+}", s.handleSetDay).Methods(http.MethodPut)

	api.HandleFunc("/playback", s.handleStatus).Methods(http.MethodGet)
	api.HandleFunc("/playback/play", s.handlePlay).Methods(http.MethodPost)
	api.HandleFunc("/playback/pause", s.handlePause).Methods(http.MethodPost)
	api.HandleFunc("/playback/speed", s.handleSpeed).Methods(http.MethodPut)

	api.HandleFunc("/products", s.handleApplications).Methods(http.MethodGet)
	api.HandleFunc("/products", s.handleApply).Methods(http.MethodPost)
	api.HandleFunc("/products/{id}", s.handleRemove).Methods(http.MethodDelete)
	api.HandleFunc("/catalog", s.handleCatalog).Methods(http.MethodGet)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
}

func (s *Server) ctrl() *playback.Controller { return s.session.Controller() }

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html><head><title>cropsim</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>%s</h1>
<p>Renderer not embedded. Connect to <code>/ws/days</code> or use the <code>/api</code> endpoints.</p>
</div>
</body></html>`, s.session.Spec.Name)
}

func (s *Server) handleField(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Layout)
}

func (s *Server) handleTimeline(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl().Days())
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Report())
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Validation())
}

func (s *Server) handleDay(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl().CurrentDay())
}

func (s *Server) handleNext(w http.ResponseWriter, _ *http.Request) {
	s.ctrl().NextDay()
	writeJSON(w, http.StatusOK, s.ctrl().CurrentDay())
}

func (s *Server) handlePrev(w http.ResponseWriter, _ *http.Request) {
	s.ctrl().PrevDay()
	writeJSON(w, http.StatusOK, s.ctrl().CurrentDay())
}

func (s *Server) handleSetDay(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.ctrl().SetDay(i)
	writeJSON(w, http.StatusOK, s.ctrl().CurrentDay())
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl().Status())
}

type speedRequest struct {
	Speed float64 `json:"speed"`
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	req := speedRequest{Speed: s.ctrl().Speed()}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	s.ctrl().Play(req.Speed)
	writeJSON(w, http.StatusOK, s.ctrl().Status())
}

func (s *Server) handlePause(w http.ResponseWriter, _ *http.Request) {
	s.ctrl().Pause()
	writeJSON(w, http.StatusOK, s.ctrl().Status())
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req speedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.ctrl().SetSpeed(req.Speed)
	writeJSON(w, http.StatusOK, s.ctrl().Status())
}

func (s *Server) handleApplications(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl().Applications())
}

type applyRequest struct {
	ProductID string   `json:"product_id"`
	Day       *int     `json:"day"`      // defaults to the current day
	Increase  *float64 `json:"increase"` // overrides the estimate
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	day := s.ctrl().CurrentIndex()
	if req.Day != nil {
		day = *req.Day
	}

	var (
		app playback.Application
		err error
	)
	if req.Increase != nil {
		app, err = s.session.ApplyIncrease(req.ProductID, *req.Increase, day)
	} else {
		app, err = s.session.Apply(r.Context(), req.ProductID, day)
	}
	switch {
	case errors.Is(err, product.ErrUnknownProduct):
		writeError(w, http.StatusNotFound, err)
		return
	case err != nil:
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	app, ok := s.session.Remove(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("application %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Catalog().Products())
}

func (s *Server) handleDaysSocket(w http.ResponseWriter, r *http.Request) {
	first, err := json.Marshal(DayMessage{Type: "day", Day: s.ctrl().CurrentDay()})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.hub.serve(w, r, first)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[server] encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
