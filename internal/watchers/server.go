package watchers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/nberard/wanaplay-booker/internal/wanaplay"
)

// Server is the control-plane REST API: watcher definitions CRUD over the
// compose file, deployment trigger, and the bookings listing consumed by
// the notification bot.
type Server struct {
	ComposePath string
	Image       string
	Login       string
	Password    string

	Deployer *Deployer
	Client   *wanaplay.Client
	Log      *zap.Logger
}

type errorContainer struct {
	Errors []string `json:"errors"`
}

func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/bots", s.handleListBots).Methods(http.MethodGet)
	r.HandleFunc("/bots", s.handleCreateBot).Methods(http.MethodPost)
	r.HandleFunc("/bots/actions/deploy", s.handleDeploy).Methods(http.MethodPost)
	r.HandleFunc("/bots/{id}", s.handleGetBot).Methods(http.MethodGet)
	r.HandleFunc("/bots/{id}", s.handleRemoveBot).Methods(http.MethodDelete)
	r.HandleFunc("/bookings", s.handleBookings).Methods(http.MethodGet)
	return r
}

// watchers reads the compose file and annotates each definition with its
// deployment status.
func (s *Server) watchers() ([]Watcher, error) {
	compose, err := LoadCompose(s.ComposePath)
	if err != nil {
		return nil, err
	}
	out := make([]Watcher, 0, len(compose.Services))
	for _, name := range compose.Names() {
		w, err := WatcherFromService(name, compose.Services[name])
		if err != nil {
			s.Log.Warn("skipping unrecognized service", zap.String("service", name), zap.Error(err))
			continue
		}
		id, err := s.Deployer.ContainerID(name)
		if err != nil {
			s.Log.Warn("status check failed", zap.String("service", name), zap.Error(err))
		}
		if id != "" {
			w.Status = StatusRunning
		}
		out = append(out, w)
	}
	return out, nil
}

func (s *Server) handleListBots(w http.ResponseWriter, r *http.Request) {
	ws, err := s.watchers()
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

func (s *Server) handleGetBot(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["id"]
	ws, err := s.watchers()
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	for _, bot := range ws {
		if bot.Name == name {
			writeJSON(w, http.StatusOK, bot)
			return
		}
	}
	http.NotFound(w, r)
}

func (s *Server) handleCreateBot(w http.ResponseWriter, r *http.Request) {
	var bot Watcher
	if err := json.NewDecoder(r.Body).Decode(&bot); err != nil {
		writeJSON(w, http.StatusBadRequest, errorContainer{Errors: []string{"invalid payload"}})
		return
	}

	compose, err := LoadCompose(s.ComposePath)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	if _, exists := compose.Services[bot.Name]; exists {
		writeJSON(w, http.StatusBadRequest, errorContainer{Errors: []string{"watcher already exists"}})
		return
	}

	compose.Add(bot.Name, ServiceFor(bot, s.Image, s.Login, s.Password))
	if err := compose.Save(); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	bot.Status = StatusCreated
	w.Header().Set("Location", "/bots/"+bot.Name)
	writeJSON(w, http.StatusCreated, bot)
	s.Log.Info("watcher created", zap.String("name", bot.Name),
		zap.String("week_day", bot.WeekDay), zap.String("court_time", bot.CourtTime))
}

func (s *Server) handleRemoveBot(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["id"]
	compose, err := LoadCompose(s.ComposePath)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	if err := compose.Remove(name); err != nil {
		http.NotFound(w, r)
		return
	}
	if err := compose.Save(); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.Log.Info("watcher removed", zap.String("name", name))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeploy(w http.ResponseWriter, r *http.Request) {
	if err := s.Deployer.Up(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorContainer{Errors: []string{Stderr(err)}})
		return
	}
	s.Log.Info("deployed")
	w.Header().Set("Location", "/bots")
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleBookings(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Client.Authenticate(r.Context(), wanaplay.NewCredentials(s.Login, s.Password))
	if err != nil {
		s.fail(w, http.StatusBadGateway, err)
		return
	}
	bookings, err := sess.Bookings(r.Context())
	if err != nil {
		s.fail(w, http.StatusBadGateway, err)
		return
	}
	if bookings == nil {
		bookings = []wanaplay.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	s.Log.Error("request failed", zap.Error(err))
	writeJSON(w, status, errorContainer{Errors: []string{err.Error()}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
