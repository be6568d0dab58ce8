// Package remotetest provides an in-memory habit collection served over
// httptest, with knobs to make it misbehave.
package remotetest

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/limbo/streak/pkg/entity"
)

type Server struct {
	*httptest.Server

	mu     sync.Mutex
	habits map[int]entity.Habit
	nextID int
	// When non-zero every request answers with this status.
	FailStatus int
	// When set, GET /habits answers 200 with this body verbatim.
	ListBody string
	Requests []string
}

func New(t *testing.T, seed ...entity.Habit) *Server {
	t.Helper()
	s := &Server{habits: make(map[int]entity.Habit), nextID: 1}
	for _, h := range seed {
		s.habits[h.ID] = h
		if h.ID >= s.nextID {
			s.nextID = h.ID + 1
		}
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /habits", s.list)
	mux.HandleFunc("POST /habits", s.create)
	mux.HandleFunc("DELETE /habits/{id}", s.delete)
	s.Server = httptest.NewServer(s.record(mux))
	t.Cleanup(s.Close)
	return s
}

// SetNextID makes the next created habit get id.
func (s *Server) SetNextID(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = id
}

func (s *Server) Habits() []entity.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.Requests = append(s.Requests, r.Method+" "+r.URL.Path)
		fail := s.FailStatus
		s.mu.Unlock()
		if fail != 0 {
			w.WriteHeader(fail)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	raw := s.ListBody
	s.mu.Unlock()
	if raw != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(raw))
		return
	}
	writeJSON(w, http.StatusOK, s.Habits())
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var draft entity.HabitDraft
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&draft); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	h := draft.ToHabit(s.nextID)
	s.habits[h.ID] = h
	s.nextID++
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, h)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	_, ok := s.habits[id]
	delete(s.habits, id)
	s.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	sonic.ConfigDefault.NewEncoder(w).Encode(v)
}
