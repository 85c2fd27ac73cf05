package backend

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"imkit/internal/domain"
	"imkit/internal/signer"
)

// Server is an in-memory IM backend.
type Server struct {
	verifier *signer.Verifier
	logger   *slog.Logger

	mu            sync.RWMutex
	open          map[domain.ClientID]bool
	conversations map[domain.ConversationID]*domain.Conversation
	badges        map[domain.ClientID]int
}

// NewServer returns an empty backend. A nil verifier accepts unsigned actions.
func NewServer(verifier *signer.Verifier, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		verifier:      verifier,
		logger:        logger.With("component", "backend"),
		open:          make(map[domain.ClientID]bool),
		conversations: make(map[domain.ConversationID]*domain.Conversation),
		badges:        make(map[domain.ClientID]int),
	}
}

// Handler returns the HTTP API wrapped in the access log.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/sessions/open", s.handleOpen)
	mux.HandleFunc("POST /v1/sessions/close", s.handleClose)
	mux.HandleFunc("POST /v1/conversations", s.handleCreate)
	mux.HandleFunc("GET /v1/conversations/{id}", s.handleGet)
	mux.HandleFunc("POST /v1/conversations/{id}/invite", s.handleMembers(domain.ActionAdd))
	mux.HandleFunc("POST /v1/conversations/{id}/kick", s.handleMembers(domain.ActionRemove))
	mux.HandleFunc("POST /v1/badge", s.handleBadge)
	return s.accessLog(mux)
}

// Badge reports the last badge count synced for clientID.
func (s *Server) Badge(clientID domain.ClientID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.badges[clientID]
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if !decode(w, r, &req) {
		return
	}
	if req.ClientID == "" {
		writeError(w, http.StatusBadRequest, "client_id required")
		return
	}
	if !s.verify(w, req.Signature, signer.Action{ClientID: req.ClientID, Action: domain.ActionOpen.String()}) {
		return
	}
	s.mu.Lock()
	s.open[req.ClientID] = true
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	var req closeRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	delete(s.open, req.ClientID)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !decode(w, r, &req) {
		return
	}
	c := req.Conversation
	if c.ID == "" {
		writeError(w, http.StatusBadRequest, "conversation id required")
		return
	}
	if !s.requireOpen(w, req.ClientID) {
		return
	}
	if !s.verify(w, req.Signature, signer.Action{
		ClientID:       req.ClientID,
		ConversationID: c.ID,
		Action:         domain.ActionStart.String(),
		ClientIDs:      c.Members,
	}) {
		return
	}

	conv := &domain.Conversation{
		ID:         c.ID,
		Creator:    req.ClientID,
		Members:    mergeMembers([]domain.ClientID{req.ClientID}, c.Members),
		Name:       c.Name,
		Attributes: c.Attributes,
	}
	s.mu.Lock()
	if _, exists := s.conversations[c.ID]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "conversation exists")
		return
	}
	s.conversations[c.ID] = conv
	out := cloneConversation(conv)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	conv, ok := s.conversations[r.PathValue("id")]
	var out domain.Conversation
	if ok {
		out = cloneConversation(conv)
	}
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMembers(kind domain.ActionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req membersRequest
		if !decode(w, r, &req) {
			return
		}
		id := r.PathValue("id")
		if len(req.ClientIDs) == 0 {
			writeError(w, http.StatusBadRequest, "client_ids required")
			return
		}
		if !s.requireOpen(w, req.ClientID) {
			return
		}
		if !s.verify(w, req.Signature, signer.Action{
			ClientID:       req.ClientID,
			ConversationID: id,
			Action:         kind.String(),
			ClientIDs:      req.ClientIDs,
		}) {
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		conv, ok := s.conversations[id]
		if !ok {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		if !slices.Contains(conv.Members, req.ClientID) {
			writeError(w, http.StatusForbidden, "not a member")
			return
		}
		if kind == domain.ActionAdd {
			conv.Members = mergeMembers(conv.Members, req.ClientIDs)
		} else {
			conv.Members = slices.DeleteFunc(conv.Members, func(m domain.ClientID) bool {
				return slices.Contains(req.ClientIDs, m)
			})
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleBadge(w http.ResponseWriter, r *http.Request) {
	var req badgeRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Count < 0 {
		writeError(w, http.StatusBadRequest, "negative badge count")
		return
	}
	if !s.requireOpen(w, req.ClientID) {
		return
	}
	s.mu.Lock()
	s.badges[req.ClientID] = req.Count
	s.mu.Unlock()
	s.logger.Debug("badge synced", "client", req.ClientID, "count", req.Count, "dev_push", req.DevPush)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) requireOpen(w http.ResponseWriter, clientID domain.ClientID) bool {
	s.mu.RLock()
	ok := s.open[clientID]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusForbidden, "client not open")
	}
	return ok
}

func (s *Server) verify(w http.ResponseWriter, sig *domain.Signature, a signer.Action) bool {
	if s.verifier == nil {
		return true
	}
	if err := s.verifier.Verify(sig, a); err != nil {
		s.logger.Warn("signature rejected", "client", a.ClientID, "action", a.Action, "error", err)
		writeError(w, http.StatusUnauthorized, err.Error())
		return false
	}
	return true
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_us", time.Since(start).Microseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func mergeMembers(base, add []domain.ClientID) []domain.ClientID {
	out := slices.Clone(base)
	for _, m := range add {
		if m != "" && !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	return out
}

func cloneConversation(c *domain.Conversation) domain.Conversation {
	out := *c
	out.Members = slices.Clone(c.Members)
	return out
}
