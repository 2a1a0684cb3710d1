package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"svw.info/pipeword/internal/domain"
	"svw.info/pipeword/internal/puzzle"
	"svw.info/pipeword/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/map", h.handleMap)
	mux.HandleFunc("/api/start", h.handleStart)
	mux.HandleFunc("/api/random", h.handleRandom)
	mux.HandleFunc("/api/move", h.handleMove)
	mux.HandleFunc("/api/return", h.handleReturn)
	mux.HandleFunc("/api/check", h.handleCheck)
	mux.HandleFunc("/api/hint", h.handleHint)
	mux.HandleFunc("/api/abandon", h.handleAbandon)
}

// ---- Map ----

type mapResp struct {
	Map   usecase.MapState `json:"map"`
	Error string           `json:"error,omitempty"`
}

func (h *Handler) handleMap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodGet {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	st, err := h.UC.MapState(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(mapResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(mapResp{Map: st})
}

// ---- Start / Random ----

type startReq struct {
	Connection int   `json:"connection,omitempty"`
	Seed       int64 `json:"seed,omitempty"`
}

type startResp struct {
	Session   string              `json:"session,omitempty"`
	Word      string              `json:"word,omitempty"`
	Layout    domain.LayoutConfig `json:"layout,omitempty"`
	Route     []domain.Position   `json:"route,omitempty"`
	Fallback  bool                `json:"fallback,omitempty"`
	Start     *domain.Tile        `json:"start,omitempty"`
	Tray      []*domain.Tile      `json:"tray,omitempty"`
	Obstacles []domain.Position   `json:"obstacles,omitempty"`
	Error     string              `json:"error,omitempty"`
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req startReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(startResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	id, s, err := h.UC.Start(r.Context(), req.Connection, seed)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrLocked) {
			status = http.StatusConflict
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(startResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(sessionResponse(id, s))
}

func (h *Handler) handleRandom(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req startReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(startResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	id, s, err := h.UC.StartRandom(r.Context(), seed)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(startResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(sessionResponse(id, s))
}

func sessionResponse(id string, s *puzzle.Session) startResp {
	var obstacles []domain.Position
	for _, t := range s.Obstacles() {
		obstacles = append(obstacles, t.Pos)
	}
	tiles := s.Tiles()
	return startResp{
		Session:   id,
		Word:      s.Word,
		Layout:    s.Layout,
		Route:     s.FillOrder(),
		Fallback:  s.Fallback,
		Start:     tiles[0],
		Tray:      s.Tray(),
		Obstacles: obstacles,
	}
}

// ---- Move / Return ----

type moveReq struct {
	Session string `json:"session"`
	Tile    int    `json:"tile"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
}

type moveResp struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(moveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	err := h.UC.Move(r.Context(), req.Session, req.Tile, domain.Position{Row: req.Row, Col: req.Col})
	switch {
	case errors.Is(err, usecase.ErrUnknownSession):
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(moveResp{Error: err.Error()})
	case errors.Is(err, puzzle.ErrInvalidMove):
		// Rejected, not failed: the tile snaps back client-side.
		_ = json.NewEncoder(w).Encode(moveResp{OK: false, Error: err.Error()})
	case err != nil:
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(moveResp{Error: err.Error()})
	default:
		_ = json.NewEncoder(w).Encode(moveResp{OK: true})
	}
}

type returnReq struct {
	Session string `json:"session"`
	Tile    int    `json:"tile"`
}

func (h *Handler) handleReturn(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req returnReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(moveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	err := h.UC.ReturnTile(r.Context(), req.Session, req.Tile)
	switch {
	case errors.Is(err, usecase.ErrUnknownSession):
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(moveResp{Error: err.Error()})
	case err != nil:
		_ = json.NewEncoder(w).Encode(moveResp{OK: false, Error: err.Error()})
	default:
		_ = json.NewEncoder(w).Encode(moveResp{OK: true})
	}
}

// ---- Check ----

type checkReq struct {
	Session string `json:"session"`
}

type checkResp struct {
	Verdict   string            `json:"verdict,omitempty"`
	Candidate string            `json:"candidate,omitempty"`
	Missing   *domain.Position  `json:"missing,omitempty"`
	FillOrder []domain.Position `json:"fillOrder,omitempty"`
	MapSolved bool              `json:"mapSolved,omitempty"`
	Error     string            `json:"error,omitempty"`
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req checkReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(checkResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	res, err := h.UC.Check(r.Context(), req.Session)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrUnknownSession) {
			status = http.StatusNotFound
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(checkResp{Error: err.Error()})
		return
	}
	resp := checkResp{
		Verdict:   res.Verdict.String(),
		Candidate: res.Candidate,
		Missing:   res.Missing,
	}
	if res.Verdict == domain.Solved {
		if s, ok := h.UC.Session(req.Session); ok {
			// Route order drives the liquid-fill animation client-side.
			resp.FillOrder = s.FillOrder()
		}
		if h.UC.Map != nil {
			resp.MapSolved = h.UC.Map.Solved()
		}
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// ---- Hint ----

type hintReq struct {
	Session string `json:"session"`
}

type hintResp struct {
	Found bool        `json:"found"`
	Hint  domain.Hint `json:"hint,omitempty"`
	Error string      `json:"error,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req hintReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(hintResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	hh, found, err := h.UC.Hint(r.Context(), req.Session)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrUnknownSession) {
			status = http.StatusNotFound
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(hintResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(hintResp{Found: found, Hint: hh})
}

// ---- Abandon ----

type abandonReq struct {
	Session string `json:"session"`
}

type abandonResp struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleAbandon(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req abandonReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(abandonResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	h.UC.Abandon(req.Session)
	_ = json.NewEncoder(w).Encode(abandonResp{OK: true})
}
