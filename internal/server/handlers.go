package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/monarchbot/arise/internal/domain"
	"github.com/monarchbot/arise/internal/logger"
)

var validate = validator.New()

type addXPRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type addContentRequest struct {
	ContentID string `json:"content_id" validate:"required,min=1,max=100"`
	Level     int    `json:"level" validate:"gte=0"`
	Tier      int    `json:"tier" validate:"gte=0,lte=5"`
	XP        int64  `json:"xp" validate:"gte=0"`
}

type grantAchievementRequest struct {
	AchievementID string `json:"achievement_id" validate:"required,min=1,max=100"`
	StatPoints    int64  `json:"stat_points" validate:"gte=0"`
}

// playerSummary is the read model returned by the player GET endpoint.
type playerSummary struct {
	ID          int64 `json:"id"`
	Level       int   `json:"level"`
	XP          int64 `json:"xp"`
	StatPoints  int64 `json:"stat_points"`
	SkillPoints int64 `json:"skill_points"`
	Attack      int   `json:"attack"`
	Defense     int   `json:"defense"`
	HP          int   `json:"hp"`
	MP          int   `json:"mp"`
	Precision   int   `json:"precision"`
	Gold        int64 `json:"gold"`
	Items       int   `json:"items"`
	Hunters     int   `json:"hunters"`
	Shadows     int   `json:"shadows"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := s.dbPool.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	p, err := s.playerService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, playerSummary{
		ID:          p.ID,
		Level:       p.Level,
		XP:          p.XP,
		StatPoints:  p.StatPoints,
		SkillPoints: p.SkillPoints,
		Attack:      p.Attack,
		Defense:     p.Defense,
		HP:          p.HP,
		MP:          p.MP,
		Precision:   p.Precision,
		Gold:        p.Gold,
		Items:       p.Inventory.Len(),
		Hunters:     p.Hunters.Len(),
		Shadows:     len(p.Shadows),
	})
}

func (s *Server) handlePurgePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	if err := s.playerService.Purge(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "purged"})
}

func (s *Server) handleAddXP(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	var req addXPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	levels, err := s.playerService.AddXP(r.Context(), id, req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"levels_gained": levels})
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	s.handleAddContent(w, r, s.playerService.AddItem)
}

func (s *Server) handleAddHunter(w http.ResponseWriter, r *http.Request) {
	s.handleAddContent(w, r, s.playerService.AddHunter)
}

func (s *Server) handleAddContent(w http.ResponseWriter, r *http.Request, add func(ctx context.Context, id int64, contentID string, init domain.GearEntry) (bool, error)) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	var req addContentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	init := domain.GearEntry{Level: req.Level, Tier: req.Tier, XP: req.XP}
	duplicate, err := add(r.Context(), id, req.ContentID, init)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"duplicate": duplicate})
}

func (s *Server) handleGrantAchievement(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	var req grantAchievementRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := s.playerService.GrantAchievement(r.Context(), id, req.AchievementID, req.StatPoints); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "granted"})
}

func (s *Server) handleVacuum(w http.ResponseWriter, r *http.Request) {
	if err := s.playerRepo.Vacuum(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "vacuumed"})
}

func (s *Server) handleTableSize(w http.ResponseWriter, r *http.Request) {
	size, err := s.playerRepo.Size(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"bytes": size})
}

func playerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid player id"})
		return 0, false
	}
	return id, true
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotOwned), errors.Is(err, domain.ErrSlotUnknown):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrPlayerBusy):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrResetOnCooldown),
		errors.Is(err, domain.ErrLevelCapNotMet),
		errors.Is(err, domain.ErrTierMaxed),
		errors.Is(err, domain.ErrInsufficientShards),
		errors.Is(err, domain.ErrInsufficientCubes):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("Request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
