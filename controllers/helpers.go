package controllers

import (
	"errors"
	"net/http"

	"coastsync-be/services"
	"coastsync-be/store"
	"coastsync-be/utils"
)

// Shared collaborators, wired once at startup so main can pick the
// storage backend
var (
	dataStore store.Store
	engine    *services.CleanupEngine
	rewards   *services.RewardsService
	analyzer  *analysisUtils.Analyzer
)

// Init wires the controllers to their collaborators
func Init(st store.Store, eng *services.CleanupEngine, rw *services.RewardsService, an *analysisUtils.Analyzer) {
	dataStore = st
	engine = eng
	rewards = rw
	analyzer = an
}

// statusForError maps engine errors onto HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrTaskNotFound), errors.Is(err, services.ErrTeamNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotTeamMember):
		return http.StatusForbidden
	case errors.Is(err, services.ErrTeamUnavailable),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrNoAssignedTeam),
		errors.Is(err, services.ErrTeamTooSmall):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
