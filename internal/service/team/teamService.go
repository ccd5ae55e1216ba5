package teamService

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/clubhub/backend/internal/apperrors"
	"github.com/clubhub/backend/internal/logger"
	"github.com/clubhub/backend/internal/middleware"
	teammodels "github.com/clubhub/backend/internal/models/teams"
)

// TeamStore is the persistence surface the team workflow needs. Every set
// mutation behind it is a single atomic statement or a transaction.
type TeamStore interface {
	CreateTeam(ctx context.Context, team teammodels.Team) (int64, error)
	GetTeam(ctx context.Context, teamID int64) (teammodels.Team, error)
	ListTeams(ctx context.Context) ([]teammodels.TeamDetail, error)
	IsMember(ctx context.Context, teamID, userID int64) (bool, error)
	AddJoinRequest(ctx context.Context, teamID, userID int64) error
	ApproveJoinRequest(ctx context.Context, teamID, userID int64) error
	RemoveJoinRequest(ctx context.Context, teamID, userID int64) error
	DeleteTeam(ctx context.Context, teamID int64) error
}

// TeamService handles team membership and join-request workflow
type TeamService struct {
	Store TeamStore
	Log   *logger.Logger
}

// CreateTeamRequest represents the request body for team creation
type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
}

// JoinDecisionRequest identifies the pending user a leader is deciding on.
type JoinDecisionRequest struct {
	UserID int64 `json:"user_id"`
}

// NewTeamService initializes a new team service
func NewTeamService(store TeamStore) *TeamService {
	return &TeamService{
		Store: store,
		Log:   logger.NewLogger("team-service"),
	}
}

// ListTeams returns every team with its membership sets resolved. Public.
func (ts *TeamService) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := ts.Store.ListTeams(r.Context())
	if err != nil {
		ts.Log.Error("Failed to list teams", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to get teams")
		return
	}

	respondWithJSON(w, http.StatusOK, teams)
}

// CreateTeam creates a team with the requester as leader and sole member.
func (ts *TeamService) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := middleware.UserFromContext(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var req CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Team name is required")
		return
	}

	teamID, err := ts.Store.CreateTeam(ctx, teammodels.Team{
		Name:        req.Name,
		Description: req.Description,
		Avatar:      req.Avatar,
		LeaderID:    claims.UserID,
	})
	if err != nil {
		ts.respondStoreError(w, err, "Failed to create team")
		return
	}

	team, err := ts.Store.GetTeam(ctx, teamID)
	if err != nil {
		ts.respondStoreError(w, err, "Failed to load created team")
		return
	}

	ts.Log.Info("Team created", "team_id", teamID, "leader_id", claims.UserID)
	respondWithJSON(w, http.StatusCreated, team)
}

// RequestJoin records the requester's intent to join. A member cannot
// request, and a duplicate request is rejected atomically.
func (ts *TeamService) RequestJoin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := middleware.UserFromContext(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	teamID, ok := teamIDFromRequest(w, r)
	if !ok {
		return
	}

	if _, err := ts.Store.GetTeam(ctx, teamID); err != nil {
		ts.respondStoreError(w, err, "Failed to load team")
		return
	}

	member, err := ts.Store.IsMember(ctx, teamID, claims.UserID)
	if err != nil {
		ts.Log.Error("Failed to check membership", "error", err, "team_id", teamID)
		respondWithError(w, http.StatusInternalServerError, "Failed to process join request")
		return
	}
	if member {
		respondWithError(w, http.StatusBadRequest, apperrors.ErrAlreadyMember.Error())
		return
	}

	if err := ts.Store.AddJoinRequest(ctx, teamID, claims.UserID); err != nil {
		ts.respondStoreError(w, err, "Failed to process join request")
		return
	}

	ts.Log.Info("Join requested", "team_id", teamID, "user_id", claims.UserID)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Join request submitted."})
}

// ApproveRequest moves a pending user into the member set. Leader only.
func (ts *TeamService) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	ts.decideRequest(w, r, true)
}

// RejectRequest drops a pending user. Leader only.
func (ts *TeamService) RejectRequest(w http.ResponseWriter, r *http.Request) {
	ts.decideRequest(w, r, false)
}

func (ts *TeamService) decideRequest(w http.ResponseWriter, r *http.Request, approve bool) {
	ctx := r.Context()

	claims, ok := middleware.UserFromContext(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	teamID, ok := teamIDFromRequest(w, r)
	if !ok {
		return
	}

	var req JoinDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	team, err := ts.Store.GetTeam(ctx, teamID)
	if err != nil {
		ts.respondStoreError(w, err, "Failed to load team")
		return
	}

	if team.LeaderID != claims.UserID {
		if approve {
			respondWithError(w, http.StatusForbidden, "Only the team leader can approve requests.")
		} else {
			respondWithError(w, http.StatusForbidden, "Only the team leader can reject requests.")
		}
		return
	}

	if approve {
		err = ts.Store.ApproveJoinRequest(ctx, teamID, req.UserID)
	} else {
		err = ts.Store.RemoveJoinRequest(ctx, teamID, req.UserID)
	}
	if err != nil {
		ts.respondStoreError(w, err, "Failed to update join request")
		return
	}

	ts.Log.Info("Join request decided", "team_id", teamID, "target_user_id", req.UserID, "approved", approve)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Join request updated."})
}

// DeleteTeam removes a team and every membership row with it. The admin gate
// sits in the route middleware.
func (ts *TeamService) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := middleware.UserFromContext(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	teamID, ok := teamIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := ts.Store.DeleteTeam(ctx, teamID); err != nil {
		ts.respondStoreError(w, err, "Failed to delete team")
		return
	}

	ts.Log.Audit("Team deleted", "team_id", teamID, "deleted_by", claims.UserID)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Team deleted successfully"})
}

func (ts *TeamService) respondStoreError(w http.ResponseWriter, err error, fallback string) {
	code := apperrors.HTTPStatus(err)
	if code == http.StatusInternalServerError {
		ts.Log.Error(fallback, "error", err)
		respondWithError(w, code, fallback)
		return
	}
	respondWithError(w, code, apperrors.Message(err))
}

func teamIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	teamID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid team ID")
		return 0, false
	}
	return teamID, true
}

// Helper functions for HTTP responses
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"message": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
