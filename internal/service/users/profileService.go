package profileService

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/clubhub/backend/internal/apperrors"
	"github.com/clubhub/backend/internal/logger"
	"github.com/clubhub/backend/internal/middleware"
	eventmodels "github.com/clubhub/backend/internal/models/events"
	teammodels "github.com/clubhub/backend/internal/models/teams"
	models "github.com/clubhub/backend/internal/models/users"
)

// ProfileStore is the persistence surface the profile endpoints need.
type ProfileStore interface {
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
	SetAvatar(ctx context.Context, userID int64, avatar string) error
	GetUserTeams(ctx context.Context, userID int64) ([]teammodels.Team, error)
	GetRegisteredEvents(ctx context.Context, userID int64) ([]eventmodels.Event, error)
}

type ProfileService struct {
	Store ProfileStore
	Log   *logger.Logger
}

type updatePhotoRequest struct {
	Avatar string `json:"avatar"`
}

func NewProfileService(store ProfileStore) *ProfileService {
	return &ProfileService{
		Store: store,
		Log:   logger.NewLogger("profile-service"),
	}
}

// UpdateProfilePhoto stores a new avatar reference for the caller. The
// reference is opaque; upload storage lives elsewhere.
func (profile *ProfileService) UpdateProfilePhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := middleware.UserFromContext(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var req updatePhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Avatar == "" {
		respondWithError(w, http.StatusBadRequest, "No avatar reference supplied.")
		return
	}

	if err := profile.Store.SetAvatar(ctx, claims.UserID, req.Avatar); err != nil {
		profile.respondStoreError(w, err, "Failed to update profile photo")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Profile photo updated successfully.",
		"avatar":  req.Avatar,
	})
}

// GetMyProfile returns the caller's profile with their teams and the
// approved events they registered for.
func (profile *ProfileService) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := middleware.UserFromContext(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	user, err := profile.Store.GetUserByID(ctx, claims.UserID)
	if err != nil {
		profile.respondStoreError(w, err, "Failed to load profile")
		return
	}
	user.Password = ""

	teams, err := profile.Store.GetUserTeams(ctx, claims.UserID)
	if err != nil {
		profile.respondStoreError(w, err, "Failed to load teams")
		return
	}

	registeredEvents, err := profile.Store.GetRegisteredEvents(ctx, claims.UserID)
	if err != nil {
		profile.respondStoreError(w, err, "Failed to load registered events")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user_profile":      user,
		"teams":             teams,
		"registered_events": registeredEvents,
	})
}

func (profile *ProfileService) respondStoreError(w http.ResponseWriter, err error, fallback string) {
	code := apperrors.HTTPStatus(err)
	if code == http.StatusInternalServerError {
		profile.Log.Error(fallback, "error", err)
		respondWithError(w, code, fallback)
		return
	}
	respondWithError(w, code, apperrors.Message(err))
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"message": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
