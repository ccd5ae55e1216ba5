package eventService

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/clubhub/backend/internal/apperrors"
	"github.com/clubhub/backend/internal/logger"
	"github.com/clubhub/backend/internal/middleware"
	eventmodels "github.com/clubhub/backend/internal/models/events"
	models "github.com/clubhub/backend/internal/models/users"
)

// EventStore is the persistence surface the event workflow needs.
type EventStore interface {
	CreateEvent(ctx context.Context, event eventmodels.Event, organizerID int64) (int64, error)
	ListEvents(ctx context.Context) ([]eventmodels.EventSummary, error)
	GetEvent(ctx context.Context, eventID int64) (eventmodels.EventDetail, error)
	IsOrganizer(ctx context.Context, eventID, userID int64) (bool, error)
	AddVote(ctx context.Context, eventID, userID int64) error
	SetApproved(ctx context.Context, eventID int64) error
	AddRegistration(ctx context.Context, eventID, userID int64) error
	ListRegistrants(ctx context.Context, eventID int64) ([]eventmodels.Registrant, error)
	CompleteEvent(ctx context.Context, eventID int64, winnerName, postEventDescription string, photos []string) error
	DeleteEvent(ctx context.Context, eventID int64) error
}

// EventService handles event approval, voting and registration workflow
type EventService struct {
	Store EventStore
	Log   *logger.Logger
}

// CreateEventRequest represents the request body for event creation
type CreateEventRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	Location    string     `json:"location"`
}

// CompleteEventRequest carries the post-event fields. Empty winner or
// description leaves the stored value untouched.
type CompleteEventRequest struct {
	WinnerName           string   `json:"winner_name"`
	PostEventDescription string   `json:"post_event_description"`
	Photos               []string `json:"photos"`
}

// NewEventService initializes a new event service
func NewEventService(store EventStore) *EventService {
	return &EventService{
		Store: store,
		Log:   logger.NewLogger("event-service"),
	}
}

// CreateEvent proposes a new event with the requester as organizer. Events
// start unapproved with no votes or registrants.
func (es *EventService) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := middleware.UserFromContext(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Event name is required")
		return
	}

	eventID, err := es.Store.CreateEvent(ctx, eventmodels.Event{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
	}, claims.UserID)
	if err != nil {
		es.respondStoreError(w, err, "Failed to create event")
		return
	}

	event, err := es.Store.GetEvent(ctx, eventID)
	if err != nil {
		es.respondStoreError(w, err, "Failed to load created event")
		return
	}

	es.Log.Info("Event created", "event_id", eventID, "organizer_id", claims.UserID)
	respondWithJSON(w, http.StatusCreated, event)
}

// ListEvents returns every event. Public.
func (es *EventService) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := es.Store.ListEvents(r.Context())
	if err != nil {
		es.Log.Error("Failed to list events", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to get events")
		return
	}

	respondWithJSON(w, http.StatusOK, events)
}

// GetEvent returns one event with its voter and registrant sets. Public.
func (es *EventService) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromRequest(w, r)
	if !ok {
		return
	}

	event, err := es.Store.GetEvent(r.Context(), eventID)
	if err != nil {
		es.respondStoreError(w, err, "Failed to get event")
		return
	}

	respondWithJSON(w, http.StatusOK, event)
}

// Vote records one vote per user per event. The vote count is derived from
// the voter set, so the two can never diverge.
func (es *EventService) Vote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := middleware.UserFromContext(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	eventID, ok := eventIDFromRequest(w, r)
	if !ok {
		return
	}

	if _, err := es.Store.GetEvent(ctx, eventID); err != nil {
		es.respondStoreError(w, err, "Failed to load event")
		return
	}

	if err := es.Store.AddVote(ctx, eventID, claims.UserID); err != nil {
		es.respondStoreError(w, err, "Failed to record vote")
		return
	}

	event, err := es.Store.GetEvent(ctx, eventID)
	if err != nil {
		es.respondStoreError(w, err, "Failed to load event")
		return
	}

	es.Log.Info("Vote recorded", "event_id", eventID, "user_id", claims.UserID)
	respondWithJSON(w, http.StatusOK, event)
}

// Approve opens the event for registration. Approving an already-approved
// event succeeds silently. The admin gate sits in the route middleware.
func (es *EventService) Approve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	eventID, ok := eventIDFromRequest(w, r)
	if !ok {
		return
	}

	if _, err := es.Store.GetEvent(ctx, eventID); err != nil {
		es.respondStoreError(w, err, "Failed to load event")
		return
	}

	if err := es.Store.SetApproved(ctx, eventID); err != nil {
		es.respondStoreError(w, err, "Failed to approve event")
		return
	}

	event, err := es.Store.GetEvent(ctx, eventID)
	if err != nil {
		es.respondStoreError(w, err, "Failed to load event")
		return
	}

	es.Log.Info("Event approved", "event_id", eventID)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Event approved successfully",
		"event":   event,
	})
}

// Register adds the requester to an approved event, once.
func (es *EventService) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := middleware.UserFromContext(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	eventID, ok := eventIDFromRequest(w, r)
	if !ok {
		return
	}

	if _, err := es.Store.GetEvent(ctx, eventID); err != nil {
		es.respondStoreError(w, err, "Failed to load event")
		return
	}

	if err := es.Store.AddRegistration(ctx, eventID, claims.UserID); err != nil {
		es.respondStoreError(w, err, "Failed to register for event")
		return
	}

	event, err := es.Store.GetEvent(ctx, eventID)
	if err != nil {
		es.respondStoreError(w, err, "Failed to load event")
		return
	}

	es.Log.Info("Registration recorded", "event_id", eventID, "user_id", claims.UserID)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Successfully registered for the event.",
		"event":   event,
	})
}

// ListRegistrants returns registered users resolved to display identity.
// The admin gate sits in the route middleware.
func (es *EventService) ListRegistrants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	eventID, ok := eventIDFromRequest(w, r)
	if !ok {
		return
	}

	if _, err := es.Store.GetEvent(ctx, eventID); err != nil {
		es.respondStoreError(w, err, "Failed to load event")
		return
	}

	registrants, err := es.Store.ListRegistrants(ctx, eventID)
	if err != nil {
		es.respondStoreError(w, err, "Failed to get registrants")
		return
	}

	respondWithJSON(w, http.StatusOK, registrants)
}

// Complete records post-event results. Organizers and admins only; a refused
// call leaves the event untouched.
func (es *EventService) Complete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := middleware.UserFromContext(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	eventID, ok := eventIDFromRequest(w, r)
	if !ok {
		return
	}

	var req CompleteEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := es.Store.GetEvent(ctx, eventID); err != nil {
		es.respondStoreError(w, err, "Failed to load event")
		return
	}

	if claims.Role != models.RoleAdmin {
		organizer, err := es.Store.IsOrganizer(ctx, eventID, claims.UserID)
		if err != nil {
			es.Log.Error("Failed to check organizer", "error", err, "event_id", eventID)
			respondWithError(w, http.StatusInternalServerError, "Failed to update event")
			return
		}
		if !organizer {
			respondWithError(w, http.StatusForbidden, "Only the event organizer or an admin can update this event.")
			return
		}
	}

	if err := es.Store.CompleteEvent(ctx, eventID, req.WinnerName, req.PostEventDescription, req.Photos); err != nil {
		es.respondStoreError(w, err, "Failed to update event")
		return
	}

	event, err := es.Store.GetEvent(ctx, eventID)
	if err != nil {
		es.respondStoreError(w, err, "Failed to load event")
		return
	}

	es.Log.Info("Event completed", "event_id", eventID, "updated_by", claims.UserID)
	respondWithJSON(w, http.StatusOK, event)
}

// DeleteEvent removes an event and its vote, registration, organizer and
// photo rows. The admin gate sits in the route middleware.
func (es *EventService) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := middleware.UserFromContext(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	eventID, ok := eventIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := es.Store.DeleteEvent(ctx, eventID); err != nil {
		es.respondStoreError(w, err, "Failed to delete event")
		return
	}

	es.Log.Audit("Event deleted", "event_id", eventID, "deleted_by", claims.UserID)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}

func (es *EventService) respondStoreError(w http.ResponseWriter, err error, fallback string) {
	code := apperrors.HTTPStatus(err)
	if code == http.StatusInternalServerError {
		es.Log.Error(fallback, "error", err)
		respondWithError(w, code, fallback)
		return
	}
	respondWithError(w, code, apperrors.Message(err))
}

func eventIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	eventID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid event ID")
		return 0, false
	}
	return eventID, true
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
