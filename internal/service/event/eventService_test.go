package eventService

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhub/backend/internal/apperrors"
	"github.com/clubhub/backend/internal/middleware"
	eventmodels "github.com/clubhub/backend/internal/models/events"
	models "github.com/clubhub/backend/internal/models/users"
)

// fakeEventStore keeps vote and registration sets in memory. The vote count
// is always derived from the voter set, matching the SQL store.
type fakeEventStore struct {
	events        map[int64]eventmodels.Event
	organizers    map[int64]map[int64]bool
	votes         map[int64]map[int64]bool
	registrations map[int64]map[int64]bool
	photos        map[int64][]string
	nextID        int64
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{
		events:        make(map[int64]eventmodels.Event),
		organizers:    make(map[int64]map[int64]bool),
		votes:         make(map[int64]map[int64]bool),
		registrations: make(map[int64]map[int64]bool),
		photos:        make(map[int64][]string),
		nextID:        1,
	}
}

func (f *fakeEventStore) CreateEvent(_ context.Context, event eventmodels.Event, organizerID int64) (int64, error) {
	event.ID = f.nextID
	f.nextID++
	f.events[event.ID] = event
	f.organizers[event.ID] = map[int64]bool{organizerID: true}
	f.votes[event.ID] = map[int64]bool{}
	f.registrations[event.ID] = map[int64]bool{}
	return event.ID, nil
}

func (f *fakeEventStore) ListEvents(_ context.Context) ([]eventmodels.EventSummary, error) {
	summaries := []eventmodels.EventSummary{}
	for id, e := range f.events {
		e.Votes = len(f.votes[id])
		summaries = append(summaries, eventmodels.EventSummary{Event: e, Registrations: len(f.registrations[id])})
	}
	return summaries, nil
}

func (f *fakeEventStore) GetEvent(_ context.Context, eventID int64) (eventmodels.EventDetail, error) {
	event, ok := f.events[eventID]
	if !ok {
		return eventmodels.EventDetail{}, apperrors.ErrEventNotFound
	}
	event.Votes = len(f.votes[eventID])

	detail := eventmodels.EventDetail{
		Event:           event,
		VotedBy:         []int64{},
		RegisteredUsers: []int64{},
		Photos:          append([]string{}, f.photos[eventID]...),
	}
	for userID := range f.votes[eventID] {
		detail.VotedBy = append(detail.VotedBy, userID)
	}
	for userID := range f.registrations[eventID] {
		detail.RegisteredUsers = append(detail.RegisteredUsers, userID)
	}
	return detail, nil
}

func (f *fakeEventStore) IsOrganizer(_ context.Context, eventID, userID int64) (bool, error) {
	return f.organizers[eventID][userID], nil
}

func (f *fakeEventStore) AddVote(_ context.Context, eventID, userID int64) error {
	if f.votes[eventID][userID] {
		return apperrors.ErrAlreadyVoted
	}
	f.votes[eventID][userID] = true
	return nil
}

func (f *fakeEventStore) SetApproved(_ context.Context, eventID int64) error {
	event := f.events[eventID]
	event.Approved = true
	f.events[eventID] = event
	return nil
}

func (f *fakeEventStore) AddRegistration(_ context.Context, eventID, userID int64) error {
	if f.registrations[eventID][userID] {
		return apperrors.ErrAlreadyRegistered
	}
	if !f.events[eventID].Approved {
		return apperrors.ErrNotApproved
	}
	f.registrations[eventID][userID] = true
	return nil
}

func (f *fakeEventStore) ListRegistrants(_ context.Context, eventID int64) ([]eventmodels.Registrant, error) {
	registrants := []eventmodels.Registrant{}
	for userID := range f.registrations[eventID] {
		registrants = append(registrants, eventmodels.Registrant{UserID: userID})
	}
	return registrants, nil
}

func (f *fakeEventStore) CompleteEvent(_ context.Context, eventID int64, winnerName, postEventDescription string, photos []string) error {
	event := f.events[eventID]
	if winnerName != "" {
		event.WinnerName = winnerName
	}
	if postEventDescription != "" {
		event.PostEventDescription = postEventDescription
	}
	f.events[eventID] = event
	f.photos[eventID] = append(f.photos[eventID], photos...)
	return nil
}

func (f *fakeEventStore) DeleteEvent(_ context.Context, eventID int64) error {
	if _, ok := f.events[eventID]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(f.events, eventID)
	delete(f.organizers, eventID)
	delete(f.votes, eventID)
	delete(f.registrations, eventID)
	delete(f.photos, eventID)
	return nil
}

func doEventRequest(handler http.HandlerFunc, userID int64, role models.Role, eventID int64, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(http.MethodPost, "/events", &buf)
	if eventID != 0 {
		req = mux.SetURLVars(req, map[string]string{"id": strconv.FormatInt(eventID, 10)})
	}
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, middleware.UserClaims{UserID: userID, Role: role})
	req = req.WithContext(ctx)

	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func responseMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body["message"]
}

func createEvent(t *testing.T, store *fakeEventStore, name string, organizerID int64) int64 {
	t.Helper()
	eventID, err := store.CreateEvent(context.Background(), eventmodels.Event{Name: name}, organizerID)
	require.NoError(t, err)
	return eventID
}

func TestCreateEventDefaults(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store)

	w := doEventRequest(svc.CreateEvent, 1, models.RoleMember, 0, CreateEventRequest{Name: "Hack Night"})
	require.Equal(t, http.StatusCreated, w.Code)

	var detail eventmodels.EventDetail
	require.NoError(t, json.NewDecoder(w.Body).Decode(&detail))
	assert.Equal(t, "Hack Night", detail.Name)
	assert.False(t, detail.Approved)
	assert.Equal(t, 0, detail.Votes)
	assert.Empty(t, detail.VotedBy)
	assert.Empty(t, detail.RegisteredUsers)
	assert.True(t, store.organizers[detail.ID][1], "creator should be an organizer")
}

func TestVoteOncePerUser(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store)
	eventID := createEvent(t, store, "Hack Night", 1)

	w := doEventRequest(svc.Vote, 2, models.RoleMember, eventID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail eventmodels.EventDetail
	require.NoError(t, json.NewDecoder(w.Body).Decode(&detail))
	assert.Equal(t, 1, detail.Votes)

	// Second vote by the same user fails and leaves the count unchanged.
	w = doEventRequest(svc.Vote, 2, models.RoleMember, eventID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrAlreadyVoted.Error(), responseMessage(t, w))
	assert.Len(t, store.votes[eventID], 1)
}

func TestVoteCountMatchesVoters(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store)
	eventID := createEvent(t, store, "Hack Night", 1)

	voters := []int64{2, 3, 4, 5}
	for _, userID := range voters {
		w := doEventRequest(svc.Vote, userID, models.RoleMember, eventID, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	// Repeat attempts from two of them.
	doEventRequest(svc.Vote, 2, models.RoleMember, eventID, nil)
	doEventRequest(svc.Vote, 4, models.RoleMember, eventID, nil)

	detail, err := store.GetEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, len(voters), detail.Votes)
	assert.Len(t, detail.VotedBy, detail.Votes)
}

func TestVoteEventNotFound(t *testing.T) {
	svc := NewEventService(newFakeEventStore())

	w := doEventRequest(svc.Vote, 2, models.RoleMember, 999, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ErrEventNotFound.Error(), responseMessage(t, w))
}

func TestRegistrationLifecycle(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store)
	eventID := createEvent(t, store, "Hack Night", 1)

	// Registration before approval is refused.
	w := doEventRequest(svc.Register, 3, models.RoleMember, eventID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrNotApproved.Error(), responseMessage(t, w))

	w = doEventRequest(svc.Approve, 9, models.RoleAdmin, eventID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doEventRequest(svc.Register, 3, models.RoleMember, eventID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doEventRequest(svc.Register, 3, models.RoleMember, eventID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrAlreadyRegistered.Error(), responseMessage(t, w))
}

func TestApproveIsIdempotent(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store)
	eventID := createEvent(t, store, "Hack Night", 1)

	w := doEventRequest(svc.Approve, 9, models.RoleAdmin, eventID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Re-approving succeeds silently with no error.
	w = doEventRequest(svc.Approve, 9, models.RoleAdmin, eventID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.events[eventID].Approved)
}

func TestApproveEventNotFound(t *testing.T) {
	svc := NewEventService(newFakeEventStore())

	w := doEventRequest(svc.Approve, 9, models.RoleAdmin, 999, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompleteByNonOrganizerForbidden(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store)
	eventID := createEvent(t, store, "Hack Night", 1)

	w := doEventRequest(svc.Complete, 5, models.RoleMember, eventID,
		CompleteEventRequest{WinnerName: "Team Rocket", Photos: []string{"p1.jpg"}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// State unchanged.
	assert.Empty(t, store.events[eventID].WinnerName)
	assert.Empty(t, store.photos[eventID])
}

func TestCompleteByOrganizerAndAdmin(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store)
	eventID := createEvent(t, store, "Hack Night", 1)

	w := doEventRequest(svc.Complete, 1, models.RoleMember, eventID,
		CompleteEventRequest{WinnerName: "Team Rocket", Photos: []string{"p1.jpg"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Team Rocket", store.events[eventID].WinnerName)

	// Admin may complete without being an organizer; photos append.
	w = doEventRequest(svc.Complete, 9, models.RoleAdmin, eventID,
		CompleteEventRequest{PostEventDescription: "Great turnout", Photos: []string{"p2.jpg"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"p1.jpg", "p2.jpg"}, store.photos[eventID])
}

func TestCompleteKeepsPriorValuesWhenEmpty(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store)
	eventID := createEvent(t, store, "Hack Night", 1)

	w := doEventRequest(svc.Complete, 1, models.RoleMember, eventID,
		CompleteEventRequest{WinnerName: "Team Rocket", PostEventDescription: "Fun"})
	require.Equal(t, http.StatusOK, w.Code)

	// Empty fields leave the stored values untouched.
	w = doEventRequest(svc.Complete, 1, models.RoleMember, eventID,
		CompleteEventRequest{Photos: []string{"late.jpg"}})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "Team Rocket", store.events[eventID].WinnerName)
	assert.Equal(t, "Fun", store.events[eventID].PostEventDescription)
	assert.Equal(t, []string{"late.jpg"}, store.photos[eventID])
}

func TestDeleteEvent(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store)
	eventID := createEvent(t, store, "Hack Night", 1)

	w := doEventRequest(svc.DeleteEvent, 9, models.RoleAdmin, eventID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doEventRequest(svc.DeleteEvent, 9, models.RoleAdmin, eventID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
