package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ksaxena149/personal-relationship-manager/internal/domain"
	"github.com/ksaxena149/personal-relationship-manager/internal/infra/auth"
	"github.com/ksaxena149/personal-relationship-manager/internal/infra/handler"
	"github.com/ksaxena149/personal-relationship-manager/internal/infra/storage"
	"github.com/ksaxena149/personal-relationship-manager/internal/notifier"
)

type testRig struct {
	router  *gin.Engine
	service *notifier.Service
	gateway *domain.MockReminderGateway
	store   storage.KeyValueStore
}

func setupTestRouter(t *testing.T) *testRig {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	gateway := domain.NewMockReminderGateway(ctrl)
	store := storage.NewMemoryStore()

	service, err := notifier.New(
		context.Background(),
		gateway,
		storage.NewAckRepository(store),
		notifier.NewSystemClock(),
		notifier.NopPlayer(),
		notifier.NopToastSink(),
		notifier.Config{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = service.Close()
	})

	h := handler.NewReminderHandler(service, auth.NewTokenSource(store))

	router := gin.New()
	api := router.Group("/api/v1")
	h.RegisterRoutes(api)

	return &testRig{
		router:  router,
		service: service,
		gateway: gateway,
		store:   store,
	}
}

func (r *testRig) loadCache(t *testing.T, reminders ...*domain.Reminder) {
	t.Helper()

	r.gateway.EXPECT().FetchReminders(gomock.Any()).Return(reminders, nil)
	r.service.Start(context.Background())
	r.service.Stop()
}

func makeReminder(t *testing.T, id int64, dueAt time.Time) *domain.Reminder {
	t.Helper()

	contact, err := domain.NewContactRef("Grace", "Hopper")
	require.NoError(t, err)

	reminder, err := domain.Reconstitute(domain.ReminderID(id), dueAt, "check in", &contact, false, false)
	require.NoError(t, err)

	return reminder
}

func TestGetStatus(t *testing.T) {
	rig := setupTestRouter(t)

	rig.loadCache(t,
		makeReminder(t, 1, time.Now().Add(-time.Hour)),
		makeReminder(t, 2, time.Now().Add(time.Hour)),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	rec := httptest.NewRecorder()

	rig.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.StatusResponse

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Running)
	assert.Equal(t, 2, resp.ReminderCount)
	assert.Equal(t, 1, resp.DueCount)
	assert.NotNil(t, resp.LastFetchedAt)
}

func TestListReminders(t *testing.T) {
	rig := setupTestRouter(t)

	rig.loadCache(t, makeReminder(t, 1, time.Now().Add(time.Hour)))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reminders", nil)
	rec := httptest.NewRecorder()

	rig.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.RemindersResponse

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, int64(1), resp.Reminders[0].ID)
	require.NotNil(t, resp.Reminders[0].Contact)
	assert.Equal(t, "Grace Hopper", resp.Reminders[0].Contact.DisplayName)
	assert.False(t, resp.Reminders[0].Acknowledged)
}

func TestListDueReminders(t *testing.T) {
	rig := setupTestRouter(t)

	rig.loadCache(t,
		makeReminder(t, 1, time.Now().Add(-time.Hour)),
		makeReminder(t, 2, time.Now().Add(time.Hour)),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reminders/due", nil)
	rec := httptest.NewRecorder()

	rig.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.RemindersResponse

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, int64(1), resp.Reminders[0].ID)
}

func TestMarkAsRead(t *testing.T) {
	rig := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reminders/5/read", nil)
	rec := httptest.NewRecorder()

	rig.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, rig.service.IsAcknowledged(5))
}

func TestMarkAsReadInvalidID(t *testing.T) {
	rig := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reminders/abc/read", nil)
	rec := httptest.NewRecorder()

	rig.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handler.ErrorResponse

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error)
}

func TestCompleteReminderSuccess(t *testing.T) {
	rig := setupTestRouter(t)

	rig.gateway.EXPECT().CompleteReminder(gomock.Any(), domain.ReminderID(3)).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reminders/3/complete", nil)
	rec := httptest.NewRecorder()

	rig.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCompleteReminderRemoteFailure(t *testing.T) {
	rig := setupTestRouter(t)

	rig.gateway.EXPECT().CompleteReminder(gomock.Any(), domain.ReminderID(3)).Return(errors.New("boom"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reminders/3/complete", nil)
	rec := httptest.NewRecorder()

	rig.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp handler.ErrorResponse

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "remote_error", resp.Error)
}

func TestDeleteReminder(t *testing.T) {
	rig := setupTestRouter(t)

	rig.loadCache(t, makeReminder(t, 4, time.Now().Add(-time.Hour)))
	rig.gateway.EXPECT().DeleteReminder(gomock.Any(), domain.ReminderID(4)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reminders/4", nil)
	rec := httptest.NewRecorder()

	rig.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rig.service.Reminders())
}

func TestResetAcknowledgements(t *testing.T) {
	rig := setupTestRouter(t)

	rig.service.MarkAsRead(context.Background(), 9)
	require.True(t, rig.service.IsAcknowledged(9))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/acknowledgements/reset", nil)
	rec := httptest.NewRecorder()

	rig.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, rig.service.IsAcknowledged(9))
}

func TestCheckerStartStop(t *testing.T) {
	rig := setupTestRouter(t)

	rig.gateway.EXPECT().FetchReminders(gomock.Any()).Return(nil, nil).AnyTimes()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checker/start", nil)
	rec := httptest.NewRecorder()

	rig.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, rig.service.IsRunning())

	req = httptest.NewRequest(http.MethodPost, "/api/v1/checker/stop", nil)
	rec = httptest.NewRecorder()

	rig.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, rig.service.IsRunning())
}

func TestSaveAndClearToken(t *testing.T) {
	rig := setupTestRouter(t)

	body, _ := json.Marshal(map[string]string{"token": "fresh-token"})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/auth/token", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	rig.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)

	value, ok, err := rig.store.Get(context.Background(), auth.TokenEntryName)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "fresh-token", value)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/auth/token", nil)
	rec = httptest.NewRecorder()

	rig.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)

	_, ok, err = rig.store.Get(context.Background(), auth.TokenEntryName)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveTokenValidation(t *testing.T) {
	rig := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/auth/token", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	rig.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
