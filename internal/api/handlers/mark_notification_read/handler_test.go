package mark_notification_read

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/service/notifications"
)

type MockMarker struct {
	mock.Mock
}

func (m *MockMarker) MarkNotificationRead(ctx context.Context, session domain.Session, id int64) error {
	return m.Called(ctx, session, id).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(marker *MockMarker, id string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/notifications/{notificationId}/read", NewHandler(marker, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/"+id+"/read", nil)
	req = req.WithContext(middleware.WithSession(req.Context(), domain.Session{UserID: 1, Role: domain.RoleAdmin}))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandle(t *testing.T) {
	t.Run("marked", func(t *testing.T) {
		marker := &MockMarker{}
		marker.On("MarkNotificationRead", mock.Anything, domain.Session{UserID: 1, Role: domain.RoleAdmin}, int64(10007)).Return(nil)

		w := serve(marker, "10007")

		assert.Equal(t, http.StatusNoContent, w.Code)
		marker.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		marker := &MockMarker{}
		w := serve(marker, "0")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		marker.AssertNotCalled(t, "MarkNotificationRead", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		marker := &MockMarker{}
		marker.On("MarkNotificationRead", mock.Anything, mock.Anything, int64(3)).
			Return(errors.Join(notifications.ErrReadStore, errors.New("redis down")))

		w := serve(marker, "3")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
