package confirm_payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/backend"
	confirmPayment "github.com/m04kA/SMC-TourBookingService/internal/usecase/confirm_payment"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *confirmPayment.Request) (*confirmPayment.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*confirmPayment.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// serve прогоняет запрос через роутер, чтобы mux.Vars были заполнены
func serve(h *Handler, paymentID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/payments/{paymentId}/confirm", h.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/"+paymentID+"/confirm", strings.NewReader(body))
	req = req.WithContext(middleware.WithSession(req.Context(), domain.Session{UserID: 42, Role: domain.RoleClient}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle_Outcomes(t *testing.T) {
	tests := []struct {
		name       string
		outcome    confirmPayment.Outcome
		wantStatus int
	}{
		{name: "confirmed", outcome: confirmPayment.OutcomeConfirmed, wantStatus: http.StatusOK},
		{name: "already confirmed", outcome: confirmPayment.OutcomeAlreadyConfirmed, wantStatus: http.StatusOK},
		{name: "in progress", outcome: confirmPayment.OutcomeInProgress, wantStatus: http.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &MockUseCase{}
			uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *confirmPayment.Request) bool {
				return req.PaymentID == 7 && req.ReservationID == 15 && req.GatewayConfirmationID == "pi_123"
			})).Return(&confirmPayment.Response{
				Outcome:   tt.outcome,
				PaymentID: 7,
				Reservation: &domain.Reservation{
					ID: 15, Status: domain.ReservationConfirmed, PersonCount: 2, TotalAmount: 300, OfferID: 3,
				},
			}, nil)

			w := serve(NewHandler(uc, nopLogger{}), "7", `{"reservationId": 15, "gatewayConfirmationId": "pi_123"}`)

			require.Equal(t, tt.wantStatus, w.Code)
			var resp ConfirmPaymentResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, string(tt.outcome), resp.Outcome)
			require.NotNil(t, resp.Reservation)
			assert.Equal(t, "CONFIRMEE", resp.Reservation.Status)
			uc.AssertExpectations(t)
		})
	}
}

func TestHandle_NotifyFailureIsBadGateway(t *testing.T) {
	uc := &MockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: %w", confirmPayment.ErrBackendNotifyFailed, backend.ErrUnavailable))

	w := serve(NewHandler(uc, nopLogger{}), "7", `{"reservationId": 15, "gatewayConfirmationId": "pi_123"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, msgBackendNotifyFailed, body.Error)
}

func TestHandle_Rejections(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: confirmPayment.ErrPaymentNotFound, wantStatus: http.StatusNotFound},
		{err: confirmPayment.ErrPaymentMismatch, wantStatus: http.StatusBadRequest},
		{err: confirmPayment.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{err: confirmPayment.ErrPaymentNotSucceeded, wantStatus: http.StatusConflict},
		{err: confirmPayment.ErrReservationCancelled, wantStatus: http.StatusConflict},
		{err: confirmPayment.ErrReservationExpired, wantStatus: http.StatusConflict},
		{err: confirmPayment.ErrReservationUnknownState, wantStatus: http.StatusConflict},
		{err: confirmPayment.ErrBackendUnavailable, wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &MockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(NewHandler(uc, nopLogger{}), "7", `{"reservationId": 15, "gatewayConfirmationId": "pi_123"}`)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandle_InvalidPaymentID(t *testing.T) {
	uc := &MockUseCase{}
	w := serve(NewHandler(uc, nopLogger{}), "abc", `{"reservationId": 15, "gatewayConfirmationId": "pi_123"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
