package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, nopLogger{})
}

func TestClient_ListReservations_TolerantDecoding(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /reservation", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "statut": "EN_ATTENTE", "dateReservation": "2024-01-01T10:00:00", "nombrePers": 2, "utilisateurId": 5, "offreId": 9},
			{"id": 2, "statut": "CONFIRMEE", "dateReservation": "2024-01-02T10:00:00.000Z", "dateExpiration": "2024-01-03", "offreId": 9},
			{"id": 3, "statut": false, "dateReservation": "not a date", "offre": {"id": 9, "titreOffre": "Circuit Sud"}},
			{"id": 4, "dateReservation": null, "dateExpiration": null}
		]`))
	})

	client := newTestClient(t, mux)

	reservations, err := client.ListReservations(context.Background())
	require.NoError(t, err)
	require.Len(t, reservations, 4)

	assert.Equal(t, domain.ReservationPending, reservations[0].Status)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), reservations[0].ReservedAt)
	assert.Equal(t, 2, reservations[0].PersonCount)
	assert.Nil(t, reservations[0].ExpiresAt)

	require.NotNil(t, reservations[1].ExpiresAt)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), *reservations[1].ExpiresAt)

	assert.Equal(t, domain.ReservationUnknown, reservations[2].Status)
	assert.True(t, reservations[2].ReservedAt.IsZero())
	assert.Equal(t, "Circuit Sud", reservations[2].OfferTitle)

	assert.Equal(t, domain.ReservationUnknown, reservations[3].Status)
	assert.Nil(t, reservations[3].ExpiresAt)
}

func TestClient_CreateReservation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /reservation", func(w http.ResponseWriter, r *http.Request) {
		var body CreateReservationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		assert.Equal(t, int64(9), body.OffreID)
		assert.Equal(t, 2, body.NombrePers)
		assert.Equal(t, "EN_ATTENTE", body.Statut)
		assert.Equal(t, 300.0, body.MontantTotal)
		assert.NotEmpty(t, body.DateExpiration)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 42, "statut": "EN_ATTENTE", "nombrePers": 2, "offreId": 9, "utilisateurId": 5,
			"dateReservation": "2024-06-01T09:00:00Z", "montantTotal": 300}`))
	})

	client := newTestClient(t, mux)

	reservedAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	expiresAt := reservedAt.Add(domain.ReservationTTL)
	created, err := client.CreateReservation(context.Background(), &domain.Reservation{
		Status:         domain.ReservationPending,
		ReservedAt:     reservedAt,
		ExpiresAt:      &expiresAt,
		PersonCount:    2,
		PricePerPerson: 150,
		TotalAmount:    300,
		UserID:         5,
		OfferID:        9,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, reservedAt, created.ReservedAt)
}

func TestClient_ErrorMapping(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /offre/404", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("GET /offre/500", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("POST /reservation", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message": "Plus assez de places"}`))
	})

	client := newTestClient(t, mux)
	ctx := context.Background()

	_, err := client.GetOffer(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = client.GetOffer(ctx, 500)
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = client.ListOffers(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	mux.HandleFunc("GET /offre", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})
	_, err = client.ListOffers(ctx)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.CreateReservation(ctx, &domain.Reservation{Status: domain.ReservationPending})
	assert.ErrorIs(t, err, ErrRejected)
	message, ok := RejectionMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Plus assez de places", message)
}

func TestClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second, nopLogger{})

	_, err := client.ListPayments(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestClient_PaymentEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /payement", func(w http.ResponseWriter, r *http.Request) {
		var body CreatePayementRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 300.0, body.Montant)
		assert.Equal(t, int64(42), body.ReservationID)
		_, _ = w.Write([]byte(`{"clientSecret": "pi_secret", "payementId": 7}`))
	})
	mux.HandleFunc("GET /payement/7/status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "SUCCES"}`))
	})
	mux.HandleFunc("POST /payement/confirm", func(w http.ResponseWriter, r *http.Request) {
		var body ConfirmPayementRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(42), body.ReservationID)
		assert.Equal(t, "pi_123", body.GatewayConfirmationID)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /payement", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": 7, "montant": 300, "status": "succes", "reservationId": 42, "utilisateurId": 5, "date": "2024-06-01"}]`))
	})

	client := newTestClient(t, mux)
	ctx := context.Background()

	intent, err := client.CreatePayment(ctx, CreatePaymentInput{Amount: 300, ReservationID: 42, UserID: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(7), intent.PaymentID)
	assert.Equal(t, "pi_secret", intent.ClientSecret)

	status, err := client.GetPaymentStatus(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSucceeded, status)

	require.NoError(t, client.ConfirmPayment(ctx, 42, "pi_123"))

	payments, err := client.ListPayments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.True(t, payments[0].IsSucceeded())
}
