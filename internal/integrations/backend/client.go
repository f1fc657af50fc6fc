package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент REST бэкенда (источник истины для бронирований, предложений и платежей)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента бэкенда
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListReservations получает все бронирования
func (c *Client) ListReservations(ctx context.Context) ([]*domain.Reservation, error) {
	var items []Reservation
	if err := c.do(ctx, http.MethodGet, "/reservation", nil, &items); err != nil {
		return nil, err
	}

	result := make([]*domain.Reservation, 0, len(items))
	legacy := 0
	for i := range items {
		if items[i].Statut.Legacy {
			legacy++
		}
		result = append(result, items[i].ToDomain())
	}

	if legacy > 0 {
		c.log.Warn("Backend returned %d reservations with legacy or invalid statut, treated as %s",
			legacy, domain.ReservationUnknown)
	}

	return result, nil
}

// GetReservation получает бронирование по ID
func (c *Client) GetReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	var item Reservation
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/reservation/%d", id), nil, &item); err != nil {
		return nil, err
	}
	if item.Statut.Legacy {
		c.log.Warn("Backend reservation id=%d has legacy or invalid statut", id)
	}
	return item.ToDomain(), nil
}

// CreateReservation создает бронирование, бэкенд назначает ID
func (c *Client) CreateReservation(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	var created Reservation
	if err := c.do(ctx, http.MethodPost, "/reservation", newCreateReservationRequest(reservation), &created); err != nil {
		return nil, err
	}
	if created.ID == 0 {
		return nil, fmt.Errorf("%w: created reservation has no id", ErrInvalidResponse)
	}
	return created.ToDomain(), nil
}

// ListOffers получает все предложения
func (c *Client) ListOffers(ctx context.Context) ([]*domain.Offer, error) {
	var items []Offre
	if err := c.do(ctx, http.MethodGet, "/offre", nil, &items); err != nil {
		return nil, err
	}

	result := make([]*domain.Offer, 0, len(items))
	for i := range items {
		result = append(result, items[i].ToDomain())
	}
	return result, nil
}

// GetOffer получает предложение по ID
func (c *Client) GetOffer(ctx context.Context, id int64) (*domain.Offer, error) {
	var item Offre
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/offre/%d", id), nil, &item); err != nil {
		return nil, err
	}
	return item.ToDomain(), nil
}

// ListPayments получает все платежи
func (c *Client) ListPayments(ctx context.Context) ([]*domain.Payment, error) {
	var items []Payement
	if err := c.do(ctx, http.MethodGet, "/payement", nil, &items); err != nil {
		return nil, err
	}

	result := make([]*domain.Payment, 0, len(items))
	for i := range items {
		result = append(result, items[i].ToDomain())
	}
	return result, nil
}

// GetPayment получает платеж по ID
func (c *Client) GetPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	var item Payement
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/payement/%d", id), nil, &item); err != nil {
		return nil, err
	}
	return item.ToDomain(), nil
}

// GetPaymentStatus перепроверяет статус платежа у платежного шлюза через бэкенд
func (c *Client) GetPaymentStatus(ctx context.Context, id int64) (domain.PaymentStatus, error) {
	var resp PayementStatusResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/payement/%d/status", id), nil, &resp); err != nil {
		return "", err
	}
	if resp.Status == "" {
		return "", fmt.Errorf("%w: empty payment status", ErrInvalidResponse)
	}
	return domain.PaymentStatus(strings.ToUpper(strings.TrimSpace(resp.Status))), nil
}

// CreatePayment создает платеж и возвращает клиентский секрет шлюза
func (c *Client) CreatePayment(ctx context.Context, input CreatePaymentInput) (*domain.PaymentIntent, error) {
	body := &CreatePayementRequest{
		Montant:       input.Amount,
		ReservationID: input.ReservationID,
		UtilisateurID: input.UserID,
		ModePayement:  input.Method,
		Description:   input.Description,
	}

	var resp CreatePayementResponse
	if err := c.do(ctx, http.MethodPost, "/payement", body, &resp); err != nil {
		return nil, err
	}
	if resp.PayementID == 0 || resp.ClientSecret == "" {
		return nil, fmt.Errorf("%w: incomplete payment intent", ErrInvalidResponse)
	}

	return &domain.PaymentIntent{PaymentID: resp.PayementID, ClientSecret: resp.ClientSecret}, nil
}

// ConfirmPayment уведомляет бэкенд об успешной оплате
// Бэкенд идемпотентен по gatewayConfirmationId
func (c *Client) ConfirmPayment(ctx context.Context, reservationID int64, gatewayConfirmationID string) error {
	body := &ConfirmPayementRequest{
		ReservationID:         reservationID,
		GatewayConfirmationID: gatewayConfirmationID,
	}
	return c.do(ctx, http.MethodPost, "/payement/confirm", body, nil)
}

// ListMessages получает все сообщения
func (c *Client) ListMessages(ctx context.Context) ([]*domain.Message, error) {
	var items []Message
	if err := c.do(ctx, http.MethodGet, "/message", nil, &items); err != nil {
		return nil, err
	}

	result := make([]*domain.Message, 0, len(items))
	for i := range items {
		result = append(result, items[i].ToDomain())
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusConflict,
		resp.StatusCode == http.StatusUnprocessableEntity:
		return &RejectedError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	case resp.StatusCode >= 500:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s %s: status %d: %s", ErrUnavailable, method, path, resp.StatusCode, string(respBody))
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	// Парсим ответ
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response of %s %s: %v", ErrInvalidResponse, method, path, err)
	}

	return nil
}

func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(body)
	if err != nil || len(raw) == 0 {
		return ""
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(raw, &errResp); err == nil {
		if errResp.Message != "" {
			return errResp.Message
		}
		if errResp.Error != "" {
			return errResp.Error
		}
	}

	return string(bytes.TrimSpace(raw))
}
