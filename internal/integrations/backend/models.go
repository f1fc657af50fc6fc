package backend

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// Форматы дат, которые встречаются в ответах бэкенда
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000",
	domain.DateTimeFormat,
	domain.DateFormat,
}

// FlexibleTime дата бэкенда; нераспознанное значение декодируется в нулевое время
type FlexibleTime struct {
	time.Time
}

func (t *FlexibleTime) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		// null, число или объект: дата считается отсутствующей
		return nil
	}

	t.Time = parseDate(raw)
	return nil
}

func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// FlexibleStatus статус бронирования; строка или устаревшее булево значение
type FlexibleStatus struct {
	Status domain.ReservationStatus
	Legacy bool
}

func (s *FlexibleStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		s.Status = domain.ReservationUnknown
		s.Legacy = true
		return nil
	}

	s.Status = domain.ParseReservationStatus(raw)
	s.Legacy = s.Status == domain.ReservationUnknown
	return nil
}

// Reservation модель бронирования бэкенда
type Reservation struct {
	ID              int64          `json:"id"`
	NombrePers      int            `json:"nombrePers"`
	DateReservation FlexibleTime   `json:"dateReservation"`
	DateExpiration  *FlexibleTime  `json:"dateExpiration,omitempty"`
	PrixParPersonne float64        `json:"prixParPersonne"`
	MontantTotal    float64        `json:"montantTotal"`
	Statut          FlexibleStatus `json:"statut"`
	UtilisateurID   int64          `json:"utilisateurId"`
	OffreID         int64          `json:"offreId"`
	OffreTitre      string         `json:"offreTitre,omitempty"`
	Offre           *Offre         `json:"offre,omitempty"`
}

// ToDomain конвертирует модель бэкенда в доменную
func (r *Reservation) ToDomain() *domain.Reservation {
	res := &domain.Reservation{
		ID:             r.ID,
		Status:         r.Statut.Status,
		ReservedAt:     r.DateReservation.Time,
		PersonCount:    r.NombrePers,
		PricePerPerson: r.PrixParPersonne,
		TotalAmount:    r.MontantTotal,
		UserID:         r.UtilisateurID,
		OfferID:        r.OffreID,
		OfferTitle:     r.OffreTitre,
	}

	if res.Status == "" {
		res.Status = domain.ReservationUnknown
	}

	if r.DateExpiration != nil && !r.DateExpiration.IsZero() {
		expiresAt := r.DateExpiration.Time
		res.ExpiresAt = &expiresAt
	}

	if res.OfferTitle == "" && r.Offre != nil {
		res.OfferTitle = r.Offre.TitreOffre
	}

	return res
}

// CreateReservationRequest тело POST /reservation
type CreateReservationRequest struct {
	OffreID         int64   `json:"offreId"`
	NombrePers      int     `json:"nombrePers"`
	DateReservation string  `json:"dateReservation"`
	DateExpiration  string  `json:"dateExpiration,omitempty"`
	UtilisateurID   int64   `json:"utilisateurId"`
	PrixParPersonne float64 `json:"prixParPersonne"`
	MontantTotal    float64 `json:"montantTotal"`
	Statut          string  `json:"statut"`
}

func newCreateReservationRequest(r *domain.Reservation) *CreateReservationRequest {
	req := &CreateReservationRequest{
		OffreID:         r.OfferID,
		NombrePers:      r.PersonCount,
		DateReservation: r.ReservedAt.Format(time.RFC3339),
		UtilisateurID:   r.UserID,
		PrixParPersonne: r.PricePerPerson,
		MontantTotal:    r.TotalAmount,
		Statut:          string(r.Status),
	}
	if r.ExpiresAt != nil {
		req.DateExpiration = r.ExpiresAt.Format(time.RFC3339)
	}
	return req
}

// Offre модель предложения бэкенда
type Offre struct {
	ID              int64        `json:"id"`
	TitreOffre      string       `json:"titreOffre"`
	PrixParPers     float64      `json:"prixParPers"`
	DateDepart      FlexibleTime `json:"dateDepart"`
	DateRetour      FlexibleTime `json:"dateRetour"`
	Duree           int          `json:"duree"`
	PlaceDisponible int          `json:"placeDisponible"`
}

// ToDomain конвертирует модель бэкенда в доменную
func (o *Offre) ToDomain() *domain.Offer {
	return &domain.Offer{
		ID:              o.ID,
		Title:           o.TitreOffre,
		PlacesAvailable: o.PlaceDisponible,
		PricePerPerson:  o.PrixParPers,
		DepartureDate:   o.DateDepart.Time,
		ReturnDate:      o.DateRetour.Time,
		DurationDays:    o.Duree,
	}
}

// Payement модель платежа бэкенда
type Payement struct {
	ID            int64        `json:"id"`
	Montant       float64      `json:"montant"`
	Date          FlexibleTime `json:"date"`
	ModePayement  string       `json:"modePayement"`
	Status        string       `json:"status"`
	Description   string       `json:"description"`
	UtilisateurID int64        `json:"utilisateurId"`
	ReservationID int64        `json:"reservationId"`
}

// ToDomain конвертирует модель бэкенда в доменную
func (p *Payement) ToDomain() *domain.Payment {
	return &domain.Payment{
		ID:            p.ID,
		Amount:        p.Montant,
		Date:          p.Date.Time,
		Method:        p.ModePayement,
		Status:        domain.PaymentStatus(strings.ToUpper(strings.TrimSpace(p.Status))),
		ReservationID: p.ReservationID,
		UserID:        p.UtilisateurID,
		Description:   p.Description,
	}
}

// CreatePaymentInput данные для создания платежа
type CreatePaymentInput struct {
	Amount        float64
	ReservationID int64
	UserID        int64
	Method        string
	Description   string
}

// CreatePayementRequest тело POST /payement
type CreatePayementRequest struct {
	Montant       float64 `json:"montant"`
	ReservationID int64   `json:"reservationId"`
	UtilisateurID int64   `json:"utilisateurId"`
	ModePayement  string  `json:"modePayement,omitempty"`
	Description   string  `json:"description"`
}

// CreatePayementResponse ответ POST /payement
type CreatePayementResponse struct {
	ClientSecret string `json:"clientSecret"`
	PayementID   int64  `json:"payementId"`
}

// ConfirmPayementRequest тело POST /payement/confirm
type ConfirmPayementRequest struct {
	ReservationID         int64  `json:"reservationId"`
	GatewayConfirmationID string `json:"gatewayConfirmationId"`
}

// PayementStatusResponse ответ GET /payement/{id}/status
type PayementStatusResponse struct {
	Status string `json:"status"`
}

// Message модель сообщения бэкенда
type Message struct {
	ID             int64        `json:"id"`
	DateEnvoie     FlexibleTime `json:"dateEnvoie"`
	ContenuMessage string       `json:"contenuMessage"`
	ExpediteurID   int64        `json:"expediteurId"`
	DestinataireID int64        `json:"destinataireId"`
}

// ToDomain конвертирует модель бэкенда в доменную
func (m *Message) ToDomain() *domain.Message {
	return &domain.Message{
		ID:          m.ID,
		SentAt:      m.DateEnvoie.Time,
		Content:     m.ContenuMessage,
		SenderID:    m.ExpediteurID,
		RecipientID: m.DestinataireID,
	}
}

// ErrorResponse модель ошибки бэкенда
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
