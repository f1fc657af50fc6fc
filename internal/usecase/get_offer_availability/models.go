package get_offer_availability

import (
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// Availability остаток мест по предложению на момент ComputedAt
type Availability struct {
	Offer           *domain.Offer
	NominalPlaces   int // Вместимость, хранимая бэкендом
	HeldPlaces      int // Места, занятые подтвержденными и неистекшими бронированиями
	RemainingPlaces int // max(NominalPlaces - HeldPlaces, 0)
	ComputedAt      time.Time
}
