package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Sending struct {
	ID        uint64
	CompanyID uint64

	DepartureWarehouseID uint64
	DepartureDate        time.Time

	ArrivalWarehouseID uint64
	ArrivalDate        time.Time

	TotalVolume decimal.Decimal
	TransportID uint64
	PriceForM3  decimal.Decimal
}

// TransitPoint is an intermediate stop of a multi-leg sending. Transport
// is the one used for the next leg of the route.
type TransitPoint struct {
	ID                 uint64
	SendingID          uint64
	TransportID        uint64
	ArrivalDate        time.Time
	ArrivalWarehouseID uint64
}

// FreeVolume is the total volume minus the rounded sum of cargo volumes
// of the attached orders. May go negative when the sending is over-booked;
// that is a signal value, not an error.
func (s *Sending) FreeVolume(orders []Order) decimal.Decimal {
	sum := decimal.Zero
	for i := range orders {
		sum = sum.Add(orders[i].CargoVolume())
	}
	return s.TotalVolume.Sub(sum.RoundBank(2))
}

func (s *Sending) Days() int {
	return int(s.ArrivalDate.Sub(s.DepartureDate).Hours() / 24)
}

func (s *Sending) DaysLabel() string {
	n := s.Days()
	return fmt.Sprintf("%d %s", n, DayWord(n))
}

// DayWord picks the Russian plural form of "день" for n.
// Form selection follows the standard rule: "день" for n%10==1 except
// n%100==11, "дня" for n%10 in 2..4 except n%100 in 10..19, "дней" otherwise.
func DayWord(n int) string {
	mod10 := ((n % 10) + 10) % 10
	mod100 := ((n % 100) + 100) % 100

	switch {
	case mod10 == 1 && mod100 != 11:
		return "день"
	case 2 <= mod10 && mod10 <= 4 && (mod100 < 10 || mod100 >= 20):
		return "дня"
	default:
		return "дней"
	}
}
