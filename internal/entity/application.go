package entity

import "math"

type Application struct {
	ID        uint64
	OrderID   uint64
	SendingID uint64
	Status    ApplicationStatus
	Info      string
}

type ApplicationStatus string

const (
	WAIT ApplicationStatus = "WAIT"
	CONF ApplicationStatus = "CONF"
	DECL ApplicationStatus = "DECL"
)

func ValidApplicationStatuses() []string {
	return []string{
		string(WAIT),
		string(CONF),
		string(DECL),
	}
}

func IsValidApplicationStatus(s string) bool {
	for _, validStatus := range ValidApplicationStatuses() {
		if validStatus == s {
			return true
		}
	}
	return false
}

func (s ApplicationStatus) Label() string {
	switch s {
	case WAIT:
		return "Ожидается подтверждение"
	case CONF:
		return "Подтверждено"
	case DECL:
		return "Отклонено"
	default:
		return ""
	}
}

// Price is the order volume times the sending price per m^3, rounded to
// 2 places. Both operands pass through float64 before multiplying.
func (a *Application) Price(order *Order, sending *Sending) float64 {
	p := order.CargoVolume().InexactFloat64() * sending.PriceForM3.InexactFloat64()
	return math.Round(p*100) / 100
}
