package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID     uint64
	UserID uint64

	DepartureCityID uint64
	ArrivalCityID   uint64

	SenderFullname    string
	RecipientFullname string

	DirectTake        bool
	DirectTakeAddress string

	DirectDeliver        bool
	DirectDeliverAddress string

	DepartureDate time.Time

	CargoType CargoType

	CargoLen   decimal.Decimal
	CargoWidth decimal.Decimal
	CargoDepth decimal.Decimal

	CargoWeight    decimal.Decimal
	InsurancePrice decimal.Decimal

	AdditionalInfo string
}

type CargoType string

const (
	PACK CargoType = "PACK"
	BARE CargoType = "BARE"
)

func ValidCargoTypes() []string {
	return []string{
		string(PACK),
		string(BARE),
	}
}

func IsValidCargoType(t string) bool {
	for _, validType := range ValidCargoTypes() {
		if validType == t {
			return true
		}
	}
	return false
}

var cubicCmInCubicM = decimal.NewFromInt(1_000_000)

// CargoVolume returns the cargo volume in m^3, derived from the three
// dimensions in centimeters. The cm^3 product is rounded to 2 places
// before scaling to m^3; rounding after scaling gives a different result.
// Ties round to even, so a .xx5 product goes to the nearest even cent.
func (o *Order) CargoVolume() decimal.Decimal {
	return o.CargoLen.Mul(o.CargoWidth).Mul(o.CargoDepth).RoundBank(2).Div(cubicCmInCubicM)
}
