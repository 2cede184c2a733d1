package sending

import "cargodelivery.ru/cargo/internal/entity"

type SendingToCreateDTO struct {
	CompanyID uint64 `validate:"required"`

	DepartureWarehouseID uint64 `validate:"required"`
	DepartureDate        string `validate:"required,date_YYYY_MM_DD"`

	ArrivalWarehouseID uint64 `validate:"required"`
	ArrivalDate        string `validate:"required,date_YYYY_MM_DD"`

	TotalVolume string `validate:"required,positive_decimal"`
	TransportID uint64 `validate:"required"`
	PriceForM3  string `validate:"required,positive_decimal"`

	TransitPoints []TransitPointToCreateDTO `validate:"dive"`
}

type TransitPointToCreateDTO struct {
	TransportID        uint64 `validate:"required"`
	ArrivalDate        string `validate:"required,date_YYYY_MM_DD"`
	ArrivalWarehouseID uint64 `validate:"required"`
}

// SendingDetail bundles the sending with its derived attributes for the
// read side: attached orders, transit points, recomputed free volume.
type SendingDetail struct {
	Sending       *entity.Sending
	Orders        []entity.Order
	TransitPoints []entity.TransitPoint
}
