package order

type OrderToCreateDTO struct {
	UserID uint64 `validate:"required"`

	DepartureCityID uint64 `validate:"required"`
	ArrivalCityID   uint64 `validate:"required"`

	SenderFullname    string `validate:"required,max=100"`
	RecipientFullname string `validate:"required,max=100"`

	DirectTake        bool
	DirectTakeAddress string `validate:"max=250"`

	DirectDeliver        bool
	DirectDeliverAddress string `validate:"max=250"`

	DepartureDate string `validate:"required,date_YYYY_MM_DD"`

	CargoType string `validate:"required,cargo_type"`

	CargoLen   string `validate:"required,positive_decimal"`
	CargoWidth string `validate:"required,positive_decimal"`
	CargoDepth string `validate:"required,positive_decimal"`

	CargoWeight    string `validate:"required,positive_decimal"`
	InsurancePrice string `validate:"required,positive_decimal"`

	AdditionalInfo string `validate:"max=5000"`
}
