package application

import "cargodelivery.ru/cargo/internal/entity"

type ApplicationToCreateDTO struct {
	OrderID   uint64 `validate:"required"`
	SendingID uint64 `validate:"required"`
	Status    string `validate:"omitempty,application_status"`
	Info      string `validate:"max=1000"`
}

type ApplicationStatusUpdateDTO struct {
	Status string `validate:"required,application_status"`
	Info   string `validate:"max=1000"`
}

// ApplicationDetail carries the application with the order and sending
// it links, plus the derived price.
type ApplicationDetail struct {
	Application *entity.Application
	Order       *entity.Order
	Sending     *entity.Sending
	Price       float64
}
