package notify

import (
	"context"
	"time"

	"cargodelivery.ru/cargo/internal/entity"
)

// Dispatcher hands a rendered notification to the delivery pipeline.
// Both calls are fire-and-forget from the caller's point of view: the
// message is enqueued, actual sending happens out-of-band with no
// delivery guarantee.
type Dispatcher interface {
	Send(ctx context.Context, subject, plainBody, from, to, htmlBody string) error
	SendMany(ctx context.Context, subject, plainBody, from string, to []string, htmlBody string) error
}

// Store access the notifiers need, satisfied by the pgsql repositories.

type OrderSource interface {
	FindById(ctx context.Context, id uint64) (*entity.Order, error)
	FindByRoute(ctx context.Context, departureCityID, arrivalCityID uint64, departureDate time.Time) (*[]entity.Order, error)
}

type ApplicationSource interface {
	FindById(ctx context.Context, id uint64) (*entity.Application, error)
	FindByOrder(ctx context.Context, orderID uint64) (*entity.Application, error)
}

type SendingSource interface {
	FindById(ctx context.Context, id uint64) (*entity.Sending, error)
}

type WarehouseSource interface {
	FindById(ctx context.Context, id uint64) (*entity.Warehouse, error)
}

type UserSource interface {
	FindById(ctx context.Context, id uint64) (*entity.User, error)
}

type WorkerSource interface {
	WorkerEmailsByCompany(ctx context.Context, companyID uint64) ([]string, error)
}
