package repositories

import (
	"context"
	"errors"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"cargodelivery.ru/cargo"
	"cargodelivery.ru/cargo/internal/entity"
)

var (
	ApplicationNotFoundError = &cargo.Error{Code: cargo.ENOTFOUND, Message: "Application not found"}
	ApplicationExistsError   = &cargo.Error{Code: cargo.ECONFLICT, Message: "Order already has an application"}
)

// @migration
type Application struct {
	ID uint64 `gorm:"primaryKey"`

	// An order has at most one application, ever.
	OrderID uint64 `gorm:"uniqueIndex"`
	Order   *Order `gorm:"foreignKey:OrderID"`

	SendingID uint64
	Sending   *Sending `gorm:"foreignKey:SendingID"`

	Status string `gorm:"default:WAIT"`
	Info   string
}

type ApplicationRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewApplicationRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *ApplicationRepo {
	return &ApplicationRepo{
		gorm:   grm,
		getter: getter,
	}
}

type ApplicationToCreateDTO struct {
	OrderID   uint64
	SendingID uint64
	Status    string
	Info      string
}

func (s *ApplicationRepo) Create(ctx context.Context, dto ApplicationToCreateDTO) (*entity.Application, error) {

	application := Application{
		OrderID:   dto.OrderID,
		SendingID: dto.SendingID,
		Status:    dto.Status,
		Info:      dto.Info,
	}

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).Create(&application).Error
	if err != nil {
		return nil, applicationCreateError(err)
	}

	return applicationToEntity(&application), nil
}

// Two concurrent writers race on the one-application-per-order
// constraint; the second one gets a conflict, not an overwrite.
func applicationCreateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ApplicationExistsError
	}

	return err
}

func (s *ApplicationRepo) FindById(ctx context.Context, id uint64) (*entity.Application, error) {

	var application Application

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).First(&application, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ApplicationNotFoundError
		}

		return nil, err
	}

	return applicationToEntity(&application), nil
}

// FindByOrder resolves the one-to-one order->application link. A missing
// application is an expected condition and is reported as (nil, nil).
func (s *ApplicationRepo) FindByOrder(ctx context.Context, orderID uint64) (*entity.Application, error) {

	var application Application

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return applicationToEntity(&application), nil
}

func (s *ApplicationRepo) UpdateStatus(ctx context.Context, id uint64, status, info string) (*entity.Application, error) {

	var application Application

	db := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx)

	err := db.First(&application, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ApplicationNotFoundError
		}

		return nil, err
	}

	application.Status = status
	if info != "" {
		application.Info = info
	}

	err = db.Save(&application).Error
	if err != nil {
		return nil, err
	}

	return applicationToEntity(&application), nil
}

func applicationToEntity(a *Application) *entity.Application {
	return &entity.Application{
		ID:        a.ID,
		OrderID:   a.OrderID,
		SendingID: a.SendingID,
		Status:    entity.ApplicationStatus(a.Status),
		Info:      a.Info,
	}
}
