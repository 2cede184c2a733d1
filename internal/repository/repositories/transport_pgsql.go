package repositories

import (
	"context"
	"errors"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"gorm.io/gorm"

	"cargodelivery.ru/cargo"
	"cargodelivery.ru/cargo/internal/entity"
)

// @migration
type Transport struct {
	ID            uint64 `gorm:"primaryKey"`
	TransportType string
	Number        string
	CompanyID     uint64
	Company       *Company `gorm:"foreignKey:CompanyID"`
}

var TransportNotFoundError = &cargo.Error{Code: cargo.ENOTFOUND, Message: "Transport not found"}

type TransportRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewTransportRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *TransportRepo {
	return &TransportRepo{
		gorm:   grm,
		getter: getter,
	}
}

type TransportToCreateDTO struct {
	TransportType string
	Number        string
	CompanyID     uint64
}

func (s *TransportRepo) Create(ctx context.Context, dto TransportToCreateDTO) (*entity.Transport, error) {

	transport := Transport{
		TransportType: dto.TransportType,
		Number:        dto.Number,
		CompanyID:     dto.CompanyID,
	}

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).Create(&transport).Error
	if err != nil {
		return nil, err
	}

	return transportToEntity(&transport), nil
}

func (s *TransportRepo) FindById(ctx context.Context, id uint64) (*entity.Transport, error) {

	var transport Transport

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).First(&transport, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, TransportNotFoundError
		}

		return nil, err
	}

	return transportToEntity(&transport), nil
}

func transportToEntity(t *Transport) *entity.Transport {
	return &entity.Transport{
		ID:            t.ID,
		TransportType: entity.TransportType(t.TransportType),
		Number:        t.Number,
		CompanyID:     t.CompanyID,
	}
}
