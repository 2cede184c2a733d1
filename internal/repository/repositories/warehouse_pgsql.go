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
type Warehouse struct {
	ID        uint64 `gorm:"primaryKey"`
	Address   string
	CompanyID uint64
	Company   *Company `gorm:"foreignKey:CompanyID"`
	CityID    uint64
	City      *City `gorm:"foreignKey:CityID"`
}

var WarehouseNotFoundError = &cargo.Error{Code: cargo.ENOTFOUND, Message: "Warehouse not found"}

type WarehouseRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewWarehouseRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *WarehouseRepo {
	return &WarehouseRepo{
		gorm:   grm,
		getter: getter,
	}
}

func (s *WarehouseRepo) Create(ctx context.Context, address string, companyID, cityID uint64) (*entity.Warehouse, error) {

	warehouse := Warehouse{
		Address:   address,
		CompanyID: companyID,
		CityID:    cityID,
	}

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).Create(&warehouse).Error
	if err != nil {
		return nil, err
	}

	return warehouseToEntity(&warehouse), nil
}

func (s *WarehouseRepo) FindById(ctx context.Context, id uint64) (*entity.Warehouse, error) {

	var warehouse Warehouse

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).First(&warehouse, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, WarehouseNotFoundError
		}

		return nil, err
	}

	return warehouseToEntity(&warehouse), nil
}

func warehouseToEntity(w *Warehouse) *entity.Warehouse {
	return &entity.Warehouse{
		ID:        w.ID,
		Address:   w.Address,
		CompanyID: w.CompanyID,
		CityID:    w.CityID,
	}
}
