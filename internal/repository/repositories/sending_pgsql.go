package repositories

import (
	"context"
	"errors"
	"time"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cargodelivery.ru/cargo"
	"cargodelivery.ru/cargo/internal/entity"
	"cargodelivery.ru/cargo/pkg/gorm/types"
)

var SendingNotFoundError = &cargo.Error{Code: cargo.ENOTFOUND, Message: "Sending not found"}

// @migration
type Sending struct {
	ID        uint64 `gorm:"primaryKey"`
	CompanyID uint64
	Company   *Company `gorm:"foreignKey:CompanyID"`

	DepartureWarehouseID uint64
	DepartureWarehouse   *Warehouse `gorm:"foreignKey:DepartureWarehouseID"`
	DepartureDate        types.Date

	ArrivalWarehouseID uint64
	ArrivalWarehouse   *Warehouse `gorm:"foreignKey:ArrivalWarehouseID"`
	ArrivalDate        types.Date

	TotalVolume decimal.Decimal `gorm:"type:decimal(10,2)"`

	TransportID uint64
	Transport   *Transport `gorm:"foreignKey:TransportID"`

	PriceForM3 decimal.Decimal `gorm:"type:decimal(10,2)"`

	TransitPoints []TransitPoint `gorm:"foreignKey:SendingID;references:ID"`
}

// @migration
type TransitPoint struct {
	ID        uint64 `gorm:"primaryKey"`
	SendingID uint64
	Sending   *Sending `gorm:"foreignKey:SendingID"`

	TransportID uint64
	Transport   *Transport `gorm:"foreignKey:TransportID"`

	ArrivalDate types.Date

	ArrivalWarehouseID uint64
	ArrivalWarehouse   *Warehouse `gorm:"foreignKey:ArrivalWarehouseID"`
}

type SendingRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewSendingRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *SendingRepo {
	return &SendingRepo{
		gorm:   grm,
		getter: getter,
	}
}

type SendingToCreateDTO struct {
	CompanyID uint64

	DepartureWarehouseID uint64
	DepartureDate        time.Time

	ArrivalWarehouseID uint64
	ArrivalDate        time.Time

	TotalVolume decimal.Decimal
	TransportID uint64
	PriceForM3  decimal.Decimal

	TransitPoints []TransitPointToCreateDTO
}

type TransitPointToCreateDTO struct {
	TransportID        uint64
	ArrivalDate        time.Time
	ArrivalWarehouseID uint64
}

func (s *SendingRepo) Create(ctx context.Context, dto SendingToCreateDTO) (*entity.Sending, error) {

	sending := Sending{
		CompanyID:            dto.CompanyID,
		DepartureWarehouseID: dto.DepartureWarehouseID,
		DepartureDate:        types.DateOf(dto.DepartureDate),
		ArrivalWarehouseID:   dto.ArrivalWarehouseID,
		ArrivalDate:          types.DateOf(dto.ArrivalDate),
		TotalVolume:          dto.TotalVolume,
		TransportID:          dto.TransportID,
		PriceForM3:           dto.PriceForM3,
	}

	for _, tp := range dto.TransitPoints {
		sending.TransitPoints = append(sending.TransitPoints, TransitPoint{
			TransportID:        tp.TransportID,
			ArrivalDate:        types.DateOf(tp.ArrivalDate),
			ArrivalWarehouseID: tp.ArrivalWarehouseID,
		})
	}

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).Create(&sending).Error
	if err != nil {
		return nil, err
	}

	return sendingToEntity(&sending), nil
}

func (s *SendingRepo) FindById(ctx context.Context, id uint64) (*entity.Sending, error) {

	var sending Sending

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).First(&sending, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, SendingNotFoundError
		}

		return nil, err
	}

	return sendingToEntity(&sending), nil
}

func (s *SendingRepo) PaginatedFetchAll(ctx context.Context, offset, limit int32) (*[]entity.Sending, error) {

	sendings := []Sending{}

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).
		Model(&Sending{}).
		Limit(int(limit)).
		Offset(int(offset)).
		Find(&sendings).Error
	if err != nil {
		return nil, err
	}

	res := []entity.Sending{}
	for i := range sendings {
		res = append(res, *sendingToEntity(&sendings[i]))
	}

	return &res, nil
}

// OrdersOfSending returns the orders attached to the sending through its
// applications. Free volume is always recomputed from this set.
func (s *SendingRepo) OrdersOfSending(ctx context.Context, sendingID uint64) (*[]entity.Order, error) {

	orders := []Order{}

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).Raw(`
		SELECT "o".* FROM "orders" as "o"
		INNER JOIN "applications" as "a" ON "a"."order_id" = "o"."id"
		WHERE "a"."sending_id" = ?
		ORDER BY "o"."id" ASC`,
		sendingID,
	).Scan(&orders).Error

	if err != nil {
		return nil, err
	}

	res := []entity.Order{}
	for i := range orders {
		res = append(res, *orderToEntity(&orders[i]))
	}

	return &res, nil
}

func (s *SendingRepo) TransitPointsOfSending(ctx context.Context, sendingID uint64) (*[]entity.TransitPoint, error) {

	points := []TransitPoint{}

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).
		Where("sending_id = ?", sendingID).
		Order("arrival_date ASC").
		Find(&points).Error
	if err != nil {
		return nil, err
	}

	res := []entity.TransitPoint{}
	for _, tp := range points {
		res = append(res, entity.TransitPoint{
			ID:                 tp.ID,
			SendingID:          tp.SendingID,
			TransportID:        tp.TransportID,
			ArrivalDate:        time.Time(tp.ArrivalDate),
			ArrivalWarehouseID: tp.ArrivalWarehouseID,
		})
	}

	return &res, nil
}

func sendingToEntity(s *Sending) *entity.Sending {
	return &entity.Sending{
		ID:                   s.ID,
		CompanyID:            s.CompanyID,
		DepartureWarehouseID: s.DepartureWarehouseID,
		DepartureDate:        time.Time(s.DepartureDate),
		ArrivalWarehouseID:   s.ArrivalWarehouseID,
		ArrivalDate:          time.Time(s.ArrivalDate),
		TotalVolume:          s.TotalVolume,
		TransportID:          s.TransportID,
		PriceForM3:           s.PriceForM3,
	}
}
