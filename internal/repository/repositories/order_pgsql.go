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

var OrderNotFoundError = &cargo.Error{Code: cargo.ENOTFOUND, Message: "Order not found"}

// @migration
type Order struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64
	User   *User `gorm:"foreignKey:UserID"`

	DepartureCityID uint64
	DepartureCity   *City `gorm:"foreignKey:DepartureCityID"`
	ArrivalCityID   uint64
	ArrivalCity     *City `gorm:"foreignKey:ArrivalCityID"`

	SenderFullname    string
	RecipientFullname string

	DirectTake        bool
	DirectTakeAddress string

	DirectDeliver        bool
	DirectDeliverAddress string

	DepartureDate types.Date

	CargoType string

	CargoLen   decimal.Decimal `gorm:"type:decimal(10,1)"`
	CargoWidth decimal.Decimal `gorm:"type:decimal(10,1)"`
	CargoDepth decimal.Decimal `gorm:"type:decimal(10,1)"`

	CargoWeight    decimal.Decimal `gorm:"type:decimal(10,2)"`
	InsurancePrice decimal.Decimal `gorm:"type:decimal(15,2)"`

	AdditionalInfo string
}

type OrderRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewOrderRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *OrderRepo {
	return &OrderRepo{
		gorm:   grm,
		getter: getter,
	}
}

type OrderToCreateDTO struct {
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

	CargoType string

	CargoLen   decimal.Decimal
	CargoWidth decimal.Decimal
	CargoDepth decimal.Decimal

	CargoWeight    decimal.Decimal
	InsurancePrice decimal.Decimal

	AdditionalInfo string
}

func (s *OrderRepo) Create(ctx context.Context, dto OrderToCreateDTO) (*entity.Order, error) {

	order := Order{
		UserID:               dto.UserID,
		DepartureCityID:      dto.DepartureCityID,
		ArrivalCityID:        dto.ArrivalCityID,
		SenderFullname:       dto.SenderFullname,
		RecipientFullname:    dto.RecipientFullname,
		DirectTake:           dto.DirectTake,
		DirectTakeAddress:    dto.DirectTakeAddress,
		DirectDeliver:        dto.DirectDeliver,
		DirectDeliverAddress: dto.DirectDeliverAddress,
		DepartureDate:        types.DateOf(dto.DepartureDate),
		CargoType:            dto.CargoType,
		CargoLen:             dto.CargoLen,
		CargoWidth:           dto.CargoWidth,
		CargoDepth:           dto.CargoDepth,
		CargoWeight:          dto.CargoWeight,
		InsurancePrice:       dto.InsurancePrice,
		AdditionalInfo:       dto.AdditionalInfo,
	}

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).Create(&order).Error
	if err != nil {
		return nil, err
	}

	return orderToEntity(&order), nil
}

func (s *OrderRepo) FindById(ctx context.Context, id uint64) (*entity.Order, error) {

	var order Order

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, OrderNotFoundError
		}

		return nil, err
	}

	return orderToEntity(&order), nil
}

func (s *OrderRepo) PaginatedFetchAll(ctx context.Context, offset, limit int32) (*[]entity.Order, error) {

	orders := []Order{}

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).
		Model(&Order{}).
		Limit(int(limit)).
		Offset(int(offset)).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	res := []entity.Order{}
	for i := range orders {
		res = append(res, *orderToEntity(&orders[i]))
	}

	return &res, nil
}

// FindByRoute selects orders matching a sending exactly: departure city,
// arrival city and departure date.
func (s *OrderRepo) FindByRoute(ctx context.Context, departureCityID, arrivalCityID uint64, departureDate time.Time) (*[]entity.Order, error) {

	orders := []Order{}

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).
		Where("departure_city_id = ? AND arrival_city_id = ? AND departure_date = ?",
			departureCityID,
			arrivalCityID,
			types.DateOf(departureDate),
		).
		Order("id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	res := []entity.Order{}
	for i := range orders {
		res = append(res, *orderToEntity(&orders[i]))
	}

	return &res, nil
}

func orderToEntity(o *Order) *entity.Order {
	return &entity.Order{
		ID:                   o.ID,
		UserID:               o.UserID,
		DepartureCityID:      o.DepartureCityID,
		ArrivalCityID:        o.ArrivalCityID,
		SenderFullname:       o.SenderFullname,
		RecipientFullname:    o.RecipientFullname,
		DirectTake:           o.DirectTake,
		DirectTakeAddress:    o.DirectTakeAddress,
		DirectDeliver:        o.DirectDeliver,
		DirectDeliverAddress: o.DirectDeliverAddress,
		DepartureDate:        time.Time(o.DepartureDate),
		CargoType:            entity.CargoType(o.CargoType),
		CargoLen:             o.CargoLen,
		CargoWidth:           o.CargoWidth,
		CargoDepth:           o.CargoDepth,
		CargoWeight:          o.CargoWeight,
		InsurancePrice:       o.InsurancePrice,
		AdditionalInfo:       o.AdditionalInfo,
	}
}
