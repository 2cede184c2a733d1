package order

import (
	"context"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/shopspring/decimal"
	"gopkg.in/go-playground/validator.v9"

	"cargodelivery.ru/cargo"
	"cargodelivery.ru/cargo/internal/entity"
	"cargodelivery.ru/cargo/internal/repository/repositories"
	validatations "cargodelivery.ru/cargo/pkg/validations"
)

type OrderUseCase struct {
	trm       *manager.Manager
	validator *validator.Validate
	OrderRepo *repositories.OrderRepo
	UserRepo  *repositories.UserRepo
	GeoRepo   *repositories.GeoRepo
}

func New(
	trm *manager.Manager,
	ordrepo *repositories.OrderRepo,
	userrepo *repositories.UserRepo,
	georepo *repositories.GeoRepo,
) *OrderUseCase {

	v := validator.New()
	v.RegisterValidation("date_YYYY_MM_DD", validatations.YYYY_MM_DD_date)
	v.RegisterValidation("positive_decimal", validatations.Positive_decimal)
	v.RegisterValidation("cargo_type", cargo_type)

	return &OrderUseCase{
		trm:       trm,
		OrderRepo: ordrepo,
		UserRepo:  userrepo,
		GeoRepo:   georepo,
		validator: v,
	}
}

func (uc *OrderUseCase) CreateOrder(ctx context.Context, dto OrderToCreateDTO) (*entity.Order, error) {
	const op = "usecase.order.CreateOrder"

	if err := uc.validator.Struct(dto); err != nil {
		return nil, cargo.ErrorWithCode(cargo.OpError(op, err), cargo.EINVALID)
	}

	// Pickup/delivery addresses are required only with their flags.
	if dto.DirectTake && dto.DirectTakeAddress == "" {
		return nil, &cargo.Error{Op: op, Code: cargo.EINVALID, Message: "direct_take_address is required when direct_take is set"}
	}
	if dto.DirectDeliver && dto.DirectDeliverAddress == "" {
		return nil, &cargo.Error{Op: op, Code: cargo.EINVALID, Message: "direct_deliver_address is required when direct_deliver is set"}
	}

	departureDate, err := time.Parse("2006-01-02", dto.DepartureDate)
	if err != nil {
		return nil, cargo.ErrorWithCode(cargo.OpError(op, err), cargo.EINVALID)
	}

	dims := [5]decimal.Decimal{}
	for i, v := range []string{dto.CargoLen, dto.CargoWidth, dto.CargoDepth, dto.CargoWeight, dto.InsurancePrice} {
		dims[i], err = decimal.NewFromString(v)
		if err != nil {
			return nil, cargo.ErrorWithCode(cargo.OpError(op, err), cargo.EINVALID)
		}
	}

	if _, err := uc.UserRepo.FindById(ctx, dto.UserID); err != nil {
		return nil, cargo.OpError(op, err)
	}
	if _, err := uc.GeoRepo.FindCityById(ctx, dto.DepartureCityID); err != nil {
		return nil, cargo.OpError(op, err)
	}
	if _, err := uc.GeoRepo.FindCityById(ctx, dto.ArrivalCityID); err != nil {
		return nil, cargo.OpError(op, err)
	}

	var saved *entity.Order
	err = uc.trm.Do(ctx, func(ctx context.Context) error {
		saved, err = uc.OrderRepo.Create(ctx, repositories.OrderToCreateDTO{
			UserID:               dto.UserID,
			DepartureCityID:      dto.DepartureCityID,
			ArrivalCityID:        dto.ArrivalCityID,
			SenderFullname:       dto.SenderFullname,
			RecipientFullname:    dto.RecipientFullname,
			DirectTake:           dto.DirectTake,
			DirectTakeAddress:    dto.DirectTakeAddress,
			DirectDeliver:        dto.DirectDeliver,
			DirectDeliverAddress: dto.DirectDeliverAddress,
			DepartureDate:        departureDate,
			CargoType:            dto.CargoType,
			CargoLen:             dims[0],
			CargoWidth:           dims[1],
			CargoDepth:           dims[2],
			CargoWeight:          dims[3],
			InsurancePrice:       dims[4],
			AdditionalInfo:       dto.AdditionalInfo,
		})
		return err
	})
	if err != nil {
		return nil, cargo.OpError(op, err)
	}

	return saved, nil
}

func (uc *OrderUseCase) GetById(ctx context.Context, id uint64) (*entity.Order, error) {
	const op = "usecase.order.GetById"

	order, err := uc.OrderRepo.FindById(ctx, id)
	if err != nil {
		return nil, cargo.OpError(op, err)
	}

	return order, nil
}

func (uc *OrderUseCase) PaginatedGetAll(ctx context.Context, offset, limit int32) (*[]entity.Order, error) {
	const op = "usecase.order.PaginatedGetAll"

	orders, err := uc.OrderRepo.PaginatedFetchAll(ctx, offset, limit)
	if err != nil {
		return nil, cargo.OpError(op, err)
	}

	return orders, nil
}
