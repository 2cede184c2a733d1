package sending

import (
	"context"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/shopspring/decimal"
	"gopkg.in/go-playground/validator.v9"

	"cargodelivery.ru/cargo"
	"cargodelivery.ru/cargo/internal/entity"
	"cargodelivery.ru/cargo/internal/event"
	"cargodelivery.ru/cargo/internal/repository/repositories"
	validatations "cargodelivery.ru/cargo/pkg/validations"
)

type SendingUseCase struct {
	trm           *manager.Manager
	validator     *validator.Validate
	bus           *event.Bus
	SendingRepo   *repositories.SendingRepo
	WarehouseRepo *repositories.WarehouseRepo
	TransportRepo *repositories.TransportRepo
}

func New(
	trm *manager.Manager,
	bus *event.Bus,
	sendrepo *repositories.SendingRepo,
	whrepo *repositories.WarehouseRepo,
	trrepo *repositories.TransportRepo,
) *SendingUseCase {

	v := validator.New()
	v.RegisterValidation("date_YYYY_MM_DD", validatations.YYYY_MM_DD_date)
	v.RegisterValidation("positive_decimal", validatations.Positive_decimal)

	return &SendingUseCase{
		trm:           trm,
		bus:           bus,
		SendingRepo:   sendrepo,
		WarehouseRepo: whrepo,
		TransportRepo: trrepo,
		validator:     v,
	}
}

func (uc *SendingUseCase) CreateSending(ctx context.Context, dto SendingToCreateDTO) (*entity.Sending, error) {
	const op = "usecase.sending.CreateSending"

	if err := uc.validator.Struct(dto); err != nil {
		return nil, cargo.ErrorWithCode(cargo.OpError(op, err), cargo.EINVALID)
	}

	departureDate, err := time.Parse("2006-01-02", dto.DepartureDate)
	if err != nil {
		return nil, cargo.ErrorWithCode(cargo.OpError(op, err), cargo.EINVALID)
	}

	arrivalDate, err := time.Parse("2006-01-02", dto.ArrivalDate)
	if err != nil {
		return nil, cargo.ErrorWithCode(cargo.OpError(op, err), cargo.EINVALID)
	}

	totalVolume, err := decimal.NewFromString(dto.TotalVolume)
	if err != nil {
		return nil, cargo.ErrorWithCode(cargo.OpError(op, err), cargo.EINVALID)
	}

	priceForM3, err := decimal.NewFromString(dto.PriceForM3)
	if err != nil {
		return nil, cargo.ErrorWithCode(cargo.OpError(op, err), cargo.EINVALID)
	}

	if _, err := uc.WarehouseRepo.FindById(ctx, dto.DepartureWarehouseID); err != nil {
		return nil, cargo.OpError(op, err)
	}
	if _, err := uc.WarehouseRepo.FindById(ctx, dto.ArrivalWarehouseID); err != nil {
		return nil, cargo.OpError(op, err)
	}
	if _, err := uc.TransportRepo.FindById(ctx, dto.TransportID); err != nil {
		return nil, cargo.OpError(op, err)
	}

	toCreate := repositories.SendingToCreateDTO{
		CompanyID:            dto.CompanyID,
		DepartureWarehouseID: dto.DepartureWarehouseID,
		DepartureDate:        departureDate,
		ArrivalWarehouseID:   dto.ArrivalWarehouseID,
		ArrivalDate:          arrivalDate,
		TotalVolume:          totalVolume,
		TransportID:          dto.TransportID,
		PriceForM3:           priceForM3,
	}

	for _, tp := range dto.TransitPoints {
		tpDate, err := time.Parse("2006-01-02", tp.ArrivalDate)
		if err != nil {
			return nil, cargo.ErrorWithCode(cargo.OpError(op, err), cargo.EINVALID)
		}

		toCreate.TransitPoints = append(toCreate.TransitPoints, repositories.TransitPointToCreateDTO{
			TransportID:        tp.TransportID,
			ArrivalDate:        tpDate,
			ArrivalWarehouseID: tp.ArrivalWarehouseID,
		})
	}

	var saved *entity.Sending
	err = uc.trm.Do(ctx, func(ctx context.Context) error {
		saved, err = uc.SendingRepo.Create(ctx, toCreate)
		return err
	})
	if err != nil {
		return nil, cargo.OpError(op, err)
	}

	// Fire-and-forget after commit; the match notifier runs out-of-band.
	uc.bus.PublishSendingCreated(event.SendingCreated{SendingID: saved.ID})

	return saved, nil
}

func (uc *SendingUseCase) GetDetailById(ctx context.Context, id uint64) (*SendingDetail, error) {
	const op = "usecase.sending.GetDetailById"

	sending, err := uc.SendingRepo.FindById(ctx, id)
	if err != nil {
		return nil, cargo.OpError(op, err)
	}

	orders, err := uc.SendingRepo.OrdersOfSending(ctx, id)
	if err != nil {
		return nil, cargo.OpError(op, err)
	}

	points, err := uc.SendingRepo.TransitPointsOfSending(ctx, id)
	if err != nil {
		return nil, cargo.OpError(op, err)
	}

	return &SendingDetail{
		Sending:       sending,
		Orders:        *orders,
		TransitPoints: *points,
	}, nil
}

func (uc *SendingUseCase) PaginatedGetAll(ctx context.Context, offset, limit int32) (*[]entity.Sending, error) {
	const op = "usecase.sending.PaginatedGetAll"

	sendings, err := uc.SendingRepo.PaginatedFetchAll(ctx, offset, limit)
	if err != nil {
		return nil, cargo.OpError(op, err)
	}

	return sendings, nil
}
