package application

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"gopkg.in/go-playground/validator.v9"

	"cargodelivery.ru/cargo"
	"cargodelivery.ru/cargo/internal/entity"
	"cargodelivery.ru/cargo/internal/event"
	"cargodelivery.ru/cargo/internal/repository/repositories"
)

type ApplicationUseCase struct {
	trm             *manager.Manager
	validator       *validator.Validate
	bus             *event.Bus
	ApplicationRepo *repositories.ApplicationRepo
	OrderRepo       *repositories.OrderRepo
	SendingRepo     *repositories.SendingRepo
}

func New(
	trm *manager.Manager,
	bus *event.Bus,
	apprepo *repositories.ApplicationRepo,
	ordrepo *repositories.OrderRepo,
	sendrepo *repositories.SendingRepo,
) *ApplicationUseCase {

	v := validator.New()
	v.RegisterValidation("application_status", application_status)

	return &ApplicationUseCase{
		trm:             trm,
		bus:             bus,
		ApplicationRepo: apprepo,
		OrderRepo:       ordrepo,
		SendingRepo:     sendrepo,
		validator:       v,
	}
}

func (uc *ApplicationUseCase) CreateApplication(ctx context.Context, dto ApplicationToCreateDTO) (*entity.Application, error) {
	const op = "usecase.application.CreateApplication"

	if err := uc.validator.Struct(dto); err != nil {
		return nil, cargo.ErrorWithCode(cargo.OpError(op, err), cargo.EINVALID)
	}

	status := dto.Status
	if status == "" {
		status = string(entity.WAIT)
	}

	if _, err := uc.OrderRepo.FindById(ctx, dto.OrderID); err != nil {
		return nil, cargo.OpError(op, err)
	}
	if _, err := uc.SendingRepo.FindById(ctx, dto.SendingID); err != nil {
		return nil, cargo.OpError(op, err)
	}

	var saved *entity.Application
	var err error
	err = uc.trm.Do(ctx, func(ctx context.Context) error {
		saved, err = uc.ApplicationRepo.Create(ctx, repositories.ApplicationToCreateDTO{
			OrderID:   dto.OrderID,
			SendingID: dto.SendingID,
			Status:    status,
			Info:      dto.Info,
		})
		return err
	})
	if err != nil {
		return nil, cargo.OpError(op, err)
	}

	// Both the worker broadcast and, for a direct CONF/DECL create, the
	// customer status notification hang off this one event.
	uc.bus.PublishApplicationSaved(event.ApplicationSaved{ApplicationID: saved.ID, Created: true})

	return saved, nil
}

func (uc *ApplicationUseCase) UpdateStatus(ctx context.Context, id uint64, dto ApplicationStatusUpdateDTO) (*entity.Application, error) {
	const op = "usecase.application.UpdateStatus"

	if err := uc.validator.Struct(dto); err != nil {
		return nil, cargo.ErrorWithCode(cargo.OpError(op, err), cargo.EINVALID)
	}

	var saved *entity.Application
	var err error
	err = uc.trm.Do(ctx, func(ctx context.Context) error {
		saved, err = uc.ApplicationRepo.UpdateStatus(ctx, id, dto.Status, dto.Info)
		return err
	})
	if err != nil {
		return nil, cargo.OpError(op, err)
	}

	uc.bus.PublishApplicationSaved(event.ApplicationSaved{ApplicationID: saved.ID, Created: false})

	return saved, nil
}

func (uc *ApplicationUseCase) GetDetailById(ctx context.Context, id uint64) (*ApplicationDetail, error) {
	const op = "usecase.application.GetDetailById"

	application, err := uc.ApplicationRepo.FindById(ctx, id)
	if err != nil {
		return nil, cargo.OpError(op, err)
	}

	order, err := uc.OrderRepo.FindById(ctx, application.OrderID)
	if err != nil {
		return nil, cargo.OpError(op, err)
	}

	sending, err := uc.SendingRepo.FindById(ctx, application.SendingID)
	if err != nil {
		return nil, cargo.OpError(op, err)
	}

	return &ApplicationDetail{
		Application: application,
		Order:       order,
		Sending:     sending,
		Price:       application.Price(order, sending),
	}, nil
}
