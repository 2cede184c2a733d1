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
type Company struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string `gorm:"unique"`
	Info string
}

// @migration
type WorkerProfile struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"unique"`
	User      *User  `gorm:"foreignKey:UserID"`
	CompanyID uint64
	Company   *Company `gorm:"foreignKey:CompanyID"`
	Position  string
}

var CompanyNotFoundError = &cargo.Error{Code: cargo.ENOTFOUND, Message: "Company not found"}

type CompanyRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewCompanyRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *CompanyRepo {
	return &CompanyRepo{
		gorm:   grm,
		getter: getter,
	}
}

func (s *CompanyRepo) Create(ctx context.Context, name, info string) (*entity.Company, error) {

	company := Company{
		Name: name,
		Info: info,
	}

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).Create(&company).Error
	if err != nil {
		return nil, err
	}

	return &entity.Company{
		ID:   company.ID,
		Name: company.Name,
		Info: company.Info,
	}, nil
}

func (s *CompanyRepo) FindById(ctx context.Context, id uint64) (*entity.Company, error) {

	var company Company

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).First(&company, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, CompanyNotFoundError
		}

		return nil, err
	}

	return &entity.Company{
		ID:   company.ID,
		Name: company.Name,
		Info: company.Info,
	}, nil
}

func (s *CompanyRepo) AddWorker(ctx context.Context, userID, companyID uint64, position string) (*entity.WorkerProfile, error) {

	worker := WorkerProfile{
		UserID:    userID,
		CompanyID: companyID,
		Position:  position,
	}

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).Create(&worker).Error
	if err != nil {
		return nil, err
	}

	return &entity.WorkerProfile{
		ID:        worker.ID,
		UserID:    worker.UserID,
		CompanyID: worker.CompanyID,
		Position:  worker.Position,
	}, nil
}

// WorkerEmailsByCompany returns email addresses of every worker of the
// company, in worker id order. Addresses are not deduplicated.
func (s *CompanyRepo) WorkerEmailsByCompany(ctx context.Context, companyID uint64) ([]string, error) {

	emails := []string{}

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).Raw(`
		SELECT "u"."email" FROM "worker_profiles" as "w"
		LEFT JOIN "users" as "u" ON "u"."id" = "w"."user_id"
		WHERE "w"."company_id" = ?
		ORDER BY "w"."id" ASC`,
		companyID,
	).Scan(&emails).Error

	if err != nil {
		return nil, err
	}

	return emails, nil
}
