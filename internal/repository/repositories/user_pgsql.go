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
type User struct {
	ID        uint64 `gorm:"primaryKey"`
	Username  string `gorm:"unique"`
	Email     string
	FirstName string
	LastName  string
}

var UserNotFoundError = &cargo.Error{Code: cargo.ENOTFOUND, Message: "User not found"}

type UserRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewUserRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *UserRepo {
	return &UserRepo{
		gorm:   grm,
		getter: getter,
	}
}

type UserToCreateDTO struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
}

func (s *UserRepo) Create(ctx context.Context, dto UserToCreateDTO) (*entity.User, error) {

	user := User{
		Username:  dto.Username,
		Email:     dto.Email,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
	}

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).Create(&user).Error
	if err != nil {
		return nil, err
	}

	return userToEntity(&user), nil
}

func (s *UserRepo) FindById(ctx context.Context, id uint64) (*entity.User, error) {

	var user User

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, UserNotFoundError
		}

		return nil, err
	}

	return userToEntity(&user), nil
}

func userToEntity(u *User) *entity.User {
	return &entity.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
