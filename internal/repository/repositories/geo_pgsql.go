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
type Country struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string
}

// @migration
type City struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string
	CountryID uint64
	Country   *Country `gorm:"foreignKey:CountryID"`
}

var CityNotFoundError = &cargo.Error{Code: cargo.ENOTFOUND, Message: "City not found"}

type GeoRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewGeoRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *GeoRepo {
	return &GeoRepo{
		gorm:   grm,
		getter: getter,
	}
}

func (s *GeoRepo) CreateCountry(ctx context.Context, name string) (*entity.Country, error) {

	country := Country{Name: name}

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).Create(&country).Error
	if err != nil {
		return nil, err
	}

	return &entity.Country{ID: country.ID, Name: country.Name}, nil
}

func (s *GeoRepo) CreateCity(ctx context.Context, name string, countryID uint64) (*entity.City, error) {

	city := City{
		Name:      name,
		CountryID: countryID,
	}

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).Create(&city).Error
	if err != nil {
		return nil, err
	}

	return &entity.City{ID: city.ID, Name: city.Name, CountryID: city.CountryID}, nil
}

func (s *GeoRepo) FindCityById(ctx context.Context, id uint64) (*entity.City, error) {

	var city City

	err := s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx).First(&city, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, CityNotFoundError
		}

		return nil, err
	}

	return &entity.City{ID: city.ID, Name: city.Name, CountryID: city.CountryID}, nil
}
