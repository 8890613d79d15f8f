package usecase

import (
	"context"
	"net/http"
	"strings"

	"bambu/internal/domain/model"
	repo "bambu/internal/repository"
)

type AddressInput struct {
	Name         string `json:"name"`
	PhoneNumber  int64  `json:"phone_number"`
	Street       string `json:"address"`
	Neighborhood string `json:"neighborhood"`
	Number       int64  `json:"number"`
}

func validateAddressInput(in AddressInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.PhoneNumber <= 0 {
		return NewHTTPError(http.StatusBadRequest, "phone_number must be a positive number")
	}
	if strings.TrimSpace(in.Street) == "" {
		return NewHTTPError(http.StatusBadRequest, "address is required")
	}
	if strings.TrimSpace(in.Neighborhood) == "" {
		return NewHTTPError(http.StatusBadRequest, "neighborhood is required")
	}
	if in.Number <= 0 {
		return NewHTTPError(http.StatusBadRequest, "number must be a positive number")
	}
	return nil
}

type AddressUsecase struct {
	addresses repo.AddressRepository
}

func NewAddressUsecase(addresses repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addresses: addresses}
}

func (u *AddressUsecase) List(ctx context.Context, userID int64) ([]model.Address, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	list, err := u.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return list, nil
}

func (u *AddressUsecase) Create(ctx context.Context, userID int64, in AddressInput) (model.Address, error) {
	if userID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateAddressInput(in); err != nil {
		return model.Address{}, err
	}

	a := model.Address{
		UserID:       userID,
		Name:         strings.TrimSpace(in.Name),
		PhoneNumber:  in.PhoneNumber,
		Street:       strings.TrimSpace(in.Street),
		Neighborhood: strings.TrimSpace(in.Neighborhood),
		Number:       in.Number,
	}

	created, err := u.addresses.Create(ctx, a)
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// 更新は所有者のみ（他人の住所は404扱い）
func (u *AddressUsecase) Update(ctx context.Context, userID int64, addressID int64, in AddressInput) (model.Address, error) {
	if userID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if addressID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateAddressInput(in); err != nil {
		return model.Address{}, err
	}

	existing, err := u.addresses.FindByID(ctx, addressID)
	if err == repo.ErrNotFound {
		return model.Address{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if existing.UserID != userID {
		return model.Address{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	existing.Name = strings.TrimSpace(in.Name)
	existing.PhoneNumber = in.PhoneNumber
	existing.Street = strings.TrimSpace(in.Street)
	existing.Neighborhood = strings.TrimSpace(in.Neighborhood)
	existing.Number = in.Number

	if err := u.addresses.Update(ctx, existing); err != nil {
		if err == repo.ErrNotFound {
			return model.Address{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return existing, nil
}

func (u *AddressUsecase) Delete(ctx context.Context, userID int64, addressID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if addressID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	existing, err := u.addresses.FindByID(ctx, addressID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if existing.UserID != userID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.addresses.Delete(ctx, addressID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
