package usecase

import (
	"context"
	"net/http"
	"testing"

	"bambu/internal/domain/model"
	repo "bambu/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func validAddressInput() AddressInput {
	return AddressInput{
		Name:         "Casa",
		PhoneNumber:  11999990000,
		Street:       "Rua das Flores",
		Neighborhood: "Centro",
		Number:       123,
	}
}

func TestAddressUsecase_Create(t *testing.T) {
	aRepo := new(CoAddressRepoMock)
	aRepo.On("Create", mock.Anything, mock.MatchedBy(func(a model.Address) bool {
		return a.UserID == 1 && a.Name == "Casa" && a.Neighborhood == "Centro" && a.Number == 123
	})).Return(model.Address{ID: 30, UserID: 1, Name: "Casa"}, nil)

	u := NewAddressUsecase(aRepo)

	created, err := u.Create(context.Background(), 1, validAddressInput())

	assert.NoError(t, err)
	assert.Equal(t, int64(30), created.ID)
	aRepo.AssertExpectations(t)
}

func TestAddressUsecase_Create_Validation(t *testing.T) {
	u := NewAddressUsecase(new(CoAddressRepoMock))

	in := validAddressInput()
	in.Name = ""
	_, err := u.Create(context.Background(), 1, in)
	assertErrContains(t, err, "name is required")

	in = validAddressInput()
	in.PhoneNumber = 0
	_, err = u.Create(context.Background(), 1, in)
	assertErrContains(t, err, "phone_number")

	in = validAddressInput()
	in.Street = "  "
	_, err = u.Create(context.Background(), 1, in)
	assertErrContains(t, err, "address is required")

	in = validAddressInput()
	in.Neighborhood = ""
	_, err = u.Create(context.Background(), 1, in)
	assertErrContains(t, err, "neighborhood is required")

	in = validAddressInput()
	in.Number = -1
	_, err = u.Create(context.Background(), 1, in)
	assertErrContains(t, err, "number must be a positive number")
}

func TestAddressUsecase_List(t *testing.T) {
	aRepo := new(CoAddressRepoMock)
	aRepo.On("ListByUserID", mock.Anything, int64(1)).Return([]model.Address{
		{ID: 30, UserID: 1, Name: "Casa"},
		{ID: 31, UserID: 1, Name: "Trabalho"},
	}, nil)

	u := NewAddressUsecase(aRepo)

	list, err := u.List(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, 2, len(list))
}

// 他人の住所は404扱い
func TestAddressUsecase_Update_NotOwner(t *testing.T) {
	aRepo := new(CoAddressRepoMock)
	aRepo.On("FindByID", mock.Anything, int64(30)).Return(model.Address{ID: 30, UserID: 2}, nil)

	u := NewAddressUsecase(aRepo)

	_, err := u.Update(context.Background(), 1, 30, validAddressInput())

	assertHTTPStatus(t, err, http.StatusNotFound)
	aRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAddressUsecase_Update(t *testing.T) {
	aRepo := new(CoAddressRepoMock)
	aRepo.On("FindByID", mock.Anything, int64(30)).Return(model.Address{ID: 30, UserID: 1, Name: "old"}, nil)
	aRepo.On("Update", mock.Anything, mock.MatchedBy(func(a model.Address) bool {
		return a.ID == 30 && a.Name == "Casa" && a.Street == "Rua das Flores"
	})).Return(nil)

	u := NewAddressUsecase(aRepo)

	updated, err := u.Update(context.Background(), 1, 30, validAddressInput())

	assert.NoError(t, err)
	assert.Equal(t, "Casa", updated.Name)
	aRepo.AssertExpectations(t)
}

func TestAddressUsecase_Delete_NotFound(t *testing.T) {
	aRepo := new(CoAddressRepoMock)
	aRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Address{}, repo.ErrNotFound)

	u := NewAddressUsecase(aRepo)

	err := u.Delete(context.Background(), 1, 99)

	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestAddressUsecase_Delete(t *testing.T) {
	aRepo := new(CoAddressRepoMock)
	aRepo.On("FindByID", mock.Anything, int64(30)).Return(model.Address{ID: 30, UserID: 1}, nil)
	aRepo.On("Delete", mock.Anything, int64(30)).Return(nil)

	u := NewAddressUsecase(aRepo)

	err := u.Delete(context.Background(), 1, 30)

	assert.NoError(t, err)
	aRepo.AssertExpectations(t)
}
