package validator

import (
	"context"
	"testing"

	"bambu/internal/domain/model"
	repo "bambu/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func freshEmailRepo() *UserRepoMock {
	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, repo.ErrNotFound)
	return users
}

func TestValidateRegister(t *testing.T) {
	v := NewAuthValidator(freshEmailRepo())

	err := v.ValidateRegister(context.Background(), "Ana", "ana@example.com", "password123")

	assert.NoError(t, err)
}

func TestValidateRegister_RequiredFields(t *testing.T) {
	v := NewAuthValidator(freshEmailRepo())
	ctx := context.Background()

	assert.ErrorIs(t, v.ValidateRegister(ctx, "", "ana@example.com", "password123"), ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateRegister(ctx, "Ana", "", "password123"), ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateRegister(ctx, "Ana", "ana@example.com", ""), ErrInvalidInput)
}

func TestValidateRegister_EmailFormat(t *testing.T) {
	v := NewAuthValidator(freshEmailRepo())
	ctx := context.Background()

	assert.ErrorIs(t, v.ValidateRegister(ctx, "Ana", "not-an-email", "password123"), ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateRegister(ctx, "Ana", "ana@example", "password123"), ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateRegister(ctx, "Ana", "a na@example.com", "password123"), ErrInvalidInput)
}

func TestValidateRegister_PasswordTooShort(t *testing.T) {
	v := NewAuthValidator(freshEmailRepo())

	err := v.ValidateRegister(context.Background(), "Ana", "ana@example.com", "short")

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateRegister_DuplicateEmail(t *testing.T) {
	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "ana@example.com").Return(&model.User{ID: 1, Email: "ana@example.com"}, nil)

	v := NewAuthValidator(users)

	err := v.ValidateRegister(context.Background(), "Ana", "Ana@example.com", "password123")

	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestValidateLogin(t *testing.T) {
	v := NewAuthValidator(freshEmailRepo())
	ctx := context.Background()

	assert.NoError(t, v.ValidateLogin(ctx, "ana@example.com", "password123"))
	assert.ErrorIs(t, v.ValidateLogin(ctx, "", "password123"), ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateLogin(ctx, "ana@example.com", ""), ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateLogin(ctx, "not-an-email", "password123"), ErrInvalidInput)
}
