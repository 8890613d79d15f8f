package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"bambu/internal/domain/model"
	repo "bambu/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// =====================
// Mocks
// =====================

type AuthUserRepoMock struct{ mock.Mock }

func (m *AuthUserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *AuthUserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *AuthUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type AuthValidatorMock struct{ mock.Mock }

func (m *AuthValidatorMock) ValidateRegister(ctx context.Context, name string, email string, password string) error {
	args := m.Called(ctx, name, email, password)
	return args.Error(0)
}

func (m *AuthValidatorMock) ValidateLogin(ctx context.Context, email string, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

type AuthTokenIssuerMock struct{ mock.Mock }

func (m *AuthTokenIssuerMock) Issue(userID int64, isSeller bool, now time.Time) (string, time.Time, error) {
	args := m.Called(userID, isSeller, now)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// =====================
// Register
// =====================

func TestAuthUsecase_Register(t *testing.T) {
	users := new(AuthUserRepoMock)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		//メールは小文字へ正規化、パスワードは平文で残さない
		okHash := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
		return u.Email == "ana@example.com" && u.Name == "Ana" && okHash
	})).Return(nil)

	v := new(AuthValidatorMock)
	v.On("ValidateRegister", mock.Anything, "Ana", "  Ana@Example.com ", "password123").Return(nil)

	u := NewAuthUsecase(users, v, new(AuthTokenIssuerMock))

	dto, err := u.Register(context.Background(), AuthRegisterRequest{
		Name:     "Ana",
		Email:    "  Ana@Example.com ",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "ana@example.com", dto.Email)
	users.AssertExpectations(t)
}

func TestAuthUsecase_Register_ValidationError(t *testing.T) {
	v := new(AuthValidatorMock)
	v.On("ValidateRegister", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("invalid input"))

	users := new(AuthUserRepoMock)
	u := NewAuthUsecase(users, v, new(AuthTokenIssuerMock))

	_, err := u.Register(context.Background(), AuthRegisterRequest{})

	assertHTTPStatus(t, err, http.StatusBadRequest)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	users := new(AuthUserRepoMock)
	users.On("Create", mock.Anything, mock.Anything).Return(errors.New("duplicate key"))

	v := new(AuthValidatorMock)
	v.On("ValidateRegister", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	u := NewAuthUsecase(users, v, new(AuthTokenIssuerMock))

	_, err := u.Register(context.Background(), AuthRegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "password123",
	})

	assertErrContains(t, err, "email already used")
	assertHTTPStatus(t, err, http.StatusConflict)
}

// =====================
// Login
// =====================

func TestAuthUsecase_Login(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)

	users := new(AuthUserRepoMock)
	users.On("FindByEmail", mock.Anything, "ana@example.com").Return(&model.User{
		ID: 1, Name: "Ana", Email: "ana@example.com", PasswordHash: string(hash), IsSeller: true,
	}, nil)

	v := new(AuthValidatorMock)
	v.On("ValidateLogin", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	expires := time.Now().Add(24 * time.Hour)
	issuer := new(AuthTokenIssuerMock)
	issuer.On("Issue", int64(1), true, mock.Anything).Return("token-abc", expires, nil)

	u := NewAuthUsecase(users, v, issuer)

	res, err := u.Login(context.Background(), AuthLoginRequest{Email: "Ana@Example.com", Password: "password123"})

	assert.NoError(t, err)
	assert.Equal(t, "token-abc", res.AccessToken)
	assert.Equal(t, expires, res.ExpiresAt)
	assert.True(t, res.User.IsSeller)
	issuer.AssertExpectations(t)
}

// 存在しないユーザーもパスワード不一致も同じ401
func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	users := new(AuthUserRepoMock)
	users.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, repo.ErrNotFound)

	v := new(AuthValidatorMock)
	v.On("ValidateLogin", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	u := NewAuthUsecase(users, v, new(AuthTokenIssuerMock))

	_, err := u.Login(context.Background(), AuthLoginRequest{Email: "nobody@example.com", Password: "password123"})

	assertErrContains(t, err, "invalid credentials")
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)

	users := new(AuthUserRepoMock)
	users.On("FindByEmail", mock.Anything, "ana@example.com").Return(&model.User{
		ID: 1, Email: "ana@example.com", PasswordHash: string(hash),
	}, nil)

	v := new(AuthValidatorMock)
	v.On("ValidateLogin", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	issuer := new(AuthTokenIssuerMock)
	u := NewAuthUsecase(users, v, issuer)

	_, err := u.Login(context.Background(), AuthLoginRequest{Email: "ana@example.com", Password: "wrong-password"})

	assertErrContains(t, err, "invalid credentials")
	issuer.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything)
}
