package auth_test

import (
	"context"
	"errors"
	"testing"

	"payslip-portal/internal/auth"
	autherrors "payslip-portal/internal/auth/errors"
	authMock "payslip-portal/internal/auth/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func TestService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	service := auth.NewService(mockRepo)
	ctx := context.Background()

	password := "password123"
	pw, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	userID := uuid.New()
	mockUser := &auth.User{
		ID:       userID,
		Email:    "admin@example.com",
		Password: string(pw),
		Role:     auth.RoleAdmin,
		IsActive: true,
	}

	t.Run("Success Login", func(t *testing.T) {
		mockRepo.EXPECT().
			GetByEmail(ctx, mockUser.Email).
			Return(mockUser, nil)

		token, refreshToken, resp, err := service.Login(ctx, mockUser.Email, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, mockUser.Email, resp.Email)
		assert.Equal(t, auth.RoleAdmin, resp.Role)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		mockRepo.EXPECT().
			GetByEmail(ctx, mockUser.Email).
			Return(mockUser, nil)

		_, _, _, err := service.Login(ctx, mockUser.Email, "wrongpass")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("Inactive Account", func(t *testing.T) {
		inactive := *mockUser
		inactive.IsActive = false

		mockRepo.EXPECT().
			GetByEmail(ctx, mockUser.Email).
			Return(&inactive, nil)

		_, _, _, err := service.Login(ctx, mockUser.Email, password)
		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	service := auth.NewService(mockRepo)
	ctx := context.Background()

	t.Run("Success Register Client", func(t *testing.T) {
		req := auth.RegisterRequest{
			Email:        "user@example.com",
			Name:         "John Doe",
			Password:     "password123",
			Role:         auth.RoleClient,
			EmployeeCode: "E042",
		}

		mockRepo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, user *auth.User) error {
				assert.Equal(t, auth.RoleClient, user.Role)
				assert.Equal(t, "E042", user.EmployeeCode)
				assert.NotEqual(t, req.Password, user.Password, "password must be hashed")
				return nil
			})

		resp, err := service.Register(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, req.Email, resp.Email)
		assert.Equal(t, auth.RoleClient, resp.Role)
	})

	t.Run("Invalid Role", func(t *testing.T) {
		_, err := service.Register(ctx, auth.RegisterRequest{
			Email:    "user@example.com",
			Password: "password123",
			Role:     "superuser",
		})
		assert.ErrorIs(t, err, autherrors.ErrInvalidRole)
	})

	t.Run("Error Register - Duplicate Email", func(t *testing.T) {
		req := auth.RegisterRequest{
			Email:    "duplicate@example.com",
			Password: "password123",
			Role:     auth.RoleAdmin,
		}

		mockRepo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(errors.New("duplicate key error"))

		_, err := service.Register(ctx, req)
		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})
}

func TestService_GetMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	service := auth.NewService(mockRepo)
	ctx := context.Background()

	t.Run("Invalid ID", func(t *testing.T) {
		_, err := service.GetMe(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("Found", func(t *testing.T) {
		id := uuid.New()
		mockRepo.EXPECT().
			GetByID(ctx, id).
			Return(&auth.User{ID: id, Email: "admin@example.com", Role: auth.RoleAdmin}, nil)

		resp, err := service.GetMe(ctx, id.String())
		assert.NoError(t, err)
		assert.Equal(t, "admin@example.com", resp.Email)
	})
}
