package company_test

import (
	"context"
	"testing"

	"payslip-portal/internal/company"
	companyerrors "payslip-portal/internal/company/errors"
	companyMock "payslip-portal/internal/company/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func TestCompanyService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := companyMock.NewMockRepository(ctrl)
	service := company.NewService(mockRepo)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo.EXPECT().GetByName(ctx, "RV Associates").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, c *company.Company) error {
			assert.Equal(t, "RV Associates", c.Name)
			assert.True(t, c.IsActive)
			c.ID = uuid.New()
			return nil
		})

		resp, err := service.Create(ctx, company.CreateCompanyRequest{
			Name:    "  RV Associates  ",
			Address: "Aarya Exotica, Bil, Vadodara",
		})

		assert.NoError(t, err)
		assert.Equal(t, "RV Associates", resp.Name)
		assert.NotEmpty(t, resp.ID)
	})

	t.Run("Duplicate Name", func(t *testing.T) {
		existing := &company.Company{ID: uuid.New(), Name: "RV Associates"}
		mockRepo.EXPECT().GetByName(ctx, "RV Associates").Return(existing, nil)

		_, err := service.Create(ctx, company.CreateCompanyRequest{Name: "RV Associates"})
		assert.ErrorIs(t, err, companyerrors.ErrCompanyAlreadyExists)
	})
}

func TestCompanyService_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := companyMock.NewMockRepository(ctrl)
	service := company.NewService(mockRepo)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		id := uuid.New()
		mockComp := &company.Company{
			ID:       id,
			Name:     "Test Company",
			Email:    "test@company.com",
			IsActive: true,
		}

		mockRepo.EXPECT().GetByID(ctx, id).Return(mockComp, nil)

		resp, err := service.GetByID(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, mockComp.Name, resp.Name)
		assert.Equal(t, mockComp.ID.String(), resp.ID)
	})

	t.Run("Not Found", func(t *testing.T) {
		id := uuid.New()
		mockRepo.EXPECT().GetByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.GetByID(ctx, id.String())
		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		_, err := service.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, companyerrors.ErrInvalidCompanyID)
	})
}

func TestCompanyService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := companyMock.NewMockRepository(ctrl)
	service := company.NewService(mockRepo)
	ctx := context.Background()

	t.Run("Success Update Name", func(t *testing.T) {
		id := uuid.New()
		mockComp := &company.Company{
			ID:       id,
			Name:     "Old Name",
			Email:    "test@company.com",
			IsActive: true,
		}

		mockRepo.EXPECT().GetByID(ctx, id).Return(mockComp, nil)
		mockRepo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, c *company.Company) error {
			assert.Equal(t, "New Name", c.Name)
			return nil
		})

		resp, err := service.Update(ctx, id.String(), company.UpdateCompanyRequest{
			Name: "New Name",
		})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", resp.Name)
	})

	t.Run("Deactivate", func(t *testing.T) {
		id := uuid.New()
		inactive := false
		mockComp := &company.Company{ID: id, Name: "Test Company", IsActive: true}

		mockRepo.EXPECT().GetByID(ctx, id).Return(mockComp, nil)
		mockRepo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, c *company.Company) error {
			assert.False(t, c.IsActive)
			return nil
		})

		resp, err := service.Update(ctx, id.String(), company.UpdateCompanyRequest{
			IsActive: &inactive,
		})

		assert.NoError(t, err)
		assert.False(t, resp.IsActive)
	})
}

func TestCompanyService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := companyMock.NewMockRepository(ctrl)
	service := company.NewService(mockRepo)
	ctx := context.Background()

	id := uuid.New()
	mockRepo.EXPECT().GetByID(ctx, id).Return(&company.Company{ID: id}, nil)
	mockRepo.EXPECT().Delete(ctx, id).Return(nil)

	assert.NoError(t, service.Delete(ctx, id.String()))
}
