package company_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"payslip-portal/internal/company"
	companyMock "payslip-portal/internal/company/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestCompanyHandler_GetById(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := companyMock.NewMockService(ctrl)
	handler := company.NewHandler(mockService)

	t.Run("Success", func(t *testing.T) {
		compID := "comp-123"
		mockResp := &company.CompanyResponse{
			ID:   compID,
			Name: "Test Company",
		}

		mockService.EXPECT().GetByID(gomock.Any(), compID).Return(mockResp, nil)

		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		r.GET("/companies/:id", handler.GetById)

		req, _ := http.NewRequest(http.MethodGet, "/companies/"+compID, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var res map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, true, res["ok"])
	})
}

func TestCompanyHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := companyMock.NewMockService(ctrl)
	handler := company.NewHandler(mockService)

	t.Run("Success", func(t *testing.T) {
		reqBody := company.CreateCompanyRequest{
			Name:    "RV Associates",
			Address: "Vadodara",
		}
		mockResp := &company.CompanyResponse{
			ID:   "comp-1",
			Name: "RV Associates",
		}

		mockService.EXPECT().Create(gomock.Any(), gomock.Any()).Return(mockResp, nil)

		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		r.POST("/companies", handler.Create)

		jsonReq, _ := json.Marshal(reqBody)
		req, _ := http.NewRequest(http.MethodPost, "/companies", bytes.NewBuffer(jsonReq))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Missing Name", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		r.POST("/companies", handler.Create)

		req, _ := http.NewRequest(http.MethodPost, "/companies", bytes.NewBufferString(`{"address":"Vadodara"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCompanyHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := companyMock.NewMockService(ctrl)
	handler := company.NewHandler(mockService)

	t.Run("Success", func(t *testing.T) {
		compID := "comp-123"
		reqBody := company.UpdateCompanyRequest{
			Name: "Updated Name",
		}
		mockResp := &company.CompanyResponse{
			ID:   compID,
			Name: "Updated Name",
		}

		mockService.EXPECT().Update(gomock.Any(), compID, gomock.Any()).Return(mockResp, nil)

		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		r.PUT("/companies/:id", handler.Update)

		jsonReq, _ := json.Marshal(reqBody)
		req, _ := http.NewRequest(http.MethodPut, "/companies/"+compID, bytes.NewBuffer(jsonReq))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
