package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/retailops/retail-suite/internal/apperrors"
	"github.com/retailops/retail-suite/internal/core/domain"
	portssvc "github.com/retailops/retail-suite/internal/core/ports/services"
	"github.com/retailops/retail-suite/internal/dto"
	"github.com/retailops/retail-suite/internal/handlers"
)

// --- Mock ProductService ---
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, id int64, req dto.UpdateProductRequest) (*domain.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) UpdateProductStock(ctx context.Context, id int64, stockQuantity int) (*domain.Product, error) {
	args := m.Called(ctx, id, stockQuantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductService) ListLowStockProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

var _ portssvc.ProductSvcFacade = (*MockProductService)(nil)

// --- Test Suite ---
type ProductHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockProductService
}

func (suite *ProductHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockProductService)
	suite.router = gin.New()
	api := suite.router.Group("/api/warehouse")
	handlers.RegisterProductRoutes(api, suite.mockService)
}

func (suite *ProductHandlerTestSuite) performRequest(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, path, reqBody)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func sampleProduct() *domain.Product {
	return &domain.Product{
		ID:            42,
		Name:          "Wireless Mouse",
		Category:      "electronics",
		Price:         decimal.NewFromInt(25),
		Cost:          decimal.NewFromInt(12),
		SKU:           "WM-001",
		StockQuantity: 10,
		MinStockLevel: 2,
		MaxStockLevel: 100,
		Status:        domain.ProductActive,
	}
}

// --- Test Cases ---

func (suite *ProductHandlerTestSuite) TestCreateProduct_Success() {
	req := dto.CreateProductRequest{
		Name:          "Wireless Mouse",
		Category:      "electronics",
		Price:         decimal.NewFromInt(25),
		SKU:           "WM-001",
		StockQuantity: 10,
		MinStockLevel: 2,
	}

	suite.mockService.On("CreateProduct", mock.Anything, req).Return(sampleProduct(), nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/warehouse/products", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ProductResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(42), resp.ID)
	suite.Equal("WM-001", resp.SKU)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestCreateProduct_MissingFields() {
	w := suite.performRequest(http.MethodPost, "/api/warehouse/products", map[string]any{"name": "Nameless"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateProduct", mock.Anything, mock.Anything)
}

func (suite *ProductHandlerTestSuite) TestCreateProduct_DuplicateSKU() {
	req := dto.CreateProductRequest{
		Name:  "Wireless Mouse",
		Price: decimal.NewFromInt(25),
		SKU:   "WM-001",
	}

	suite.mockService.On("CreateProduct", mock.Anything, req).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.performRequest(http.MethodPost, "/api/warehouse/products", req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestGetProductByID_Success() {
	suite.mockService.On("GetProductByID", mock.Anything, int64(42)).Return(sampleProduct(), nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/warehouse/products/42", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ProductResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Wireless Mouse", resp.Name)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestGetProductByID_NotFound() {
	suite.mockService.On("GetProductByID", mock.Anything, int64(99)).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodGet, "/api/warehouse/products/99", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestGetProductByID_InvalidID() {
	w := suite.performRequest(http.MethodGet, "/api/warehouse/products/abc", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "GetProductByID", mock.Anything, mock.Anything)
}

func (suite *ProductHandlerTestSuite) TestUpdateProductStock_Success() {
	updated := sampleProduct()
	updated.StockQuantity = 7

	suite.mockService.On("UpdateProductStock", mock.Anything, int64(42), 7).Return(updated, nil).Once()

	w := suite.performRequest(http.MethodPatch, "/api/warehouse/products/42/stock", dto.UpdateStockRequest{StockQuantity: 7})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ProductResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(7, resp.StockQuantity)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestUpdateProductStock_NegativeQuantity() {
	w := suite.performRequest(http.MethodPatch, "/api/warehouse/products/42/stock", map[string]any{"stockQuantity": -1})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "UpdateProductStock", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProductHandlerTestSuite) TestUpdateProduct_NotFound() {
	req := dto.UpdateProductRequest{
		Name:   "Wireless Mouse",
		Price:  decimal.NewFromInt(25),
		SKU:    "WM-001",
		Status: "active",
	}

	suite.mockService.On("UpdateProduct", mock.Anything, int64(99), req).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodPut, "/api/warehouse/products/99", req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestListLowStockProducts() {
	low := *sampleProduct()
	low.StockQuantity = 1

	suite.mockService.On("ListLowStockProducts", mock.Anything).
		Return([]domain.Product{low}, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/warehouse/products/low-stock", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.ProductResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal(1, resp[0].StockQuantity)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestListProductsByCategory() {
	suite.mockService.On("ListProductsByCategory", mock.Anything, "electronics").
		Return([]domain.Product{*sampleProduct()}, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/warehouse/products/category/electronics", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.ProductResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("electronics", resp[0].Category)
	suite.mockService.AssertExpectations(suite.T())
}

func TestProductHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProductHandlerTestSuite))
}
