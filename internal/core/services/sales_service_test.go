package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/retailops/retail-suite/internal/apperrors"
	"github.com/retailops/retail-suite/internal/core/domain"
	portssvc "github.com/retailops/retail-suite/internal/core/ports/services"
	"github.com/retailops/retail-suite/internal/core/services"
	"github.com/retailops/retail-suite/internal/dto"
)

// --- Mock SaleRepository ---
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) SaveSale(ctx context.Context, sale *domain.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) FindSaleByNumber(ctx context.Context, saleNumber string) (*domain.Sale, error) {
	args := m.Called(ctx, saleNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) ListSales(ctx context.Context) ([]domain.Sale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindSalesByCustomer(ctx context.Context, customerName string) ([]domain.Sale, error) {
	args := m.Called(ctx, customerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindSalesByDateRange(ctx context.Context, start, end time.Time) ([]domain.Sale, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

// --- Mock ProductStockGateway ---
type MockProductGateway struct {
	mock.Mock
}

func (m *MockProductGateway) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductGateway) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// --- Mock LedgerGateway ---
type MockLedgerGateway struct {
	mock.Mock
}

func (m *MockLedgerGateway) CreateEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock SagaEventSink ---
type MockEventSink struct {
	mock.Mock
}

func (m *MockEventSink) StockUpdateFailed(ctx context.Context, sale domain.Sale, err error) {
	m.Called(ctx, sale, err)
}

func (m *MockEventSink) AccountingPostingFailed(ctx context.Context, sale domain.Sale, entryNumber string, err error) {
	m.Called(ctx, sale, entryNumber, err)
}

// --- Test Suite ---
type SaleServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockSaleRepository
	mockProducts *MockProductGateway
	mockLedger   *MockLedgerGateway
	mockEvents   *MockEventSink
	service      portssvc.SaleSvcFacade
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSaleRepository)
	suite.mockProducts = new(MockProductGateway)
	suite.mockLedger = new(MockLedgerGateway)
	suite.mockEvents = new(MockEventSink)
	suite.service = services.NewSaleService(suite.mockRepo, suite.mockProducts, suite.mockLedger, suite.mockEvents)
}

func testProduct() *domain.Product {
	return &domain.Product{
		ID:            42,
		Name:          "Widget",
		Price:         decimal.NewFromInt(25),
		SKU:           "WID-001",
		StockQuantity: 10,
		Status:        domain.ProductActive,
	}
}

// --- Test Cases ---

func (suite *SaleServiceTestSuite) TestCreateSale_Success() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{ProductID: 42, Quantity: 3, CustomerName: "Ana Silva"}
	product := testProduct()

	suite.mockProducts.On("GetProduct", ctx, int64(42)).Return(product, nil).Once()
	suite.mockRepo.On("SaveSale", ctx, mock.MatchedBy(func(s *domain.Sale) bool {
		return s.ProductID == 42 &&
			s.Quantity == 3 &&
			s.UnitPrice.Equal(decimal.NewFromInt(25)) &&
			s.TotalAmount.Equal(decimal.NewFromInt(75)) &&
			s.FinalAmount.Equal(decimal.NewFromInt(75)) &&
			s.PaymentStatus == domain.PaymentPending
	})).Return(nil).Once()
	suite.mockProducts.On("UpdateProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.ID == 42 && p.StockQuantity == 7
	})).Return(product, nil).Once()

	var entries []domain.JournalEntry
	suite.mockLedger.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			entries = append(entries, args.Get(1).(domain.JournalEntry))
		}).
		Return(&domain.JournalEntry{}, nil).Twice()

	sale, err := suite.service.CreateSale(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(sale)
	suite.Regexp(`^SALE-[0-9A-F]{8}$`, sale.SaleNumber)
	suite.True(sale.TotalAmount.Equal(decimal.NewFromInt(75)))

	// The two entries form a balanced debit/credit pair referencing the sale.
	suite.Require().Len(entries, 2)
	debit, credit := entries[0], entries[1]
	suite.Equal("1200", debit.AccountCode)
	suite.Equal(domain.BalanceDebit, debit.BalanceType)
	suite.Equal("4100", credit.AccountCode)
	suite.Equal(domain.BalanceCredit, credit.BalanceType)
	suite.True(debit.DebitAmount.Equal(credit.CreditAmount))
	suite.Equal(sale.SaleNumber, debit.ReferenceNumber)
	suite.Equal(sale.SaleNumber, credit.ReferenceNumber)
	suite.Equal(domain.StatusDraft, debit.Status)
	suite.NoError(debit.Validate())
	suite.NoError(credit.Validate())

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockProducts.AssertExpectations(suite.T())
	suite.mockLedger.AssertExpectations(suite.T())
	suite.mockEvents.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_InsufficientStock() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{ProductID: 42, Quantity: 5, CustomerName: "Ana Silva"}
	product := testProduct()
	product.StockQuantity = 2

	suite.mockProducts.On("GetProduct", ctx, int64(42)).Return(product, nil).Once()

	sale, err := suite.service.CreateSale(ctx, req)

	suite.Require().Error(err)
	suite.Nil(sale)
	var stockErr *apperrors.InsufficientStockError
	suite.Require().ErrorAs(err, &stockErr)
	suite.Equal(2, stockErr.Available)
	suite.Equal(5, stockErr.Requested)

	// No writes of any kind happened.
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSale", mock.Anything, mock.Anything)
	suite.mockProducts.AssertNotCalled(suite.T(), "UpdateProduct", mock.Anything, mock.Anything)
	suite.mockLedger.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCreateSale_ProductNotFound() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{ProductID: 99, Quantity: 1, CustomerName: "Ana Silva"}

	suite.mockProducts.On("GetProduct", ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	sale, err := suite.service.CreateSale(ctx, req)

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSale", mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCreateSale_SaveFailureAbortsSaga() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{ProductID: 42, Quantity: 1, CustomerName: "Ana Silva"}

	suite.mockProducts.On("GetProduct", ctx, int64(42)).Return(testProduct(), nil).Once()
	suite.mockRepo.On("SaveSale", ctx, mock.AnythingOfType("*domain.Sale")).Return(assert.AnError).Once()

	sale, err := suite.service.CreateSale(ctx, req)

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, assert.AnError)
	suite.mockProducts.AssertNotCalled(suite.T(), "UpdateProduct", mock.Anything, mock.Anything)
	suite.mockLedger.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCreateSale_StockPushFailureIsTolerated() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{ProductID: 42, Quantity: 1, CustomerName: "Ana Silva"}

	suite.mockProducts.On("GetProduct", ctx, int64(42)).Return(testProduct(), nil).Once()
	suite.mockRepo.On("SaveSale", ctx, mock.AnythingOfType("*domain.Sale")).Return(nil).Once()
	suite.mockProducts.On("UpdateProduct", ctx, mock.AnythingOfType("domain.Product")).Return(nil, assert.AnError).Once()
	suite.mockEvents.On("StockUpdateFailed", ctx, mock.AnythingOfType("domain.Sale"), assert.AnError).Once()
	suite.mockLedger.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(&domain.JournalEntry{}, nil).Twice()

	sale, err := suite.service.CreateSale(ctx, req)

	// The sale succeeds and the failure is reported through the event sink.
	suite.Require().NoError(err)
	suite.Require().NotNil(sale)
	suite.mockEvents.AssertExpectations(suite.T())
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_AccountingFailureIsTolerated() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{ProductID: 42, Quantity: 1, CustomerName: "Ana Silva"}
	product := testProduct()

	suite.mockProducts.On("GetProduct", ctx, int64(42)).Return(product, nil).Once()
	suite.mockRepo.On("SaveSale", ctx, mock.AnythingOfType("*domain.Sale")).Return(nil).Once()
	suite.mockProducts.On("UpdateProduct", ctx, mock.AnythingOfType("domain.Product")).Return(product, nil).Once()
	suite.mockLedger.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil, assert.AnError).Once()
	suite.mockEvents.On("AccountingPostingFailed", ctx, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("string"), assert.AnError).Once()

	sale, err := suite.service.CreateSale(ctx, req)

	// The sale succeeds; the first entry failure stops the pair and is
	// reported through the event sink.
	suite.Require().NoError(err)
	suite.Require().NotNil(sale)
	suite.mockLedger.AssertNumberOfCalls(suite.T(), "CreateEntry", 1)
	suite.mockEvents.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestGetSaleByNumber_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindSaleByNumber", ctx, "SALE-FFFFFFFF").Return(nil, apperrors.ErrNotFound).Once()

	sale, err := suite.service.GetSaleByNumber(ctx, "SALE-FFFFFFFF")

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SaleServiceTestSuite) TestListSalesByDateRange() {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	expected := []domain.Sale{{SaleNumber: "SALE-00000001"}}

	suite.mockRepo.On("FindSalesByDateRange", ctx, start, end).Return(expected, nil).Once()

	sales, err := suite.service.ListSalesByDateRange(ctx, start, end)

	suite.Require().NoError(err)
	suite.Equal(expected, sales)
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
