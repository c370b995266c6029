package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/retailops/retail-suite/internal/apperrors"
	portssvc "github.com/retailops/retail-suite/internal/core/ports/services"
	"github.com/retailops/retail-suite/internal/dto"
	"github.com/retailops/retail-suite/internal/middleware"
)

// saleHandler handles HTTP requests related to sales.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{
		saleService: ss,
	}
}

// RegisterSaleRoutes registers routes related to sales.
func RegisterSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:saleNumber", h.getSaleByNumber)
		sales.GET("/customer/:customerName", h.listSalesByCustomer)
		sales.GET("/date-range", h.listSalesByDateRange)
	}
}

// createSale godoc
// @Summary Create a new sale
// @Description Validates product stock, persists the sale, then pushes the stock decrement and accounting entries
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   sale body dto.CreateSaleRequest true "Sale details"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Insufficient stock"
// @Failure 502 {object} map[string]string "Product service unavailable"
// @Failure 500 {object} map[string]string "Failed to create sale"
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create sale",
		slog.Int64("product_id", req.ProductID),
		slog.Int("quantity", req.Quantity))

	sale, err := h.saleService.CreateSale(c.Request.Context(), req)
	if err != nil {
		var stockErr *apperrors.InsufficientStockError
		var remoteErr *apperrors.RemoteError
		switch {
		case errors.As(err, &stockErr):
			logger.Warn("Insufficient stock for sale",
				slog.Int("available", stockErr.Available),
				slog.Int("requested", stockErr.Requested))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Product not found for sale", slog.Int64("product_id", req.ProductID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating sale", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &remoteErr):
			logger.Error("Remote service failure during sale creation",
				slog.String("service", remoteErr.Service),
				slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Product service unavailable"})
		default:
			logger.Error("Failed to create sale", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale"})
		}
		return
	}

	logger.Info("Sale created successfully", slog.String("sale_number", sale.SaleNumber))
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// getSaleByNumber godoc
// @Summary Get a sale by its sale number
// @Tags sales
// @Produce  json
// @Param   saleNumber path string true "Sale number, e.g. SALE-1A2B3C4D"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 500 {object} map[string]string "Failed to retrieve sale"
// @Router /sales/{saleNumber} [get]
func (h *saleHandler) getSaleByNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleNumber := c.Param("saleNumber")

	sale, err := h.saleService.GetSaleByNumber(c.Request.Context(), saleNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Sale not found", slog.String("sale_number", saleNumber))
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		} else {
			logger.Error("Failed to get sale", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sale"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// listSales godoc
// @Summary List all sales
// @Tags sales
// @Produce  json
// @Success 200 {array} dto.SaleResponse
// @Failure 500 {object} map[string]string "Failed to list sales"
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	sales, err := h.saleService.ListSales(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list sales", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sales"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponses(sales))
}

// listSalesByCustomer godoc
// @Summary List sales for a customer
// @Description Matches the customer name fragment case-insensitively
// @Tags sales
// @Produce  json
// @Param   customerName path string true "Customer name or fragment"
// @Success 200 {array} dto.SaleResponse
// @Failure 500 {object} map[string]string "Failed to list sales"
// @Router /sales/customer/{customerName} [get]
func (h *saleHandler) listSalesByCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerName := c.Param("customerName")

	sales, err := h.saleService.ListSalesByCustomer(c.Request.Context(), customerName)
	if err != nil {
		logger.Error("Failed to list sales by customer", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sales"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponses(sales))
}

// listSalesByDateRange godoc
// @Summary List sales within a date range
// @Tags sales
// @Produce  json
// @Param   start query string true "Start date (YYYY-MM-DD)"
// @Param   end query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} dto.SaleResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to list sales"
// @Router /sales/date-range [get]
func (h *saleHandler) listSalesByDateRange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	start, end, err := parseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sales, err := h.saleService.ListSalesByDateRange(c.Request.Context(), start, end)
	if err != nil {
		logger.Error("Failed to list sales by date range", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sales"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponses(sales))
}

// parseDateRange parses start and end query dates. The end date is pushed to
// the last instant of its day so the range is inclusive.
func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid start date, expected YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid end date, expected YYYY-MM-DD")
	}
	end = end.Add(24*time.Hour - time.Nanosecond)
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("end date must not be before start date")
	}
	return start, end, nil
}
