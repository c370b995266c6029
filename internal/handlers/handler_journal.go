package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retailops/retail-suite/internal/apperrors"
	"github.com/retailops/retail-suite/internal/core/domain"
	portssvc "github.com/retailops/retail-suite/internal/core/ports/services"
	"github.com/retailops/retail-suite/internal/dto"
	"github.com/retailops/retail-suite/internal/middleware"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

// RegisterJournalRoutes registers routes related to journal entries.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journal := rg.Group("/journal")
	{
		journal.POST("", h.createEntry)
		journal.GET("", h.listEntries)
		journal.GET("/:entryNumber", h.getEntryByNumber)
		journal.GET("/status/:status", h.listEntriesByStatus)
		journal.GET("/account/:accountCode", h.listEntriesByAccountCode)
		journal.GET("/date-range", h.listEntriesByDateRange)
		journal.PUT("/:entryNumber/post", h.postEntry)
		journal.PUT("/:entryNumber/approve", h.approveEntry)
		journal.PUT("/:entryNumber/reverse", h.reverseEntry)
	}
}

// createEntry godoc
// @Summary Create a new journal entry
// @Description Creates a draft journal entry; mints an entry number when the request carries none
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalEntryRequest true "Journal entry details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Entry number already exists"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Router /journal [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Attempted to create duplicate journal entry", slog.String("entry_number", req.EntryNumber))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		}
		return
	}

	logger.Info("Journal entry created", slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getEntryByNumber godoc
// @Summary Get a journal entry by its entry number
// @Tags journal
// @Produce  json
// @Param   entryNumber path string true "Journal entry number"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Router /journal/{entryNumber} [get]
func (h *journalHandler) getEntryByNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryNumber := c.Param("entryNumber")

	entry, err := h.journalService.GetEntryByNumber(c.Request.Context(), entryNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Journal entry not found", slog.String("entry_number", entryNumber))
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
		} else {
			logger.Error("Failed to get journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List all journal entries
// @Tags journal
// @Produce  json
// @Success 200 {array} dto.JournalEntryResponse
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /journal [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entries, err := h.journalService.ListEntries(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
}

// listEntriesByStatus godoc
// @Summary List journal entries in a given status
// @Tags journal
// @Produce  json
// @Param   status path string true "Entry status" Enums(draft, posted, approved, reversed)
// @Success 200 {array} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /journal/status/{status} [get]
func (h *journalHandler) listEntriesByStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	status, err := domain.ParseEntryStatus(c.Param("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.journalService.ListEntriesByStatus(c.Request.Context(), status)
	if err != nil {
		logger.Error("Failed to list journal entries by status", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
}

// listEntriesByAccountCode godoc
// @Summary List journal entries posted against an account
// @Tags journal
// @Produce  json
// @Param   accountCode path string true "Account code, e.g. 1200"
// @Success 200 {array} dto.JournalEntryResponse
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /journal/account/{accountCode} [get]
func (h *journalHandler) listEntriesByAccountCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountCode := c.Param("accountCode")

	entries, err := h.journalService.ListEntriesByAccountCode(c.Request.Context(), accountCode)
	if err != nil {
		logger.Error("Failed to list journal entries by account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
}

// listEntriesByDateRange godoc
// @Summary List journal entries within a transaction date range
// @Tags journal
// @Produce  json
// @Param   start query string true "Start date (YYYY-MM-DD)"
// @Param   end query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /journal/date-range [get]
func (h *journalHandler) listEntriesByDateRange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	start, end, err := parseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.journalService.ListEntriesByDateRange(c.Request.Context(), start, end)
	if err != nil {
		logger.Error("Failed to list journal entries by date range", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
}

// postEntry godoc
// @Summary Post a draft journal entry
// @Tags journal
// @Produce  json
// @Param   entryNumber path string true "Journal entry number"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not in draft status"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Router /journal/{entryNumber}/post [put]
func (h *journalHandler) postEntry(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, entryNumber string) (*domain.JournalEntry, error) {
		return h.journalService.PostEntry(ctx.Request.Context(), entryNumber)
	})
}

// approveEntry godoc
// @Summary Approve a draft journal entry
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entryNumber path string true "Journal entry number"
// @Param   approval body dto.ApproveEntryRequest true "Approver identity"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not in draft status"
// @Failure 500 {object} map[string]string "Failed to approve entry"
// @Router /journal/{entryNumber}/approve [put]
func (h *journalHandler) approveEntry(c *gin.Context) {
	var req dto.ApproveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	h.transition(c, func(ctx *gin.Context, entryNumber string) (*domain.JournalEntry, error) {
		return h.journalService.ApproveEntry(ctx.Request.Context(), entryNumber, req.ApprovedBy)
	})
}

// reverseEntry godoc
// @Summary Reverse a posted or approved journal entry
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entryNumber path string true "Journal entry number"
// @Param   reversal body dto.ReverseEntryRequest true "Reversing entry number"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry cannot be reversed from its current status"
// @Failure 500 {object} map[string]string "Failed to reverse entry"
// @Router /journal/{entryNumber}/reverse [put]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	h.transition(c, func(ctx *gin.Context, entryNumber string) (*domain.JournalEntry, error) {
		return h.journalService.ReverseEntry(ctx.Request.Context(), entryNumber, req.ReversedByEntry)
	})
}

// transition runs one of the status transition operations and maps its
// errors to HTTP responses.
func (h *journalHandler) transition(c *gin.Context, op func(*gin.Context, string) (*domain.JournalEntry, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryNumber := c.Param("entryNumber")

	entry, err := op(c, entryNumber)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Journal entry not found for transition", slog.String("entry_number", entryNumber))
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
		case errors.Is(err, apperrors.ErrInvalidTransition):
			logger.Warn("Invalid journal entry transition", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed journal entry transition", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		}
		return
	}

	logger.Info("Journal entry transitioned",
		slog.String("entry_number", entry.EntryNumber),
		slog.String("status", string(entry.Status)))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}
