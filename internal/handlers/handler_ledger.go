package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
	portssvc "github.com/ludotheca/ludotheca_backend/internal/core/ports/services"
	"github.com/ludotheca/ludotheca_backend/internal/dto"
	"github.com/ludotheca/ludotheca_backend/internal/middleware"
)

// ledgerHandler handles HTTP requests for posting events and reading pieces.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

// postPayment godoc
// @Summary Post a payment event to the ledger
// @Description Generates the balanced accounting piece for a membership or invoice payment. Idempotent per event.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   payment body dto.PostPaymentRequest true "Payment event"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Event posted concurrently"
// @Router /ledger/payments [post]
func (h *ledgerHandler) postPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for postPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	operatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	posting, entries, err := h.ledgerService.Generate(c.Request.Context(), req.ToPaymentEvent(), operatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to post payment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostingResponse(posting, entries))
}

// postDisposal godoc
// @Summary Post an inventory disposal to the ledger
// @Description Generates the balanced accounting piece writing off a disposed item at book value. Idempotent per event.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   disposal body dto.PostDisposalRequest true "Disposal event"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /ledger/disposals [post]
func (h *ledgerHandler) postDisposal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostDisposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for postDisposal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	operatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	posting, entries, err := h.ledgerService.Generate(c.Request.Context(), req.ToDisposalEvent(), operatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to post disposal")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostingResponse(posting, entries))
}

// reverseEvent godoc
// @Summary Reverse a posted event
// @Description Writes a contra-piece with debit and credit swapped under a new piece number
// @Tags ledger
// @Produce  json
// @Param   eventType path string true "Event type"
// @Param   eventID path string true "Event ID"
// @Success 201 {object} dto.PostingResponse
// @Failure 404 {object} map[string]string "No posting for event"
// @Failure 409 {object} map[string]string "Posting already reversed"
// @Router /ledger/events/{eventType}/{eventID}/reverse [post]
func (h *ledgerHandler) reverseEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	operatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	eventType := domain.EventType(c.Param("eventType"))
	posting, entries, err := h.ledgerService.GenerateReversal(c.Request.Context(), eventType, c.Param("eventID"), operatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to reverse event")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostingResponse(posting, entries))
}

// getEventPosting godoc
// @Summary Get the posting and entries of an event
// @Description Returns the original posting and every entry referencing the event, contra-pieces included
// @Tags ledger
// @Produce  json
// @Param   eventType path string true "Event type"
// @Param   eventID path string true "Event ID"
// @Success 200 {object} dto.PostingResponse
// @Failure 404 {object} map[string]string "No posting for event"
// @Router /ledger/events/{eventType}/{eventID} [get]
func (h *ledgerHandler) getEventPosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	eventType := domain.EventType(c.Param("eventType"))
	posting, entries, err := h.ledgerService.GetPostingForEvent(c.Request.Context(), eventType, c.Param("eventID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve posting")
		return
	}

	c.JSON(http.StatusOK, dto.ToPostingResponse(posting, entries))
}

// getPiece godoc
// @Summary Get the entries of an accounting piece
// @Tags ledger
// @Produce  json
// @Param   journalCode path string true "Journal code"
// @Param   fiscalYear path int true "Fiscal year"
// @Param   pieceNumber path int true "Piece number"
// @Success 200 {array} dto.EntryResponse
// @Failure 404 {object} map[string]string "Piece not found"
// @Router /ledger/pieces/{journalCode}/{fiscalYear}/{pieceNumber} [get]
func (h *ledgerHandler) getPiece(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fiscalYear, err := strconv.Atoi(c.Param("fiscalYear"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fiscal year"})
		return
	}
	pieceNumber, err := strconv.ParseInt(c.Param("pieceNumber"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid piece number"})
		return
	}

	piece := domain.PieceRef{
		JournalCode: c.Param("journalCode"),
		FiscalYear:  fiscalYear,
		PieceNumber: pieceNumber,
	}
	entries, err := h.ledgerService.GetPiece(c.Request.Context(), piece)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve piece")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponses(entries))
}

// registerLedgerRoutes registers ledger specific routes
func registerLedgerRoutes(group *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	handler := newLedgerHandler(ledgerService)

	ledger := group.Group("/ledger")
	{
		ledger.POST("/payments", handler.postPayment)
		ledger.POST("/disposals", handler.postDisposal)
		ledger.POST("/events/:eventType/:eventID/reverse", handler.reverseEvent)
		ledger.GET("/events/:eventType/:eventID", handler.getEventPosting)
		ledger.GET("/pieces/:journalCode/:fiscalYear/:pieceNumber", handler.getPiece)
	}
}
