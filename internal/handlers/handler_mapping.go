package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
	portssvc "github.com/ludotheca/ludotheca_backend/internal/core/ports/services"
	"github.com/ludotheca/ludotheca_backend/internal/dto"
	"github.com/ludotheca/ludotheca_backend/internal/middleware"
)

// mappingHandler handles HTTP requests for the account mapping configuration.
type mappingHandler struct {
	mappingService portssvc.AccountMappingSvc
}

func newMappingHandler(mappingService portssvc.AccountMappingSvc) *mappingHandler {
	return &mappingHandler{mappingService: mappingService}
}

// listMappings godoc
// @Summary List configured account mappings
// @Description Returns the explicitly configured mappings; event types without a row use built-in defaults
// @Tags mappings
// @Produce  json
// @Success 200 {array} domain.AccountMapping
// @Router /mappings [get]
func (h *mappingHandler) listMappings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	mappings, err := h.mappingService.ListMappings(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list mappings")
		return
	}

	c.JSON(http.StatusOK, mappings)
}

// configureMapping godoc
// @Summary Configure an account mapping
// @Description Creates or replaces the mapping used when posting the given event type
// @Tags mappings
// @Accept  json
// @Produce  json
// @Param   mapping body dto.ConfigureMappingRequest true "Mapping details"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /mappings [put]
func (h *mappingHandler) configureMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConfigureMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for configureMapping", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	operatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	now := time.Now().UTC()
	mapping := domain.AccountMapping{
		EventType:       req.EventType,
		JournalCode:     req.JournalCode,
		ProductAccount:  req.ProductAccount,
		PiecePrefix:     req.PiecePrefix,
		OutflowAccount:  req.OutflowAccount,
		AnalyticSection: req.AnalyticSection,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorUserID,
		},
	}
	if err := h.mappingService.ConfigureMapping(c.Request.Context(), mapping, operatorUserID); err != nil {
		respondError(c, logger, err, "Failed to configure mapping")
		return
	}

	c.JSON(http.StatusOK, gin.H{"eventType": string(req.EventType)})
}

// configureEncashment godoc
// @Summary Configure a payment-method account
// @Description Creates or replaces the counterpart account used for the given payment method
// @Tags mappings
// @Accept  json
// @Produce  json
// @Param   account body dto.ConfigureEncashmentRequest true "Account details"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /mappings/encashments [put]
func (h *mappingHandler) configureEncashment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConfigureEncashmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for configureEncashment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	operatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	now := time.Now().UTC()
	account := domain.EncashmentAccount{
		PaymentMethod: req.PaymentMethod,
		AccountNumber: req.AccountNumber,
		JournalCode:   req.JournalCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorUserID,
		},
	}
	if err := h.mappingService.ConfigureEncashmentAccount(c.Request.Context(), account, operatorUserID); err != nil {
		respondError(c, logger, err, "Failed to configure payment-method account")
		return
	}

	c.JSON(http.StatusOK, gin.H{"paymentMethod": string(req.PaymentMethod)})
}

// registerMappingRoutes registers mapping configuration routes
func registerMappingRoutes(group *gin.RouterGroup, mappingService portssvc.AccountMappingSvc) {
	handler := newMappingHandler(mappingService)

	mappings := group.Group("/mappings")
	{
		mappings.GET("", handler.listMappings)
		mappings.PUT("", handler.configureMapping)
		mappings.PUT("/encashments", handler.configureEncashment)
	}
}
