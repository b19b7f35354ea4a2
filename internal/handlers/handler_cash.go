package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ludotheca/ludotheca_backend/internal/core/ports/services"
	"github.com/ludotheca/ludotheca_backend/internal/dto"
	"github.com/ludotheca/ludotheca_backend/internal/middleware"
)

// cashHandler handles HTTP requests for registers, sessions and movements.
type cashHandler struct {
	cashService portssvc.CashSvcFacade
}

func newCashHandler(cashService portssvc.CashSvcFacade) *cashHandler {
	return &cashHandler{cashService: cashService}
}

// createRegister godoc
// @Summary Create a cash register
// @Tags cash
// @Accept  json
// @Produce  json
// @Param   register body dto.CreateRegisterRequest true "Register details"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Register code already taken"
// @Router /registers [post]
func (h *cashHandler) createRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createRegister", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	register, err := h.cashService.CreateRegister(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create register")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRegisterResponse(register))
}

// listRegisters godoc
// @Summary List cash registers
// @Tags cash
// @Produce  json
// @Success 200 {array} dto.RegisterResponse
// @Router /registers [get]
func (h *cashHandler) listRegisters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	registers, err := h.cashService.ListRegisters(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list registers")
		return
	}

	responses := make([]dto.RegisterResponse, len(registers))
	for i := range registers {
		responses[i] = dto.ToRegisterResponse(&registers[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getRegister godoc
// @Summary Get a cash register
// @Tags cash
// @Produce  json
// @Param   registerID path string true "Register ID"
// @Success 200 {object} dto.RegisterResponse
// @Failure 404 {object} map[string]string "Register not found"
// @Router /registers/{registerID} [get]
func (h *cashHandler) getRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	register, err := h.cashService.GetRegisterByID(c.Request.Context(), c.Param("registerID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve register")
		return
	}

	c.JSON(http.StatusOK, dto.ToRegisterResponse(register))
}

// openSession godoc
// @Summary Open a cash session
// @Description Opens a session on a register; the register's current balance becomes the session's opening balance
// @Tags cash
// @Accept  json
// @Produce  json
// @Param   registerID path string true "Register ID"
// @Param   session body dto.OpenSessionRequest true "Opening details"
// @Success 201 {object} dto.SessionResponse
// @Failure 404 {object} map[string]string "Register not found"
// @Failure 409 {object} map[string]string "Register already has an open session"
// @Router /registers/{registerID}/sessions [post]
func (h *cashHandler) openSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for openSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	openerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	session, err := h.cashService.OpenSession(c.Request.Context(), c.Param("registerID"), req, openerUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to open session")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSessionResponse(session))
}

// getCurrentSession godoc
// @Summary Get the open session of a register
// @Tags cash
// @Produce  json
// @Param   registerID path string true "Register ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} map[string]string "No open session on this register"
// @Router /registers/{registerID}/sessions/current [get]
func (h *cashHandler) getCurrentSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	session, err := h.cashService.GetCurrentSession(c.Request.Context(), c.Param("registerID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve current session")
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// listSessions godoc
// @Summary List sessions of a register
// @Tags cash
// @Produce  json
// @Param   registerID path string true "Register ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListSessionsResponse
// @Router /registers/{registerID}/sessions [get]
func (h *cashHandler) listSessions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListSessionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listSessions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.cashService.ListSessions(c.Request.Context(), c.Param("registerID"), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list sessions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getSession godoc
// @Summary Get a session with its movements
// @Tags cash
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{sessionID} [get]
func (h *cashHandler) getSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	session, err := h.cashService.GetSessionByID(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve session")
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// recordMovement godoc
// @Summary Record a cash movement
// @Description Records an entry or exit of money on an open session
// @Tags cash
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   movement body dto.RecordMovementRequest true "Movement details"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 422 {object} map[string]string "Session is not open"
// @Router /sessions/{sessionID}/movements [post]
func (h *cashHandler) recordMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	operatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	movement, err := h.cashService.RecordMovement(c.Request.Context(), c.Param("sessionID"), req, operatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to record movement")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

// voidMovement godoc
// @Summary Void a cash movement
// @Description Soft-cancels a movement of an open session; the row stays for the audit trail
// @Tags cash
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   movementID path string true "Movement ID"
// @Param   void body dto.VoidRequest true "Void reason"
// @Success 200 {object} dto.MovementResponse
// @Failure 404 {object} map[string]string "Movement not found"
// @Failure 422 {object} map[string]string "Session not open or movement already voided"
// @Router /sessions/{sessionID}/movements/{movementID}/void [post]
func (h *cashHandler) voidMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.VoidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for voidMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	operatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	movement, err := h.cashService.VoidMovement(c.Request.Context(), c.Param("sessionID"), c.Param("movementID"), req, operatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to void movement")
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// closeSession godoc
// @Summary Close and reconcile a cash session
// @Description Freezes the reconciliation figures and hands the declared balance to the register
// @Tags cash
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   closing body dto.CloseSessionRequest true "Declared balance and comment"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 422 {object} map[string]string "Session is not open"
// @Router /sessions/{sessionID}/close [post]
func (h *cashHandler) closeSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for closeSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	closerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	session, err := h.cashService.CloseSession(c.Request.Context(), c.Param("sessionID"), req, closerUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to close session")
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// voidSession godoc
// @Summary Void a cash session
// @Description Voids an open session that has no valid movements
// @Tags cash
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   void body dto.VoidRequest true "Void reason"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 422 {object} map[string]string "Session not open or has valid movements"
// @Router /sessions/{sessionID}/void [post]
func (h *cashHandler) voidSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.VoidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for voidSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	operatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	session, err := h.cashService.VoidSession(c.Request.Context(), c.Param("sessionID"), req, operatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to void session")
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// registerCashRoutes registers register and session specific routes
func registerCashRoutes(group *gin.RouterGroup, cashService portssvc.CashSvcFacade) {
	handler := newCashHandler(cashService)

	registers := group.Group("/registers")
	{
		registers.POST("", handler.createRegister)
		registers.GET("", handler.listRegisters)
		registers.GET("/:registerID", handler.getRegister)
		registers.POST("/:registerID/sessions", handler.openSession)
		registers.GET("/:registerID/sessions", handler.listSessions)
		registers.GET("/:registerID/sessions/current", handler.getCurrentSession)
	}

	sessions := group.Group("/sessions")
	{
		sessions.GET("/:sessionID", handler.getSession)
		sessions.POST("/:sessionID/movements", handler.recordMovement)
		sessions.POST("/:sessionID/movements/:movementID/void", handler.voidMovement)
		sessions.POST("/:sessionID/close", handler.closeSession)
		sessions.POST("/:sessionID/void", handler.voidSession)
	}
}
