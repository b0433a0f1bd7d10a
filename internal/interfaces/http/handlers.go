package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tugu-digital/dots/internal/application/port"
	"github.com/tugu-digital/dots/internal/application/service"
	"github.com/tugu-digital/dots/internal/approval"
	"github.com/tugu-digital/dots/internal/authz"
	"github.com/tugu-digital/dots/internal/domain/entity"
	"github.com/tugu-digital/dots/internal/domain/status"
	"github.com/tugu-digital/dots/internal/domain/workflow"
	"github.com/tugu-digital/dots/internal/wizard"
	"github.com/tugu-digital/dots/pkg/utils"
)

// viewerKey is the gin context key holding the resolved Viewer.
const viewerKey = "viewer"

// maxAttachmentSize caps uploaded supporting documents at 20 MiB.
const maxAttachmentSize = 20 << 20

// Handlers contains all HTTP request handlers
type Handlers struct {
	txnService        service.TransactionService
	approvalService   service.ApprovalService
	wizardService     service.WizardService
	reportService     service.ReportService
	attachmentService service.AttachmentService
	identity          port.IdentityClient
	masterData        port.MasterDataClient
	logger            Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	txnService service.TransactionService,
	approvalService service.ApprovalService,
	wizardService service.WizardService,
	reportService service.ReportService,
	attachmentService service.AttachmentService,
	identity port.IdentityClient,
	masterData port.MasterDataClient,
	logger Logger,
) *Handlers {
	return &Handlers{
		txnService:        txnService,
		approvalService:   approvalService,
		wizardService:     wizardService,
		reportService:     reportService,
		attachmentService: attachmentService,
		identity:          identity,
		masterData:        masterData,
		logger:            logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// identityMiddleware resolves the caller's DOTS roles from the forwarded
// identity headers. The gateway authenticates upstream; this layer only
// resolves authority. Identity service outages surface as 502 rather than
// 403 so a BPMS incident cannot look like a revoked role.
func (h *Handlers) identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetHeader("X-User-Email")
		if err := utils.ValidateEmail(email); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "missing identity",
			})
			return
		}

		apps, err := h.identity.GetApplications(c.Request.Context(), email)
		if err != nil {
			h.logger.Error("Failed to resolve identity", "email", email, "error", err)
			c.AbortWithStatusJSON(http.StatusBadGateway, Response{
				Success: false,
				Error:   "identity service unavailable",
			})
			return
		}

		viewer := service.Viewer{
			Email: email,
			BP:    c.GetHeader("X-User-BP"),
			Roles: authz.ResolveRoles(apps, authz.ApplicationName),
		}
		c.Set(viewerKey, viewer)
		c.Next()
	}
}

func getViewer(c *gin.Context) service.Viewer {
	viewer, _ := c.Get(viewerKey)
	v, _ := viewer.(service.Viewer)
	return v
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// ListTransactionsRequest represents query parameters for listing
type ListTransactionsRequest struct {
	Status    string `form:"status"`
	CreatedBy string `form:"created_by"`
	TrxType   int    `form:"trx_type"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

// ListTransactions handles GET /api/v1/transactions
func (h *Handlers) ListTransactions(c *gin.Context) {
	var req ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid query parameters",
		})
		return
	}

	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	txns, err := h.txnService.List(c.Request.Context(), port.TransactionFilter{
		Status:    status.Code(req.Status),
		CreatedBy: req.CreatedBy,
		TrxType:   req.TrxType,
		Limit:     req.Limit,
		Offset:    req.Offset,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: txns})
}

// GetTransaction handles GET /api/v1/transactions/:hash
func (h *Handlers) GetTransaction(c *gin.Context) {
	txn, err := h.txnService.GetByHash(c.Request.Context(), c.Param("hash"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: txn})
}

// UpdateTransaction handles PUT /api/v1/transactions/:hash
func (h *Handlers) UpdateTransaction(c *gin.Context) {
	var update entity.Transaction
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	viewer := getViewer(c)
	txn, err := h.txnService.Update(c.Request.Context(), c.Param("hash"), viewer.Email, &update)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: txn})
}

// DeleteTransaction handles DELETE /api/v1/transactions/:hash
func (h *Handlers) DeleteTransaction(c *gin.Context) {
	viewer := getViewer(c)
	if err := h.txnService.Delete(c.Request.Context(), c.Param("hash"), viewer.Email); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// GetActions handles GET /api/v1/transactions/:hash/actions
func (h *Handlers) GetActions(c *gin.Context) {
	actions, err := h.approvalService.Actions(c.Request.Context(), c.Param("hash"), getViewer(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: actions.List()})
}

// GetTransactionLogs handles GET /api/v1/transactions/:hash/logs
func (h *Handlers) GetTransactionLogs(c *gin.Context) {
	logs, err := h.txnService.Logs(c.Request.Context(), c.Param("hash"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: logs})
}

// ActionRequest carries the optional reviewer notes of a workflow action
type ActionRequest struct {
	Notes string `json:"notes"`
}

func (h *Handlers) executeAction(c *gin.Context, action approval.Action) {
	var req ActionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, Response{
				Success: false,
				Error:   "invalid request body",
			})
			return
		}
	}

	txn, err := h.approvalService.Execute(c.Request.Context(), c.Param("hash"), action, getViewer(c), req.Notes)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: txn})
}

// RequestApproval handles POST /api/v1/transactions/:hash/request-approval
func (h *Handlers) RequestApproval(c *gin.Context) {
	h.executeAction(c, approval.ActionRequestApproval)
}

// Approve handles POST /api/v1/transactions/:hash/approve
func (h *Handlers) Approve(c *gin.Context) {
	h.executeAction(c, approval.ActionApprove)
}

// Revise handles POST /api/v1/transactions/:hash/revise
func (h *Handlers) Revise(c *gin.Context) {
	h.executeAction(c, approval.ActionRevise)
}

// Reject handles POST /api/v1/transactions/:hash/reject
func (h *Handlers) Reject(c *gin.Context) {
	h.executeAction(c, approval.ActionReject)
}

// NextStep handles POST /api/v1/transactions/:hash/next-step
func (h *Handlers) NextStep(c *gin.Context) {
	h.executeAction(c, approval.ActionNextStep)
}

// PostToSAP handles POST /api/v1/transactions/:hash/post
func (h *Handlers) PostToSAP(c *gin.Context) {
	h.adminAdvance(c, workflow.TriggerPost)
}

// Pay handles POST /api/v1/transactions/:hash/pay
func (h *Handlers) Pay(c *gin.Context) {
	h.adminAdvance(c, workflow.TriggerPay)
}

func (h *Handlers) adminAdvance(c *gin.Context, trigger workflow.Trigger) {
	txn, err := h.approvalService.AdminAdvance(c.Request.Context(), c.Param("hash"), trigger, getViewer(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: txn})
}

// ListAttachments handles GET /api/v1/transactions/:hash/attachments
func (h *Handlers) ListAttachments(c *gin.Context) {
	atts, err := h.attachmentService.List(c.Request.Context(), c.Param("hash"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: atts})
}

// UploadAttachment handles POST /api/v1/transactions/:hash/attachments
func (h *Handlers) UploadAttachment(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "missing file field",
		})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxAttachmentSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "failed to read file",
		})
		return
	}
	if len(content) > maxAttachmentSize {
		c.JSON(http.StatusRequestEntityTooLarge, Response{
			Success: false,
			Error:   "file too large",
		})
		return
	}

	att, err := h.attachmentService.Upload(
		c.Request.Context(),
		c.Param("hash"),
		header.Filename,
		header.Header.Get("Content-Type"),
		content,
		getViewer(c),
	)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: att})
}

// LookupCostCenters handles GET /api/v1/lookups/cost-centers
func (h *Handlers) LookupCostCenters(c *gin.Context) {
	centers, err := h.masterData.CostCenters(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to look up cost centers", "error", err)
		c.JSON(http.StatusBadGateway, Response{
			Success: false,
			Error:   "master data unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: centers})
}

// LookupCurrencies handles GET /api/v1/lookups/currencies
func (h *Handlers) LookupCurrencies(c *gin.Context) {
	currencies, err := h.masterData.Currencies(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to look up currencies", "error", err)
		c.JSON(http.StatusBadGateway, Response{
			Success: false,
			Error:   "master data unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: currencies})
}

// TransactionsReport handles GET /api/v1/reports/transactions.xlsx
func (h *Handlers) TransactionsReport(c *gin.Context) {
	var req ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid query parameters",
		})
		return
	}

	data, err := h.reportService.TransactionsXLSX(c.Request.Context(), port.TransactionFilter{
		Status:    status.Code(req.Status),
		CreatedBy: req.CreatedBy,
		TrxType:   req.TrxType,
		Limit:     req.Limit,
		Offset:    req.Offset,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transactions.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// respondError maps service errors to HTTP status codes
func (h *Handlers) respondError(c *gin.Context, err error) {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, wizard.ErrSessionNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrActionNotAllowed):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrNotEditable),
		errors.Is(err, service.ErrNotesRequired),
		errors.Is(err, service.ErrNoApprovalChain),
		errors.Is(err, service.ErrInvalidDocument),
		errors.Is(err, wizard.ErrUnknownField),
		errors.Is(err, wizard.ErrMissingFields),
		errors.Is(err, wizard.ErrAtFirstStep),
		errors.Is(err, wizard.ErrAtFinalStep),
		errors.Is(err, wizard.ErrUnmappedLabel),
		errors.Is(err, workflow.ErrInvalidTransition),
		errors.Is(err, workflow.ErrGuardFailed):
		code = http.StatusUnprocessableEntity
	}

	if code == http.StatusInternalServerError {
		h.logger.Error("Request failed", "error", err)
		c.JSON(code, Response{Success: false, Error: "internal error"})
		return
	}

	c.JSON(code, Response{Success: false, Error: err.Error()})
}
