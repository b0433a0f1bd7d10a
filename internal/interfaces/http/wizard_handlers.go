package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tugu-digital/dots/internal/wizard"
)

// WizardSessionResponse is the wizard session plus derived navigation state
// so clients never re-implement the step sequencing rules.
type WizardSessionResponse struct {
	*wizard.Session
	Steps         []wizard.Step `json:"steps"`
	CanAdvance    bool          `json:"can_advance"`
	MissingFields []string      `json:"missing_fields,omitempty"`
}

func toWizardResponse(s *wizard.Session) WizardSessionResponse {
	canAdvance, missing := s.CanAdvance()
	return WizardSessionResponse{
		Session:       s,
		Steps:         s.Steps(),
		CanAdvance:    canAdvance,
		MissingFields: missing,
	}
}

// StartWizardRequest selects the document type of a new wizard run
type StartWizardRequest struct {
	DocType string `json:"doc_type" binding:"required"`
}

// StartWizard handles POST /api/v1/wizard-sessions
func (h *Handlers) StartWizard(c *gin.Context) {
	var req StartWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "doc_type is required",
		})
		return
	}

	session, err := h.wizardService.Start(c.Request.Context(), req.DocType, getViewer(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: toWizardResponse(session)})
}

// GetWizard handles GET /api/v1/wizard-sessions/:id
func (h *Handlers) GetWizard(c *gin.Context) {
	session, err := h.wizardService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: toWizardResponse(session)})
}

// SetWizardFields handles PATCH /api/v1/wizard-sessions/:id/fields
func (h *Handlers) SetWizardFields(c *gin.Context) {
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	session, err := h.wizardService.SetFields(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: toWizardResponse(session)})
}

// AdvanceWizard handles POST /api/v1/wizard-sessions/:id/next
func (h *Handlers) AdvanceWizard(c *gin.Context) {
	session, err := h.wizardService.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: toWizardResponse(session)})
}

// BackWizard handles POST /api/v1/wizard-sessions/:id/back
func (h *Handlers) BackWizard(c *gin.Context) {
	session, err := h.wizardService.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: toWizardResponse(session)})
}

// ResetWizardRequest selects the auxiliary state cleared alongside the form
type ResetWizardRequest struct {
	FormType    bool `json:"form_type"`
	Category    bool `json:"category"`
	CostCenters bool `json:"cost_centers"`
	CurrentStep bool `json:"current_step"`
}

// ResetWizard handles POST /api/v1/wizard-sessions/:id/reset
func (h *Handlers) ResetWizard(c *gin.Context) {
	var req ResetWizardRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, Response{
				Success: false,
				Error:   "invalid request body",
			})
			return
		}
	}

	session, err := h.wizardService.Reset(c.Request.Context(), c.Param("id"), wizard.ResetOptions{
		FormType:    req.FormType,
		Category:    req.Category,
		CostCenters: req.CostCenters,
		CurrentStep: req.CurrentStep,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: toWizardResponse(session)})
}

// WizardEmployees handles GET /api/v1/wizard-sessions/:id/employees
func (h *Handlers) WizardEmployees(c *gin.Context) {
	employees, err := h.wizardService.EligibleEmployees(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: employees})
}

// SubmitWizard handles POST /api/v1/wizard-sessions/:id/submit
func (h *Handlers) SubmitWizard(c *gin.Context) {
	txn, err := h.wizardService.Submit(c.Request.Context(), c.Param("id"), getViewer(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: txn})
}
