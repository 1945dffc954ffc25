package handler

import (
	"net/http"

	"cashdrawer/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionsHandler struct {
	svc     service.SessionService
	reports service.ReportService
}

func NewSessionsHandler(svc service.SessionService, reports service.ReportService) *SessionsHandler {
	return &SessionsHandler{svc: svc, reports: reports}
}

// Open godoc
// @Summary Open the cash drawer
// @Description Fails with 409 and the blocking session_id while another session is open.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.SessionResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/sessions/open [post]
func (h *SessionsHandler) Open(c *gin.Context) {
	resp, err := h.svc.Open(c.Request.Context(), currentEmployee(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Close godoc
// @Summary Close a drawer session and return its report
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.CloseSessionResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/sessions/{id}/close [post]
func (h *SessionsHandler) Close(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Close(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Current godoc
// @Summary The open drawer session, if any
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SessionResponse
// @Success 204
// @Router /v1/sessions/current [get]
func (h *SessionsHandler) Current(c *gin.Context) {
	resp, err := h.svc.CurrentOpen(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if resp == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Report godoc
// @Summary Sales report of a session (open or closed)
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.SessionReport
// @Failure 404 {object} apierror.APIError
// @Router /v1/sessions/{id}/report [get]
func (h *SessionsHandler) Report(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.reports.ReportFor(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
