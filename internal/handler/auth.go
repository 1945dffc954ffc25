package handler

import (
	"net/http"

	"cashdrawer/internal/dto"
	"cashdrawer/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.EmployeeService }

func NewAuthHandler(svc service.EmployeeService) *AuthHandler { return &AuthHandler{svc: svc} }

// Register godoc
// @Summary Register an employee
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterEmployeeRequest true "Employee"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterEmployeeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Authenticate with document and secret
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary The authenticated employee
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.EmployeeResponse
// @Router /v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), currentEmployee(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
