package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterEmployeeRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Document string `json:"document" validate:"required,min=1,max=32"`
	Secret   string `json:"secret"   validate:"required,min=4,max=72"`
}

type LoginRequest struct {
	Document string `json:"document" validate:"required,min=1"`
	Secret   string `json:"secret"   validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EmployeeResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Document string `json:"document"`
}

type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresIn   int              `json:"expires_in"` // seconds
	Employee    EmployeeResponse `json:"employee"`
}
