package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SessionResponse struct {
	ID       uint       `json:"id"`
	OpenedBy uint       `json:"opened_by"`
	OpenedAt time.Time  `json:"opened_at"`
	ClosedAt *time.Time `json:"closed_at"`
	Open     bool       `json:"open"`
}

// EmployeeBreakdown is one seller's share of a session.
type EmployeeBreakdown struct {
	EmployeeID    uint            `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	SaleCount     int64           `json:"sale_count"`
	GrossSubtotal decimal.Decimal `json:"gross_subtotal"`
}

// SessionReport summarizes every sale of one drawer session.
// PerEmployee is ordered by ascending employee id.
type SessionReport struct {
	SessionID     uint                `json:"session_id"`
	OpenedBy      uint                `json:"opened_by"`
	OpenedByName  string              `json:"opened_by_name"`
	OpenedAt      time.Time           `json:"opened_at"`
	ClosedAt      *time.Time          `json:"closed_at"`
	SaleCount     int64               `json:"sale_count"`
	GrossTotal    decimal.Decimal     `json:"gross_total"`
	NetOfTaxTotal decimal.Decimal     `json:"net_of_tax_total"`
	TaxTotal      decimal.Decimal     `json:"tax_total"`
	PerEmployee   []EmployeeBreakdown `json:"per_employee"`
}

type CloseSessionResponse struct {
	Session SessionResponse `json:"session"`
	// Report is null when it could not be built at close time; the session
	// is closed regardless and GET /v1/sessions/:id/report re-prints it.
	Report *SessionReport `json:"report"`
}
