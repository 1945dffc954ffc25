package infra

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cashdrawer/internal/config"
	"cashdrawer/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedReport() *dto.SessionReport {
	closed := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	return &dto.SessionReport{
		SessionID:     7,
		OpenedBy:      1,
		OpenedByName:  "Ana",
		OpenedAt:      closed.Add(-8 * time.Hour),
		ClosedAt:      &closed,
		SaleCount:     2,
		GrossTotal:    decimal.RequireFromString("8.50"),
		NetOfTaxTotal: decimal.RequireFromString("7.5892857143"),
		TaxTotal:      decimal.RequireFromString("0.9107142857"),
		PerEmployee: []dto.EmployeeBreakdown{
			{EmployeeID: 1, EmployeeName: "Ana", SaleCount: 2, GrossSubtotal: decimal.RequireFromString("8.50")},
		},
	}
}

func TestMailer_ReportEmail(t *testing.T) {
	pdf := filepath.Join(t.TempDir(), "session_7_report.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.3"), 0o644))

	m := NewMailer(&config.Config{
		SMTPHost:      "smtp.example.com",
		SMTPPort:      587,
		SMTPUser:      "relay@example.com",
		ReportEmailTo: "owner@example.com",
		StoreName:     "Loja",
	})
	e, err := m.reportEmail(closedReport(), pdf)
	require.NoError(t, err)

	assert.Equal(t, "relay@example.com", e.From)
	assert.Equal(t, []string{"owner@example.com"}, e.To)
	assert.Equal(t, "Loja: closing report for drawer session #7", e.Subject)
	body := string(e.Text)
	assert.Contains(t, body, "opened by Ana")
	assert.Contains(t, body, "Gross total: 8.50")
	assert.Contains(t, body, "Net of tax: 7.59")
	assert.Contains(t, body, "Ana (#1): 2 sales, 8.50")
	require.Len(t, e.Attachments, 1)
	assert.Equal(t, "session_7_report.pdf", e.Attachments[0].Filename)
	assert.NotNil(t, m.auth)
}

func TestMailer_MissingAttachmentFails(t *testing.T) {
	m := NewMailer(&config.Config{SMTPHost: "localhost", SMTPPort: 25, ReportEmailTo: "owner@example.com"})
	assert.Nil(t, m.auth)

	_, err := m.reportEmail(closedReport(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.ErrorContains(t, err, "attach PDF")
}
