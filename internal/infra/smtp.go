package infra

import (
	"fmt"
	"net/smtp"
	"strings"

	"cashdrawer/internal/config"
	"cashdrawer/internal/dto"

	"github.com/jordan-wright/email"
)

// Mailer delivers closing reports to the store owner (REPORT_EMAIL_TO).
type Mailer struct {
	addr      string
	auth      smtp.Auth // nil for relays without authentication
	from      string
	to        string
	storeName string
}

func NewMailer(cfg *config.Config) *Mailer {
	m := &Mailer{
		addr:      fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		from:      cfg.MailFrom(),
		to:        cfg.ReportEmailTo,
		storeName: cfg.StoreName,
	}
	if cfg.SMTPUser != "" {
		m.auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return m
}

// SendReport mails the report of a closed session with its PDF attached.
func (m *Mailer) SendReport(report *dto.SessionReport, pdfPath string) error {
	e, err := m.reportEmail(report, pdfPath)
	if err != nil {
		return err
	}
	if err := e.Send(m.addr, m.auth); err != nil {
		return fmt.Errorf("mailer: send report of session %d: %w", report.SessionID, err)
	}
	return nil
}

func (m *Mailer) reportEmail(report *dto.SessionReport, pdfPath string) (*email.Email, error) {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{m.to}
	e.Subject = fmt.Sprintf("%s: closing report for drawer session #%d", m.storeName, report.SessionID)
	e.Text = []byte(reportBody(report))

	if pdfPath != "" {
		if _, err := e.AttachFile(pdfPath); err != nil {
			return nil, fmt.Errorf("mailer: attach PDF: %w", err)
		}
	}
	return e, nil
}

func reportBody(r *dto.SessionReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Drawer session #%d, opened by %s\n", r.SessionID, r.OpenedByName)
	fmt.Fprintf(&b, "Opened: %s\n", r.OpenedAt.Format("2006-01-02 15:04"))
	if r.ClosedAt != nil {
		fmt.Fprintf(&b, "Closed: %s\n", r.ClosedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(&b, "\nSales: %d\n", r.SaleCount)
	fmt.Fprintf(&b, "Gross total: %s\n", r.GrossTotal.StringFixed(2))
	fmt.Fprintf(&b, "Net of tax: %s\n", r.NetOfTaxTotal.StringFixed(2))
	fmt.Fprintf(&b, "Tax: %s\n", r.TaxTotal.StringFixed(2))
	if len(r.PerEmployee) > 0 {
		b.WriteString("\nPer employee:\n")
		for _, e := range r.PerEmployee {
			fmt.Fprintf(&b, "  %s (#%d): %d sales, %s\n", e.EmployeeName, e.EmployeeID, e.SaleCount, e.GrossSubtotal.StringFixed(2))
		}
	}
	return b.String()
}
