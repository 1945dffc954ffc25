package worker

// report_worker.go
// Processes closing report jobs from QueueReports: rebuilds the SessionReport,
// renders it to PDF and, when a mailer is configured, mails it through the
// SMTP circuit breaker.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cashdrawer/internal/dto"
	"cashdrawer/internal/infra"

	"github.com/rs/zerolog/log"
)

// ReportJobPayload is the job envelope sent to QueueReports.
type ReportJobPayload struct {
	SessionID uint `json:"session_id"`
}

// ReportSource rebuilds the report of a session. Reports are read-only, so a
// retried job renders the same document.
type ReportSource interface {
	ReportFor(ctx context.Context, sessionID uint) (*dto.SessionReport, error)
}

// ReportMailer delivers a rendered report. *infra.Mailer satisfies it.
type ReportMailer interface {
	SendReport(report *dto.SessionReport, pdfPath string) error
}

type ReportWorkerConfig struct {
	StoreName   string
	StoragePath string
}

// ReportWorker renders and delivers closing reports.
type ReportWorker struct {
	reports ReportSource
	mailer  ReportMailer // nil disables e-mail
	cb      *infra.CircuitBreaker
	cfg     ReportWorkerConfig
}

func NewReportWorker(reports ReportSource, mailer ReportMailer, cb *infra.CircuitBreaker, cfg ReportWorkerConfig) *ReportWorker {
	if cb == nil {
		cb = infra.NewCircuitBreaker(infra.DefaultCBConfig())
	}
	return &ReportWorker{reports: reports, mailer: mailer, cb: cb, cfg: cfg}
}

// Process handles a single report job.
func (w *ReportWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReportJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("report_worker: invalid payload: %w", err)
	}
	if payload.SessionID == 0 {
		return errors.New("report_worker: missing session_id")
	}

	report, err := w.reports.ReportFor(ctx, payload.SessionID)
	if err != nil {
		return fmt.Errorf("report_worker: build report for session %d: %w", payload.SessionID, err)
	}

	pdfPath, err := infra.RenderReportPDF(report, w.cfg.StoreName, w.cfg.StoragePath)
	if err != nil {
		return err
	}
	log.Info().Uint("session_id", report.SessionID).Str("pdf", pdfPath).Msg("report_worker: PDF generated")

	if w.mailer == nil {
		return nil
	}

	err = w.cb.Execute(func() error {
		return w.mailer.SendReport(report, pdfPath)
	})
	if err != nil {
		return fmt.Errorf("report_worker: send report: %w", err)
	}
	log.Info().Uint("session_id", report.SessionID).Msg("report_worker: report sent")
	return nil
}
