package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cashdrawer/internal/dto"
	"cashdrawer/internal/infra"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReports map[uint]*dto.SessionReport

func (s stubReports) ReportFor(_ context.Context, id uint) (*dto.SessionReport, error) {
	r, ok := s[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return r, nil
}

type recordingMailer struct {
	sent []string
	err  error
}

func (m *recordingMailer) SendReport(report *dto.SessionReport, pdfPath string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, fmt.Sprintf("%d|%s", report.SessionID, pdfPath))
	return nil
}

func sampleReports() stubReports {
	closed := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	return stubReports{
		7: {
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
		},
	}
}

func payload(t *testing.T, sessionID uint) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(ReportJobPayload{SessionID: sessionID})
	require.NoError(t, err)
	return b
}

func TestReportWorker_RendersAndMails(t *testing.T) {
	dir := t.TempDir()
	mailer := &recordingMailer{}
	w := NewReportWorker(sampleReports(), mailer, nil, ReportWorkerConfig{
		StoreName: "Loja", StoragePath: dir,
	})

	require.NoError(t, w.Process(context.Background(), payload(t, 7)))

	path := filepath.Join(dir, "session_7_report.pdf")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF")
	assert.Equal(t, []string{"7|" + path}, mailer.sent)
}

func TestReportWorker_WithoutMailerOnlyRenders(t *testing.T) {
	dir := t.TempDir()
	w := NewReportWorker(sampleReports(), nil, nil, ReportWorkerConfig{StoreName: "Loja", StoragePath: dir})

	require.NoError(t, w.Process(context.Background(), payload(t, 7)))
	assert.FileExists(t, filepath.Join(dir, "session_7_report.pdf"))
}

func TestReportWorker_Errors(t *testing.T) {
	w := NewReportWorker(sampleReports(), nil, nil, ReportWorkerConfig{StoragePath: t.TempDir()})
	ctx := context.Background()

	assert.Error(t, w.Process(ctx, json.RawMessage(`{not json`)))
	assert.Error(t, w.Process(ctx, json.RawMessage(`{}`)))
	assert.Error(t, w.Process(ctx, payload(t, 99)))
}

func TestReportWorker_MailFailuresTripBreaker(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("connection refused")}
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{Name: "smtp", FailureThreshold: 2, OpenTimeout: time.Hour})
	w := NewReportWorker(sampleReports(), mailer, cb, ReportWorkerConfig{
		StoreName: "Loja", StoragePath: t.TempDir(),
	})
	ctx := context.Background()

	assert.Error(t, w.Process(ctx, payload(t, 7)))
	assert.Error(t, w.Process(ctx, payload(t, 7)))
	assert.Equal(t, infra.CBOpen, cb.State())

	err := w.Process(ctx, payload(t, 7))
	assert.ErrorIs(t, err, infra.ErrCircuitOpen)
}
