package service

import (
	"context"

	"cashdrawer/internal/dto"
	"cashdrawer/internal/repository"
)

// ReportService aggregates the sales of a drawer session. It never writes,
// so a report can be rebuilt (re-printed) any number of times.
type ReportService interface {
	ReportFor(ctx context.Context, sessionID uint) (*dto.SessionReport, error)
}

type reportService struct {
	sessions repository.SessionRepository
	sales    repository.SaleRepository
}

func NewReportService(sessions repository.SessionRepository, sales repository.SaleRepository) ReportService {
	return &reportService{sessions: sessions, sales: sales}
}

func (s *reportService) ReportFor(ctx context.Context, sessionID uint) (*dto.SessionReport, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, notFoundOr("find session", err, ErrNotFound)
	}

	totals, err := s.sales.TotalsBySession(ctx, sessionID)
	if err != nil {
		return nil, storageErr("sum session sales", err)
	}
	rows, err := s.sales.TotalsByEmployee(ctx, sessionID)
	if err != nil {
		return nil, storageErr("sum sales by employee", err)
	}

	report := &dto.SessionReport{
		SessionID:     session.ID,
		OpenedBy:      session.OpenedBy,
		OpenedAt:      session.OpenedAt,
		ClosedAt:      session.ClosedAt,
		SaleCount:     totals.SaleCount,
		GrossTotal:    totals.GrossTotal,
		NetOfTaxTotal: totals.NetTotal,
		TaxTotal:      totals.TaxTotal,
		PerEmployee:   make([]dto.EmployeeBreakdown, 0, len(rows)),
	}
	if session.Opener != nil {
		report.OpenedByName = session.Opener.Name
	}
	for _, r := range rows {
		report.PerEmployee = append(report.PerEmployee, dto.EmployeeBreakdown{
			EmployeeID:    r.EmployeeID,
			EmployeeName:  r.EmployeeName,
			SaleCount:     r.SaleCount,
			GrossSubtotal: r.GrossSubtotal,
		})
	}
	return report, nil
}
