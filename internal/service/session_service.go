package service

import (
	"context"
	"errors"
	"time"

	"cashdrawer/internal/dto"
	"cashdrawer/internal/metrics"
	"cashdrawer/internal/model"
	"cashdrawer/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ReportDispatcher hands a closed session to the async report pipeline.
// *worker.Dispatcher satisfies it.
type ReportDispatcher interface {
	EnqueueReport(ctx context.Context, sessionID uint) (string, error)
}

type SessionService interface {
	// Open starts a drawer session for the employee. Fails with an
	// *AlreadyOpenError while another session is open.
	Open(ctx context.Context, employeeID uint) (*dto.SessionResponse, error)
	// Close stamps closed_at and returns the session with its final report.
	// A report that cannot be built leaves Report nil; the close still stands.
	Close(ctx context.Context, sessionID uint) (*dto.CloseSessionResponse, error)
	// CurrentOpen returns the open session, or nil when the drawer is closed.
	CurrentOpen(ctx context.Context) (*dto.SessionResponse, error)
}

type sessionService struct {
	sessions   repository.SessionRepository
	employees  repository.EmployeeRepository
	reports    ReportService
	dispatcher ReportDispatcher // nil disables report jobs
	now        func() time.Time
}

func NewSessionService(
	sessions repository.SessionRepository,
	employees repository.EmployeeRepository,
	reports ReportService,
	dispatcher ReportDispatcher,
) SessionService {
	return &sessionService{
		sessions:   sessions,
		employees:  employees,
		reports:    reports,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// ── Open ──────────────────────────────────────────────────────────────────────

func (s *sessionService) Open(ctx context.Context, employeeID uint) (*dto.SessionResponse, error) {
	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		return nil, notFoundOr("find employee", err, ErrNotFound)
	}

	var session model.DrawerSession
	err := runTx(ctx, s.sessions.DB(), func(tx *gorm.DB) error {
		existing, err := s.sessions.FindOpenTx(tx)
		if err == nil {
			return &AlreadyOpenError{SessionID: existing.ID}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return storageErr("find open session", err)
		}

		session = model.DrawerSession{OpenedBy: employeeID, OpenedAt: timestamp(s.now)}
		if err := s.sessions.CreateTx(tx, &session); err != nil {
			return storageErr("create session", err)
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the race on the single-open index: report the winner.
		err = ErrAlreadyOpen
		if existing, findErr := s.sessions.FindOpen(ctx); findErr == nil {
			err = &AlreadyOpenError{SessionID: existing.ID}
		}
	}
	if err != nil {
		metrics.ObserveSessionOpen(resultLabel(err))
		return nil, err
	}

	metrics.ObserveSessionOpen("ok")
	log.Info().Uint("session_id", session.ID).Uint("employee_id", employeeID).Msg("drawer session opened")
	return sessionToResponse(&session), nil
}

// ── Close ─────────────────────────────────────────────────────────────────────

func (s *sessionService) Close(ctx context.Context, sessionID uint) (*dto.CloseSessionResponse, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		err = notFoundOr("find session", err, ErrNotFound)
		metrics.ObserveSessionClose(resultLabel(err))
		return nil, err
	}
	if !session.IsOpen() {
		metrics.ObserveSessionClose(resultLabel(ErrNotOpen))
		return nil, ErrNotOpen
	}

	closedAt := timestamp(s.now)
	if closedAt.Before(session.OpenedAt) {
		closedAt = session.OpenedAt
	}
	n, err := s.sessions.CloseIfOpen(ctx, sessionID, closedAt)
	if err != nil {
		metrics.ObserveSessionClose("storage")
		return nil, storageErr("close session", err)
	}
	if n == 0 {
		// closed by someone else between the read and the update
		metrics.ObserveSessionClose(resultLabel(ErrNotOpen))
		return nil, ErrNotOpen
	}
	session.ClosedAt = &closedAt
	metrics.ObserveSessionClose("ok")
	log.Info().Uint("session_id", sessionID).Time("closed_at", closedAt).Msg("drawer session closed")

	// closed_at is already committed; the report is best-effort from here.
	report, err := s.reports.ReportFor(ctx, sessionID)
	if err != nil {
		log.Error().Err(err).Uint("session_id", sessionID).Msg("closing report unavailable")
	}

	if s.dispatcher != nil {
		if jobID, err := s.dispatcher.EnqueueReport(ctx, sessionID); err != nil {
			log.Warn().Err(err).Uint("session_id", sessionID).Msg("failed to enqueue closing report")
		} else {
			log.Info().Str("job_id", jobID).Uint("session_id", sessionID).Msg("closing report job enqueued")
		}
	}

	return &dto.CloseSessionResponse{Session: *sessionToResponse(session), Report: report}, nil
}

func (s *sessionService) CurrentOpen(ctx context.Context) (*dto.SessionResponse, error) {
	session, err := s.sessions.FindOpen(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr("find open session", err)
	}
	return sessionToResponse(session), nil
}

// timestamp truncates to microseconds, the finest precision both stores keep.
func timestamp(now func() time.Time) time.Time {
	return now().UTC().Truncate(time.Microsecond)
}

func sessionToResponse(s *model.DrawerSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:       s.ID,
		OpenedBy: s.OpenedBy,
		OpenedAt: s.OpenedAt,
		ClosedAt: s.ClosedAt,
		Open:     s.IsOpen(),
	}
}
