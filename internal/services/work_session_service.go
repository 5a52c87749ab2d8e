package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/silverstage/silverstage-api/internal/audit"
	"github.com/silverstage/silverstage-api/internal/models"
	"github.com/silverstage/silverstage-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrSessionAlreadyOpen = errors.New("a work session is already open")
	ErrNoOpenSession      = errors.New("no open work session")
)

// WorkSessionService implements the check-in flow: start, stop, and log.
type WorkSessionService struct {
	sessionRepo repository.WorkSessionRepository
	audit       *audit.Writer
}

// NewWorkSessionService creates a new WorkSessionService.
func NewWorkSessionService(sessionRepo repository.WorkSessionRepository, auditWriter *audit.Writer) *WorkSessionService {
	return &WorkSessionService{
		sessionRepo: sessionRepo,
		audit:       auditWriter,
	}
}

// Start opens a new session for the user. A second start while one is open
// is rejected.
func (s *WorkSessionService) Start(userID uint64, note string) (*models.WorkSession, error) {
	if _, err := s.sessionRepo.FindOpenByUser(userID); err == nil {
		return nil, ErrSessionAlreadyOpen
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check open session: %w", err)
	}

	session := &models.WorkSession{
		UserID:    userID,
		StartedAt: time.Now(),
		Note:      note,
	}

	if err := s.sessionRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	s.audit.Record(userID, "work_session.started", map[string]any{
		"work_session_id": session.ID,
	})

	return session, nil
}

// Stop closes the user's open session.
func (s *WorkSessionService) Stop(userID uint64) (*models.WorkSession, error) {
	session, err := s.sessionRepo.FindOpenByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOpenSession
		}
		return nil, fmt.Errorf("failed to find open session: %w", err)
	}

	now := time.Now()
	session.EndedAt = &now

	if err := s.sessionRepo.Update(session); err != nil {
		return nil, fmt.Errorf("failed to stop session: %w", err)
	}

	s.audit.Record(userID, "work_session.stopped", map[string]any{
		"work_session_id": session.ID,
	})

	return session, nil
}

// Log lists the user's sessions, newest first.
func (s *WorkSessionService) Log(userID uint64) ([]models.WorkSession, error) {
	sessions, err := s.sessionRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}
