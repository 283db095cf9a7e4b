package service

import (
	"context"

	"labsite/internal/model"
	"labsite/internal/repository"
)

// SessionService handles PRG session CRUD and the grouped schedule view.
type SessionService struct {
	sessions repository.SessionRepo
}

// NewSessionService creates a new session service.
func NewSessionService(sessions repository.SessionRepo) *SessionService {
	return &SessionService{sessions: sessions}
}

// Create validates and stores a new session.
func (s *SessionService) Create(ctx context.Context, input *model.SessionInput) (*model.PRGSession, error) {
	return s.sessions.Create(ctx, input)
}

// GetByID retrieves a session by id.
func (s *SessionService) GetByID(ctx context.Context, id string) (*model.PRGSession, error) {
	return s.sessions.GetByID(ctx, id)
}

// Update replaces the mutable fields of an existing session.
func (s *SessionService) Update(ctx context.Context, id string, input *model.SessionInput) (*model.PRGSession, error) {
	return s.sessions.Update(ctx, id, input)
}

// Delete removes a session permanently.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

// GroupedByYear returns session summaries bucketed by academic year,
// each bucket ordered by date ascending. An empty academicYear returns
// every year; a filter normally collapses the result to one key.
func (s *SessionService) GroupedByYear(ctx context.Context, academicYear string) (map[string][]model.SessionSummary, error) {
	sessions, err := s.sessions.List(ctx, academicYear)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]model.SessionSummary)
	for _, session := range sessions {
		grouped[session.AcademicYear] = append(grouped[session.AcademicYear], session.Summary())
	}
	return grouped, nil
}
