package repositories

import (
	"context"
	"time"

	"github.com/lucsky/cuid"
	"gorm.io/gorm"

	"github.com/idkspot/idkspot-go/internal/database/models"
)

// SessionRepository handles hotspot session history data access.
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session row, generating an ID if missing.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = cuid.New()
	}
	return r.db.WithContext(ctx).Create(session).Error
}

// UpdateState updates the state of a session.
func (r *SessionRepository) UpdateState(ctx context.Context, id, state string) error {
	return r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", id).
		Update("state", state).Error
}

// Finish records a terminal state together with stop time and optional
// exit details.
func (r *SessionRepository) Finish(ctx context.Context, id, state string, stoppedAt time.Time, exitCode *int, errMsg *string) error {
	updates := map[string]interface{}{
		"state":      state,
		"stopped_at": stoppedAt,
	}
	if exitCode != nil {
		updates["exit_code"] = *exitCode
	}
	if errMsg != nil {
		updates["error"] = *errMsg
	}
	return r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// FindByID returns a session by ID, or nil if it does not exist.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	result := r.db.WithContext(ctx).First(&session, "id = ?", id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &session, nil
}

// FindRecent returns the most recently started sessions, newest first.
func (r *SessionRepository) FindRecent(ctx context.Context, limit int) ([]models.Session, error) {
	var sessions []models.Session
	result := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&sessions)
	return sessions, result.Error
}

// Prune deletes all but the newest keep rows.
func (r *SessionRepository) Prune(ctx context.Context, keep int) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM sessions WHERE id NOT IN (SELECT id FROM sessions ORDER BY started_at DESC LIMIT ?)", keep).Error
}
