package database

import (
	"time"

	"github.com/xidlesync/xidlesync/internal/models"

	"github.com/pkg/errors"

	"gorm.io/gorm"
)

// Repository handles all journal database operations
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// CreateTransition inserts a published idle-hint transition
func (r *Repository) CreateTransition(t *models.Transition) error {
	result := r.db.Create(t)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert transition")
	}
	return nil
}

// GetTransitionByID retrieves a transition by its ID
func (r *Repository) GetTransitionByID(id uint) (*models.Transition, error) {
	var t models.Transition
	result := r.db.First(&t, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.Wrap(result.Error, "failed to get transition")
	}
	return &t, nil
}

// RecentTransitions returns the newest transitions, most recent first
func (r *Repository) RecentTransitions(limit int) ([]*models.Transition, error) {
	if limit <= 0 {
		limit = 50
	}

	var transitions []*models.Transition
	result := r.db.Order("timestamp DESC").Limit(limit).Find(&transitions)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query transitions")
	}

	return transitions, nil
}

// TransitionsSince retrieves all transitions since a given time
func (r *Repository) TransitionsSince(since time.Time) ([]*models.Transition, error) {
	var transitions []*models.Transition
	result := r.db.Where("timestamp >= ?", since).Order("timestamp ASC").Find(&transitions)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query transitions")
	}

	return transitions, nil
}

// CreateErrorLog inserts a poll error record
func (r *Repository) CreateErrorLog(e *models.ErrorLog) error {
	result := r.db.Create(e)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert error log")
	}
	return nil
}

// RecentErrors returns the newest error records, most recent first
func (r *Repository) RecentErrors(limit int) ([]*models.ErrorLog, error) {
	if limit <= 0 {
		limit = 50
	}

	var logs []*models.ErrorLog
	result := r.db.Order("timestamp DESC").Limit(limit).Find(&logs)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query error logs")
	}

	return logs, nil
}

// Prune hard-deletes journal rows older than the cutoff
func (r *Repository) Prune(olderThan time.Time) error {
	result := r.db.Unscoped().Where("timestamp < ?", olderThan).Delete(&models.Transition{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to prune transitions")
	}

	result = r.db.Unscoped().Where("timestamp < ?", olderThan).Delete(&models.ErrorLog{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to prune error logs")
	}

	return nil
}

// Clear removes all journal rows
func (r *Repository) Clear() error {
	result := r.db.Unscoped().Where("1 = 1").Delete(&models.Transition{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear transitions")
	}

	result = r.db.Unscoped().Where("1 = 1").Delete(&models.ErrorLog{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear error logs")
	}

	return nil
}
