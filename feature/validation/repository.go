package validation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tool-compare-data/feature/validation/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrRunNotFound is returned when a run id is unknown.
var ErrRunNotFound = errors.New("validation run not found")

// Repository persists validation runs.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a Repository on an open connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the runs table.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.ValidationRun{}); err != nil {
		return fmt.Errorf("failed to migrate validation runs: %w", err)
	}
	return nil
}

// Create stores a run, assigning an id and timestamp when missing.
func (r *Repository) Create(ctx context.Context, run *models.ValidationRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to store validation run: %w", err)
	}
	return nil
}

// Get loads a run by id.
func (r *Repository) Get(ctx context.Context, id string) (*models.ValidationRun, error) {
	var run models.ValidationRun
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load validation run %s: %w", id, err)
	}
	return &run, nil
}

// List returns the most recent runs, newest first. Reports are not loaded.
func (r *Repository) List(ctx context.Context, limit int) ([]models.ValidationRun, error) {
	if limit <= 0 {
		limit = 20
	}
	runs := make([]models.ValidationRun, 0, limit)
	err := r.db.WithContext(ctx).
		Omit("report").
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list validation runs: %w", err)
	}
	return runs, nil
}
