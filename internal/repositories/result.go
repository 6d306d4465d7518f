package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/murtezataher/AgenticAIFYP/internal/models"
)

// ResultRepository archives completed interviews. The archive is write-only
// from the workflow's point of view.
type ResultRepository interface {
	Create(result *models.ArchivedResult) error
	FindByJob(jobID string, limit int) ([]models.ArchivedResult, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

// Create implements ResultRepository.
func (r *resultRepository) Create(result *models.ArchivedResult) error {
	if err := r.db.Create(result).Error; err != nil {
		return fmt.Errorf("failed to archive result: %w", err)
	}
	return nil
}

// FindByJob implements ResultRepository. Results come back best score
// first, oldest first on ties.
func (r *resultRepository) FindByJob(jobID string, limit int) ([]models.ArchivedResult, error) {
	var results []models.ArchivedResult

	query := r.db.Where("job_id = ?", jobID).Order("score DESC").Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to find archived results: %w", err)
	}
	return results, nil
}
