package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"video-idea-api/internal/domain"
	"video-idea-api/internal/dto"
)

// IdeaRepository defines the interface for idea data access
type IdeaRepository interface {
	// CreateBatchWithComments inserts the ideas and marks the consumed
	// comments used in a single transaction. Either everything is committed
	// or nothing is.
	CreateBatchWithComments(ctx context.Context, ideas []*domain.Idea, commentIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Idea, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filters *dto.IdeaFilters) ([]*domain.Idea, error)
}

// ideaRepositoryImpl is the GORM implementation of IdeaRepository
type ideaRepositoryImpl struct {
	db *gorm.DB
}

// NewIdeaRepository creates a new instance of IdeaRepository
func NewIdeaRepository(db *gorm.DB) IdeaRepository {
	return &ideaRepositoryImpl{db: db}
}

// CreateBatchWithComments inserts ideas and flips is_used on the source
// comments atomically
func (r *ideaRepositoryImpl) CreateBatchWithComments(ctx context.Context, ideas []*domain.Idea, commentIDs []uuid.UUID) error {
	if len(ideas) == 0 {
		return fmt.Errorf("no ideas to insert")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ideas).Error; err != nil {
			return err
		}

		// Only unused comments may be consumed; a shortfall means another
		// run already took some of them and the whole batch must roll back.
		result := tx.Model(&domain.VideoComment{}).
			Where("id IN ? AND is_used = ?", commentIDs, false).
			Update("is_used", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(commentIDs)) {
			return fmt.Errorf("expected to mark %d comment(s) used but marked %d",
				len(commentIDs), result.RowsAffected)
		}

		return nil
	})
}

// FindByID finds an idea by its ID with the video and source comment preloaded
func (r *ideaRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Idea, error) {
	var idea domain.Idea
	if err := r.db.WithContext(ctx).
		Preload("Video").
		Preload("Comment").
		First(&idea, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &idea, nil
}

// FindByUser returns a user's ideas ordered by creation time descending
func (r *ideaRepositoryImpl) FindByUser(ctx context.Context, userID uuid.UUID, filters *dto.IdeaFilters) ([]*domain.Idea, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if filters != nil {
		if filters.Limit > 0 {
			query = query.Limit(filters.Limit)
		}
		if filters.Offset > 0 {
			query = query.Offset(filters.Offset)
		}
	}

	var ideas []*domain.Idea
	if err := query.Find(&ideas).Error; err != nil {
		return nil, err
	}
	return ideas, nil
}
