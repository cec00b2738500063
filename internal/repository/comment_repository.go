package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"video-idea-api/internal/domain"
	"video-idea-api/internal/dto"
)

// CommentRepository defines the interface for video comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.VideoComment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.VideoComment, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filters *dto.CommentFilters) ([]*domain.VideoComment, error)
	FindUnusedByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.VideoComment, error)
	MarkUsed(ctx context.Context, ids []uuid.UUID) error
	DeleteUsedOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// commentRepositoryImpl is the GORM implementation of CommentRepository
type commentRepositoryImpl struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepositoryImpl{db: db}
}

// Create creates a new video comment
func (r *commentRepositoryImpl) Create(ctx context.Context, comment *domain.VideoComment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a comment by its ID with the video preloaded
func (r *commentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.VideoComment, error) {
	var comment domain.VideoComment
	if err := r.db.WithContext(ctx).
		Preload("Video").
		First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByUser finds a user's comments with optional filters, newest first
func (r *commentRepositoryImpl) FindByUser(ctx context.Context, userID uuid.UUID, filters *dto.CommentFilters) ([]*domain.VideoComment, error) {
	query := r.db.WithContext(ctx).
		Preload("Video").
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if filters != nil {
		if filters.VideoID != nil {
			query = query.Where("video_id = ?", *filters.VideoID)
		}
		if filters.IsUsed != nil {
			query = query.Where("is_used = ?", *filters.IsUsed)
		}
		if filters.Limit > 0 {
			query = query.Limit(filters.Limit)
		}
		if filters.Offset > 0 {
			query = query.Offset(filters.Offset)
		}
	}

	var comments []*domain.VideoComment
	if err := query.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// FindUnusedByUser returns up to limit unused comments for the user, ordered
// by creation time ascending so the oldest comments are consumed first
func (r *commentRepositoryImpl) FindUnusedByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.VideoComment, error) {
	var comments []*domain.VideoComment
	if err := r.db.WithContext(ctx).
		Preload("Video").
		Where("user_id = ? AND is_used = ?", userID, false).
		Order("created_at ASC").
		Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// MarkUsed flips is_used to true for the given comment IDs
func (r *commentRepositoryImpl) MarkUsed(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&domain.VideoComment{}).
		Where("id IN ?", ids).
		Update("is_used", true).Error
}

// DeleteUsedOlderThan soft deletes used comments updated before the cutoff.
// Returns the number of deleted rows.
func (r *commentRepositoryImpl) DeleteUsedOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("is_used = ? AND updated_at < ?", true, cutoff).
		Delete(&domain.VideoComment{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
