package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"video-idea-api/internal/domain"
)

// VideoWithCounts pairs a video with its comment counts for a user
type VideoWithCounts struct {
	domain.Video
	CommentCount int64 `json:"comment_count"`
	UnusedCount  int64 `json:"unused_count"`
}

// VideoRepository defines the interface for video data access
type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	FindByYouTubeID(ctx context.Context, youtubeID string) (*domain.Video, error)
	FindWithCountsByUser(ctx context.Context, userID uuid.UUID) ([]*VideoWithCounts, error)
}

// videoRepositoryImpl is the GORM implementation of VideoRepository
type videoRepositoryImpl struct {
	db *gorm.DB
}

// NewVideoRepository creates a new instance of VideoRepository
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepositoryImpl{db: db}
}

// Create creates a new video
func (r *videoRepositoryImpl) Create(ctx context.Context, video *domain.Video) error {
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a video by its ID
func (r *videoRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	var video domain.Video
	if err := r.db.WithContext(ctx).First(&video, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// FindByYouTubeID finds a video by its YouTube video ID
func (r *videoRepositoryImpl) FindByYouTubeID(ctx context.Context, youtubeID string) (*domain.Video, error) {
	var video domain.Video
	if err := r.db.WithContext(ctx).
		First(&video, "you_tube_id = ?", youtubeID).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// FindWithCountsByUser returns the videos that have comments collected for
// the user, with total and unused comment counts
func (r *videoRepositoryImpl) FindWithCountsByUser(ctx context.Context, userID uuid.UUID) ([]*VideoWithCounts, error) {
	var results []*VideoWithCounts
	if err := r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Select(`videos.*,
			COUNT(video_comments.id) AS comment_count,
			SUM(CASE WHEN video_comments.is_used THEN 0 ELSE 1 END) AS unused_count`).
		Joins("JOIN video_comments ON video_comments.video_id = videos.id AND video_comments.deleted_at IS NULL").
		Where("video_comments.user_id = ?", userID).
		Group("videos.id").
		Order("MAX(video_comments.created_at) DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
