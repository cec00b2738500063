package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"video-idea-api/internal/domain"
	"video-idea-api/internal/dto"
	"video-idea-api/internal/repository"
	"video-idea-api/internal/response"
)

// CommentService defines the interface for comment browsing logic
type CommentService interface {
	ListComments(ctx context.Context, userID uuid.UUID, filters *dto.CommentFilters) ([]*dto.CommentResponse, error)
	ListVideos(ctx context.Context, userID uuid.UUID) ([]*dto.VideoResponse, error)
}

// commentServiceImpl is the implementation of CommentService
type commentServiceImpl struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	logger      *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	videoRepo repository.VideoRepository,
	logger *zap.Logger,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		logger:      logger,
	}
}

// ListComments returns the user's collected comments, newest first
func (s *commentServiceImpl) ListComments(ctx context.Context, userID uuid.UUID, filters *dto.CommentFilters) ([]*dto.CommentResponse, error) {
	comments, err := s.commentRepo.FindByUser(ctx, userID, filters)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list comments", err.Error())
	}

	responses := make([]*dto.CommentResponse, len(comments))
	for i, comment := range comments {
		responses[i] = toCommentResponse(comment)
	}
	return responses, nil
}

// ListVideos returns the videos that have comments collected for the user,
// with total and unused comment counts
func (s *commentServiceImpl) ListVideos(ctx context.Context, userID uuid.UUID) ([]*dto.VideoResponse, error) {
	videos, err := s.videoRepo.FindWithCountsByUser(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list videos", err.Error())
	}

	responses := make([]*dto.VideoResponse, len(videos))
	for i, v := range videos {
		responses[i] = &dto.VideoResponse{
			ID:           v.ID,
			YouTubeID:    v.YouTubeID,
			Title:        v.Title,
			ChannelTitle: v.ChannelTitle,
			CommentCount: v.CommentCount,
			UnusedCount:  v.UnusedCount,
			CreatedAt:    v.CreatedAt,
		}
	}
	return responses, nil
}

// toCommentResponse converts a domain comment to its API representation
func toCommentResponse(comment *domain.VideoComment) *dto.CommentResponse {
	resp := &dto.CommentResponse{
		ID:          comment.ID,
		VideoID:     comment.VideoID,
		UserID:      comment.UserID,
		AuthorName:  comment.AuthorName,
		CommentText: comment.CommentText,
		LikeCount:   comment.LikeCount,
		IsUsed:      comment.IsUsed,
		CreatedAt:   comment.CreatedAt,
		UpdatedAt:   comment.UpdatedAt,
	}
	if comment.Video.ID != uuid.Nil {
		resp.VideoTitle = comment.Video.Title
	}
	return resp
}
