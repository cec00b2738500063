package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"video-idea-api/internal/client"
	"video-idea-api/internal/domain"
	"video-idea-api/internal/dto"
	"video-idea-api/internal/repository"
)

// MockIdeaRepository is a mock implementation of IdeaRepository
type MockIdeaRepository struct {
	CreateBatchWithCommentsFunc func(ctx context.Context, ideas []*domain.Idea, commentIDs []uuid.UUID) error
	FindByIDFunc                func(ctx context.Context, id uuid.UUID) (*domain.Idea, error)
	FindByUserFunc              func(ctx context.Context, userID uuid.UUID, filters *dto.IdeaFilters) ([]*domain.Idea, error)
}

func (m *MockIdeaRepository) CreateBatchWithComments(ctx context.Context, ideas []*domain.Idea, commentIDs []uuid.UUID) error {
	if m.CreateBatchWithCommentsFunc != nil {
		return m.CreateBatchWithCommentsFunc(ctx, ideas, commentIDs)
	}
	return nil
}

func (m *MockIdeaRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Idea, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockIdeaRepository) FindByUser(ctx context.Context, userID uuid.UUID, filters *dto.IdeaFilters) ([]*domain.Idea, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID, filters)
	}
	return nil, nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	CreateFunc              func(ctx context.Context, comment *domain.VideoComment) error
	FindByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.VideoComment, error)
	FindByUserFunc          func(ctx context.Context, userID uuid.UUID, filters *dto.CommentFilters) ([]*domain.VideoComment, error)
	FindUnusedByUserFunc    func(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.VideoComment, error)
	MarkUsedFunc            func(ctx context.Context, ids []uuid.UUID) error
	DeleteUsedOlderThanFunc func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.VideoComment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.VideoComment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCommentRepository) FindByUser(ctx context.Context, userID uuid.UUID, filters *dto.CommentFilters) ([]*domain.VideoComment, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID, filters)
	}
	return nil, nil
}

func (m *MockCommentRepository) FindUnusedByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.VideoComment, error) {
	if m.FindUnusedByUserFunc != nil {
		return m.FindUnusedByUserFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (m *MockCommentRepository) MarkUsed(ctx context.Context, ids []uuid.UUID) error {
	if m.MarkUsedFunc != nil {
		return m.MarkUsedFunc(ctx, ids)
	}
	return nil
}

func (m *MockCommentRepository) DeleteUsedOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteUsedOlderThanFunc != nil {
		return m.DeleteUsedOlderThanFunc(ctx, cutoff)
	}
	return 0, nil
}

// MockVideoRepository is a mock implementation of VideoRepository
type MockVideoRepository struct {
	CreateFunc               func(ctx context.Context, video *domain.Video) error
	FindByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	FindByYouTubeIDFunc      func(ctx context.Context, youtubeID string) (*domain.Video, error)
	FindWithCountsByUserFunc func(ctx context.Context, userID uuid.UUID) ([]*repository.VideoWithCounts, error)
}

func (m *MockVideoRepository) Create(ctx context.Context, video *domain.Video) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, video)
	}
	return nil
}

func (m *MockVideoRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockVideoRepository) FindByYouTubeID(ctx context.Context, youtubeID string) (*domain.Video, error) {
	if m.FindByYouTubeIDFunc != nil {
		return m.FindByYouTubeIDFunc(ctx, youtubeID)
	}
	return nil, nil
}

func (m *MockVideoRepository) FindWithCountsByUser(ctx context.Context, userID uuid.UUID) ([]*repository.VideoWithCounts, error) {
	if m.FindWithCountsByUserFunc != nil {
		return m.FindWithCountsByUserFunc(ctx, userID)
	}
	return nil, nil
}

// MockIdeaGenerator is a mock implementation of client.IdeaGenerator
type MockIdeaGenerator struct {
	GenerateIdeasFunc func(ctx context.Context, comments []*domain.VideoComment) ([]client.GeneratedIdea, error)
}

func (m *MockIdeaGenerator) GenerateIdeas(ctx context.Context, comments []*domain.VideoComment) ([]client.GeneratedIdea, error) {
	if m.GenerateIdeasFunc != nil {
		return m.GenerateIdeasFunc(ctx, comments)
	}
	return nil, nil
}

// MockGenerationLocker is a mock implementation of GenerationLocker
type MockGenerationLocker struct {
	AcquireFunc  func(ctx context.Context, userID uuid.UUID) (bool, error)
	ReleaseFunc  func(ctx context.Context, userID uuid.UUID)
	ReleaseCalls int
}

func (m *MockGenerationLocker) Acquire(ctx context.Context, userID uuid.UUID) (bool, error) {
	if m.AcquireFunc != nil {
		return m.AcquireFunc(ctx, userID)
	}
	return true, nil
}

func (m *MockGenerationLocker) Release(ctx context.Context, userID uuid.UUID) {
	m.ReleaseCalls++
	if m.ReleaseFunc != nil {
		m.ReleaseFunc(ctx, userID)
	}
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	PublishIdeasGeneratedFunc func(ctx context.Context, userID uuid.UUID, ideaCount, commentsConsumed int) error
	PublishCalls              int
}

func (m *MockEventPublisher) PublishIdeasGenerated(ctx context.Context, userID uuid.UUID, ideaCount, commentsConsumed int) error {
	m.PublishCalls++
	if m.PublishIdeasGeneratedFunc != nil {
		return m.PublishIdeasGeneratedFunc(ctx, userID, ideaCount, commentsConsumed)
	}
	return nil
}
