package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"video-idea-api/internal/client"
	"video-idea-api/internal/config"
	"video-idea-api/internal/domain"
	"video-idea-api/internal/dto"
	"video-idea-api/internal/metrics"
	"video-idea-api/internal/repository"
	"video-idea-api/internal/response"
)

// GenerationLocker serializes generation runs per user
type GenerationLocker interface {
	Acquire(ctx context.Context, userID uuid.UUID) (bool, error)
	Release(ctx context.Context, userID uuid.UUID)
}

// EventPublisher publishes idea events after a generation run commits
type EventPublisher interface {
	PublishIdeasGenerated(ctx context.Context, userID uuid.UUID, ideaCount, commentsConsumed int) error
}

// IdeaService defines the interface for idea business logic
type IdeaService interface {
	GenerateIdeas(ctx context.Context, userID uuid.UUID) (*dto.GenerateIdeasResponse, error)
	GetIdeas(ctx context.Context, userID uuid.UUID, filters *dto.IdeaFilters) ([]*dto.IdeaResponse, error)
	GetIdea(ctx context.Context, userID, ideaID uuid.UUID) (*dto.IdeaDetailResponse, error)
}

// ideaServiceImpl is the implementation of IdeaService
type ideaServiceImpl struct {
	ideaRepo    repository.IdeaRepository
	commentRepo repository.CommentRepository
	generator   client.IdeaGenerator
	lock        GenerationLocker
	publisher   EventPublisher
	genConfig   config.GenerationConfig
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewIdeaService creates a new instance of IdeaService
func NewIdeaService(
	ideaRepo repository.IdeaRepository,
	commentRepo repository.CommentRepository,
	generator client.IdeaGenerator,
	lock GenerationLocker,
	publisher EventPublisher,
	genConfig config.GenerationConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
) IdeaService {
	return &ideaServiceImpl{
		ideaRepo:    ideaRepo,
		commentRepo: commentRepo,
		generator:   generator,
		lock:        lock,
		publisher:   publisher,
		genConfig:   genConfig,
		metrics:     m,
		logger:      logger,
	}
}

// GenerateIdeas runs a single generation: it takes the user's oldest unused
// comments, submits them to the model, stores the returned ideas, and marks
// every comment in the batch as used whether or not it produced an idea.
func (s *ideaServiceImpl) GenerateIdeas(ctx context.Context, userID uuid.UUID) (*dto.GenerateIdeasResponse, error) {
	acquired, err := s.lock.Acquire(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to acquire generation lock", err.Error())
	}
	if !acquired {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Idea generation is already in progress", "")
	}
	defer s.lock.Release(ctx, userID)

	comments, err := s.commentRepo.FindUnusedByUser(ctx, userID, s.genConfig.CommentBatchSize)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load comments", err.Error())
	}
	if len(comments) == 0 {
		return nil, response.NewValidationError("No unused comments available for idea generation")
	}

	generated, err := s.generator.GenerateIdeas(ctx, comments)
	if err != nil {
		s.recordRun("error")
		s.logger.Error("Idea generation failed",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("comment_count", len(comments)),
		)
		return nil, response.NewAppError(response.ErrCodeExternalAPI, "Idea generation failed", err.Error())
	}

	ideas, err := s.buildIdeas(userID, comments, generated)
	if err != nil {
		s.recordRun("error")
		return nil, err
	}

	commentIDs := make([]uuid.UUID, len(comments))
	for i, comment := range comments {
		commentIDs[i] = comment.ID
	}

	if err := s.ideaRepo.CreateBatchWithComments(ctx, ideas, commentIDs); err != nil {
		s.recordRun("error")
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to save generated ideas", err.Error())
	}

	s.recordRun("success")
	if s.metrics != nil {
		s.metrics.AddCommentsConsumed(len(comments))
		for range ideas {
			s.metrics.IncrementIdeaCreated()
		}
	}

	if err := s.publisher.PublishIdeasGenerated(ctx, userID, len(ideas), len(comments)); err != nil {
		// The run already committed; the event is best effort
		s.logger.Warn("Failed to publish generation event",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
	}

	s.logger.Info("Idea generation completed",
		zap.String("user_id", userID.String()),
		zap.Int("idea_count", len(ideas)),
		zap.Int("comments_consumed", len(comments)),
	)

	responses := make([]*dto.IdeaResponse, len(ideas))
	for i, idea := range ideas {
		responses[i] = toIdeaResponse(idea)
	}

	return &dto.GenerateIdeasResponse{
		Ideas:            responses,
		CommentsConsumed: len(comments),
	}, nil
}

// buildIdeas validates the model output against the submitted batch and
// converts it to domain models. Ideas with an unknown or repeated comment
// index are dropped; if nothing survives, the response counts as malformed.
func (s *ideaServiceImpl) buildIdeas(userID uuid.UUID, comments []*domain.VideoComment, generated []client.GeneratedIdea) ([]*domain.Idea, error) {
	if len(generated) > s.genConfig.MaxIdeas {
		generated = generated[:s.genConfig.MaxIdeas]
	}

	usedIndexes := make(map[int]bool)
	ideas := make([]*domain.Idea, 0, len(generated))

	for _, g := range generated {
		if g.CommentIndex < 1 || g.CommentIndex > len(comments) {
			s.logger.Warn("Dropping idea with out-of-range comment index",
				zap.Int("comment_index", g.CommentIndex),
				zap.Int("batch_size", len(comments)),
			)
			continue
		}
		if usedIndexes[g.CommentIndex] {
			s.logger.Warn("Dropping idea with duplicate comment index",
				zap.Int("comment_index", g.CommentIndex),
			)
			continue
		}
		if g.VideoTitle == "" || g.Description == "" {
			continue
		}
		usedIndexes[g.CommentIndex] = true

		comment := comments[g.CommentIndex-1]

		links := g.Research
		if links == nil {
			links = []string{}
		}
		linksJSON, err := json.Marshal(links)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to marshal research links", err.Error())
		}

		ideas = append(ideas, &domain.Idea{
			UserID:        userID,
			VideoID:       comment.VideoID,
			CommentID:     comment.ID,
			Score:         clampScore(g.Score),
			VideoTitle:    g.VideoTitle,
			Description:   g.Description,
			ResearchLinks: datatypes.JSON(linksJSON),
		})
	}

	if len(ideas) == 0 {
		return nil, response.NewAppError(response.ErrCodeExternalAPI, "Generation returned no usable ideas", "")
	}

	return ideas, nil
}

// GetIdeas returns the user's ideas, newest first
func (s *ideaServiceImpl) GetIdeas(ctx context.Context, userID uuid.UUID, filters *dto.IdeaFilters) ([]*dto.IdeaResponse, error) {
	ideas, err := s.ideaRepo.FindByUser(ctx, userID, filters)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list ideas", err.Error())
	}

	responses := make([]*dto.IdeaResponse, len(ideas))
	for i, idea := range ideas {
		responses[i] = toIdeaResponse(idea)
	}
	return responses, nil
}

// GetIdea returns a single idea with its video and source comment
func (s *ideaServiceImpl) GetIdea(ctx context.Context, userID, ideaID uuid.UUID) (*dto.IdeaDetailResponse, error) {
	idea, err := s.ideaRepo.FindByID(ctx, ideaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Idea not found")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load idea", err.Error())
	}

	if idea.UserID != userID {
		return nil, response.NewForbiddenError("You do not have access to this idea")
	}

	detail := &dto.IdeaDetailResponse{
		IdeaResponse: *toIdeaResponse(idea),
	}
	if idea.Video.ID != uuid.Nil {
		detail.Video = &dto.VideoResponse{
			ID:           idea.Video.ID,
			YouTubeID:    idea.Video.YouTubeID,
			Title:        idea.Video.Title,
			ChannelTitle: idea.Video.ChannelTitle,
			CreatedAt:    idea.Video.CreatedAt,
		}
	}
	if idea.Comment.ID != uuid.Nil {
		detail.Comment = toCommentResponse(&idea.Comment)
	}

	return detail, nil
}

// toIdeaResponse converts a domain idea to its API representation
func toIdeaResponse(idea *domain.Idea) *dto.IdeaResponse {
	links := []string{}
	if len(idea.ResearchLinks) > 0 {
		// Stored as a jsonb string array; fall back to empty on bad data
		_ = json.Unmarshal(idea.ResearchLinks, &links)
	}

	return &dto.IdeaResponse{
		ID:            idea.ID,
		UserID:        idea.UserID,
		VideoID:       idea.VideoID,
		CommentID:     idea.CommentID,
		Score:         idea.Score,
		VideoTitle:    idea.VideoTitle,
		Description:   idea.Description,
		ResearchLinks: links,
		CreatedAt:     idea.CreatedAt,
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func (s *ideaServiceImpl) recordRun(status string) {
	if s.metrics != nil {
		s.metrics.RecordGenerationRun(status)
	}
}
