package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"video-idea-api/internal/client"
	"video-idea-api/internal/config"
	"video-idea-api/internal/domain"
	"video-idea-api/internal/dto"
	"video-idea-api/internal/response"
)

func testGenerationConfig() config.GenerationConfig {
	return config.GenerationConfig{
		CommentBatchSize: 50,
		MaxIdeas:         5,
	}
}

func makeComments(videoID, userID uuid.UUID, n int) []*domain.VideoComment {
	comments := make([]*domain.VideoComment, n)
	for i := range comments {
		comments[i] = &domain.VideoComment{
			BaseModel:   domain.BaseModel{ID: uuid.New()},
			VideoID:     videoID,
			UserID:      userID,
			CommentText: "comment",
			Video:       domain.Video{BaseModel: domain.BaseModel{ID: videoID}, Title: "Test Video"},
		}
	}
	return comments
}

func assertAppErrorCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", wantCode)
	}
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != wantCode {
		t.Errorf("expected error code %s, got %s", wantCode, appErr.Code)
	}
}

func TestIdeaService_GenerateIdeas(t *testing.T) {
	userID := uuid.New()
	videoID := uuid.New()

	tests := []struct {
		name          string
		comments      []*domain.VideoComment
		findErr       error
		lockAcquired  bool
		lockErr       error
		generated     []client.GeneratedIdea
		generateErr   error
		createErr     error
		wantErrCode   string
		wantIdeaCount int
	}{
		{
			name:         "성공: 댓글 2개로 아이디어 2개 생성",
			comments:     makeComments(videoID, userID, 2),
			lockAcquired: true,
			generated: []client.GeneratedIdea{
				{CommentIndex: 1, Score: 80, VideoTitle: "Idea one", Description: "desc", Research: []string{"https://a"}},
				{CommentIndex: 2, Score: 55, VideoTitle: "Idea two", Description: "desc"},
			},
			wantIdeaCount: 2,
		},
		{
			name:         "성공: 5개 초과 응답은 최대 개수로 제한",
			comments:     makeComments(videoID, userID, 10),
			lockAcquired: true,
			generated: []client.GeneratedIdea{
				{CommentIndex: 1, Score: 80, VideoTitle: "i1", Description: "d"},
				{CommentIndex: 2, Score: 80, VideoTitle: "i2", Description: "d"},
				{CommentIndex: 3, Score: 80, VideoTitle: "i3", Description: "d"},
				{CommentIndex: 4, Score: 80, VideoTitle: "i4", Description: "d"},
				{CommentIndex: 5, Score: 80, VideoTitle: "i5", Description: "d"},
				{CommentIndex: 6, Score: 80, VideoTitle: "i6", Description: "d"},
				{CommentIndex: 7, Score: 80, VideoTitle: "i7", Description: "d"},
			},
			wantIdeaCount: 5,
		},
		{
			name:         "성공: 범위 밖/중복 인덱스는 제외",
			comments:     makeComments(videoID, userID, 3),
			lockAcquired: true,
			generated: []client.GeneratedIdea{
				{CommentIndex: 1, Score: 80, VideoTitle: "valid", Description: "d"},
				{CommentIndex: 1, Score: 70, VideoTitle: "duplicate index", Description: "d"},
				{CommentIndex: 9, Score: 60, VideoTitle: "out of range", Description: "d"},
				{CommentIndex: 0, Score: 60, VideoTitle: "zero index", Description: "d"},
			},
			wantIdeaCount: 1,
		},
		{
			name:         "실패: 이미 생성이 진행 중",
			comments:     makeComments(videoID, userID, 2),
			lockAcquired: false,
			wantErrCode:  response.ErrCodeAlreadyExists,
		},
		{
			name:         "실패: 사용 가능한 댓글 없음",
			comments:     []*domain.VideoComment{},
			lockAcquired: true,
			wantErrCode:  response.ErrCodeValidation,
		},
		{
			name:         "실패: 외부 API 호출 실패",
			comments:     makeComments(videoID, userID, 2),
			lockAcquired: true,
			generateErr:  errors.New("api unavailable"),
			wantErrCode:  response.ErrCodeExternalAPI,
		},
		{
			name:         "실패: 응답에 사용 가능한 아이디어 없음",
			comments:     makeComments(videoID, userID, 2),
			lockAcquired: true,
			generated: []client.GeneratedIdea{
				{CommentIndex: 99, Score: 80, VideoTitle: "bad", Description: "d"},
			},
			wantErrCode: response.ErrCodeExternalAPI,
		},
		{
			name:         "실패: 아이디어 저장 중 DB 에러",
			comments:     makeComments(videoID, userID, 2),
			lockAcquired: true,
			generated: []client.GeneratedIdea{
				{CommentIndex: 1, Score: 80, VideoTitle: "idea", Description: "d"},
			},
			createErr:   gorm.ErrInvalidTransaction,
			wantErrCode: response.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var createdIdeas []*domain.Idea
			var markedIDs []uuid.UUID

			ideaRepo := &MockIdeaRepository{
				CreateBatchWithCommentsFunc: func(ctx context.Context, ideas []*domain.Idea, commentIDs []uuid.UUID) error {
					if tt.createErr != nil {
						return tt.createErr
					}
					createdIdeas = ideas
					markedIDs = commentIDs
					return nil
				},
			}
			commentRepo := &MockCommentRepository{
				FindUnusedByUserFunc: func(ctx context.Context, uid uuid.UUID, limit int) ([]*domain.VideoComment, error) {
					if limit != 50 {
						t.Errorf("expected batch limit 50, got %d", limit)
					}
					return tt.comments, tt.findErr
				},
			}
			generator := &MockIdeaGenerator{
				GenerateIdeasFunc: func(ctx context.Context, comments []*domain.VideoComment) ([]client.GeneratedIdea, error) {
					return tt.generated, tt.generateErr
				},
			}
			locker := &MockGenerationLocker{
				AcquireFunc: func(ctx context.Context, uid uuid.UUID) (bool, error) {
					return tt.lockAcquired, tt.lockErr
				},
			}
			publisher := &MockEventPublisher{}

			svc := NewIdeaService(ideaRepo, commentRepo, generator, locker, publisher,
				testGenerationConfig(), nil, zap.NewNop())

			result, err := svc.GenerateIdeas(context.Background(), userID)

			if tt.wantErrCode != "" {
				assertAppErrorCode(t, err, tt.wantErrCode)
				if publisher.PublishCalls != 0 {
					t.Errorf("expected no event on failure, got %d", publisher.PublishCalls)
				}
				return
			}

			if err != nil {
				t.Fatalf("GenerateIdeas() error = %v", err)
			}
			if len(result.Ideas) != tt.wantIdeaCount {
				t.Errorf("expected %d ideas, got %d", tt.wantIdeaCount, len(result.Ideas))
			}
			if len(createdIdeas) != tt.wantIdeaCount {
				t.Errorf("expected %d ideas persisted, got %d", tt.wantIdeaCount, len(createdIdeas))
			}

			// Every comment in the batch is consumed, even those that
			// produced no idea
			if len(markedIDs) != len(tt.comments) {
				t.Errorf("expected %d comments marked used, got %d", len(tt.comments), len(markedIDs))
			}
			if result.CommentsConsumed != len(tt.comments) {
				t.Errorf("expected %d comments consumed, got %d", len(tt.comments), result.CommentsConsumed)
			}

			// Each idea references exactly one comment from the batch
			seen := make(map[uuid.UUID]bool)
			for _, idea := range createdIdeas {
				if idea.UserID != userID {
					t.Errorf("expected idea owned by %v, got %v", userID, idea.UserID)
				}
				if seen[idea.CommentID] {
					t.Errorf("comment %v referenced by more than one idea", idea.CommentID)
				}
				seen[idea.CommentID] = true
			}

			if publisher.PublishCalls != 1 {
				t.Errorf("expected 1 published event, got %d", publisher.PublishCalls)
			}
			if locker.ReleaseCalls != 1 {
				t.Errorf("expected lock released once, got %d", locker.ReleaseCalls)
			}
		})
	}
}

func TestIdeaService_GenerateIdeas_ScoreClamped(t *testing.T) {
	userID := uuid.New()
	videoID := uuid.New()
	comments := makeComments(videoID, userID, 2)

	var createdIdeas []*domain.Idea
	ideaRepo := &MockIdeaRepository{
		CreateBatchWithCommentsFunc: func(ctx context.Context, ideas []*domain.Idea, commentIDs []uuid.UUID) error {
			createdIdeas = ideas
			return nil
		},
	}
	commentRepo := &MockCommentRepository{
		FindUnusedByUserFunc: func(ctx context.Context, uid uuid.UUID, limit int) ([]*domain.VideoComment, error) {
			return comments, nil
		},
	}
	generator := &MockIdeaGenerator{
		GenerateIdeasFunc: func(ctx context.Context, c []*domain.VideoComment) ([]client.GeneratedIdea, error) {
			return []client.GeneratedIdea{
				{CommentIndex: 1, Score: 250, VideoTitle: "too high", Description: "d"},
				{CommentIndex: 2, Score: -10, VideoTitle: "too low", Description: "d"},
			}, nil
		},
	}

	svc := NewIdeaService(ideaRepo, commentRepo, generator, &MockGenerationLocker{}, &MockEventPublisher{},
		testGenerationConfig(), nil, zap.NewNop())

	_, err := svc.GenerateIdeas(context.Background(), userID)
	if err != nil {
		t.Fatalf("GenerateIdeas() error = %v", err)
	}

	if createdIdeas[0].Score != 100 {
		t.Errorf("expected score clamped to 100, got %d", createdIdeas[0].Score)
	}
	if createdIdeas[1].Score != 0 {
		t.Errorf("expected score clamped to 0, got %d", createdIdeas[1].Score)
	}
}

func TestIdeaService_GetIdea(t *testing.T) {
	userID := uuid.New()
	otherUserID := uuid.New()
	videoID := uuid.New()
	commentID := uuid.New()
	ideaID := uuid.New()

	storedIdea := &domain.Idea{
		BaseModel:     domain.BaseModel{ID: ideaID},
		UserID:        userID,
		VideoID:       videoID,
		CommentID:     commentID,
		Score:         72,
		VideoTitle:    "stored idea",
		Description:   "description",
		ResearchLinks: []byte(`["https://example.com"]`),
		Video:         domain.Video{BaseModel: domain.BaseModel{ID: videoID}, YouTubeID: "abc123", Title: "Video"},
		Comment:       domain.VideoComment{BaseModel: domain.BaseModel{ID: commentID}, VideoID: videoID, UserID: userID, CommentText: "source"},
	}

	tests := []struct {
		name        string
		requestUser uuid.UUID
		findErr     error
		wantErrCode string
	}{
		{
			name:        "성공: 아이디어 상세 조회",
			requestUser: userID,
		},
		{
			name:        "실패: 아이디어가 존재하지 않음",
			requestUser: userID,
			findErr:     gorm.ErrRecordNotFound,
			wantErrCode: response.ErrCodeNotFound,
		},
		{
			name:        "실패: 다른 사용자의 아이디어",
			requestUser: otherUserID,
			wantErrCode: response.ErrCodeForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ideaRepo := &MockIdeaRepository{
				FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Idea, error) {
					if tt.findErr != nil {
						return nil, tt.findErr
					}
					return storedIdea, nil
				},
			}

			svc := NewIdeaService(ideaRepo, &MockCommentRepository{}, &MockIdeaGenerator{},
				&MockGenerationLocker{}, &MockEventPublisher{}, testGenerationConfig(), nil, zap.NewNop())

			detail, err := svc.GetIdea(context.Background(), tt.requestUser, ideaID)

			if tt.wantErrCode != "" {
				assertAppErrorCode(t, err, tt.wantErrCode)
				return
			}

			if err != nil {
				t.Fatalf("GetIdea() error = %v", err)
			}
			if detail.ID != ideaID {
				t.Errorf("expected idea ID %v, got %v", ideaID, detail.ID)
			}
			if len(detail.ResearchLinks) != 1 || detail.ResearchLinks[0] != "https://example.com" {
				t.Errorf("unexpected research links: %v", detail.ResearchLinks)
			}
			if detail.Video == nil || detail.Video.YouTubeID != "abc123" {
				t.Error("expected preloaded video in detail response")
			}
			if detail.Comment == nil || detail.Comment.CommentText != "source" {
				t.Error("expected preloaded comment in detail response")
			}
		})
	}
}

func TestIdeaService_GetIdeas(t *testing.T) {
	userID := uuid.New()

	ideaRepo := &MockIdeaRepository{
		FindByUserFunc: func(ctx context.Context, uid uuid.UUID, filters *dto.IdeaFilters) ([]*domain.Idea, error) {
			return []*domain.Idea{
				{BaseModel: domain.BaseModel{ID: uuid.New()}, UserID: uid, VideoTitle: "one"},
				{BaseModel: domain.BaseModel{ID: uuid.New()}, UserID: uid, VideoTitle: "two"},
			}, nil
		},
	}

	svc := NewIdeaService(ideaRepo, &MockCommentRepository{}, &MockIdeaGenerator{},
		&MockGenerationLocker{}, &MockEventPublisher{}, testGenerationConfig(), nil, zap.NewNop())

	ideas, err := svc.GetIdeas(context.Background(), userID, nil)
	if err != nil {
		t.Fatalf("GetIdeas() error = %v", err)
	}
	if len(ideas) != 2 {
		t.Errorf("expected 2 ideas, got %d", len(ideas))
	}
}
