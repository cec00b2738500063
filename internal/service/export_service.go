package service

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"video-idea-api/internal/client"
	"video-idea-api/internal/dto"
	"video-idea-api/internal/repository"
	"video-idea-api/internal/response"
)

// downloadURLTTL bounds how long an export download link stays valid
const downloadURLTTL = 15 * time.Minute

// ExportService defines the interface for idea export logic
type ExportService interface {
	ExportIdeas(ctx context.Context, userID uuid.UUID) (*dto.ExportResponse, error)
}

// exportServiceImpl is the implementation of ExportService
type exportServiceImpl struct {
	ideaRepo repository.IdeaRepository
	s3Client client.S3ClientInterface
	logger   *zap.Logger
}

// NewExportService creates a new instance of ExportService
func NewExportService(
	ideaRepo repository.IdeaRepository,
	s3Client client.S3ClientInterface,
	logger *zap.Logger,
) ExportService {
	return &exportServiceImpl{
		ideaRepo: ideaRepo,
		s3Client: s3Client,
		logger:   logger,
	}
}

// ExportIdeas writes a JSON snapshot of the user's ideas to S3 and returns a
// presigned download URL
func (s *exportServiceImpl) ExportIdeas(ctx context.Context, userID uuid.UUID) (*dto.ExportResponse, error) {
	ideas, err := s.ideaRepo.FindByUser(ctx, userID, nil)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load ideas", err.Error())
	}
	if len(ideas) == 0 {
		return nil, response.NewValidationError("No ideas to export")
	}

	responses := make([]*dto.IdeaResponse, len(ideas))
	for i, idea := range ideas {
		responses[i] = toIdeaResponse(idea)
	}

	payload, err := json.MarshalIndent(responses, "", "  ")
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to marshal export", err.Error())
	}

	key := s.s3Client.GenerateExportKey(userID.String())
	if _, err := s.s3Client.UploadFile(ctx, key, bytes.NewReader(payload), "application/json"); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to upload export", err.Error())
	}

	downloadURL, err := s.s3Client.GenerateDownloadURL(ctx, key, downloadURLTTL)
	if err != nil {
		// Clean up the orphaned object, best effort
		if delErr := s.s3Client.DeleteFile(ctx, key); delErr != nil {
			s.logger.Warn("Failed to delete orphaned export file",
				zap.Error(delErr),
				zap.String("file_key", key),
			)
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to generate download URL", err.Error())
	}

	s.logger.Info("Idea export completed",
		zap.String("user_id", userID.String()),
		zap.String("file_key", key),
		zap.Int("idea_count", len(ideas)),
	)

	return &dto.ExportResponse{
		FileKey:     key,
		DownloadURL: downloadURL,
		IdeaCount:   len(ideas),
		ExpiresAt:   time.Now().UTC().Add(downloadURLTTL),
	}, nil
}
