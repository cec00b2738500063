package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// MockS3Client implements S3ClientInterface for testing without AWS credentials
type MockS3Client struct {
	Bucket string
	Region string

	// Optional function overrides for custom test behavior
	GenerateExportKeyFunc   func(userID string) string
	UploadFileFunc          func(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	GenerateDownloadURLFunc func(ctx context.Context, key string, expires time.Duration) (string, error)
	DeleteFileFunc          func(ctx context.Context, key string) error
	GetFileURLFunc          func(key string) string
}

// NewMockS3Client creates a new mock S3 client for testing
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{
		Bucket: "test-bucket",
		Region: "ap-northeast-2",
	}
}

// GenerateExportKey generates a unique export key
func (m *MockS3Client) GenerateExportKey(userID string) string {
	if m.GenerateExportKeyFunc != nil {
		return m.GenerateExportKeyFunc(userID)
	}
	return fmt.Sprintf("exports/%s/%s.json", userID, uuid.New().String())
}

// UploadFile simulates a file upload
func (m *MockS3Client) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, key, file, contentType)
	}
	return m.GetFileURL(key), nil
}

// GenerateDownloadURL simulates presigned URL generation
func (m *MockS3Client) GenerateDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if m.GenerateDownloadURLFunc != nil {
		return m.GenerateDownloadURLFunc(ctx, key, expires)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s?signed=1", m.Bucket, m.Region, key), nil
}

// DeleteFile simulates a file deletion
func (m *MockS3Client) DeleteFile(ctx context.Context, key string) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, key)
	}
	return nil
}

// GetFileURL returns the public URL for a file
func (m *MockS3Client) GetFileURL(key string) string {
	if m.GetFileURLFunc != nil {
		return m.GetFileURLFunc(key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Bucket, m.Region, key)
}
