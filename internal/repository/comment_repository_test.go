package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"video-idea-api/internal/domain"
	"video-idea-api/internal/dto"
)

func setupCommentTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	// Create tables for SQLite compatibility
	db.Exec(`CREATE TABLE videos (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		you_tube_id TEXT NOT NULL,
		title TEXT NOT NULL,
		channel_title TEXT
	)`)
	db.Exec(`CREATE TABLE video_comments (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		video_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		author_name TEXT,
		comment_text TEXT NOT NULL,
		like_count INTEGER NOT NULL DEFAULT 0,
		is_used BOOLEAN NOT NULL DEFAULT 0
	)`)

	return db
}

func createTestVideo(t *testing.T, db *gorm.DB) *domain.Video {
	video := &domain.Video{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		YouTubeID: "dQw4w9WgXcQ",
		Title:     "Test Video",
	}
	if err := db.Create(video).Error; err != nil {
		t.Fatalf("failed to create test video: %v", err)
	}
	return video
}

func TestCommentRepository_FindUnusedByUser(t *testing.T) {
	db := setupCommentTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	video := createTestVideo(t, db)
	userID := uuid.New()
	otherUserID := uuid.New()
	now := time.Now()

	// Create oldest unused comment
	oldComment := &domain.VideoComment{
		BaseModel:   domain.BaseModel{ID: uuid.New(), CreatedAt: now.Add(-2 * time.Hour)},
		VideoID:     video.ID,
		UserID:      userID,
		CommentText: "oldest comment",
	}
	db.Create(oldComment)

	// Create newer unused comment
	newComment := &domain.VideoComment{
		BaseModel:   domain.BaseModel{ID: uuid.New(), CreatedAt: now.Add(-1 * time.Hour)},
		VideoID:     video.ID,
		UserID:      userID,
		CommentText: "newer comment",
	}
	db.Create(newComment)

	// Create already-used comment (should not be returned)
	usedComment := &domain.VideoComment{
		BaseModel:   domain.BaseModel{ID: uuid.New(), CreatedAt: now.Add(-3 * time.Hour)},
		VideoID:     video.ID,
		UserID:      userID,
		CommentText: "used comment",
		IsUsed:      true,
	}
	db.Create(usedComment)

	// Create another user's comment (should not be returned)
	otherComment := &domain.VideoComment{
		BaseModel:   domain.BaseModel{ID: uuid.New(), CreatedAt: now},
		VideoID:     video.ID,
		UserID:      otherUserID,
		CommentText: "other user's comment",
	}
	db.Create(otherComment)

	// Test: only the user's unused comments, oldest first
	comments, err := repo.FindUnusedByUser(ctx, userID, 50)
	if err != nil {
		t.Fatalf("FindUnusedByUser() error = %v", err)
	}

	if len(comments) != 2 {
		t.Fatalf("expected 2 unused comments, got %d", len(comments))
	}
	if comments[0].ID != oldComment.ID {
		t.Errorf("expected oldest comment first, got %v", comments[0].ID)
	}
	if comments[1].ID != newComment.ID {
		t.Errorf("expected newer comment second, got %v", comments[1].ID)
	}

	// Verify the video is preloaded
	if comments[0].Video.ID != video.ID {
		t.Errorf("expected preloaded video %v, got %v", video.ID, comments[0].Video.ID)
	}
}

func TestCommentRepository_FindUnusedByUser_Limit(t *testing.T) {
	db := setupCommentTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	video := createTestVideo(t, db)
	userID := uuid.New()
	now := time.Now()

	for i := 0; i < 5; i++ {
		comment := &domain.VideoComment{
			BaseModel:   domain.BaseModel{ID: uuid.New(), CreatedAt: now.Add(time.Duration(i) * time.Minute)},
			VideoID:     video.ID,
			UserID:      userID,
			CommentText: "comment",
		}
		db.Create(comment)
	}

	// Test: limit caps the batch size
	comments, err := repo.FindUnusedByUser(ctx, userID, 3)
	if err != nil {
		t.Fatalf("FindUnusedByUser() error = %v", err)
	}

	if len(comments) != 3 {
		t.Errorf("expected 3 comments with limit 3, got %d", len(comments))
	}
}

func TestCommentRepository_MarkUsed(t *testing.T) {
	db := setupCommentTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	video := createTestVideo(t, db)
	userID := uuid.New()

	comment1 := &domain.VideoComment{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		VideoID:     video.ID,
		UserID:      userID,
		CommentText: "first",
	}
	comment2 := &domain.VideoComment{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		VideoID:     video.ID,
		UserID:      userID,
		CommentText: "second",
	}
	comment3 := &domain.VideoComment{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		VideoID:     video.ID,
		UserID:      userID,
		CommentText: "third",
	}
	db.Create(comment1)
	db.Create(comment2)
	db.Create(comment3)

	// Test: MarkUsed flips is_used only for the given IDs
	err := repo.MarkUsed(ctx, []uuid.UUID{comment1.ID, comment2.ID})
	if err != nil {
		t.Fatalf("MarkUsed() error = %v", err)
	}

	var updated1 domain.VideoComment
	db.First(&updated1, "id = ?", comment1.ID)
	if !updated1.IsUsed {
		t.Error("expected comment1 to be marked used")
	}

	var updated2 domain.VideoComment
	db.First(&updated2, "id = ?", comment2.ID)
	if !updated2.IsUsed {
		t.Error("expected comment2 to be marked used")
	}

	var untouched domain.VideoComment
	db.First(&untouched, "id = ?", comment3.ID)
	if untouched.IsUsed {
		t.Error("expected comment3 to remain unused")
	}
}

func TestCommentRepository_MarkUsed_EmptyList(t *testing.T) {
	db := setupCommentTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	// Test: MarkUsed with empty list should not error
	err := repo.MarkUsed(ctx, []uuid.UUID{})
	if err != nil {
		t.Fatalf("MarkUsed() with empty list error = %v", err)
	}
}

func TestCommentRepository_FindByUser_Filters(t *testing.T) {
	db := setupCommentTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	video := createTestVideo(t, db)
	userID := uuid.New()

	unusedComment := &domain.VideoComment{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		VideoID:     video.ID,
		UserID:      userID,
		CommentText: "unused",
	}
	usedComment := &domain.VideoComment{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		VideoID:     video.ID,
		UserID:      userID,
		CommentText: "used",
		IsUsed:      true,
	}
	db.Create(unusedComment)
	db.Create(usedComment)

	// Test: is_used filter returns only matching comments
	isUsed := true
	comments, err := repo.FindByUser(ctx, userID, &dto.CommentFilters{IsUsed: &isUsed})
	if err != nil {
		t.Fatalf("FindByUser() error = %v", err)
	}

	if len(comments) != 1 {
		t.Fatalf("expected 1 used comment, got %d", len(comments))
	}
	if comments[0].ID != usedComment.ID {
		t.Errorf("expected used comment %v, got %v", usedComment.ID, comments[0].ID)
	}

	// Test: no filters returns everything for the user
	all, err := repo.FindByUser(ctx, userID, nil)
	if err != nil {
		t.Fatalf("FindByUser() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 comments without filters, got %d", len(all))
	}
}

func TestCommentRepository_DeleteUsedOlderThan(t *testing.T) {
	db := setupCommentTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	video := createTestVideo(t, db)
	userID := uuid.New()
	now := time.Now()

	// Old used comment (should be deleted)
	oldUsed := &domain.VideoComment{
		BaseModel:   domain.BaseModel{ID: uuid.New(), UpdatedAt: now.Add(-48 * time.Hour)},
		VideoID:     video.ID,
		UserID:      userID,
		CommentText: "old used",
		IsUsed:      true,
	}
	db.Create(oldUsed)
	// Create refreshes updated_at, so push it back explicitly
	db.Model(&domain.VideoComment{}).Where("id = ?", oldUsed.ID).
		UpdateColumn("updated_at", now.Add(-48*time.Hour))

	// Old unused comment (should be kept)
	oldUnused := &domain.VideoComment{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		VideoID:     video.ID,
		UserID:      userID,
		CommentText: "old unused",
	}
	db.Create(oldUnused)
	db.Model(&domain.VideoComment{}).Where("id = ?", oldUnused.ID).
		UpdateColumn("updated_at", now.Add(-48*time.Hour))

	// Recent used comment (should be kept)
	recentUsed := &domain.VideoComment{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		VideoID:     video.ID,
		UserID:      userID,
		CommentText: "recent used",
		IsUsed:      true,
	}
	db.Create(recentUsed)

	// Test: only used comments older than the cutoff are deleted
	deleted, err := repo.DeleteUsedOlderThan(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteUsedOlderThan() error = %v", err)
	}

	if deleted != 1 {
		t.Errorf("expected 1 deleted comment, got %d", deleted)
	}

	var gone domain.VideoComment
	if err := db.First(&gone, "id = ?", oldUsed.ID).Error; err == nil {
		t.Error("expected old used comment to be deleted, but it was found")
	}

	var kept domain.VideoComment
	if err := db.First(&kept, "id = ?", oldUnused.ID).Error; err != nil {
		t.Errorf("expected old unused comment to be kept: %v", err)
	}
}
