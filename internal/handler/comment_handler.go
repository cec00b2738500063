package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"video-idea-api/internal/dto"
	"video-idea-api/internal/response"
	"video-idea-api/internal/service"
)

// CommentHandler handles comment and video browsing endpoints
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// GetComments godoc
// @Summary      댓글 목록 조회
// @Description  수집된 YouTube 댓글 목록을 최신순으로 조회합니다
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        videoId query string false "Video ID (UUID)"
// @Param        isUsed  query bool   false "사용 여부 필터"
// @Param        limit   query int    false "페이지 크기"
// @Param        offset  query int    false "오프셋"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CommentResponse} "댓글 목록 조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Router       /comments [get]
func (h *CommentHandler) GetComments(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	filters := &dto.CommentFilters{}

	if videoIDStr := c.Query("videoId"); videoIDStr != "" {
		videoID, err := uuid.Parse(videoIDStr)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid video ID")
			return
		}
		filters.VideoID = &videoID
	}

	if isUsedStr := c.Query("isUsed"); isUsedStr != "" {
		isUsed, err := strconv.ParseBool(isUsedStr)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "isUsed must be true or false")
			return
		}
		filters.IsUsed = &isUsed
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid limit parameter")
			return
		}
		filters.Limit = limit
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid offset parameter")
			return
		}
		filters.Offset = offset
	}

	comments, err := h.commentService.ListComments(c.Request.Context(), authData.UserID, filters)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comments)
}

// GetVideos godoc
// @Summary      영상 목록 조회
// @Description  댓글이 수집된 영상 목록을 댓글 수와 함께 조회합니다
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=[]dto.VideoResponse} "영상 목록 조회 성공"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Router       /videos [get]
func (h *CommentHandler) GetVideos(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	videos, err := h.commentService.ListVideos(c.Request.Context(), authData.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, videos)
}
