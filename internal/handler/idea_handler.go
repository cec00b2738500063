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

// IdeaHandler handles idea generation and browsing endpoints
type IdeaHandler struct {
	ideaService   service.IdeaService
	exportService service.ExportService
}

// NewIdeaHandler creates a new IdeaHandler
func NewIdeaHandler(ideaService service.IdeaService, exportService service.ExportService) *IdeaHandler {
	return &IdeaHandler{
		ideaService:   ideaService,
		exportService: exportService,
	}
}

// GenerateIdeas godoc
// @Summary      아이디어 생성
// @Description  아직 사용되지 않은 댓글(최대 50개)로 새 영상 아이디어를 생성합니다
// @Tags         ideas
// @Produce      json
// @Security     BearerAuth
// @Success      201 {object} response.SuccessResponse{data=dto.GenerateIdeasResponse} "아이디어 생성 성공"
// @Failure      400 {object} response.ErrorResponse "사용 가능한 댓글 없음"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Failure      409 {object} response.ErrorResponse "이미 생성이 진행 중"
// @Failure      502 {object} response.ErrorResponse "외부 API 오류"
// @Router       /ideas/generate [post]
func (h *IdeaHandler) GenerateIdeas(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	result, err := h.ideaService.GenerateIdeas(c.Request.Context(), authData.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// GetIdeas godoc
// @Summary      아이디어 목록 조회
// @Description  사용자의 아이디어 목록을 최신순으로 조회합니다
// @Tags         ideas
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query int false "페이지 크기" default(50)
// @Param        offset query int false "오프셋" default(0)
// @Success      200 {object} response.SuccessResponse{data=[]dto.IdeaResponse} "아이디어 목록 조회 성공"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Router       /ideas [get]
func (h *IdeaHandler) GetIdeas(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	filters := &dto.IdeaFilters{}
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

	ideas, err := h.ideaService.GetIdeas(c.Request.Context(), authData.UserID, filters)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, ideas)
}

// GetIdea godoc
// @Summary      아이디어 상세 조회
// @Description  아이디어와 해당 영상, 원본 댓글을 함께 조회합니다
// @Tags         ideas
// @Produce      json
// @Security     BearerAuth
// @Param        ideaId path string true "Idea ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.IdeaDetailResponse} "아이디어 상세 조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "접근 권한 없음"
// @Failure      404 {object} response.ErrorResponse "아이디어를 찾을 수 없음"
// @Router       /ideas/{ideaId} [get]
func (h *IdeaHandler) GetIdea(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	ideaID, err := uuid.Parse(c.Param("ideaId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid idea ID")
		return
	}

	idea, err := h.ideaService.GetIdea(c.Request.Context(), authData.UserID, ideaID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, idea)
}

// ExportIdeas godoc
// @Summary      아이디어 내보내기
// @Description  사용자의 전체 아이디어를 JSON 파일로 S3에 업로드하고 다운로드 URL을 반환합니다
// @Tags         ideas
// @Produce      json
// @Security     BearerAuth
// @Success      201 {object} response.SuccessResponse{data=dto.ExportResponse} "내보내기 성공"
// @Failure      400 {object} response.ErrorResponse "내보낼 아이디어 없음"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Router       /ideas/export [post]
func (h *IdeaHandler) ExportIdeas(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	result, err := h.exportService.ExportIdeas(c.Request.Context(), authData.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}
