package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/elimuhub/homework_go_server/internal/api/middleware"
	"github.com/elimuhub/homework_go_server/internal/model/dto"
	"github.com/elimuhub/homework_go_server/internal/pkg/response"
	"github.com/elimuhub/homework_go_server/internal/service"
)

type QuestionHandler struct {
	questionService *service.QuestionService
}

func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
	}
}

// Create submits a question for fulfillment
// POST /api/v1/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.questionService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		switch err {
		case service.ErrInsufficientCredit:
			response.InsufficientCreditError(c, err.Error())
		case service.ErrChildNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "question submitted", resp)
}

// List pages through the user's questions
// GET /api/v1/questions
func (h *QuestionHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := h.questionService.List(userID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// Get returns a question with its answer once processed
// GET /api/v1/questions/:id
func (h *QuestionHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	questionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid question id")
		return
	}

	detail, err := h.questionService.GetByID(userID, questionID)
	if err != nil {
		switch err {
		case service.ErrQuestionNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, detail)
}

// Rate records a rating on an answered question
// POST /api/v1/questions/:id/rate
func (h *QuestionHandler) Rate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	questionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid question id")
		return
	}

	var req dto.RateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.questionService.Rate(userID, questionID, &req); err != nil {
		switch err {
		case service.ErrQuestionNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrInvalidRating, service.ErrQuestionNotProcessed:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "rating saved", nil)
}
