package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/elimuhub/homework_go_server/internal/api/middleware"
	"github.com/elimuhub/homework_go_server/internal/model/dto"
	"github.com/elimuhub/homework_go_server/internal/pkg/response"
	"github.com/elimuhub/homework_go_server/internal/service"
)

type ChildHandler struct {
	childService *service.ChildService
}

func NewChildHandler(childService *service.ChildService) *ChildHandler {
	return &ChildHandler{
		childService: childService,
	}
}

// Create adds a child profile
// POST /api/v1/children
func (h *ChildHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.childService.Create(userID, &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "created", info)
}

// List returns the user's child profiles
// GET /api/v1/children
func (h *ChildHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	infos, err := h.childService.List(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, infos)
}

// Update edits a child profile
// PUT /api/v1/children/:id
func (h *ChildHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	childID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid child id")
		return
	}

	var req dto.UpdateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.childService.Update(userID, childID, &req)
	if err != nil {
		switch err {
		case service.ErrChildNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, info)
}

// Delete removes a child profile
// DELETE /api/v1/children/:id
func (h *ChildHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	childID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid child id")
		return
	}

	if err := h.childService.Delete(userID, childID); err != nil {
		switch err {
		case service.ErrChildNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, nil)
}
