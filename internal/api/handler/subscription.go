package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/elimuhub/homework_go_server/internal/api/middleware"
	"github.com/elimuhub/homework_go_server/internal/model/dto"
	"github.com/elimuhub/homework_go_server/internal/pkg/response"
	"github.com/elimuhub/homework_go_server/internal/service"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// Create starts a subscription plan
// POST /api/v1/subscriptions
func (h *SubscriptionHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.subscriptionService.Create(userID, &req)
	if err != nil {
		switch err {
		case service.ErrUnknownPlan:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "subscription started", info)
}

// List returns the user's subscription history
// GET /api/v1/subscriptions
func (h *SubscriptionHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	infos, err := h.subscriptionService.List(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, infos)
}

// Cancel ends an active subscription
// POST /api/v1/subscriptions/:id/cancel
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	subscriptionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid subscription id")
		return
	}

	if err := h.subscriptionService.Cancel(userID, subscriptionID); err != nil {
		switch err {
		case service.ErrSubscriptionNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrNotActive:
			response.DuplicateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "subscription cancelled", nil)
}
