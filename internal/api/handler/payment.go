package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/elimuhub/homework_go_server/internal/api/middleware"
	"github.com/elimuhub/homework_go_server/internal/model/dto"
	"github.com/elimuhub/homework_go_server/internal/pkg/response"
	"github.com/elimuhub/homework_go_server/internal/service"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Create initiates a payment
// POST /api/v1/payments
func (h *PaymentHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.paymentService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		switch err {
		case service.ErrPlanRequired:
			response.ParamError(c, err.Error())
		case service.ErrGatewayFailed:
			response.GatewayError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "payment initiated", info)
}

// List pages through the user's payments
// GET /api/v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
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

	infos, total, err := h.paymentService.List(userID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, infos)
}

// Get returns a single payment
// GET /api/v1/payments/:id
func (h *PaymentHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	paymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid payment id")
		return
	}

	info, err := h.paymentService.GetByID(userID, paymentID)
	if err != nil {
		switch err {
		case service.ErrPaymentNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, info)
}

// MpesaCallback receives the gateway's settlement result. The gateway
// retries on non-success, so replays must be acknowledged cleanly.
// POST /api/v1/payments/mpesa/callback
func (h *PaymentHandler) MpesaCallback(c *gin.Context) {
	var req dto.MpesaCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.paymentService.ApplyOutcome(&req); err != nil {
		switch err {
		case service.ErrPaymentNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, nil)
}
