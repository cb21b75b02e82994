package controllers

import (
	"net/http"

	"hotel-reservations/services"
	"hotel-reservations/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentController struct {
	PaymentSvc *services.PaymentService
	Log        *zap.Logger
}

func NewPaymentController(svc *services.PaymentService, log *zap.Logger) *PaymentController {
	return &PaymentController{PaymentSvc: svc, Log: log}
}

type CreatePaymentRequest struct {
	Amount    float64 `json:"amount" binding:"required"`
	Currency  string  `json:"currency"`
	Method    string  `json:"method" binding:"required"`
	Status    string  `json:"status"`
	Reference string  `json:"reference"`
	Notes     string  `json:"notes"`
}

type UpdatePaymentRequest struct {
	Status    *string `json:"status"`
	Reference *string `json:"reference"`
	Notes     *string `json:"notes"`
}

func (ctrl *PaymentController) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	payment, err := ctrl.PaymentSvc.Create(c.Request.Context(), c.Param("id"), services.CreatePaymentInput{
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		Status:    req.Status,
		Reference: req.Reference,
		Notes:     req.Notes,
	})
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}

func (ctrl *PaymentController) GetPaymentsByReservation(c *gin.Context) {
	payments, err := ctrl.PaymentSvc.ListByReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (ctrl *PaymentController) UpdatePayment(c *gin.Context) {
	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	payment, err := ctrl.PaymentSvc.Update(c.Request.Context(), c.Param("id"), services.UpdatePaymentInput{
		Status:    req.Status,
		Reference: req.Reference,
		Notes:     req.Notes,
	})
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}
