package controllers

import (
	"net/http"

	"hotel-reservations/models"
	"hotel-reservations/services"
	"hotel-reservations/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GuestController struct {
	GuestSvc *services.GuestService
	Log      *zap.Logger
}

func NewGuestController(svc *services.GuestService, log *zap.Logger) *GuestController {
	return &GuestController{GuestSvc: svc, Log: log}
}

type CreateGuestRequest struct {
	Name            string  `json:"name" binding:"required"`
	Email           *string `json:"email"`
	Phone           string  `json:"phone"`
	IDType          string  `json:"idType"`
	IDNumber        string  `json:"idNumber"`
	IDIssuedCountry string  `json:"idIssuedCountry"`
}

type UpdateGuestRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	IDType          *string `json:"idType"`
	IDNumber        *string `json:"idNumber"`
	IDIssuedCountry *string `json:"idIssuedCountry"`
}

func (ctrl *GuestController) CreateGuest(c *gin.Context) {
	var req CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	guest := models.Guest{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		IDType:          req.IDType,
		IDNumber:        req.IDNumber,
		IDIssuedCountry: req.IDIssuedCountry,
	}
	if err := ctrl.GuestSvc.Create(c.Request.Context(), &guest); err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, guest)
}

func (ctrl *GuestController) GetGuests(c *gin.Context) {
	guests, err := ctrl.GuestSvc.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, guests)
}

func (ctrl *GuestController) GetGuestByID(c *gin.Context) {
	guest, err := ctrl.GuestSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

func (ctrl *GuestController) UpdateGuest(c *gin.Context) {
	var req UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	guest, err := ctrl.GuestSvc.Update(c.Request.Context(), c.Param("id"), services.UpdateGuestInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		IDType:          req.IDType,
		IDNumber:        req.IDNumber,
		IDIssuedCountry: req.IDIssuedCountry,
	})
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (ctrl *GuestController) DeleteGuest(c *gin.Context) {
	if err := ctrl.GuestSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
