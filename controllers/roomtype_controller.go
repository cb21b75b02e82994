package controllers

import (
	"net/http"

	"hotel-reservations/models"
	"hotel-reservations/services"
	"hotel-reservations/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RoomTypeController struct {
	RoomTypeSvc *services.RoomTypeService
	Log         *zap.Logger
}

func NewRoomTypeController(svc *services.RoomTypeService, log *zap.Logger) *RoomTypeController {
	return &RoomTypeController{RoomTypeSvc: svc, Log: log}
}

type CreateRoomTypeRequest struct {
	Code             string  `json:"code" binding:"required"`
	Name             string  `json:"name" binding:"required"`
	Description      string  `json:"description"`
	CapacityAdults   int     `json:"capacityAdults"`
	CapacityChildren int     `json:"capacityChildren"`
	BaseRate         float64 `json:"baseRate"`
}

type UpdateRoomTypeRequest struct {
	Code             *string  `json:"code"`
	Name             *string  `json:"name"`
	Description      *string  `json:"description"`
	CapacityAdults   *int     `json:"capacityAdults"`
	CapacityChildren *int     `json:"capacityChildren"`
	BaseRate         *float64 `json:"baseRate"`
}

func (ctrl *RoomTypeController) CreateRoomType(c *gin.Context) {
	var req CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	rt := models.RoomType{
		Code:             req.Code,
		Name:             req.Name,
		Description:      req.Description,
		CapacityAdults:   req.CapacityAdults,
		CapacityChildren: req.CapacityChildren,
		BaseRate:         req.BaseRate,
	}
	if err := ctrl.RoomTypeSvc.Create(c.Request.Context(), &rt); err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rt)
}

func (ctrl *RoomTypeController) GetRoomTypes(c *gin.Context) {
	types, err := ctrl.RoomTypeSvc.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (ctrl *RoomTypeController) GetRoomTypeByID(c *gin.Context) {
	rt, err := ctrl.RoomTypeSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

func (ctrl *RoomTypeController) UpdateRoomType(c *gin.Context) {
	var req UpdateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	rt, err := ctrl.RoomTypeSvc.Update(c.Request.Context(), c.Param("id"), services.UpdateRoomTypeInput{
		Code:             req.Code,
		Name:             req.Name,
		Description:      req.Description,
		CapacityAdults:   req.CapacityAdults,
		CapacityChildren: req.CapacityChildren,
		BaseRate:         req.BaseRate,
	})
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

func (ctrl *RoomTypeController) DeleteRoomType(c *gin.Context) {
	if err := ctrl.RoomTypeSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
