package controllers

import (
	"net/http"
	"strconv"

	"hotel-reservations/models"
	"hotel-reservations/services"
	"hotel-reservations/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RoomController struct {
	RoomSvc *services.RoomService
	Log     *zap.Logger
}

func NewRoomController(svc *services.RoomService, log *zap.Logger) *RoomController {
	return &RoomController{RoomSvc: svc, Log: log}
}

type CreateRoomRequest struct {
	RoomNumber    string  `json:"roomNumber" binding:"required"`
	Floor         string  `json:"floor"`
	RoomTypeID    string  `json:"roomTypeId" binding:"required"`
	PricePerNight float64 `json:"pricePerNight"`
	Status        string  `json:"status"`
	Description   string  `json:"description"`
}

type UpdateRoomRequest struct {
	RoomNumber    *string  `json:"roomNumber"`
	Floor         *string  `json:"floor"`
	RoomTypeID    *string  `json:"roomTypeId"`
	PricePerNight *float64 `json:"pricePerNight"`
	Status        *string  `json:"status"`
	Description   *string  `json:"description"`
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	room := models.Room{
		RoomNumber:    req.RoomNumber,
		Floor:         req.Floor,
		RoomTypeID:    req.RoomTypeID,
		PricePerNight: req.PricePerNight,
		Status:        req.Status,
		Description:   req.Description,
	}
	if err := ctrl.RoomSvc.Create(c.Request.Context(), &room); err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// GetRooms serves GET /rooms?available=&room_type=&check_in=&check_out=.
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	in := services.ListRoomsInput{
		RoomTypeID: c.Query("room_type"),
		CheckIn:    c.Query("check_in"),
		CheckOut:   c.Query("check_out"),
	}
	if raw := c.Query("available"); raw != "" {
		avail, err := strconv.ParseBool(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "available must be a boolean")
			return
		}
		in.Available = &avail
	}

	rooms, err := ctrl.RoomSvc.List(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoomByID(c *gin.Context) {
	room, err := ctrl.RoomSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	room, err := ctrl.RoomSvc.Update(c.Request.Context(), c.Param("id"), services.UpdateRoomInput{
		RoomNumber:    req.RoomNumber,
		Floor:         req.Floor,
		RoomTypeID:    req.RoomTypeID,
		PricePerNight: req.PricePerNight,
		Status:        req.Status,
		Description:   req.Description,
	})
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	if err := ctrl.RoomSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
