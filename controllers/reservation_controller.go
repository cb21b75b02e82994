// controllers/reservation_controller.go
package controllers

import (
	"net/http"

	"hotel-reservations/services"
	"hotel-reservations/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReservationController struct {
	ReservationSvc *services.ReservationService
	Log            *zap.Logger
}

func NewReservationController(svc *services.ReservationService, log *zap.Logger) *ReservationController {
	return &ReservationController{ReservationSvc: svc, Log: log}
}

type CreateReservationRequest struct {
	GuestID   string                   `json:"guest_id" binding:"required"`
	RoomID    string                   `json:"room_id" binding:"required"`
	CheckIn   string                   `json:"check_in_date" binding:"required"`
	CheckOut  string                   `json:"check_out_date" binding:"required"`
	Adults    int                      `json:"adults"`
	Children  int                      `json:"children"`
	GuestIDs  []string                 `json:"guest_ids,omitempty"`
	GuestList []map[string]interface{} `json:"guest_list,omitempty"`
}

type UpdateReservationRequest struct {
	GuestID  *string `json:"guest_id"`
	RoomID   *string `json:"room_id"`
	CheckIn  *string `json:"check_in_date"`
	CheckOut *string `json:"check_out_date"`
	Status   *string `json:"status"`
	Adults   *int    `json:"adults"`
	Children *int    `json:"children"`
}

func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	reservation, err := ctrl.ReservationSvc.Create(c.Request.Context(), services.CreateReservationInput{
		GuestID:   req.GuestID,
		RoomID:    req.RoomID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Adults:    req.Adults,
		Children:  req.Children,
		GuestIDs:  req.GuestIDs,
		GuestList: req.GuestList,
	})
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

func (ctrl *ReservationController) GetReservations(c *gin.Context) {
	list, err := ctrl.ReservationSvc.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ctrl *ReservationController) GetReservationByID(c *gin.Context) {
	reservation, err := ctrl.ReservationSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (ctrl *ReservationController) UpdateReservation(c *gin.Context) {
	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	reservation, err := ctrl.ReservationSvc.Update(c.Request.Context(), c.Param("id"), services.UpdateReservationInput{
		GuestID:  req.GuestID,
		RoomID:   req.RoomID,
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Status:   req.Status,
		Adults:   req.Adults,
		Children: req.Children,
	})
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (ctrl *ReservationController) CancelReservation(c *gin.Context) {
	reservation, err := ctrl.ReservationSvc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (ctrl *ReservationController) CheckInReservation(c *gin.Context) {
	reservation, err := ctrl.ReservationSvc.CheckIn(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (ctrl *ReservationController) CheckOutReservation(c *gin.Context) {
	reservation, err := ctrl.ReservationSvc.CheckOut(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (ctrl *ReservationController) MarkNoShow(c *gin.Context) {
	reservation, err := ctrl.ReservationSvc.MarkNoShow(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (ctrl *ReservationController) DeleteReservation(c *gin.Context) {
	if err := ctrl.ReservationSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
