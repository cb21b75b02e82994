package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-reservations/controllers"
	"hotel-reservations/middleware"
)

func SetupRouter(
	gc *controllers.GuestController,
	rtc *controllers.RoomTypeController,
	rc *controllers.RoomController,
	resc *controllers.ReservationController,
	pc *controllers.PaymentController,
	corsOrigins []string,
	log *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	allowCredentials := true
	for _, origin := range corsOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	guests := r.Group("/guests")
	{
		guests.POST("", gc.CreateGuest)
		guests.GET("", gc.GetGuests)
		guests.GET("/:id", gc.GetGuestByID)
		guests.PUT("/:id", gc.UpdateGuest)
		guests.DELETE("/:id", gc.DeleteGuest)
	}

	roomTypes := r.Group("/room-types")
	{
		roomTypes.POST("", rtc.CreateRoomType)
		roomTypes.GET("", rtc.GetRoomTypes)
		roomTypes.GET("/:id", rtc.GetRoomTypeByID)
		roomTypes.PUT("/:id", rtc.UpdateRoomType)
		roomTypes.DELETE("/:id", rtc.DeleteRoomType)
	}

	rooms := r.Group("/rooms")
	{
		rooms.POST("", rc.CreateRoom)
		rooms.GET("", rc.GetRooms)
		rooms.GET("/:id", rc.GetRoomByID)
		rooms.PUT("/:id", rc.UpdateRoom)
		rooms.DELETE("/:id", rc.DeleteRoom)
	}

	reservations := r.Group("/reservations")
	{
		reservations.POST("", resc.CreateReservation)
		reservations.GET("", resc.GetReservations)
		reservations.GET("/:id", resc.GetReservationByID)
		reservations.PUT("/:id", resc.UpdateReservation)
		reservations.PUT("/:id/cancel", resc.CancelReservation)
		reservations.POST("/:id/checkin", resc.CheckInReservation)
		reservations.POST("/:id/checkout", resc.CheckOutReservation)
		reservations.POST("/:id/no-show", resc.MarkNoShow)
		reservations.DELETE("/:id", resc.DeleteReservation)

		reservations.POST("/:id/payments", pc.CreatePayment)
		reservations.GET("/:id/payments", pc.GetPaymentsByReservation)
	}

	payments := r.Group("/payments")
	{
		payments.PUT("/:id", pc.UpdatePayment)
	}

	return r
}
