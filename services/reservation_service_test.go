package services

import (
	"context"
	"testing"
	"time"

	"hotel-reservations/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReservationService(t *testing.T) (*ReservationService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	avail := NewAvailabilityService(db, zap.NewNop())
	return NewReservationService(db, avail, zap.NewNop(), models.ReservationConfirmed), mock
}

func TestNewReservationServiceDefaultStatus(t *testing.T) {
	db, _ := newMockDB(t)
	avail := NewAvailabilityService(db, zap.NewNop())

	svc := NewReservationService(db, avail, zap.NewNop(), models.ReservationPending)
	assert.Equal(t, models.ReservationPending, svc.DefaultStatus)

	// anything outside PENDING/CONFIRMED falls back to CONFIRMED
	svc = NewReservationService(db, avail, zap.NewNop(), "CHECKED_OUT")
	assert.Equal(t, models.ReservationConfirmed, svc.DefaultStatus)
}

func TestCreateReservationInvalidDates(t *testing.T) {
	svc, _ := newReservationService(t)

	_, err := svc.Create(context.Background(), CreateReservationInput{
		GuestID:  "guest-1",
		RoomID:   "room-1",
		CheckIn:  "not-a-date",
		CheckOut: "2024-12-03",
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	// checkout on or before checkin
	_, err = svc.Create(context.Background(), CreateReservationInput{
		GuestID:  "guest-1",
		RoomID:   "room-1",
		CheckIn:  "2024-12-03",
		CheckOut: "2024-12-01",
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCreateReservationGuestNotFound(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateReservationInput{
		GuestID:  "missing-guest",
		RoomID:   "room-1",
		CheckIn:  "2024-12-01",
		CheckOut: "2024-12-03",
	})
	assert.ErrorIs(t, err, ErrGuestNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservationHappyPath(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("guest-1", "Ada Lovelace"))
	mock.ExpectQuery("SELECT .* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "room_type_id", "price_per_night", "status"}).
			AddRow("room-1", "101", "rt-1", 80.0, models.RoomAvailable))
	mock.ExpectQuery("SELECT .* FROM `room_types`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "base_rate"}).AddRow("rt-1", "STD", 75.0))
	// availability check inside the same transaction
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `reservations`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `reservation_rooms`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `reservation_guests`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	res, err := svc.Create(context.Background(), CreateReservationInput{
		GuestID:  "guest-1",
		RoomID:   "room-1",
		CheckIn:  "2024-12-01",
		CheckOut: "2024-12-03",
		Adults:   2,
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	// 2 nights at the room's own nightly rate
	assert.Equal(t, 160.0, res.TotalAmount)
	assert.Equal(t, models.ReservationConfirmed, res.Status)
	assert.Equal(t, "guest-1", res.GuestID)
	assert.NotEmpty(t, res.ID)
	assert.NotEmpty(t, res.ReferenceCode)
	require.Len(t, res.Segments, 1)
	assert.Equal(t, 80.0, res.Segments[0].NightlyRate)
	require.Len(t, res.GuestLinks, 1)
	assert.True(t, res.GuestLinks[0].IsPrimary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservationRoomUnavailable(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("guest-1"))
	mock.ExpectQuery("SELECT .* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "room_type_id", "price_per_night"}).
			AddRow("room-1", "101", "rt-1", 80.0))
	mock.ExpectQuery("SELECT .* FROM `room_types`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "base_rate"}).AddRow("rt-1", "STD", 75.0))
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "reservation_id"}).AddRow("seg-1", "res-other"))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateReservationInput{
		GuestID:  "guest-1",
		RoomID:   "room-1",
		CheckIn:  "2024-12-02",
		CheckOut: "2024-12-04",
	})
	assert.ErrorIs(t, err, ErrRoomUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelReservationNotFound(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Cancel(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelReservationAlreadyCancelled(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow("res-1", models.ReservationCancelled))
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Cancel(context.Background(), "res-1")
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelReservationInvalidTransition(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow("res-1", models.ReservationCheckedOut))
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Cancel(context.Background(), "res-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInRequiresConfirmed(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow("res-1", models.ReservationPending))
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.CheckIn(context.Background(), "res-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNormalizeGuestList(t *testing.T) {
	in := []map[string]interface{}{
		{"name": " Grace Hopper ", "type": "Adult"},
		{"fullName": "Kid One"},           // type defaults to Adult
		{"type": "Child"},                 // no name, dropped
		{"full_name": "Alan", "type": ""}, // empty type defaults too
	}
	out := normalizeGuestList(in)
	require.Len(t, out, 3)
	assert.Equal(t, "Grace Hopper", out[0]["fullName"])
	assert.Equal(t, "Adult", out[1]["type"])
	assert.Equal(t, "Alan", out[2]["fullName"])
}

func TestCreateReservationWithCompanions(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("guest-1", "Ada"))
	mock.ExpectQuery("SELECT .* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "room_type_id", "price_per_night"}).
			AddRow("room-1", "101", "rt-1", 80.0))
	mock.ExpectQuery("SELECT .* FROM `room_types`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "base_rate"}).AddRow("rt-1", "STD", 75.0))
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `reservations`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `reservation_rooms`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `reservation_guests`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT .* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("guest-2", "Grace"))
	mock.ExpectExec("INSERT INTO `reservation_guests`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	res, err := svc.Create(context.Background(), CreateReservationInput{
		GuestID:  "guest-1",
		RoomID:   "room-1",
		CheckIn:  "2024-12-01",
		CheckOut: "2024-12-03",
		GuestIDs: []string{"guest-2", "guest-2", "guest-1"}, // dupes and the primary are skipped
	})
	require.NoError(t, err)
	require.Len(t, res.GuestLinks, 2)
	assert.True(t, res.GuestLinks[0].IsPrimary)
	assert.Equal(t, "guest-2", res.GuestLinks[1].GuestID)
	assert.False(t, res.GuestLinks[1].IsPrimary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservationCompanionNotFound(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("guest-1", "Ada"))
	mock.ExpectQuery("SELECT .* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "room_type_id", "price_per_night"}).
			AddRow("room-1", "101", "rt-1", 80.0))
	mock.ExpectQuery("SELECT .* FROM `room_types`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "base_rate"}).AddRow("rt-1", "STD", 75.0))
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `reservations`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `reservation_rooms`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `reservation_guests`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT .* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateReservationInput{
		GuestID:  "guest-1",
		RoomID:   "room-1",
		CheckIn:  "2024-12-01",
		CheckOut: "2024-12-03",
		GuestIDs: []string{"missing"},
	})
	assert.ErrorIs(t, err, ErrGuestNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReservationDateConflict(t *testing.T) {
	svc, mock := newReservationService(t)

	oldIn := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	oldOut := time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "guest_id", "room_id", "check_in_date", "check_out_date", "adults", "children"}).
			AddRow("res-1", models.ReservationConfirmed, "guest-1", "room-1", oldIn, oldOut, 2, 0))
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "reservation_id", "room_id", "start_date", "end_date", "nightly_rate"}).
			AddRow("seg-1", "res-1", "room-1", oldIn, oldOut, 80.0))
	mock.ExpectQuery("SELECT .* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "room_type_id", "price_per_night"}).
			AddRow("room-1", "101", "rt-1", 80.0))
	mock.ExpectQuery("SELECT .* FROM `room_types`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "base_rate"}).AddRow("rt-1", "STD", 75.0))
	// the re-validation must exclude the reservation itself
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "room-1", sqlmock.AnyArg(), sqlmock.AnyArg(), "res-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reservation_id"}).AddRow("seg-9", "res-other"))
	mock.ExpectRollback()

	newIn := "2024-12-10"
	newOut := "2024-12-12"
	_, err := svc.Update(context.Background(), "res-1", UpdateReservationInput{
		CheckIn:  &newIn,
		CheckOut: &newOut,
	})
	assert.ErrorIs(t, err, ErrRoomUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReservationDatesRecomputesTotal(t *testing.T) {
	svc, mock := newReservationService(t)
	mock.MatchExpectationsInOrder(false)

	oldIn := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	oldOut := time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `reservations` WHERE id = .* FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "guest_id", "room_id", "check_in_date", "check_out_date", "adults", "children"}).
			AddRow("res-1", models.ReservationConfirmed, "guest-1", "room-1", oldIn, oldOut, 2, 0))
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "reservation_id", "room_id", "start_date", "end_date", "nightly_rate"}).
			AddRow("seg-1", "res-1", "room-1", oldIn, oldOut, 80.0))
	mock.ExpectQuery("SELECT .* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "room_type_id", "price_per_night"}).
			AddRow("room-1", "101", "rt-1", 80.0))
	mock.ExpectQuery("SELECT .* FROM `room_types`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "base_rate"}).AddRow("rt-1", "STD", 75.0))
	// the new dates find no conflict
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("UPDATE `reservation_rooms`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// the header update must carry the recomputed total
	mock.ExpectExec("UPDATE `reservations` SET .*total_amount").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// reload after commit
	mock.ExpectQuery("SELECT .* FROM `reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "guest_id", "total_amount"}).
			AddRow("res-1", models.ReservationConfirmed, "guest-1", 240.0))
	mock.ExpectQuery("SELECT .* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("guest-1", "Ada"))
	mock.ExpectQuery("SELECT .* FROM `reservation_guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT .* FROM `payments`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	newIn := "2024-12-10"
	newOut := "2024-12-13"
	res, err := svc.Update(context.Background(), "res-1", UpdateReservationInput{
		CheckIn:  &newIn,
		CheckOut: &newOut,
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReservationStatusCancelledReleasesRoom(t *testing.T) {
	svc, mock := newReservationService(t)
	mock.MatchExpectationsInOrder(false)

	start := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `reservations` WHERE id = .* FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "guest_id", "room_id", "check_in_date", "check_out_date", "adults", "children"}).
			AddRow("res-1", models.ReservationConfirmed, "guest-1", "room-1", start, end, 2, 0))
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "reservation_id", "room_id", "start_date", "end_date"}).
			AddRow("seg-1", "res-1", "room-1", start, end))
	mock.ExpectExec("UPDATE `reservations` SET .*status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// no other live stay covers the room today
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("UPDATE `rooms`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT .* FROM `reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "guest_id"}).
			AddRow("res-1", models.ReservationCancelled, "guest-1"))
	mock.ExpectQuery("SELECT .* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("guest-1", "Ada"))
	mock.ExpectQuery("SELECT .* FROM `reservation_guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT .* FROM `payments`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	status := models.ReservationCancelled
	res, err := svc.Update(context.Background(), "res-1", UpdateReservationInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReservationStatusAlreadyCancelled(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow("res-1", models.ReservationCancelled))
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	status := models.ReservationCancelled
	_, err := svc.Update(context.Background(), "res-1", UpdateReservationInput{Status: &status})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelReleasesRoomWhenNoCoveringStay(t *testing.T) {
	svc, mock := newReservationService(t)
	mock.MatchExpectationsInOrder(false)

	start := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `reservations` WHERE id = .* FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "guest_id", "room_id"}).
			AddRow("res-1", models.ReservationConfirmed, "guest-1", "room-1"))
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "reservation_id", "room_id", "start_date", "end_date"}).
			AddRow("seg-1", "res-1", "room-1", start, end))
	mock.ExpectExec("UPDATE `reservations`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("UPDATE `rooms`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT .* FROM `reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "guest_id"}).
			AddRow("res-1", models.ReservationCancelled, "guest-1"))
	mock.ExpectQuery("SELECT .* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("guest-1", "Ada"))
	mock.ExpectQuery("SELECT .* FROM `reservation_guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT .* FROM `payments`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	res, err := svc.Cancel(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelRetainsRoomFlagWhenAnotherStayCovers(t *testing.T) {
	svc, mock := newReservationService(t)
	mock.MatchExpectationsInOrder(false)

	start := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `reservations` WHERE id = .* FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "guest_id", "room_id"}).
			AddRow("res-1", models.ReservationConfirmed, "guest-1", "room-1"))
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "reservation_id", "room_id", "start_date", "end_date"}).
			AddRow("seg-1", "res-1", "room-1", start, end))
	mock.ExpectExec("UPDATE `reservations`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// another checked-in stay covers today, so the OCCUPIED flag stays;
	// no rooms update may run
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "reservation_id", "room_id"}).
			AddRow("seg-other", "res-other", "room-1"))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT .* FROM `reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "guest_id"}).
			AddRow("res-1", models.ReservationCancelled, "guest-1"))
	mock.ExpectQuery("SELECT .* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("guest-1", "Ada"))
	mock.ExpectQuery("SELECT .* FROM `reservation_guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT .* FROM `payments`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	res, err := svc.Cancel(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReservationCascades(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "guest_id"}).
			AddRow("res-1", models.ReservationPending, "guest-1"))
	mock.ExpectQuery("SELECT .* FROM `reservation_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("UPDATE `payments`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `reservation_guests`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `reservation_rooms`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `reservations`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.Delete(context.Background(), "res-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
