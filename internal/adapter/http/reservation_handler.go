package http

import (
	"net/http"

	"library-backend/internal/usecase/reservation"

	"github.com/labstack/echo/v4"
)

type ReservationHandler struct{ uc *reservation.Usecase }

func NewReservationHandler(uc *reservation.Usecase) *ReservationHandler {
	return &ReservationHandler{uc: uc}
}

type createReservationReq struct {
	BookID   uint64 `json:"bookId"   validate:"required,gt=0"`
	MemberID uint64 `json:"memberId" validate:"required,gt=0"`
}

func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	r, err := h.uc.Create(c.Request().Context(), reservation.CreateInput{BookID: req.BookID, MemberID: req.MemberID})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *ReservationHandler) GetReservation(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid reservation id")
	}
	r, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *ReservationHandler) ListReservations(c echo.Context) error {
	memberID, ok := queryUint(c, "memberId")
	if !ok {
		return badRequest(c, "invalid memberId")
	}
	bookID, ok := queryUint(c, "bookId")
	if !ok {
		return badRequest(c, "invalid bookId")
	}
	list, err := h.uc.List(c.Request().Context(), reservation.ListInput{
		Status:   c.QueryParam("status"),
		MemberID: memberID,
		BookID:   bookID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid reservation id")
	}
	r, err := h.uc.Cancel(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}
