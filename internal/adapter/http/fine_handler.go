package http

import (
	"net/http"

	"library-backend/internal/usecase/fine"

	"github.com/labstack/echo/v4"
)

type FineHandler struct{ uc *fine.Usecase }

func NewFineHandler(uc *fine.Usecase) *FineHandler { return &FineHandler{uc: uc} }

func (h *FineHandler) PayFine(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid fine id")
	}
	f, err := h.uc.Pay(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FineHandler) GetFine(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid fine id")
	}
	f, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FineHandler) ListFines(c echo.Context) error {
	list, err := h.uc.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
