package http

import (
	"net/http"

	"library-backend/internal/usecase/report"

	"github.com/labstack/echo/v4"
)

type ReportHandler struct{ uc *report.Usecase }

func NewReportHandler(uc *report.Usecase) *ReportHandler { return &ReportHandler{uc: uc} }

// respond writes rows as 200 or maps err.
func respond[T any](c echo.Context, rows T, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) limit(c echo.Context) (int, bool) { return queryInt(c, "limit") }

func (h *ReportHandler) MostBorrowed(c echo.Context) error {
	n, ok := h.limit(c)
	if !ok {
		return badRequest(c, "invalid limit")
	}
	rows, err := h.uc.MostBorrowed(c.Request().Context(), n)
	return respond(c, rows, err)
}

func (h *ReportHandler) Overdue(c echo.Context) error {
	rows, err := h.uc.Overdue(c.Request().Context())
	return respond(c, rows, err)
}

func (h *ReportHandler) Availability(c echo.Context) error {
	rows, err := h.uc.Availability(c.Request().Context())
	return respond(c, rows, err)
}

func (h *ReportHandler) NeverBorrowed(c echo.Context) error {
	rows, err := h.uc.NeverBorrowed(c.Request().Context())
	return respond(c, rows, err)
}

func (h *ReportHandler) PopularAuthors(c echo.Context) error {
	n, ok := h.limit(c)
	if !ok {
		return badRequest(c, "invalid limit")
	}
	rows, err := h.uc.PopularAuthors(c.Request().Context(), n)
	return respond(c, rows, err)
}

func (h *ReportHandler) PopularGenres(c echo.Context) error {
	n, ok := h.limit(c)
	if !ok {
		return badRequest(c, "invalid limit")
	}
	rows, err := h.uc.PopularGenres(c.Request().Context(), n)
	return respond(c, rows, err)
}

func (h *ReportHandler) TopReaders(c echo.Context) error {
	n, ok := h.limit(c)
	if !ok {
		return badRequest(c, "invalid limit")
	}
	rows, err := h.uc.TopReaders(c.Request().Context(), n)
	return respond(c, rows, err)
}

func (h *ReportHandler) MemberHistory(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid member id")
	}
	rows, err := h.uc.MemberHistory(c.Request().Context(), id)
	return respond(c, rows, err)
}

func (h *ReportHandler) PendingFines(c echo.Context) error {
	rows, err := h.uc.PendingFines(c.Request().Context())
	return respond(c, rows, err)
}

func (h *ReportHandler) FineTotals(c echo.Context) error {
	rows, err := h.uc.FineTotals(c.Request().Context())
	return respond(c, rows, err)
}
