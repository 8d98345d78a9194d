package http

import (
	"net/http"

	"library-backend/internal/usecase/loan"
	"library-backend/pkg/calendar"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	CopyID   uint64 `json:"copyId"   validate:"required,gt=0"`
	MemberID uint64 `json:"memberId" validate:"required,gt=0"`
	// Accept canonical date `YYYY-MM-DD` (aligns with schema DATE)
	DueDate string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	in := loan.CreateLoanInput{CopyID: req.CopyID, MemberID: req.MemberID}
	if req.DueDate != "" {
		d, err := calendar.ParseDate(req.DueDate)
		if err != nil {
			return validationFailed(c, err)
		}
		in.DueDate = &d
	}
	dto, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) ReturnLoan(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid loan id")
	}
	dto, err := h.uc.Return(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid loan id")
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	memberID, ok := queryUint(c, "memberId")
	if !ok {
		return badRequest(c, "invalid memberId")
	}
	list, err := h.uc.List(c.Request().Context(), loan.ListInput{Status: c.QueryParam("status"), MemberID: memberID})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *LoanHandler) DeleteLoan(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid loan id")
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
