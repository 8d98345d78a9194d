package http

import (
	"errors"
	"net/http"

	"library-backend/internal/domain/book"
	"library-backend/internal/domain/bookcopy"
	"library-backend/internal/domain/fine"
	"library-backend/internal/domain/loan"
	"library-backend/internal/domain/member"
	"library-backend/internal/domain/reservation"
	cataloguc "library-backend/internal/usecase/catalog"
	fineuc "library-backend/internal/usecase/fine"
	reservationuc "library-backend/internal/usecase/reservation"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

var (
	notFound = []error{
		loan.ErrNotFound, bookcopy.ErrNotFound, member.ErrNotFound,
		fine.ErrNotFound, book.ErrNotFound, reservation.ErrNotFound,
	}
	conflict = []error{
		bookcopy.ErrNotAvailable, bookcopy.ErrHasActiveLoan, member.ErrNotActive,
		loan.ErrAlreadyReturned, fine.ErrAlreadyPaid, reservation.ErrNotActive,
		book.ErrISBNTaken, member.ErrEmailTaken, book.ErrHasCopies,
		bookcopy.ErrHasHistory, member.ErrHasLoans, member.ErrHasHistory,
	}
	invalid = []error{
		loan.ErrInvalidInput, bookcopy.ErrManualLoaned,
		cataloguc.ErrInvalidStatus, fineuc.ErrInvalidStatus, reservationuc.ErrInvalidStatus,
	}
)

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// statusFor maps a usecase error to its HTTP status.
func statusFor(err error) int {
	switch {
	case isAny(err, notFound):
		return http.StatusNotFound
	case isAny(err, conflict):
		return http.StatusConflict
	case isAny(err, invalid):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err; the message of unexpected errors is never sent.
func writeError(c echo.Context, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Request().Method).Str("path", c.Path()).Msg("http: unhandled error")
		return c.JSON(code, ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}

// HTTPErrorHandler renders errors escaping the handlers (unknown route,
// wrong method, panics recovered upstream) in the same payload shape.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && he.Code < http.StatusInternalServerError {
			msg = s
		}
		_ = c.JSON(he.Code, ErrorResponse{Error: msg})
		return
	}
	_ = writeError(c, err)
}
