package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	mw "library-backend/internal/adapter/middleware"
	"library-backend/pkg/id"
)

type Handlers struct {
	Health       *Handler
	Loans        *LoanHandler
	Fines        *FineHandler
	Catalog      *CatalogHandler
	Reservations *ReservationHandler
	Reports      *ReportHandler
}

type RouterOptions struct {
	// Idempotency guards mutating routes; nil disables it.
	Idempotency echo.MiddlewareFunc
	CORSOrigins []string
}

// NewRouter builds the echo instance with middleware and every route.
func NewRouter(h Handlers, opts RouterOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.JSONSerializer = JSONSerializer{}
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: id.NewID32}))
	e.Use(mw.RequestLogger())
	e.Use(middleware.Recover())
	if len(opts.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: opts.CORSOrigins,
			AllowHeaders: []string{
				echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
				mw.HeaderIdempotencyKey, mw.HeaderRequestAt,
			},
		}))
	}

	e.GET("/health", h.Health.Health)

	var mutating []echo.MiddlewareFunc
	if opts.Idempotency != nil {
		mutating = append(mutating, opts.Idempotency)
	}

	// loans
	e.POST("/loans", h.Loans.CreateLoan, mutating...)
	e.POST("/loans/:id/return", h.Loans.ReturnLoan, mutating...)
	e.GET("/loans", h.Loans.ListLoans)
	e.GET("/loans/:id", h.Loans.GetLoan)
	e.DELETE("/loans/:id", h.Loans.DeleteLoan, mutating...)

	// fines
	e.POST("/fines/:id/pay", h.Fines.PayFine, mutating...)
	e.GET("/fines", h.Fines.ListFines)
	e.GET("/fines/:id", h.Fines.GetFine)

	// catalog
	e.POST("/books", h.Catalog.CreateBook, mutating...)
	e.GET("/books", h.Catalog.ListBooks)
	e.GET("/books/:id", h.Catalog.GetBook)
	e.PUT("/books/:id", h.Catalog.UpdateBook, mutating...)
	e.DELETE("/books/:id", h.Catalog.DeleteBook, mutating...)
	e.POST("/books/:id/copies", h.Catalog.AddCopy, mutating...)
	e.GET("/copies", h.Catalog.ListCopies)
	e.GET("/copies/:id", h.Catalog.GetCopy)
	e.DELETE("/copies/:id", h.Catalog.DeleteCopy, mutating...)
	e.PUT("/copies/:id/status", h.Catalog.SetCopyStatus, mutating...)
	e.POST("/members", h.Catalog.CreateMember, mutating...)
	e.GET("/members", h.Catalog.ListMembers)
	e.GET("/members/:id", h.Catalog.GetMember)
	e.PUT("/members/:id", h.Catalog.UpdateMember, mutating...)
	e.DELETE("/members/:id", h.Catalog.DeleteMember, mutating...)
	e.PUT("/members/:id/status", h.Catalog.SetMemberStatus, mutating...)

	// reservations
	e.POST("/reservations", h.Reservations.CreateReservation, mutating...)
	e.GET("/reservations", h.Reservations.ListReservations)
	e.GET("/reservations/:id", h.Reservations.GetReservation)
	e.POST("/reservations/:id/cancel", h.Reservations.CancelReservation, mutating...)

	// reports
	r := e.Group("/reports")
	r.GET("/most-borrowed", h.Reports.MostBorrowed)
	r.GET("/overdue", h.Reports.Overdue)
	r.GET("/availability", h.Reports.Availability)
	r.GET("/never-borrowed", h.Reports.NeverBorrowed)
	r.GET("/popular-authors", h.Reports.PopularAuthors)
	r.GET("/popular-genres", h.Reports.PopularGenres)
	r.GET("/top-readers", h.Reports.TopReaders)
	r.GET("/members/:id/history", h.Reports.MemberHistory)
	r.GET("/fines/pending", h.Reports.PendingFines)
	r.GET("/fines/totals", h.Reports.FineTotals)

	return e
}
