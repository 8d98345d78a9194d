package http

import (
	"net/http"

	"library-backend/internal/usecase/catalog"
	"library-backend/pkg/calendar"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct{ uc *catalog.Usecase }

func NewCatalogHandler(uc *catalog.Usecase) *CatalogHandler { return &CatalogHandler{uc: uc} }

type authorReq struct {
	FirstName string `json:"firstName" validate:"required,notblank,max=100"`
	LastName  string `json:"lastName"  validate:"required,notblank,max=100"`
}

type createBookReq struct {
	Title     string      `json:"title"     validate:"required,notblank,max=255"`
	ISBN      string      `json:"isbn"      validate:"required,notblank,max=20"`
	Publisher string      `json:"publisher" validate:"required,notblank,max=200"`
	Year      int         `json:"year"      validate:"omitempty,gte=1000,lte=9999"`
	Edition   string      `json:"edition"   validate:"max=50"`
	Pages     int         `json:"pages"     validate:"omitempty,gt=0"`
	Synopsis  string      `json:"synopsis"`
	Authors   []authorReq `json:"authors"   validate:"dive"`
	Genres    []string    `json:"genres"    validate:"dive,notblank,max=100"`
}

type addCopyReq struct {
	LocationCode string `json:"locationCode" validate:"required,notblank,max=64"`
}

type statusReq struct {
	Status string `json:"status" validate:"required"`
}

type createMemberReq struct {
	FirstName string `json:"firstName" validate:"required,notblank,max=100"`
	LastName  string `json:"lastName"  validate:"required,notblank,max=100"`
	Email     string `json:"email"     validate:"required,email,max=255"`
	Phone     string `json:"phone"     validate:"max=32"`
	Address   string `json:"address"   validate:"max=255"`
	BirthDate string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
}

type updateMemberReq struct {
	createMemberReq
	Status string `json:"status" validate:"omitempty,oneof=active inactive blocked"`
}

func (r createBookReq) input() catalog.BookInput {
	in := catalog.BookInput{
		Title:     r.Title,
		ISBN:      r.ISBN,
		Publisher: r.Publisher,
		Year:      r.Year,
		Edition:   r.Edition,
		Pages:     r.Pages,
		Synopsis:  r.Synopsis,
		Genres:    r.Genres,
	}
	for _, a := range r.Authors {
		in.Authors = append(in.Authors, catalog.AuthorInput{FirstName: a.FirstName, LastName: a.LastName})
	}
	return in
}

func (r createMemberReq) input() (catalog.MemberInput, error) {
	in := catalog.MemberInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
	}
	if r.BirthDate != "" {
		d, err := calendar.ParseDate(r.BirthDate)
		if err != nil {
			return in, err
		}
		in.BirthDate = &d
	}
	return in, nil
}

// ---- books ----

func (h *CatalogHandler) CreateBook(c echo.Context) error {
	var req createBookReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.CreateBook(c.Request().Context(), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *CatalogHandler) UpdateBook(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid book id")
	}
	var req createBookReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.UpdateBook(c.Request().Context(), id, req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CatalogHandler) DeleteBook(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid book id")
	}
	if err := h.uc.DeleteBook(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) GetBook(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid book id")
	}
	dto, err := h.uc.GetBook(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CatalogHandler) ListBooks(c echo.Context) error {
	list, err := h.uc.ListBooks(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// ---- copies ----

func (h *CatalogHandler) AddCopy(c echo.Context) error {
	bookID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid book id")
	}
	var req addCopyReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	cp, err := h.uc.AddCopy(c.Request().Context(), bookID, req.LocationCode)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, cp)
}

func (h *CatalogHandler) GetCopy(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid copy id")
	}
	cp, err := h.uc.GetCopy(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cp)
}

func (h *CatalogHandler) ListCopies(c echo.Context) error {
	bookID, ok := queryUint(c, "bookId")
	if !ok {
		return badRequest(c, "invalid bookId")
	}
	list, err := h.uc.ListCopies(c.Request().Context(), catalog.CopyFilter{BookID: bookID, Status: c.QueryParam("status")})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) SetCopyStatus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid copy id")
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	cp, err := h.uc.SetCopyStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cp)
}

func (h *CatalogHandler) DeleteCopy(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid copy id")
	}
	if err := h.uc.DeleteCopy(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- members ----

func (h *CatalogHandler) CreateMember(c echo.Context) error {
	var req createMemberReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	in, err := req.input()
	if err != nil {
		return validationFailed(c, err)
	}
	m, err := h.uc.CreateMember(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *CatalogHandler) UpdateMember(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid member id")
	}
	var req updateMemberReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	in, err := req.input()
	if err != nil {
		return validationFailed(c, err)
	}
	in.Status = req.Status
	m, err := h.uc.UpdateMember(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *CatalogHandler) DeleteMember(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid member id")
	}
	if err := h.uc.DeleteMember(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) GetMember(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid member id")
	}
	m, err := h.uc.GetMember(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *CatalogHandler) ListMembers(c echo.Context) error {
	list, err := h.uc.ListMembers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) SetMemberStatus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid member id")
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	m, err := h.uc.SetMemberStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}
