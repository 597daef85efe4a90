package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/notehub/notes-api/internal/api/middleware"
	"github.com/notehub/notes-api/internal/core/domain"
	"github.com/notehub/notes-api/internal/core/ports"
)

// NoteHandler handles note CRUD. Every route runs behind the Session
// middleware; ownership is enforced by the service layer.
type NoteHandler struct {
	service ports.NoteService
}

func NewNoteHandler(service ports.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

type noteResponse struct {
	Note    *domain.Note `json:"note"`
	Message string       `json:"message"`
}

// Create handles POST /api/notes.
//
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body      createNoteRequest  true  "Note details"
// @Success      201   {object}  noteResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.service.Create(c.Request().Context(), middleware.CurrentUser(c), req.Title, req.Content)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, noteResponse{Note: note, Message: "Note created successfully"})
}

// List handles GET /api/notes and returns the actor's own notes.
//
// @Summary      List own notes
// @Tags         notes
// @Produce      json
// @Success      200  {array}   domain.Note
// @Failure      401  {object}  errorResponse
// @Router       /api/notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	notes, err := h.service.FindAll(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notes)
}

// Get handles GET /api/notes/:id.
//
// @Summary      Get a note
// @Tags         notes
// @Produce      json
// @Param        id   path      int  true  "Note id"
// @Success      200  {object}  domain.Note
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/notes/{id} [get]
func (h *NoteHandler) Get(c echo.Context) error {
	noteID, err := pathID(c)
	if err != nil {
		return err
	}

	note, err := h.service.FindOne(c.Request().Context(), middleware.CurrentUser(c), noteID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, note)
}

// Update handles PATCH /api/notes/:id. Only title and content are mutable.
//
// @Summary      Update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Note id"
// @Param        body  body      updateNoteRequest  true  "Fields to update"
// @Success      200   {object}  noteResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/notes/{id} [patch]
func (h *NoteHandler) Update(c echo.Context) error {
	noteID, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	note, err := h.service.Update(c.Request().Context(), middleware.CurrentUser(c), noteID, ports.UpdateNoteInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, noteResponse{Note: note, Message: "Note updated successfully"})
}

// Delete handles DELETE /api/notes/:id.
//
// @Summary      Delete a note
// @Tags         notes
// @Produce      json
// @Param        id   path      int  true  "Note id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	noteID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), middleware.CurrentUser(c), noteID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Note deleted successfully"})
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
