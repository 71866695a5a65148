package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vaultkeep/notes-service/internal/api/metrics"
	"github.com/vaultkeep/notes-service/internal/core/domain"
	"github.com/vaultkeep/notes-service/internal/core/ports"
)

// NoteHandler handles HTTP requests for note operations. Every handler
// resolves the request's Principal first and passes it down explicitly; the
// ownership decision itself lives in the service and repository layers.
type NoteHandler struct {
	service ports.NoteService
}

func NewNoteHandler(service ports.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

type noteRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

type noteResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toNoteResponse(n *domain.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt: n.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func toNoteResponses(notes []*domain.Note) []noteResponse {
	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	return out
}

// List handles GET /notes.
//
// @Summary      List the caller's notes
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   noteResponse
// @Failure      401  {object}  map[string]string
// @Router       /notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	notes, err := h.service.ListNotes(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNoteResponses(notes))
}

// Create handles POST /notes.
//
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      noteRequest  true  "Note fields"
// @Success      201   {object}  noteResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.service.CreateNote(c.Request().Context(), principal, ports.NoteInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}

	metrics.NotesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toNoteResponse(note))
}

// Get handles GET /notes/:id. A note belonging to another user produces the
// same 404 as a nonexistent id.
//
// @Summary      Get a note by id
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Note id"
// @Success      200  {object}  noteResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /notes/{id} [get]
func (h *NoteHandler) Get(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	note, err := h.service.GetNote(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Search handles GET /notes/search?query=.
//
// @Summary      Search the caller's notes by content
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        query  query     string  true  "Substring to match, case-insensitive"
// @Success      200    {array}   noteResponse
// @Failure      401    {object}  map[string]string
// @Router       /notes/search [get]
func (h *NoteHandler) Search(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	notes, err := h.service.SearchNotes(c.Request().Context(), principal, c.QueryParam("query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNoteResponses(notes))
}

// Update handles PUT /notes/:id.
//
// @Summary      Update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Note id"
// @Param        body  body      noteRequest  true  "New note fields"
// @Success      200   {object}  noteResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /notes/{id} [put]
func (h *NoteHandler) Update(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.service.UpdateNote(c.Request().Context(), principal, c.Param("id"), ports.NoteInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Delete handles DELETE /notes/:id.
//
// @Summary      Delete a note
// @Tags         notes
// @Security     BearerAuth
// @Param        id  path  string  true  "Note id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteNote(c.Request().Context(), principal, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
