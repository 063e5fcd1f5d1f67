package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"notedesk/internal/models"
	"notedesk/internal/services"
)

type NoteHandler struct {
	notes services.NoteService
}

func NewNoteHandler(notes services.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// @Summary      Create a note
// @Security     BearerAuth
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Param        note  body      models.CreateNoteRequest  true  "Note data"
// @Success      201   {object}  models.Note
// @Failure      400   {object}  map[string]string
// @Router       /notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req models.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.notes.Create(userID, &req)
	if err != nil {
		h.respondNoteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// @Summary      List notes
// @Security     BearerAuth
// @Tags         Notes
// @Produce      json
// @Param        page   query     int     false  "Page"
// @Param        limit  query     int     false  "Page size"
// @Param        query  query     string  false  "Substring filter over label and content"
// @Success      200    {object}  models.NotePage
// @Router       /notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	query := c.Query("query")

	pageData, err := h.notes.List(page, limit, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notes"})
		return
	}
	c.JSON(http.StatusOK, pageData)
}

// @Summary      Get a note
// @Security     BearerAuth
// @Tags         Notes
// @Produce      json
// @Param        id   path      int  true  "Note ID"
// @Success      200  {object}  models.Note
// @Failure      404  {object}  map[string]string
// @Router       /notes/{id} [get]
func (h *NoteHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}
	note, err := h.notes.Get(id)
	if err != nil {
		h.respondNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// @Summary      Update a note
// @Security     BearerAuth
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Param        id    path      int                       true  "Note ID"
// @Param        note  body      models.UpdateNoteRequest  true  "Fields to update"
// @Success      200   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /notes/{id} [put]
func (h *NoteHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}
	var req models.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.notes.Update(id, userID, &req); err != nil {
		h.respondNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note updated successfully"})
}

// @Summary      Delete a note
// @Security     BearerAuth
// @Tags         Notes
// @Produce      json
// @Param        id   path      int  true  "Note ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}

	if err := h.notes.Delete(id, userID); err != nil {
		h.respondNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
}

func (h *NoteHandler) respondNoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoteNotFound), errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoteAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "request failed"})
	}
}
