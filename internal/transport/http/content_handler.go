package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codutopia/internal/application/usecase"
)

type ContentHandler struct {
	contents *usecase.ContentUsecase
}

func NewContentHandler(contents *usecase.ContentUsecase) *ContentHandler {
	return &ContentHandler{contents: contents}
}

// POST /api/v1/courses/:id/contents
// Multipart form: lessonId, title, kind, value plus an optional "file"
// part for binary kinds.
func (h *ContentHandler) Create(c *gin.Context) {
	courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}

	lessonID, err := primitive.ObjectIDFromHex(c.PostForm("lessonId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson id"})
		return
	}

	in := usecase.CreateContentInput{
		LessonID: lessonID,
		Title:    c.PostForm("title"),
		Kind:     c.PostForm("kind"),
		Value:    c.PostForm("value"),
	}

	var data []byte
	var contentType string
	if _, fhErr := c.FormFile("file"); fhErr == nil {
		_, data, contentType, err = readUpload(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	content, err := h.contents.Create(c.Request.Context(), courseID, in, data, contentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Content created successfully", "content": content})
}

// GET /api/v1/courses/:id/contents/:contentId
func (h *ContentHandler) Get(c *gin.Context) {
	courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}
	contentID, err := primitive.ObjectIDFromHex(c.Param("contentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content id"})
		return
	}

	content, err := h.contents.Get(c.Request.Context(), courseID, contentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

// DELETE /api/v1/courses/:id/contents/:contentId
func (h *ContentHandler) Delete(c *gin.Context) {
	courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}
	contentID, err := primitive.ObjectIDFromHex(c.Param("contentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content id"})
		return
	}

	if err := h.contents.Remove(c.Request.Context(), courseID, contentID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Content removed successfully"})
}
