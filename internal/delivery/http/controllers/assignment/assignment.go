package assignment

import (
	"context"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/JohnMutemi/sharpQuill-Back-end/internal/delivery/http/controllers"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/delivery/http/controllers/middleware"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/models"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/service/access"
	assignmentservice "github.com/JohnMutemi/sharpQuill-Back-end/internal/service/assignment"
	"github.com/JohnMutemi/sharpQuill-Back-end/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssignmentService interface {
	Create(ctx context.Context, ownerID uuid.UUID, in assignmentservice.CreateInput) (*models.Assignment, error)
	ByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error)
	List(ctx context.Context, statusFilter string) ([]models.Assignment, error)
	Update(ctx context.Context, caller access.Caller, id uuid.UUID, in assignmentservice.UpdateInput) (*models.Assignment, error)
	Delete(ctx context.Context, caller access.Caller, id uuid.UUID) error
	Complete(ctx context.Context, caller access.Caller, id uuid.UUID) error
	Cancel(ctx context.Context, caller access.Caller, id uuid.UUID) error
	UploadArtifact(ctx context.Context, caller access.Caller, id uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

type AssignmentHandler struct {
	log     logger.Log
	service AssignmentService
}

func NewAssignmentHandler(l logger.Log, s AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{log: l, service: s}
}

func (h *AssignmentHandler) Create(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	in := assignmentservice.CreateInput{
		Title:          c.PostForm("title"),
		Description:    c.PostForm("description"),
		PriceTag:       c.PostForm("price_tag"),
		Pages:          c.PostForm("pages"),
		ReferenceStyle: c.PostForm("reference_style"),
		DueDate:        c.PostForm("due_date"),
	}

	a, err := h.service.Create(c.Request.Context(), caller.UserID, in)
	if err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, a.View(time.Now().UTC()))
}

func (h *AssignmentHandler) List(c *gin.Context) {
	assignments, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}
	now := time.Now().UTC()
	views := make([]models.AssignmentView, 0, len(assignments))
	for i := range assignments {
		views = append(views, assignments[i].View(now))
	}
	c.JSON(http.StatusOK, views)
}

func (h *AssignmentHandler) ByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("assignment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid assignment_id"})
		return
	}
	a, err := h.service.ByID(c.Request.Context(), id)
	if err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, a.View(time.Now().UTC()))
}

func (h *AssignmentHandler) Update(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, err := uuid.Parse(c.Param("assignment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid assignment_id"})
		return
	}

	in := assignmentservice.UpdateInput{
		Title:          formField(c, "title"),
		Description:    formField(c, "description"),
		PriceTag:       formField(c, "price_tag"),
		Pages:          formField(c, "pages"),
		ReferenceStyle: formField(c, "reference_style"),
		DueDate:        formField(c, "due_date"),
	}

	a, err := h.service.Update(c.Request.Context(), caller, id, in)
	if err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, a.View(time.Now().UTC()))
}

func (h *AssignmentHandler) Delete(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, err := uuid.Parse(c.Param("assignment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid assignment_id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), caller, id); err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assignment deleted successfully"})
}

func (h *AssignmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.service.Complete)
}

func (h *AssignmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

func (h *AssignmentHandler) transition(c *gin.Context, op func(context.Context, access.Caller, uuid.UUID) error) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, err := uuid.Parse(c.Param("assignment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid assignment_id"})
		return
	}
	if err := op(c.Request.Context(), caller, id); err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}
	a, err := h.service.ByID(c.Request.Context(), id)
	if err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, a.View(time.Now().UTC()))
}

func (h *AssignmentHandler) Upload(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, err := uuid.Parse(c.Param("assignment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid assignment_id"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file part"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot open uploaded file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(fileHeader.Filename)))
	}

	url, err := h.service.UploadArtifact(
		c.Request.Context(),
		caller,
		id,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		contentType,
	)
	if err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "File uploaded successfully",
		"url":     url,
	})
}

func formField(c *gin.Context, name string) *string {
	if v, ok := c.GetPostForm(name); ok {
		return &v
	}
	return nil
}
