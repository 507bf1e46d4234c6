package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/query"
	"github.com/noah-isme/classroom-api/internal/service"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
	"github.com/noah-isme/classroom-api/pkg/export"
	"github.com/noah-isme/classroom-api/pkg/response"
)

type classService interface {
	List(ctx context.Context, filter models.ClassFilter) ([]models.ClassListItem, models.Pagination, error)
	Get(ctx context.Context, id int64) (*models.ClassDetail, error)
	Create(ctx context.Context, caller models.Identity, req models.CreateClassRequest) (int64, error)
	Update(ctx context.Context, caller models.Identity, id int64, req models.UpdateClassRequest) (*models.ClassDetail, error)
	ListMembers(ctx context.Context, classID int64, role string, page models.PageRequest) ([]models.User, models.Pagination, error)
	ExportMembers(ctx context.Context, caller models.Identity, classID int64, role string, format export.Format) (*service.ExportFile, error)
}

// ClassHandler exposes class endpoints.
type ClassHandler struct {
	service classService
}

// NewClassHandler constructs a class handler.
func NewClassHandler(svc classService) *ClassHandler {
	return &ClassHandler{service: svc}
}

// List godoc
// @Summary List classes
// @Tags Classes
// @Produce json
// @Param search query string false "Match class name"
// @Param subject query int false "Subject ID"
// @Param teacher query string false "Teacher user ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	filter, err := query.ParseClassFilter(c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}

	classes, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes, &pagination)
}

// Get godoc
// @Summary Get class with subject, department and teacher
// @Tags Classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	id, err := pathID(c, "Invalid class id")
	if err != nil {
		response.Error(c, err)
		return
	}
	class, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class, nil)
}

// Create godoc
// @Summary Create class
// @Description Allocates a unique invite code; teachers create classes for themselves.
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body models.CreateClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	caller, err := identityFromContext(c)
	if err != nil {
		response.Failure(c, err)
		return
	}
	var req models.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Failure(c, invalidPayload(err))
		return
	}

	id, err := h.service.Create(c.Request.Context(), caller, req)
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Created(c, models.CreatedResource{ID: id})
}

// Update godoc
// @Summary Update class
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path int true "Class ID"
// @Param payload body models.UpdateClassRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /classes/{id} [put]
func (h *ClassHandler) Update(c *gin.Context) {
	caller, err := identityFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := pathID(c, "Invalid class id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}

	class, err := h.service.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class, nil)
}

// Members godoc
// @Summary List the teacher or students of a class
// @Tags Classes
// @Produce json
// @Param id path int true "Class ID"
// @Param role query string true "teacher or student"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classes/{id}/users [get]
func (h *ClassHandler) Members(c *gin.Context) {
	id, err := pathID(c, "Invalid class id")
	if err != nil {
		response.Error(c, err)
		return
	}
	page := query.ParsePage(c.Query("page"), c.Query("limit"))

	users, pagination, err := h.service.ListMembers(c.Request.Context(), id, c.Query("role"), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users, &pagination)
}

// ExportMembers godoc
// @Summary Download a class roster
// @Tags Classes
// @Produce text/csv
// @Produce application/pdf
// @Param id path int true "Class ID"
// @Param role query string true "teacher or student"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /classes/{id}/users/export [get]
func (h *ClassHandler) ExportMembers(c *gin.Context) {
	caller, err := identityFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := pathID(c, "Invalid class id")
	if err != nil {
		response.Error(c, err)
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, appErrors.Validation("Invalid export format"))
		return
	}

	file, err := h.service.ExportMembers(c.Request.Context(), caller, id, c.Query("role"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
