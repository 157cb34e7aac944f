package admin

import (
	"net/http"

	"github.com/assessly-hq/assessly/internal/dto"
	"github.com/assessly-hq/assessly/internal/model"
	"github.com/assessly-hq/assessly/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type CategoryController struct {
	tagService service.TagService
}

func NewCategoryController(tagService service.TagService) *CategoryController {
	return &CategoryController{tagService: tagService}
}

// CreateCategory godoc
// @Summary (Admin) Create a category
// @Description Creates a category tag, optionally placing it under a parent category. Cycles and non-category parents are rejected.
// @Tags Admin - Categories
// @Accept json
// @Produce json
// @Param category body dto.CategoryCreateDTO true "Category data"
// @Success 201 {object} dto.CategoryResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid parent or would create a cycle"
// @Failure 404 {object} dto.ErrorResponse "Parent category not found"
// @Router /admin/categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req dto.CategoryCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateCategory: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.tagService.CreateCategory(req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListCategories godoc
// @Summary (Admin) List all categories
// @Tags Admin - Categories
// @Produce json
// @Success 200 {array} dto.TagResponseDTO
// @Router /admin/categories [get]
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	resp, err := c.tagService.GetAllCategories()
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListRootCategories godoc
// @Summary (Admin) List root categories
// @Description Categories without a parent edge in the hierarchy
// @Tags Admin - Categories
// @Produce json
// @Success 200 {array} dto.TagResponseDTO
// @Router /admin/categories/roots [get]
func (c *CategoryController) ListRootCategories(ctx *gin.Context) {
	resp, err := c.tagService.GetRootCategories()
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetCategoryChildren godoc
// @Summary (Admin) List a category's children
// @Tags Admin - Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {array} dto.TagResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /admin/categories/{id}/children [get]
func (c *CategoryController) GetCategoryChildren(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.tagService.GetCategoryChildren(id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetCategoryParent godoc
// @Summary (Admin) Get a category's parent
// @Description Returns null for a root category
// @Tags Admin - Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.TagResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /admin/categories/{id}/parent [get]
func (c *CategoryController) GetCategoryParent(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.tagService.GetCategoryParent(id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListTags godoc
// @Summary (Admin) List plain tags
// @Tags Admin - Categories
// @Produce json
// @Success 200 {array} dto.TagResponseDTO
// @Router /admin/tags [get]
func (c *CategoryController) ListTags(ctx *gin.Context) {
	resp, err := c.tagService.ListTags(model.TagTypeTag)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
