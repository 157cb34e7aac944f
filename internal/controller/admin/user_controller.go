package admin

import (
	"net/http"

	"github.com/assessly-hq/assessly/internal/dto"
	"github.com/assessly-hq/assessly/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

// CreateUser godoc
// @Summary (Admin) Create a user
// @Description Creates an admin or candidate account; the password is stored as a bcrypt hash
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Param user body dto.UserCreateDTO true "User data"
// @Success 201 {object} dto.UserResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 409 {object} dto.ErrorResponse "Email already in use"
// @Router /admin/users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.UserCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateUser: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.userService.CreateUser(req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateUser godoc
// @Summary (Admin) Update a user
// @Description Updates name, email and role; the password only changes when a new one is supplied
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body dto.UserUpdateDTO true "Updated user data"
// @Success 200 {object} dto.UserResponseDTO
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Email already in use"
// @Router /admin/users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UserUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.userService.UpdateUser(id, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteUser godoc
// @Summary (Admin) Delete a user
// @Description Removes a user account; deleting your own account is rejected
// @Tags Admin - Users
// @Param X-User-ID header int true "Acting admin user ID"
// @Param id path int true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Attempted self-deletion"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	caller, ok := callerID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.DeleteUser(caller, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetUser godoc
// @Summary (Admin) Get a user
// @Tags Admin - Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserResponseDTO
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.userService.GetUser(id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListUsers godoc
// @Summary (Admin) List users
// @Tags Admin - Users
// @Produce json
// @Success 200 {array} dto.UserResponseDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	resp, err := c.userService.ListUsers()
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
