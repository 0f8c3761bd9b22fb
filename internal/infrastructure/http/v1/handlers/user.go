package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"stockpos/internal/core/apperror"
	"stockpos/internal/domain/users"
	"stockpos/internal/infrastructure/http/v1/dto"
)

// UserHTTPHandler serves the user catalog. It embeds the generic catalog
// handler and overrides Create to hash the incoming password.
type UserHTTPHandler struct {
	*CatalogHandler[*users.User, dto.CreateUserRequest, dto.UpdateUserRequest]
	service *users.Service
}

// NewUserHandler wires the user catalog into the generic handler.
func NewUserHandler(
	base *BaseHandler,
	service *users.Service,
) *UserHTTPHandler {

	config := CatalogHandlerConfig[
		*users.User,
		dto.CreateUserRequest,
		dto.UpdateUserRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "user",

		MapCreateDTO: func(req dto.CreateUserRequest) *users.User {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateUserRequest, existing *users.User) *users.User {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *users.User) any {
			return dto.FromUser(entity)
		},
	}

	return &UserHTTPHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// Create handles POST /users - create a user with a hashed password.
func (h *UserHTTPHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Error(c, apperror.NewInternal(fmt.Errorf("hash password: %w", err)))
		return
	}

	user := req.ToEntity()
	user.PasswordHash = string(hash)

	if err := h.service.Create(ctx, user); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromUser(user))
}
