package handlers

import (
	"stockpos/internal/domain/users"
	"stockpos/internal/infrastructure/http/v1/dto"
)

// RoleHTTPHandler is a shorthand alias for the configured generic handler.
type RoleHTTPHandler = CatalogHandler[
	*users.Role,
	dto.CreateRoleRequest,
	dto.UpdateRoleRequest,
]

// NewRoleHandler wires the Role catalog into the generic handler.
func NewRoleHandler(
	base *BaseHandler,
	service *users.RoleService,
) *RoleHTTPHandler {

	config := CatalogHandlerConfig[
		*users.Role,
		dto.CreateRoleRequest,
		dto.UpdateRoleRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "role",

		MapCreateDTO: func(req dto.CreateRoleRequest) *users.Role {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateRoleRequest, existing *users.Role) *users.Role {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *users.Role) any {
			return dto.FromRole(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
