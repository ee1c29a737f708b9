package handler

import (
	"booknest/internal/delivery/http/middleware"
	"booknest/internal/delivery/http/response"
	"booknest/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// getAccountID extracts the authenticated account ID set by the auth middleware.
func getAccountID(c echo.Context) (uuid.UUID, error) {
	accountIDVal := c.Get(middleware.ContextKeyAccountID)
	accountID, ok := accountIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	return accountID, nil
}

// getRoles extracts the authenticated account's roles set by the auth middleware.
func getRoles(c echo.Context) entity.Roles {
	rolesVal, _ := c.Get(middleware.ContextKeyRoles).([]string)

	return entity.RolesFromStrings(rolesVal)
}

// parseIDParam parses the :id path parameter as a UUID.
func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, response.BadRequest(c, "INVALID_ID", "Invalid "+name+" parameter")
	}

	return id, nil
}
