package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"crmdesk/internal/shared/errors"
)

// ParseUintParam parses a positive numeric path parameter.
// entityName is used in error messages (e.g., "organization").
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s ID", entityName))
	}
	return uint(n), nil
}

// ParseInt64Param parses a positive int64 path parameter, used for remote ticket IDs.
func ParseInt64Param(c *gin.Context, paramName, entityName string) (int64, error) {
	raw := c.Param(paramName)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s ID", entityName))
	}
	return n, nil
}
