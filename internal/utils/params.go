package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// UintParam parses a numeric path parameter.
func UintParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}

	return uint(id), nil
}

// UintQuery parses a numeric query-string parameter.
func UintQuery(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Query(name)

	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}

	return uint(id), nil
}
