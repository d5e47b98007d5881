package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseUintParam reads a positive integer path parameter.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

// parseUintQuery reads a positive integer query parameter.
func parseUintQuery(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

// parseIntQuery reads an integer query parameter.
func parseIntQuery(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0, false
	}
	return value, true
}
