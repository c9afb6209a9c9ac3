package handler

import (
	"errors"
	"net/http"
	"strconv"

	"inventory-service/internal/inventory"

	"github.com/labstack/echo/v4"
)

// businessError maps core errors onto the response envelope. Business-rule
// violations are client errors; anything unrecognized is a server fault whose
// partial effects were already rolled back by the core.
func businessError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"success": false,
			"message": "not found",
		})
	case errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, inventory.ErrOverReceive),
		errors.Is(err, inventory.ErrItemNotInOrder),
		errors.Is(err, inventory.ErrInvalidSupplier),
		errors.Is(err, inventory.ErrInvalidProduct),
		errors.Is(err, inventory.ErrOrderNotReceivable),
		errors.Is(err, inventory.ErrInvalidTransition),
		errors.Is(err, inventory.ErrInvalidQuantity),
		errors.Is(err, inventory.ErrNoItems):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": err.Error(),
		})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "internal server error",
		})
	}
}

// parseUintParam parses a numeric path parameter.
func parseUintParam(c echo.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}
