package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	domain "clinic-booking/internal/domain/appointment"

	"github.com/labstack/echo/v4"
)

const msgMissingFields = "Missing required fields"

var errInvalidID = errors.New("invalid appointment id")

// ---- helpers ----

func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

// writeError maps the usecase error taxonomy onto responses.
func writeError(c echo.Context, err error) error {
	req := c.Request()
	switch {
	case domain.IsValidation(err):
		var ve *domain.ValidationError
		errors.As(err, &ve)
		details := make([]FieldError, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			details = append(details, FieldError{Field: f, Message: "is required"})
		}
		return c.JSON(http.StatusBadRequest, MessageResponse{Message: msgMissingFields, Details: details})
	case domain.IsInfrastructure(err):
		log.Printf("%s %s: %v", req.Method, req.URL.Path, err)
	default:
		log.Printf("%s %s: unclassified error: %v", req.Method, req.URL.Path, err)
	}
	return c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Error: " + err.Error()})
}
