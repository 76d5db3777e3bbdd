package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/repertorio/core/internal/domain/entities"
)

// Messages returned to clients
const (
	MsgSongNotFound   = "Canción no encontrada"
	MsgInvalidRequest = "Solicitud inválida"
	MsgInvalidFields  = "Campos requeridos vacíos"
)

// Request/Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// MapError converts a service error into an echo HTTP error.
// Unknown and storage errors become 500s and keep the cause as Internal.
func MapError(err error) *echo.HTTPError {
	var verr *entities.ValidationError
	switch {
	case errors.As(err, &verr):
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{
			Message: MsgInvalidFields,
			Fields:  verr.Fields,
		}).SetInternal(err)
	case errors.Is(err, entities.ErrSongNotFound):
		return echo.NewHTTPError(http.StatusNotFound, ErrorResponse{Message: MsgSongNotFound}).SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, ErrorResponse{
			Message: http.StatusText(http.StatusInternalServerError),
		}).SetInternal(err)
	}
}
