package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/repertorio/core/internal/infrastructure/logger"
	"github.com/repertorio/core/internal/ports"
)

// SongHandler handles song-related requests
type SongHandler struct {
	songService ports.SongService
	logger      *logger.Logger
}

// NewSongHandler creates a new song handler
func NewSongHandler(songService ports.SongService, logger *logger.Logger) *SongHandler {
	return &SongHandler{
		songService: songService,
		logger:      logger,
	}
}

// Register mounts the song routes on g
func (h *SongHandler) Register(g *echo.Group) {
	g.GET("", h.ListSongs)
	g.POST("", h.CreateSong)
	g.GET("/:id", h.GetSong)
	g.PUT("/:id", h.UpdateSong)
	g.DELETE("/:id", h.DeleteSong)
}

// ListSongs godoc
// @Summary Obtener todas las canciones
// @Tags canciones
// @Produce json
// @Success 200 {array} entities.Song
// @Failure 500 {object} ErrorResponse
// @Router /canciones [get]
func (h *SongHandler) ListSongs(c echo.Context) error {
	songs, err := h.songService.ListSongs(c.Request().Context())
	if err != nil {
		return MapError(err)
	}

	return c.JSON(http.StatusOK, songs)
}

// GetSong godoc
// @Summary Obtener una canción por ID
// @Tags canciones
// @Produce json
// @Param id path string true "ID de la canción"
// @Success 200 {object} entities.Song
// @Failure 404 {object} ErrorResponse
// @Router /canciones/{id} [get]
func (h *SongHandler) GetSong(c echo.Context) error {
	song, err := h.songService.GetSong(c.Request().Context(), c.Param("id"))
	if err != nil {
		return MapError(err)
	}

	return c.JSON(http.StatusOK, song)
}

// CreateSong godoc
// @Summary Agregar una nueva canción
// @Tags canciones
// @Accept json
// @Produce json
// @Param request body ports.CreateSongRequest true "Datos de la canción"
// @Success 201 {object} entities.Song
// @Failure 400 {object} ErrorResponse
// @Router /canciones [post]
func (h *SongHandler) CreateSong(c echo.Context) error {
	var req ports.CreateSongRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Message: MsgInvalidRequest}).SetInternal(bindCause(err))
	}

	song, err := h.songService.CreateSong(c.Request().Context(), req)
	if err != nil {
		return MapError(err)
	}

	return c.JSON(http.StatusCreated, song)
}

// UpdateSong godoc
// @Summary Actualizar una canción por ID
// @Tags canciones
// @Accept json
// @Produce json
// @Param id path string true "ID de la canción"
// @Param request body ports.UpdateSongRequest true "Campos a modificar"
// @Success 200 {object} entities.Song
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /canciones/{id} [put]
func (h *SongHandler) UpdateSong(c echo.Context) error {
	var req ports.UpdateSongRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Message: MsgInvalidRequest}).SetInternal(bindCause(err))
	}

	song, err := h.songService.UpdateSong(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return MapError(err)
	}

	return c.JSON(http.StatusOK, song)
}

// DeleteSong godoc
// @Summary Eliminar una canción por ID
// @Tags canciones
// @Produce json
// @Param id path string true "ID de la canción"
// @Success 200 {object} entities.Song
// @Failure 404 {object} ErrorResponse
// @Router /canciones/{id} [delete]
func (h *SongHandler) DeleteSong(c echo.Context) error {
	song, err := h.songService.DeleteSong(c.Request().Context(), c.Param("id"))
	if err != nil {
		return MapError(err)
	}

	return c.JSON(http.StatusOK, song)
}

// bindCause unwraps the binder's HTTPError so error handlers keep our response body
func bindCause(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Internal != nil {
		return he.Internal
	}
	return err
}
