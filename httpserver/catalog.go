package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterGenreRoutes() {
	s.Router.GET("/genres", s.handleListGenres)
	s.Router.GET("/genres/:id", s.handleGetGenre)
}

func (s *Server) RegisterMpaRoutes() {
	s.Router.GET("/mpa", s.handleListRatings)
	s.Router.GET("/mpa/:id", s.handleGetRating)
}

// handleListGenres godoc
// @Summary List Genres
// @Tags genres
// @Produce json
// @Success 200 {array} genre.Genre
// @Router /genres [get]
func (s *Server) handleListGenres(c echo.Context) error {
	genres, err := s.GenreService.ListGenres(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, genres)
}

// handleGetGenre godoc
// @Summary Get Genre
// @Tags genres
// @Produce json
// @Param id path int true "Genre ID"
// @Success 200 {object} genre.Genre
// @Failure 404 {object} APIResponse
// @Router /genres/{id} [get]
func (s *Server) handleGetGenre(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	g, err := s.GenreService.GetGenre(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, g)
}

// handleListRatings godoc
// @Summary List MPA Ratings
// @Tags mpa
// @Produce json
// @Success 200 {array} mpa.Rating
// @Router /mpa [get]
func (s *Server) handleListRatings(c echo.Context) error {
	ratings, err := s.MpaService.ListRatings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ratings)
}

// handleGetRating godoc
// @Summary Get MPA Rating
// @Tags mpa
// @Produce json
// @Param id path int true "Rating ID"
// @Success 200 {object} mpa.Rating
// @Failure 404 {object} APIResponse
// @Router /mpa/{id} [get]
func (s *Server) handleGetRating(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	r, err := s.MpaService.GetRating(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}
