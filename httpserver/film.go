package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const defaultPopularCount = 10

func (s *Server) RegisterFilmRoutes() {
	g := s.Router.Group("/films")
	g.POST("", s.handleAddFilm)
	g.PUT("", s.handleUpdateFilm)
	g.GET("", s.handleListFilms)
	g.GET("/popular", s.handlePopularFilms)
	g.GET("/search", s.handleSearchFilms)
	g.GET("/:id", s.handleGetFilm)
	g.DELETE("/:id", s.handleDeleteFilm)
	g.PUT("/:id/like/:userId", s.handleAddLike)
	g.DELETE("/:id/like/:userId", s.handleRemoveLike)
}

// handleAddFilm godoc
// @Summary Create Film
// @Description Add a new film
// @Tags films
// @Accept json
// @Produce json
// @Param film body FilmRequest true "Film Data"
// @Success 200 {object} film.Film
// @Failure 400 {object} APIResponse
// @Router /films [post]
func (s *Server) handleAddFilm(c echo.Context) error {
	var req FilmRequest

	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	f, err := s.FilmService.AddFilm(c.Request().Context(), req.ToFilm())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, f)
}

// handleUpdateFilm godoc
// @Summary Update Film
// @Description Replace a film, including its rating and genres
// @Tags films
// @Accept json
// @Produce json
// @Param film body FilmRequest true "Film Data"
// @Success 200 {object} film.Film
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /films [put]
func (s *Server) handleUpdateFilm(c echo.Context) error {
	var req FilmRequest

	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	f, err := s.FilmService.UpdateFilm(c.Request().Context(), req.ToFilm())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, f)
}

// handleListFilms godoc
// @Summary List Films
// @Tags films
// @Produce json
// @Success 200 {array} film.Film
// @Router /films [get]
func (s *Server) handleListFilms(c echo.Context) error {
	films, err := s.FilmService.ListFilms(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, films)
}

// handleGetFilm godoc
// @Summary Get Film
// @Tags films
// @Produce json
// @Param id path int true "Film ID"
// @Success 200 {object} film.Film
// @Failure 404 {object} APIResponse
// @Router /films/{id} [get]
func (s *Server) handleGetFilm(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	f, err := s.FilmService.GetFilm(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, f)
}

// handleDeleteFilm godoc
// @Summary Delete Film
// @Tags films
// @Param id path int true "Film ID"
// @Success 200
// @Failure 404 {object} APIResponse
// @Router /films/{id} [delete]
func (s *Server) handleDeleteFilm(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := s.FilmService.DeleteFilm(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusOK)
}

// handleAddLike godoc
// @Summary Like Film
// @Tags films
// @Param id path int true "Film ID"
// @Param userId path int true "User ID"
// @Success 200
// @Failure 404 {object} APIResponse
// @Router /films/{id}/like/{userId} [put]
func (s *Server) handleAddLike(c echo.Context) error {
	filmID, userID, err := likeParams(c)
	if err != nil {
		return err
	}

	if err := s.FilmService.AddLike(c.Request().Context(), filmID, userID); err != nil {
		return err
	}

	return c.NoContent(http.StatusOK)
}

// handleRemoveLike godoc
// @Summary Unlike Film
// @Tags films
// @Param id path int true "Film ID"
// @Param userId path int true "User ID"
// @Success 200
// @Failure 404 {object} APIResponse
// @Router /films/{id}/like/{userId} [delete]
func (s *Server) handleRemoveLike(c echo.Context) error {
	filmID, userID, err := likeParams(c)
	if err != nil {
		return err
	}

	if err := s.FilmService.RemoveLike(c.Request().Context(), filmID, userID); err != nil {
		return err
	}

	return c.NoContent(http.StatusOK)
}

// handlePopularFilms godoc
// @Summary Popular Films
// @Description Films with the most likes first
// @Tags films
// @Produce json
// @Param count query int false "Number of films" default(10)
// @Success 200 {array} film.Film
// @Failure 400 {object} APIResponse
// @Router /films/popular [get]
func (s *Server) handlePopularFilms(c echo.Context) error {
	count, err := queryInt(c, "count", defaultPopularCount)
	if err != nil {
		return err
	}

	films, err := s.FilmService.PopularFilms(c.Request().Context(), count)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, films)
}

// handleSearchFilms godoc
// @Summary Search Films
// @Description Full-text search over film names and descriptions
// @Tags films
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Max results" default(20)
// @Success 200 {array} film.Film
// @Failure 400 {object} APIResponse
// @Router /films/search [get]
func (s *Server) handleSearchFilms(c echo.Context) error {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return err
	}

	films, err := s.FilmService.SearchFilms(c.Request().Context(), c.QueryParam("q"), limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, films)
}

func likeParams(c echo.Context) (filmID, userID int64, err error) {
	if filmID, err = pathID(c, "id"); err != nil {
		return 0, 0, err
	}
	if userID, err = pathID(c, "userId"); err != nil {
		return 0, 0, err
	}
	return filmID, userID, nil
}
