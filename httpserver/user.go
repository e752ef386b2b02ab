package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterUserRoutes() {
	g := s.Router.Group("/users")
	g.POST("", s.handleAddUser)
	g.PUT("", s.handleUpdateUser)
	g.GET("", s.handleListUsers)
	g.GET("/:id", s.handleGetUser)
	g.DELETE("/:id", s.handleDeleteUser)
	g.PUT("/:id/friends/:friendId", s.handleAddFriend)
	g.DELETE("/:id/friends/:friendId", s.handleRemoveFriend)
	g.GET("/:id/friends", s.handleListFriends)
	g.GET("/:id/friends/common/:otherId", s.handleCommonFriends)
}

// handleAddUser godoc
// @Summary Create User
// @Description Add a new user. A blank name falls back to the login.
// @Tags users
// @Accept json
// @Produce json
// @Param user body UserRequest true "User Data"
// @Success 200 {object} user.User
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /users [post]
func (s *Server) handleAddUser(c echo.Context) error {
	var req UserRequest

	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	u, err := s.UserService.AddUser(c.Request().Context(), req.ToUser())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, u)
}

// handleUpdateUser godoc
// @Summary Update User
// @Tags users
// @Accept json
// @Produce json
// @Param user body UserRequest true "User Data"
// @Success 200 {object} user.User
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /users [put]
func (s *Server) handleUpdateUser(c echo.Context) error {
	var req UserRequest

	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	u, err := s.UserService.UpdateUser(c.Request().Context(), req.ToUser())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, u)
}

// handleListUsers godoc
// @Summary List Users
// @Description Get all users
// @Tags users
// @Produce json
// @Success 200 {array} user.User
// @Router /users [get]
func (s *Server) handleListUsers(c echo.Context) error {
	users, err := s.UserService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, users)
}

// handleGetUser godoc
// @Summary Get User
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} user.User
// @Failure 404 {object} APIResponse
// @Router /users/{id} [get]
func (s *Server) handleGetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	u, err := s.UserService.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, u)
}

// handleDeleteUser godoc
// @Summary Delete User
// @Tags users
// @Param id path int true "User ID"
// @Success 200
// @Failure 404 {object} APIResponse
// @Router /users/{id} [delete]
func (s *Server) handleDeleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := s.UserService.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusOK)
}

// handleAddFriend godoc
// @Summary Add Friend
// @Description Add friendId to the friends of id. The relation is one-directional.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param friendId path int true "Friend ID"
// @Success 200 {object} user.User
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /users/{id}/friends/{friendId} [put]
func (s *Server) handleAddFriend(c echo.Context) error {
	id, friendID, err := friendParams(c)
	if err != nil {
		return err
	}

	u, err := s.UserService.AddFriend(c.Request().Context(), id, friendID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, u)
}

// handleRemoveFriend godoc
// @Summary Remove Friend
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param friendId path int true "Friend ID"
// @Success 200 {object} user.User
// @Failure 404 {object} APIResponse
// @Router /users/{id}/friends/{friendId} [delete]
func (s *Server) handleRemoveFriend(c echo.Context) error {
	id, friendID, err := friendParams(c)
	if err != nil {
		return err
	}

	u, err := s.UserService.RemoveFriend(c.Request().Context(), id, friendID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, u)
}

// handleListFriends godoc
// @Summary List Friends
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} user.User
// @Failure 404 {object} APIResponse
// @Router /users/{id}/friends [get]
func (s *Server) handleListFriends(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	friends, err := s.UserService.ListFriends(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, friends)
}

// handleCommonFriends godoc
// @Summary Common Friends
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param otherId path int true "Other user ID"
// @Success 200 {array} user.User
// @Failure 404 {object} APIResponse
// @Router /users/{id}/friends/common/{otherId} [get]
func (s *Server) handleCommonFriends(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	otherID, err := pathID(c, "otherId")
	if err != nil {
		return err
	}

	friends, err := s.UserService.CommonFriends(c.Request().Context(), id, otherID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, friends)
}

func friendParams(c echo.Context) (id, friendID int64, err error) {
	if id, err = pathID(c, "id"); err != nil {
		return 0, 0, err
	}
	if friendID, err = pathID(c, "friendId"); err != nil {
		return 0, 0, err
	}
	return id, friendID, nil
}
