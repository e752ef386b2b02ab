package httpserver

import (
	"filmorate/errs"
	"strconv"

	"github.com/labstack/echo/v4"
)

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, errs.Errorf(errs.EINVALID, "invalid %s: %q", name, c.Param(name))
	}
	return id, nil
}

// queryInt reads an integer query parameter, returning def when it is absent.
func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Errorf(errs.EINVALID, "invalid %s: %q", name, raw)
	}
	return n, nil
}
