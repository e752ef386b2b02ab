package httpserver

import (
	"errors"
	"fmt"
	"strconv"

	"filmorate/errs"

	"github.com/labstack/echo/v4"
)

const (
	successMessage   = "OK"
	defaultErrorCode = "100500"
)

// appErrorCodes maps application error codes to envelope codes. Anything
// else is derived from the HTTP status.
var appErrorCodes = map[string]string{
	errs.EINVALID:        "100010",
	errs.ENOTFOUND:       "100404",
	errs.ECONFLICT:       "100409",
	errs.EUNAUTHORIZED:   "100401",
	errs.ENOTIMPLEMENTED: "100501",
	errs.EINTERNAL:       defaultErrorCode,
}

// APIResponse is the envelope for health checks and every error response.
// Entity endpoints answer with the bare entity JSON.
type APIResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
	Info    string      `json:"info,omitempty"`
}

func writeSuccess(c echo.Context, status int, result interface{}) error {
	return c.JSON(status, APIResponse{
		Code:    strconv.Itoa(status),
		Message: successMessage,
		Result:  result,
	})
}

func writeError(c echo.Context, status int, message, info string, err error) error {
	return c.JSON(status, APIResponse{
		Code:    errorCode(err, status),
		Message: message,
		Info:    info,
	})
}

func errorCode(err error, status int) string {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		if code, ok := appErrorCodes[appErr.Code]; ok {
			return code
		}
	}

	if status != 0 {
		return fmt.Sprintf("100%03d", status)
	}
	return defaultErrorCode
}
