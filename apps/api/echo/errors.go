package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/abovethehill/churchadmin/core"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func respondData(ctx echo.Context, code int, data interface{}) error {
	return ctx.JSON(code, Response{Success: true, Data: data})
}

func respondMessage(ctx echo.Context, code int, msg string) error {
	return ctx.JSON(code, Response{Success: true, Message: msg})
}

// newAppHTTPErrorHandler maps application errors to enveloped JSON responses.
// Unknown errors are logged and hidden behind a plain 500; shutdown errors
// additionally trigger a graceful stop.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		res := Response{Success: false}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			res.Message = fmt.Sprintf("%v", origErr.Message)
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			res.Message = "Validation error"
			res.Error = translateFieldErrors(origErr)
		case *core.ValidationError:
			code = http.StatusBadRequest
			res.Message = "Validation error"
			if origErr.Error() != "" {
				res.Message = origErr.Error()
			}
			if len(origErr.Fields) > 0 {
				flds := make(map[string]string, len(origErr.Fields))
				for _, fld := range origErr.Fields {
					flds[fld.Field] = fld.Error
				}
				res.Error = flds
			}
		case core.NotFoundError:
			code = http.StatusNotFound
			res.Message = origErr.Error()
		default:
			code = http.StatusInternalServerError
			res.Message = http.StatusText(code)
			logger.Error(res.Message, err)
		}

		if ctx.Response().Committed {
			return
		}
		if ctx.Request().Method == http.MethodHead {
			_ = ctx.NoContent(code)
		} else {
			_ = ctx.JSON(code, res)
		}

		if core.IsShutdown(err) {
			signalShutdown()
		}
	}
}

func translateFieldErrors(vErrs validator.ValidationErrors) map[string]string {
	flds := make(map[string]string, len(vErrs))
	for _, vErr := range vErrs {
		flds[vErr.Field()] = vErr.Translate(core.Translator)
	}
	return flds
}
