package response

import (
	stdErrors "errors"
	"fmt"
	"net/http"

	"alert-srv/pkg/discord"
	"alert-srv/pkg/errors"

	"github.com/gin-gonic/gin"
)

const (
	MessageSuccess          = "Success"
	DefaultErrorMessage     = "Something went wrong"
	InternalServerErrorCode = 500
)

// Resp is the envelope every JSON endpoint answers with.
type Resp struct {
	Success   bool   `json:"success"`
	ErrorCode int    `json:"errorCode,omitempty"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

func NewOKResp(data any) Resp {
	return Resp{Success: true, Message: MessageSuccess, Data: data}
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

func Unauthorized(c *gin.Context) {
	HttpError(c, errors.NewUnauthorizedHTTPError())
}

func Forbidden(c *gin.Context) {
	HttpError(c, errors.NewForbiddenHTTPError())
}

// HttpError answers with the status and code carried by err.
func HttpError(c *gin.Context, err *errors.HTTPError) {
	status := err.StatusCode
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, Resp{
		ErrorCode: err.Code,
		Message:   err.Message,
		Error:     err.Message,
	})
}

// Error answers with err when it is an *errors.HTTPError. Anything else is an
// internal error: the client gets a generic 500 and d, when set, gets a bug report.
func Error(c *gin.Context, err error, d discord.IDiscord) {
	var httpErr *errors.HTTPError
	if stdErrors.As(err, &httpErr) {
		HttpError(c, httpErr)
		return
	}
	internalError(c, err, d)
}

// PanicError answers a recovered panic value with a 500.
func PanicError(c *gin.Context, recovered any, d discord.IDiscord) {
	var err error
	switch v := recovered.(type) {
	case nil:
		err = stdErrors.New("unknown panic")
	case error:
		err = v
	default:
		err = fmt.Errorf("%v", v)
	}
	internalError(c, err, d)
}

func internalError(c *gin.Context, err error, d discord.IDiscord) {
	if d != nil {
		reportBug(d, newBugReport(c, err))
	}
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: InternalServerErrorCode,
		Message:   DefaultErrorMessage,
		Error:     DefaultErrorMessage,
	})
}
