package util

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/next-dorm-trust/apperror"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
}

func (he *HTTPError) Error() string {
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

var MalformedIdHTTPErr = HTTPError{
	Message: "id malformed",
	Status:  http.StatusBadRequest,
}

/*
	HandleHTTPErrorRes handles creating the appropriate response for the HTTP error.
	break the route after calling this function
*/
func HandleHTTPErrorRes(c *gin.Context, err *HTTPError) {
	c.JSON(err.Status, gin.H{
		"success": false,
		"code":    err.Code,
		"message": err.Message,
	})
}

type HandlerOpts struct{}

// HandlerWrapper adapts a handler returning (data, *HTTPError) into a gin
// handler with the standard response envelope.
func HandlerWrapper(handler func(c *gin.Context) (interface{}, *HTTPError), opts *HandlerOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, httpErr := handler(c)
		if httpErr != nil {
			HandleHTTPErrorRes(c, httpErr)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    data,
		})
	}
}

func BuildJSONBindHTTPErr(err error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Code:    string(apperror.KindBadInput),
		Message: err.Error(),
	}
}

// FromError maps the core's error kinds onto HTTP statuses so callers can
// distinguish 404 vs 403 vs 409 without string matching.
func FromError(err error) *HTTPError {
	kind := apperror.KindOf(err)
	status := http.StatusInternalServerError
	message := "internal error"
	switch kind {
	case apperror.KindNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case apperror.KindForbidden:
		status = http.StatusForbidden
		message = err.Error()
	case apperror.KindConflict, apperror.KindInvalidStateTransition:
		status = http.StatusConflict
		message = err.Error()
	case apperror.KindBadInput:
		status = http.StatusBadRequest
		message = err.Error()
	}
	return &HTTPError{
		Status:  status,
		Code:    string(kind),
		Message: message,
	}
}
