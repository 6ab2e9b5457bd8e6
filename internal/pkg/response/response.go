package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every endpoint replies with the same envelope:
//
//	{"status": "success"|"fail", "data": ...}
//
// data is null when there is no payload. Validation failures put a
// field -> message map into data.

const (
	statusSuccess = "success"
	statusFail    = "fail"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusSuccess,
		"data":   data,
	})
}

func Fail(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{
		"status": statusFail,
		"data":   data,
	})
}

func FailMessage(c *gin.Context, statusCode int, message string) {
	Fail(c, statusCode, gin.H{"message": message})
}

func BadRequest(c *gin.Context, data any) {
	Fail(c, http.StatusBadRequest, data)
}

func Forbidden(c *gin.Context) {
	Fail(c, http.StatusForbidden, nil)
}

func NotFound(c *gin.Context) {
	Fail(c, http.StatusNotFound, nil)
}

func ServerError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, nil)
}
