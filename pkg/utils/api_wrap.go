package utils

import (
	"errors"
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	traceID := c.GetString("trace_id")
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	traceID := c.GetString("trace_id")
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID,
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidPlaceCount),
		errors.Is(err, ErrDuplicatePlaceID),
		errors.Is(err, ErrUnknownTransportMode),
		errors.Is(err, ErrInvalidCoordinate),
		errors.Is(err, ErrInvalidStartTime),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidPage),
		errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrPlaceNotFound),
		errors.Is(err, ErrCourseNotFound),
		errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrCourseGeneration), errors.Is(err, ErrAnalyzeFailed):
		log.Printf("Generation error: %v", err)
		RespondError(c, http.StatusInternalServerError, err.Error())
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
