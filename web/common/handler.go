package common

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"ponto.app/ponto/core"
	"ponto.app/ponto/model"
)

// Handler gives endpoints serialised access to the engine.
type Handler struct {
	mu     sync.Mutex
	engine *core.Engine
}

func NewHandler(engine *core.Engine) *Handler {
	return &Handler{engine: engine}
}

// Do runs fn while holding the engine lock.
func (h *Handler) Do(fn func(e *core.Engine) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.engine)
}

// StatusOf maps engine errors to HTTP status codes.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidIndex):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidTimestamp),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, model.ErrInvalidDayKey):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNothingToExport):
		return http.StatusNoContent
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithError writes err with the status StatusOf picks.
func AbortWithError(c *gin.Context, err error) {
	status := StatusOf(err)
	if status == http.StatusNoContent {
		c.Status(status)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(status, NewErrorResponse(err.Error()))
}

// ParamIndex reads a non negative integer path parameter.
func ParamIndex(c *gin.Context, name string) (int, bool) {
	idx, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("Invalid "+name))
		return 0, false
	}
	return idx, true
}
