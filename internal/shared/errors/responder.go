package errors

import (
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// Body is the JSON shape of every failure response.
type Body struct {
	Error string `json:"error"`
}

// Responder renders classified errors and logs the ones clients cannot see.
type Responder struct {
	logger *slog.Logger
}

// NewResponder creates a responder. A nil logger discards output.
func NewResponder(logger *slog.Logger) *Responder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Responder{logger: logger}
}

// DefaultResponder logs through whatever slog.Default is at render time.
var DefaultResponder = &Responder{}

// RespondError writes the status and body for err and aborts the chain.
func (r *Responder) RespondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	kind := KindOf(err)
	if kind == KindInternal {
		r.log().LogAttrs(c.Request.Context(), slog.LevelError, "request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
	}
	c.AbortWithStatusJSON(kind.Status(), Body{Error: PublicMessage(err)})
}

func (r *Responder) log() *slog.Logger {
	if r == nil || r.logger == nil {
		return slog.Default()
	}
	return r.logger
}

// OrDefault returns r, or DefaultResponder when r is nil.
func (r *Responder) OrDefault() *Responder {
	if r == nil {
		return DefaultResponder
	}
	return r
}

// StatusFromError extracts the HTTP status an error renders with.
func StatusFromError(err error) int {
	return KindOf(err).Status()
}
