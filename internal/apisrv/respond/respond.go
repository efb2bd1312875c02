// Package respond holds the shared render.Renderer error responses used by
// every HTTP handler package.
package respond

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/hidecraft/hidecraft-manager/internal/entity"
	gerr "github.com/hidecraft/hidecraft-manager/internal/errors"
)

type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string `json:"status"`
	ErrorText  string `json:"error,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrUnauthorized(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		StatusText:     "Not authorized.",
		ErrorText:      err.Error(),
	}
}

func ErrConflict(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusConflict,
		StatusText:     "Conflict.",
		ErrorText:      err.Error(),
	}
}

// ErrInternalServerError hides the underlying error from the client.
func ErrInternalServerError(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     http.StatusText(http.StatusInternalServerError),
	}
}

var ErrNotFound = &ErrResponse{HTTPStatusCode: http.StatusNotFound, StatusText: "Resource not found."}

// Error maps domain errors to the right HTTP response.
func Error(err error) render.Renderer {
	var ve *entity.ValidationError
	switch {
	case errors.As(err, &ve):
		return ErrInvalidRequest(err)
	case errors.Is(err, gerr.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, gerr.ErrInvalidTransition):
		return ErrConflict(err)
	case errors.Is(err, gerr.ErrAlreadyExists):
		return ErrConflict(err)
	default:
		return ErrInternalServerError(err)
	}
}
