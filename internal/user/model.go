package user

import (
	"net/http"

	"github.com/peershare/peershare-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailTaken    = apperror.New(http.StatusConflict, "email already used")
	ErrEmailRequired = apperror.New(http.StatusBadRequest, "email is required")
	ErrNameRequired  = apperror.New(http.StatusBadRequest, "name is required")
)

// User represents an account in the sharing service.
type User struct {
	ID    int64
	Name  string
	Email string
}
