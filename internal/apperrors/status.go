package apperrors

import (
	"errors"
	"net/http"
)

// taxonomy maps each workflow sentinel to its response status. Anything
// outside it is a store or programming failure and reports 500.
var taxonomy = map[error]int{
	ErrUserNotFound:  http.StatusNotFound,
	ErrTeamNotFound:  http.StatusNotFound,
	ErrEventNotFound: http.StatusNotFound,

	ErrUsernameTaken:      http.StatusBadRequest,
	ErrEmailTaken:         http.StatusBadRequest,
	ErrInvalidCredentials: http.StatusBadRequest,
	ErrTeamNameTaken:      http.StatusBadRequest,
	ErrAlreadyMember:      http.StatusBadRequest,
	ErrAlreadyRequested:   http.StatusBadRequest,
	ErrAlreadyVoted:       http.StatusBadRequest,
	ErrNotApproved:        http.StatusBadRequest,
	ErrAlreadyRegistered:  http.StatusBadRequest,
}

// HTTPStatus returns the response status for err.
func HTTPStatus(err error) int {
	for sentinel, code := range taxonomy {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return http.StatusInternalServerError
}

// Message returns the user-facing message for err, stripped of any internal
// wrapping. Unexpected errors are reported generically.
func Message(err error) string {
	for sentinel := range taxonomy {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "Internal server error"
}
