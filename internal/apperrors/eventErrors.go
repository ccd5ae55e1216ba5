package apperrors

import "errors"

var (
	ErrEventNotFound     = errors.New("Event not found")
	ErrAlreadyVoted      = errors.New("You have already voted for this event.")
	ErrNotApproved       = errors.New("This event is not yet approved for registration.")
	ErrAlreadyRegistered = errors.New("You are already registered for this event.")
)
