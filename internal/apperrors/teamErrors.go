package apperrors

import "errors"

var (
	ErrTeamNotFound     = errors.New("Team not found")
	ErrTeamNameTaken    = errors.New("Team name already exists")
	ErrAlreadyMember    = errors.New("You are already a member of this team.")
	ErrAlreadyRequested = errors.New("You have already requested to join this team.")
)
