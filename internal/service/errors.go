package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("wrong username or password")

	ErrWrongCurrentPassword = errors.New("current password is wrong")
	ErrPasswordMismatch     = errors.New("password confirmation does not match")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrNotAuthor     = errors.New("only the author may delete a note")
	ErrNotBoardOwner = errors.New("only the board owner may move notes")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
