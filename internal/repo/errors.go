package repo

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrBoardNotFound = errors.New("board not found")
)
