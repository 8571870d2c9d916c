package errors

import "errors"

var (
	ErrRoomNotFound       = errors.New("room was not found")
	ErrRoomFull           = errors.New("room is full")
	ErrIncompatibleMode   = errors.New("room mode does not match the requested mode")
	ErrIllegalMove        = errors.New("illegal move")
	ErrNotYourTurn        = errors.New("participant does not hold the current seat")
	ErrUnauthorizedSender = errors.New("sender does not occupy the claimed seat")
	ErrStoreUnavailable   = errors.New("room store unavailable")
	ErrSessionNotFound    = errors.New("session was not found")
)
