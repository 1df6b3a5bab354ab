// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"github.com/rotisserie/eris"
)

var (
	// ErrInvalidState is returned when an operation is not allowed in the current state,
	// e.g. joining while already queued or settling an unscored match.
	ErrInvalidState = eris.New("invalid state")
	// ErrNotFound is returned for unknown player, proposal or match ids.
	ErrNotFound = eris.New("not found")
	// ErrPrecondition is returned when the caller omitted required context such as the current player.
	ErrPrecondition = eris.New("precondition failed")
)

var errorCodeMap = map[error]int{
	ErrInvalidState: 520101,
	ErrNotFound:     520102,
	ErrPrecondition: 520103,
}

// ErrorCode returns a code for the error class of err.
// It returns 20000 (unknown) if err does not wrap one of the registered errors.
func ErrorCode(err error) int {
	for target, code := range errorCodeMap {
		if eris.Is(err, target) {
			return code
		}
	}
	return 20000
}
