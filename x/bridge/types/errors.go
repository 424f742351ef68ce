package types

import (
	errorsmod "cosmossdk.io/errors"
)

var (
	ErrInvalidAmount      = errorsmod.Register(ModuleName, 2, "invalid amount")
	ErrTransferNotFound   = errorsmod.Register(ModuleName, 3, "transfer not found")
	ErrInvalidState       = errorsmod.Register(ModuleName, 4, "operation not valid for transfer state")
	ErrHashLockMismatch   = errorsmod.Register(ModuleName, 5, "secret does not match hash lock")
	ErrTimeLockNotExpired = errorsmod.Register(ModuleName, 6, "time lock not expired")
	ErrUnauthorized       = errorsmod.Register(ModuleName, 7, "unauthorized")
	ErrInvalidTimeLock    = errorsmod.Register(ModuleName, 8, "invalid time lock")
	ErrInvalidOriginator  = errorsmod.Register(ModuleName, 9, "invalid originator")
	ErrInvalidSecret      = errorsmod.Register(ModuleName, 10, "invalid secret")
)
