package errors

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyClaimed = errors.New("order already claimed")
	ErrNotClaimed     = errors.New("order not claimed")
	ErrUnknownPackage = errors.New("unknown package")
	ErrKeyIssuance    = errors.New("key issuance failed")
)
