package service

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind separates client mistakes from server-side failures.
type ErrorKind string

const (
	// KindInvalidInput is a request the caller has to fix; never retried.
	KindInvalidInput ErrorKind = "invalidInput"
	// KindStorageFailure is any error coming from the backing store.
	KindStorageFailure ErrorKind = "storageError"
	// KindCanceled is a request abandoned by its caller before storage answered.
	KindCanceled ErrorKind = "canceled"
)

// ErrorCode is a stable numeric code reported to API clients.
type ErrorCode int

const (
	CodeInvalidBlockPosition       ErrorCode = 101
	CodeInvalidLimit               ErrorCode = 102
	CodeInvalidDirection           ErrorCode = 103
	CodeTransactionNotFoundInBlock ErrorCode = 104
	CodeInvalidTxHash              ErrorCode = 105
	CodeStorageError               ErrorCode = 300
	CodeCanceled                   ErrorCode = 301
)

var (
	ErrInvalidBlockPosition       = errors.New("invalid block position")
	ErrInvalidLimit               = errors.New("invalid pagination limit")
	ErrInvalidDirection           = errors.New("invalid pagination direction")
	ErrTransactionNotFoundInBlock = errors.New("transaction not found in block")
	ErrInvalidTxHash              = errors.New("invalid transaction hash")
)

// Error is returned by every BlockService operation.
type Error struct {
	Kind    ErrorKind
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidInput builds a client error; transports use it for malformed request parameters.
func InvalidInput(code ErrorCode, sentinel error, format string, args ...any) *Error {
	return &Error{
		Kind:    KindInvalidInput,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     sentinel,
	}
}

// storageFailure classifies a storage error. An error caused by the caller's own context
// ending is reported as KindCanceled, not as a storage failure.
func storageFailure(ctx context.Context, err error) *Error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return &Error{
			Kind:    KindCanceled,
			Code:    CodeCanceled,
			Message: "request canceled",
			Err:     err,
		}
	}
	return &Error{
		Kind:    KindStorageFailure,
		Code:    CodeStorageError,
		Message: "storage error",
		Err:     err,
	}
}

// KindOf reports the kind of a service error, or "" for foreign errors.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return ""
}
