package httperr

import "errors"

type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindIntegrity  Kind = "integrity"
)

// BusinessError is a domain failure the client can act on. Anything
// else reaching the HTTP layer is treated as a dependency failure.
type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Fields  []string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func Validation(code, message string, fields ...string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message, Fields: fields}
}

func NotFound(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func Conflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func Integrity(code, message string) error {
	return BusinessError{Kind: KindIntegrity, Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf returns the kind of a business error, or "" for any other error.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}
