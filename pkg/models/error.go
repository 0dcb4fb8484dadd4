package models

import "fmt"

// Error is the body of every documented failure (400, 401, 404, 500).
// It implements the error interface so callers can return it directly.
type Error struct {
	Success Opt[bool]   `json:"success,omitzero"`
	Message Opt[string] `json:"error,omitzero"`
	Code    Opt[string] `json:"error_code,omitzero"`
	Extra   Extra       `json:"-"`
}

// NewError builds a failure body with Success set to false.
func NewError(code, message string) *Error {
	return &Error{
		Success: Some(false),
		Message: Some(message),
		Code:    Some(code),
	}
}

func (e *Error) Error() string {
	msg := e.Message.OrElse("unknown error")
	if code, ok := e.Code.Get(); ok {
		return fmt.Sprintf("%s: %s", code, msg)
	}
	return msg
}

func (e Error) MarshalJSON() ([]byte, error) {
	type plain Error
	return marshalWithExtra(plain(e), e.Extra)
}

func (e *Error) UnmarshalJSON(data []byte) error {
	type plain Error
	return unmarshalWithExtra(data, (*plain)(e), &e.Extra)
}
