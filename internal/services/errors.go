package services

import "errors"

type ErrorCode string

const (
	ErrorInvalid      ErrorCode = "invalid"
	ErrorForbidden    ErrorCode = "forbidden"
	ErrorNotFound     ErrorCode = "not_found"
	ErrorConflict     ErrorCode = "conflict"
	ErrorUnauthorized ErrorCode = "unauthorized"

	// Validation failures for submitted answer sets.
	ErrorIncompleteSubmission ErrorCode = "incomplete_submission"
	ErrorUnknownQuestion      ErrorCode = "unknown_question"
	ErrorInvalidAnswerValue   ErrorCode = "invalid_answer_value"
	ErrorDuplicateAnswer      ErrorCode = "duplicate_answer"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func NewInvalidError(msg string) error   { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewForbiddenError(msg string) error { return &ServiceError{Code: ErrorForbidden, Message: msg} }
func NewNotFoundError(msg string) error  { return &ServiceError{Code: ErrorNotFound, Message: msg} }
func NewConflictError(msg string) error  { return &ServiceError{Code: ErrorConflict, Message: msg} }
func NewUnauthorizedError(msg string) error {
	return &ServiceError{Code: ErrorUnauthorized, Message: msg}
}

// NewValidationError tags a rejected submission with one of the
// validation error codes.
func NewValidationError(code ErrorCode, msg string) error {
	return &ServiceError{Code: code, Message: msg}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsValidationError reports whether err is one of the submission
// validation failures.
func IsValidationError(err error) bool {
	se, ok := AsServiceError(err)
	if !ok {
		return false
	}
	switch se.Code {
	case ErrorIncompleteSubmission, ErrorUnknownQuestion, ErrorInvalidAnswerValue, ErrorDuplicateAnswer:
		return true
	}
	return false
}
