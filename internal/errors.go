package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

var statusByType = map[ErrorType]int{
	ErrorTypeValidation:   http.StatusBadRequest,
	ErrorTypeNotFound:     http.StatusNotFound,
	ErrorTypeUnauthorized: http.StatusUnauthorized,
	ErrorTypeForbidden:    http.StatusForbidden,
	ErrorTypeConflict:     http.StatusConflict,
	ErrorTypeInternal:     http.StatusInternalServerError,
}

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidEnum      ErrorCode = "INVALID_ENUM"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeInvalidDateRange ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeInvalidID        ErrorCode = "INVALID_ID"
	ErrCodeInvalidBody      ErrorCode = "INVALID_BODY"

	ErrCodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	ErrCodeEmployeeNotFound    ErrorCode = "EMPLOYEE_NOT_FOUND"
	ErrCodeEquipmentNotFound   ErrorCode = "EQUIPMENT_NOT_FOUND"
	ErrCodeTicketNotFound      ErrorCode = "TICKET_NOT_FOUND"
	ErrCodeInventoryNotFound   ErrorCode = "INVENTORY_NOT_FOUND"
	ErrCodeLicenseNotFound     ErrorCode = "LICENSE_NOT_FOUND"
	ErrCodeAlertNotFound       ErrorCode = "ALERT_NOT_FOUND"
	ErrCodeMaintenanceNotFound ErrorCode = "MAINTENANCE_NOT_FOUND"
	ErrCodeLinkNotFound        ErrorCode = "LINK_NOT_FOUND"
	ErrCodeRouteNotFound       ErrorCode = "ROUTE_NOT_FOUND"

	ErrCodeDuplicateEmail  ErrorCode = "DUPLICATE_EMAIL"
	ErrCodeDuplicateSerial ErrorCode = "DUPLICATE_SERIAL_NUMBER"
	ErrCodeDuplicateLink   ErrorCode = "DUPLICATE_LINK"
	ErrCodeDuplicateRecord ErrorCode = "DUPLICATE_RECORD"
	ErrCodeEquipmentInUse  ErrorCode = "EQUIPMENT_IN_USE"
	ErrCodeUserInUse       ErrorCode = "USER_IN_USE"

	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"

	ErrCodeUnsupportedType ErrorCode = "UNSUPPORTED_TYPE"
	ErrCodeMissingFile     ErrorCode = "MISSING_FILE"
	ErrCodeInvalidFile     ErrorCode = "INVALID_FILE"
	ErrCodeInvalidRow      ErrorCode = "INVALID_ROW"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// AppError is the error shape every service returns and every handler
// renders as {"error": {...}}.
type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func newAppError(t ErrorType, code ErrorCode, message string) *AppError {
	return &AppError{Type: t, Code: code, Message: message, StatusCode: statusByType[t]}
}

func (e *AppError) fieldMessages() []string {
	v, ok := e.Details.(ValidationErrors)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(v.Errors))
	for _, fe := range v.Errors {
		out = append(out, fe.Message)
	}
	return out
}

func (e *AppError) Error() string {
	if msgs := e.fieldMessages(); len(msgs) > 0 {
		return msgs[0]
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// GetDetailedMessage joins every field message, falling back to Message.
func (e *AppError) GetDetailedMessage() string {
	if msgs := e.fieldMessages(); len(msgs) > 0 {
		return strings.Join(msgs, "; ")
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause and WithDetails return a copy so package-level sentinels stay
// untouched.
func (e *AppError) WithCause(cause error) *AppError {
	c := *e
	c.Cause = cause
	return &c
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	c := *e
	c.Details = details
	return &c
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return newAppError(ErrorTypeValidation, code, message)
}

// NewValidationFieldError reports a single invalid field under VALIDATION_FAILED.
func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	e := newAppError(ErrorTypeValidation, ErrCodeValidationFailed, "Validation failed")
	e.Details = ValidationErrors{Errors: []ValidationError{{Field: field, Message: message, Code: string(code)}}}
	return e
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return newAppError(ErrorTypeNotFound, code, message)
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return newAppError(ErrorTypeUnauthorized, code, message)
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return newAppError(ErrorTypeForbidden, code, message)
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return newAppError(ErrorTypeConflict, code, message)
}

func NewInternalError(message string, cause error) *AppError {
	e := newAppError(ErrorTypeInternal, ErrCodeInternal, message)
	e.Cause = cause
	return e
}

var (
	ErrUnauthorized       = NewUnauthorizedError("unauthorized", ErrCodeUnauthorized)
	ErrInvalidCredentials = NewUnauthorizedError("invalid credentials", ErrCodeInvalidCredentials)
	ErrForbidden          = NewForbiddenError("insufficient permissions", ErrCodeForbidden)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

// MarshalJSON leaves out the cause so internals never reach the client.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type wire struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(wire{Type: e.Type, Code: e.Code, Message: e.Message, Details: e.Details})
}
