package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeBinding    ErrorType = "binding"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeUnresolvedField = "ERR_UNRESOLVED_FIELD"
	ErrCodeKeyMismatch     = "ERR_KEY_MISMATCH"
	ErrCodeRenderFailed    = "ERR_RENDER_FAILED"
	ErrCodeViewNotFound    = "ERR_VIEW_NOT_FOUND"
	ErrCodeDuplicateView   = "ERR_DUPLICATE_VIEW"
	ErrCodeWriteFailed     = "ERR_WRITE_FAILED"
	ErrCodePathTraversal   = "ERR_PATH_TRAVERSAL"
	ErrCodeConfigInvalid   = "ERR_CONFIG_INVALID"
	ErrCodeInternalError   = "ERR_INTERNAL"
)

// LeafError is a structured error type with context.
type LeafError struct {
	Type     ErrorType
	Code     string
	Message  string
	Cause    error
	Context  map[string]interface{}
	View     string
	FilePath string
}

// Error implements the error interface.
func (e *LeafError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}
	if e.View != "" {
		parts = append(parts, "view:"+e.View)
	}
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")
	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}
	return result
}

// Unwrap returns the underlying cause error.
func (e *LeafError) Unwrap() error {
	return e.Cause
}

// Is matches another LeafError with the same type and code.
func (e *LeafError) Is(target error) bool {
	var t *LeafError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}
	return false
}

// WithContext adds context information to the error.
func (e *LeafError) WithContext(key string, value interface{}) *LeafError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithView records the view the error belongs to.
func (e *LeafError) WithView(name string) *LeafError {
	e.View = name
	return e
}

// WithFile records the file the error belongs to.
func (e *LeafError) WithFile(path string) *LeafError {
	e.FilePath = path
	return e
}

// NewBindingError creates a binding error.
func NewBindingError(code, message string, cause error) *LeafError {
	return &LeafError{Type: ErrorTypeBinding, Code: code, Message: message, Cause: cause}
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *LeafError {
	return &LeafError{Type: ErrorTypeValidation, Code: code, Message: message}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *LeafError {
	return &LeafError{Type: ErrorTypeIO, Code: code, Message: message, Cause: cause}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *LeafError {
	return &LeafError{Type: ErrorTypeConfig, Code: code, Message: message}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *LeafError {
	return &LeafError{Type: ErrorTypeInternal, Code: code, Message: message, Cause: cause}
}

// ErrViewNotFound reports a view name missing from the registry.
func ErrViewNotFound(name string) *LeafError {
	return NewValidationError(ErrCodeViewNotFound, "view not found: "+name).WithView(name)
}

// ErrPathTraversal reports a path escaping its root.
func ErrPathTraversal(path string) *LeafError {
	return NewValidationError(ErrCodePathTraversal, "path escapes the output directory: "+path).WithFile(path)
}

// Wrap wraps err unless it is nil. The view and file of a wrapped
// LeafError carry over.
func Wrap(err error, errType ErrorType, code, message string) *LeafError {
	if err == nil {
		return nil
	}

	wrapped := &LeafError{Type: errType, Code: code, Message: message, Cause: err}
	var le *LeafError
	if errors.As(err, &le) {
		wrapped.View = le.View
		wrapped.FilePath = le.FilePath
		wrapped.Context = le.Context
	}
	return wrapped
}

// HasErrorCode reports whether any LeafError in err's chain has code.
func HasErrorCode(err error, code string) bool {
	for err != nil {
		var le *LeafError
		if !errors.As(err, &le) {
			return false
		}
		if le.Code == code {
			return true
		}
		err = le.Cause
	}
	return false
}

// ErrorHandler provides centralized error handling.
type ErrorHandler struct {
	logger   Logger
	notifier Notifier
}

// Logger interface for error logging.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
}

// Notifier is told about binding failures, for example to show them in a
// browser.
type Notifier interface {
	NotifyError(ctx context.Context, err *LeafError) error
}

// NewErrorHandler creates a new error handler. Either argument may be nil.
func NewErrorHandler(logger Logger, notifier Notifier) *ErrorHandler {
	return &ErrorHandler{logger: logger, notifier: notifier}
}

// Handle classifies err, logs it and notifies about binding failures. It
// returns the classified error.
func (h *ErrorHandler) Handle(ctx context.Context, err error) *LeafError {
	if err == nil {
		return nil
	}

	le := Classify(err)
	fields := []interface{}{"type", le.Type, "code", le.Code}
	if le.View != "" {
		fields = append(fields, "view", le.View)
	}
	if le.FilePath != "" {
		fields = append(fields, "file", le.FilePath)
	}

	switch le.Type {
	case ErrorTypeBinding:
		if h.logger != nil {
			h.logger.Warn(ctx, le.Cause, le.Message, fields...)
		}
		if h.notifier != nil {
			_ = h.notifier.NotifyError(ctx, le)
		}
	case ErrorTypeValidation:
		if h.logger != nil {
			h.logger.Warn(ctx, le.Cause, le.Message, fields...)
		}
	default:
		if h.logger != nil {
			h.logger.Error(ctx, le.Cause, le.Message, fields...)
		}
	}
	return le
}
