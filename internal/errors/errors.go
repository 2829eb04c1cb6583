// Package errors provides standardized error handling for imagehelper.
// It defines the error kinds raised by scanning, decoding, capturing and
// configuration loading, plus helpers for creating and inspecting them.
package errors

import (
	"errors"
	"fmt"
	"image"
)

// Standard errors package errors that we re-export for convenience
var (
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrEmptyRegion is returned for a capture region with no area
var ErrEmptyRegion = NewCaptureError("empty capture region", image.Rectangle{}, InvalidRegion, nil)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	InvalidPath
	DecodeFailed
	ScanFailed
	DeleteFailed
	// Config error kinds
	InvalidConfig
	// Capture error kinds
	InvalidRegion
	CaptureFailed
	EncodeFailed
	WriteFailed
	// Native window error kinds
	Unsupported
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to a single file or folder
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// CaptureError represents errors raised while grabbing or saving a screen region
type CaptureError struct {
	ApplicationError
	region image.Rectangle
}

// NewCaptureError creates a new capture error
func NewCaptureError(msg string, region image.Rectangle, kind ErrorKind, err error) *CaptureError {
	return &CaptureError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		region: region,
	}
}

// Error returns the capture error message
func (e *CaptureError) Error() string {
	if !e.region.Empty() {
		if e.err != nil {
			return fmt.Sprintf("%s: %v: %v", e.msg, e.region, e.err)
		}
		return fmt.Sprintf("%s: %v", e.msg, e.region)
	}
	return e.ApplicationError.Error()
}

// Region returns the screen region associated with the error
func (e *CaptureError) Region() image.Rectangle {
	return e.region
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// NewKind creates a new error of the given kind
func NewKind(kind ErrorKind, msg string, err error) error {
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: kind,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind of the first application error in err's chain.
func KindOf(err error) ErrorKind {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind()
	}
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind()
	}
	var captureErr *CaptureError
	if errors.As(err, &captureErr) {
		return captureErr.Kind()
	}
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}
	return Unknown
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	return KindOf(err) == FileNotFound
}

// IsDecodeFailed checks if the error is an image decode failure
func IsDecodeFailed(err error) bool {
	return KindOf(err) == DecodeFailed
}

// IsScanFailed checks if the error is a folder enumeration failure
func IsScanFailed(err error) bool {
	return KindOf(err) == ScanFailed
}

// IsInvalidRegion checks if the error is a degenerate capture region
func IsInvalidRegion(err error) bool {
	return KindOf(err) == InvalidRegion
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	return KindOf(err) == InvalidConfig
}

// IsUnsupported checks if the error reports a platform without native window support
func IsUnsupported(err error) bool {
	return KindOf(err) == Unsupported
}
