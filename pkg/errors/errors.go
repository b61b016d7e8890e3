// Package errors provides custom error types for aadsync.
// Every failure a run can end with is represented here so callers can
// check error kinds programmatically instead of matching strings.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Standard library helpers, re-exported so callers need a single import.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Common sentinel errors.
var (
	// ErrNotFound indicates that a requested directory object was not found
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous indicates that a lookup expected exactly one match but got several
	ErrAmbiguous = errors.New("ambiguous match")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrCredentialUnavailable indicates that no usable ambient credential exists
	ErrCredentialUnavailable = errors.New("credential unavailable")

	// ErrAuthenticationFailed indicates that the identity provider rejected the credential
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrReferenceExists indicates an add-reference call for an object already in the relation
	ErrReferenceExists = errors.New("reference already exists")

	// ErrReferenceNotFound indicates a remove-reference call for an object not in the relation
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrDirectoryUnavailable indicates that the directory service failed server-side
	ErrDirectoryUnavailable = errors.New("directory unavailable")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError represents a lookup that matched nothing.
type NotFoundError struct {
	Resource string // "user", "group", "GroupMembers", ...
	Name     string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with name %s not found", e.Resource, e.Name)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, name string) *NotFoundError {
	return &NotFoundError{Resource: resource, Name: name}
}

// AmbiguousMatchError represents a lookup that matched more than one object.
type AmbiguousMatchError struct {
	Resource string
	Name     string
	Count    int
}

// Error implements the error interface
func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("%s with name %s is ambiguous: %d matches", e.Resource, e.Name, e.Count)
}

// Is implements errors.Is support
func (e *AmbiguousMatchError) Is(target error) bool {
	return target == ErrAmbiguous
}

// NewAmbiguousMatchError creates a new AmbiguousMatchError
func NewAmbiguousMatchError(resource, name string, count int) *AmbiguousMatchError {
	return &AmbiguousMatchError{Resource: resource, Name: name, Count: count}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// UnknownTargetKindError is returned when the target kind selector matches no kind.
type UnknownTargetKindError struct {
	Value string
}

// Error implements the error interface
func (e *UnknownTargetKindError) Error() string {
	return "Unknown target type: " + e.Value
}

// Is implements errors.Is support
func (e *UnknownTargetKindError) Is(target error) bool {
	return target == ErrInvalidInput
}

// CredentialUnavailableError reports that no ambient credential could produce a token.
// Message is a short operator-facing explanation; Err carries the provider's reason.
type CredentialUnavailableError struct {
	Credential string
	Message    string
	Err        error
}

// Error implements the error interface
func (e *CredentialUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s\n%v", e.Credential, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Credential, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *CredentialUnavailableError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *CredentialUnavailableError) Is(target error) bool {
	return target == ErrCredentialUnavailable
}

// NewCredentialUnavailableError creates a new CredentialUnavailableError
func NewCredentialUnavailableError(credential, message string, err error) *CredentialUnavailableError {
	return &CredentialUnavailableError{Credential: credential, Message: message, Err: err}
}

// AuthenticationError represents a credential rejected by the identity provider
type AuthenticationError struct {
	Credential string
	Message    string
	Err        error
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication error (%s): %s", e.Credential, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthenticationFailed
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(credential, message string, err error) *AuthenticationError {
	return &AuthenticationError{Credential: credential, Message: message, Err: err}
}

// APIError represents an error response from the directory API
type APIError struct {
	Service    string
	StatusCode int
	Code       string // service error code, e.g. Request_ResourceNotFound
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Code != "":
		return fmt.Sprintf("API error from %s (status %d, %s): %s", e.Service, e.StatusCode, e.Code, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("API error from %s (status %d): %s", e.Service, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("API error from %s: %s", e.Service, e.Message)
	}
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode >= http.StatusInternalServerError {
		return target == ErrDirectoryUnavailable
	}
	if e.StatusCode == http.StatusUnauthorized {
		return target == ErrAuthenticationFailed
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(service string, statusCode int, message string) *APIError {
	return &APIError{
		Service:    service,
		StatusCode: statusCode,
		Message:    message,
	}
}

// MutationError represents a failed add or remove of a reference on a target relation.
type MutationError struct {
	Operation string // "add" or "remove"
	Target    string
	Relation  string
	User      string
	Err       error
}

// Error implements the error interface
func (e *MutationError) Error() string {
	return fmt.Sprintf("failed to %s %s in %s %s: %v", e.Operation, e.User, e.Target, e.Relation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *MutationError) Unwrap() error {
	return e.Err
}

// NewMutationError creates a new MutationError
func NewMutationError(operation, target, relation, user string, err error) *MutationError {
	return &MutationError{
		Operation: operation,
		Target:    target,
		Relation:  relation,
		User:      user,
		Err:       err,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "create", "read", "decode"
	Resource  string
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   err.Error(),
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAmbiguous checks if an error is an ambiguous match error
func IsAmbiguous(err error) bool {
	return errors.Is(err, ErrAmbiguous)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsCredentialUnavailable checks if an error means no credential could be used
func IsCredentialUnavailable(err error) bool {
	return errors.Is(err, ErrCredentialUnavailable)
}

// IsBenignMutation reports whether a mutation failed only because the relation
// already had the requested state.
func IsBenignMutation(err error) bool {
	return errors.Is(err, ErrReferenceExists) || errors.Is(err, ErrReferenceNotFound)
}
