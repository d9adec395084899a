// Package errors provides centralized error definitions and error handling utilities
// for the tandem codebase. It defines domain-specific errors, semantic error types,
// error constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// The package provides two categories of errors:
//
// Domain-specific errors represent errors from specific subsystems:
//   - LaunchError: errors launching the emulator instance or automation process
//   - ConsoleError: errors from the emulator console utility
//   - MonitorAbortError: sustained liveness failure during a monitored run
//   - ExtensionError: errors raised by extensions during hook dispatch
//
// Semantic errors represent common error conditions:
//   - NotFoundError: resource not found
//   - AlreadyExistsError: resource already exists
//   - ValidationError: invalid input or state
//   - TimeoutError: operation timed out
//
// # Usage
//
// Creating errors:
//
//	// Domain-specific error
//	err := errors.NewLaunchError("emulator failed to start", errors.ErrLaunchFailed)
//
//	// Semantic error
//	err := errors.NewNotFoundError("profile", "daily")
//
//	// With context wrapping
//	err := errors.NewConsoleError("isrunning failed", baseErr).WithVerb("isrunning")
//
// Checking errors:
//
//	// Check for specific sentinel errors
//	if errors.Is(err, errors.ErrProfileNotFound) { ... }
//
//	// Check for error types
//	var launchErr *errors.LaunchError
//	if errors.As(err, &launchErr) { ... }
//
//	// Use classification helpers
//	if errors.IsRetryable(err) { ... }
//	if errors.IsUserFacing(err) { ... }
//
// # Error Classification
//
// Errors can be classified by severity and behavior:
//   - Retryable: transient errors that may succeed on retry
//   - UserFacing: errors safe to display to users (vs internal errors)
//   - Severity: Debug, Info, Warning, Error, Critical
//
// A gate veto is deliberately not an error: when an extension vetoes a run or
// a kill, the orchestrator reports a blocked outcome with a nil error and the
// command exits zero.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Profile-related sentinel errors
var (
	// ErrProfileNotFound indicates that a profile could not be resolved by name.
	ErrProfileNotFound = New("profile not found")
	// ErrProfileInvalid indicates that a profile failed validation.
	ErrProfileInvalid = New("profile is invalid")
	// ErrTemplateNotFound indicates that a template reference has no target part.
	ErrTemplateNotFound = New("template not found")
	// ErrTemplateCycle indicates circular template references between profiles.
	ErrTemplateCycle = New("template cycle detected")
)

// Launch- and process-related sentinel errors
var (
	// ErrLaunchFailed indicates that an OS process failed to start.
	ErrLaunchFailed = New("process launch failed")
	// ErrProcessNotFound indicates that no matching process is running.
	ErrProcessNotFound = New("process not found")
	// ErrKillFailed indicates that a process could not be terminated.
	ErrKillFailed = New("process kill failed")
)

// Console-related sentinel errors
var (
	// ErrConsoleUnavailable indicates that the emulator console utility could
	// not be executed.
	ErrConsoleUnavailable = New("console utility unavailable")
	// ErrEmulatorNotRunning indicates that the emulator instance reported a
	// stopped state.
	ErrEmulatorNotRunning = New("emulator instance not running")
)

// Monitor-related sentinel errors
var (
	// ErrLivenessLost indicates that consecutive liveness checks failed past
	// the abort threshold.
	ErrLivenessLost = New("liveness checks failed")
)

// Extension-related sentinel errors
var (
	// ErrExtensionLoadFailed indicates that an extension file could not be loaded.
	ErrExtensionLoadFailed = New("extension load failed")
	// ErrExtensionTimeout indicates that an extension hook call was abandoned.
	ErrExtensionTimeout = New("extension call timed out")
	// ErrExtensionPanic indicates that an extension hook panicked.
	ErrExtensionPanic = New("extension panicked")
)

// General sentinel errors
var (
	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = New("operation timed out")
	// ErrCanceled indicates that an operation was canceled.
	ErrCanceled = New("operation canceled")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrOperationFailed indicates a general operation failure.
	ErrOperationFailed = New("operation failed")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// TandemError is the base interface for all tandem errors.
// It extends the standard error interface with additional methods for
// error handling and classification.
type TandemError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	// This is used by errors.Is() for error comparison.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the error is transient and the operation
	// may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// LaunchError represents a failure to start one of a profile's processes.
// Launch failures are fatal for the profile being processed: partially
// launched components are left as-is, there is no rollback.
//
// Example:
//
//	err := errors.NewLaunchError("automation failed to start", errors.ErrLaunchFailed)
//	err = err.WithComponent("automation").WithPath("/opt/maa/MAA.exe")
type LaunchError struct {
	baseError
	Component string // "emulator" or "automation"
	Path      string
	Profile   string
}

// NewLaunchError creates a new LaunchError.
func NewLaunchError(message string, cause error) *LaunchError {
	return &LaunchError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithComponent adds the failing component name to the error context.
func (e *LaunchError) WithComponent(component string) *LaunchError {
	e.Component = component
	return e
}

// WithPath adds the executable path to the error context.
func (e *LaunchError) WithPath(path string) *LaunchError {
	e.Path = path
	return e
}

// WithProfile adds the profile name to the error context.
func (e *LaunchError) WithProfile(name string) *LaunchError {
	e.Profile = name
	return e
}

// WithSeverity sets the error severity.
func (e *LaunchError) WithSeverity(s Severity) *LaunchError {
	e.severity = s
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *LaunchError) WithRetryable(r bool) *LaunchError {
	e.retryable = r
	return e
}

// Error returns the formatted error message.
func (e *LaunchError) Error() string {
	var parts []string
	if e.Component != "" {
		parts = append(parts, fmt.Sprintf("component=%s", e.Component))
	}
	if e.Profile != "" {
		parts = append(parts, fmt.Sprintf("profile=%s", e.Profile))
	}
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}

	prefix := "launch error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("launch error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *LaunchError) Is(target error) bool {
	if _, ok := target.(*LaunchError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ConsoleError represents a failure of the emulator console utility.
// Callers performing liveness checks treat console errors as "assume
// running"; callers performing launches treat them as fatal.
//
// Example:
//
//	err := errors.NewConsoleError("query failed", errors.ErrConsoleUnavailable)
//	err = err.WithVerb("isrunning").WithTarget("index:2")
type ConsoleError struct {
	baseError
	Verb   string
	Target string
	Output string // Captured console command output
}

// NewConsoleError creates a new ConsoleError.
func NewConsoleError(message string, cause error) *ConsoleError {
	return &ConsoleError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithVerb adds the console verb to the error context.
func (e *ConsoleError) WithVerb(verb string) *ConsoleError {
	e.Verb = verb
	return e
}

// WithTarget adds the instance selector (index or name) to the error context.
func (e *ConsoleError) WithTarget(target string) *ConsoleError {
	e.Target = target
	return e
}

// WithOutput adds captured console output to the error context.
func (e *ConsoleError) WithOutput(output string) *ConsoleError {
	e.Output = output
	return e
}

// WithSeverity sets the error severity.
func (e *ConsoleError) WithSeverity(s Severity) *ConsoleError {
	e.severity = s
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *ConsoleError) WithRetryable(r bool) *ConsoleError {
	e.retryable = r
	return e
}

// Error returns the formatted error message.
func (e *ConsoleError) Error() string {
	var parts []string
	if e.Verb != "" {
		parts = append(parts, fmt.Sprintf("verb=%s", e.Verb))
	}
	if e.Target != "" {
		parts = append(parts, fmt.Sprintf("target=%s", e.Target))
	}

	prefix := "console error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("console error [%s]", strings.Join(parts, ", "))
	}

	msg := e.message
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	if e.Output != "" {
		msg = fmt.Sprintf("%s\nconsole output: %s", msg, e.Output)
	}

	return fmt.Sprintf("%s: %s", prefix, msg)
}

// Is checks if this error matches the target.
func (e *ConsoleError) Is(target error) bool {
	if _, ok := target.(*ConsoleError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// MonitorAbortError represents the liveness monitor giving up on a run after
// the configured number of consecutive failed checks.
//
// Example:
//
//	err := errors.NewMonitorAbortError("automation process terminated", 10)
//	err = err.WithProfile("daily")
type MonitorAbortError struct {
	baseError
	Profile  string
	Reason   string
	Failures int
}

// NewMonitorAbortError creates a new MonitorAbortError.
func NewMonitorAbortError(reason string, failures int) *MonitorAbortError {
	return &MonitorAbortError{
		baseError: baseError{
			message:    reason,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
		Reason:   reason,
		Failures: failures,
	}
}

// WithProfile adds the profile name to the error context.
func (e *MonitorAbortError) WithProfile(name string) *MonitorAbortError {
	e.Profile = name
	return e
}

// WithCause adds a cause to the error.
func (e *MonitorAbortError) WithCause(cause error) *MonitorAbortError {
	e.cause = cause
	return e
}

// WithSeverity sets the error severity.
func (e *MonitorAbortError) WithSeverity(s Severity) *MonitorAbortError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *MonitorAbortError) Error() string {
	var parts []string
	if e.Profile != "" {
		parts = append(parts, fmt.Sprintf("profile=%s", e.Profile))
	}
	parts = append(parts, fmt.Sprintf("failures=%d", e.Failures))

	prefix := fmt.Sprintf("monitor abort [%s]", strings.Join(parts, ", "))

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Reason, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Reason)
}

// Is checks if this error matches the target.
func (e *MonitorAbortError) Is(target error) bool {
	if _, ok := target.(*MonitorAbortError); ok {
		return true
	}
	if errors.Is(target, ErrLivenessLost) {
		return true
	}
	return e.baseError.Is(target)
}

// ExtensionError represents a failure inside an extension hook. Extension
// failures are diagnostic: the bus logs them and dispatch continues, they
// never propagate to command output.
//
// Example:
//
//	err := errors.NewExtensionError("hook returned error", cause)
//	err = err.WithExtension("check-completion").WithHook("AllowRun")
type ExtensionError struct {
	baseError
	Extension string
	Hook      string
}

// NewExtensionError creates a new ExtensionError.
func NewExtensionError(message string, cause error) *ExtensionError {
	return &ExtensionError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: false,
		},
	}
}

// WithExtension adds the extension name to the error context.
func (e *ExtensionError) WithExtension(name string) *ExtensionError {
	e.Extension = name
	return e
}

// WithHook adds the hook name to the error context.
func (e *ExtensionError) WithHook(hook string) *ExtensionError {
	e.Hook = hook
	return e
}

// WithSeverity sets the error severity.
func (e *ExtensionError) WithSeverity(s Severity) *ExtensionError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *ExtensionError) Error() string {
	var parts []string
	if e.Extension != "" {
		parts = append(parts, fmt.Sprintf("extension=%s", e.Extension))
	}
	if e.Hook != "" {
		parts = append(parts, fmt.Sprintf("hook=%s", e.Hook))
	}

	prefix := "extension error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("extension error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ExtensionError) Is(target error) bool {
	if _, ok := target.(*ExtensionError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("profile", "daily")
//	fmt.Println(err) // "profile 'daily' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// AlreadyExistsError represents a resource that already exists.
//
// Example:
//
//	err := errors.NewAlreadyExistsError("profile", "daily")
//	fmt.Println(err) // "profile 'daily' already exists"
type AlreadyExistsError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewAlreadyExistsError creates a new AlreadyExistsError.
func NewAlreadyExistsError(resourceType, resourceID string) *AlreadyExistsError {
	return &AlreadyExistsError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' already exists", resourceType, resourceID),
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *AlreadyExistsError) WithCause(cause error) *AlreadyExistsError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *AlreadyExistsError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' already exists: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' already exists", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *AlreadyExistsError) Is(target error) bool {
	if _, ok := target.(*AlreadyExistsError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("profile must define an emulator or an automation")
//	err = err.WithField("profile").WithValue("daily")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// TimeoutError represents an operation that timed out.
//
// Example:
//
//	err := errors.NewTimeoutError("waiting for console reply", 5*time.Second)
//	fmt.Println(err) // "timeout error: waiting for console reply (timeout: 5s)"
type TimeoutError struct {
	baseError
	Operation string
	Duration  time.Duration
}

// NewTimeoutError creates a new TimeoutError.
func NewTimeoutError(operation string, duration time.Duration) *TimeoutError {
	return &TimeoutError{
		baseError: baseError{
			message:    operation,
			severity:   SeverityWarning,
			retryable:  true, // Timeouts are generally retryable
			userFacing: true,
		},
		Operation: operation,
		Duration:  duration,
	}
}

// WithCause adds a cause to the error.
func (e *TimeoutError) WithCause(cause error) *TimeoutError {
	e.cause = cause
	return e
}

// WithRetryable sets whether the error is retryable (default true for timeouts).
func (e *TimeoutError) WithRetryable(r bool) *TimeoutError {
	e.retryable = r
	return e
}

// Error returns the formatted error message.
func (e *TimeoutError) Error() string {
	base := fmt.Sprintf("timeout error: %s (timeout: %s)", e.Operation, e.Duration)
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", base, e.cause)
	}
	return base
}

// Is checks if this error matches the target.
func (e *TimeoutError) Is(target error) bool {
	if _, ok := target.(*TimeoutError); ok {
		return true
	}
	if errors.Is(target, ErrTimeout) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry. This checks for:
//   - Errors implementing TandemError with IsRetryable() returning true
//   - TimeoutError instances
//   - Errors wrapping ErrTimeout
//
// Example:
//
//	if errors.IsRetryable(err) {
//	    time.Sleep(backoff)
//	    return retry(operation)
//	}
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Check if error implements TandemError
	var tandemErr TandemError
	if As(err, &tandemErr) {
		return tandemErr.IsRetryable()
	}

	// Check for known retryable sentinel errors
	if Is(err, ErrTimeout) {
		return true
	}

	return false
}

// IsUserFacing returns true if the error message is safe to display to end users.
// This checks for:
//   - Errors implementing TandemError with IsUserFacing() returning true
//   - Semantic errors (NotFoundError, AlreadyExistsError, ValidationError, TimeoutError)
//
// Example:
//
//	if errors.IsUserFacing(err) {
//	    displayToUser(err.Error())
//	} else {
//	    displayToUser("An internal error occurred")
//	    log.Error("internal error", "err", err)
//	}
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	// Check if error implements TandemError
	var tandemErr TandemError
	if As(err, &tandemErr) {
		return tandemErr.IsUserFacing()
	}

	// Semantic errors are always user-facing
	var notFound *NotFoundError
	var alreadyExists *AlreadyExistsError
	var validation *ValidationError
	var timeout *TimeoutError

	if As(err, &notFound) || As(err, &alreadyExists) ||
		As(err, &validation) || As(err, &timeout) {
		return true
	}

	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement TandemError.
//
// Example:
//
//	switch errors.GetSeverity(err) {
//	case errors.SeverityCritical:
//	    alertOnCall(err)
//	case errors.SeverityError:
//	    log.Error("error occurred", "err", err)
//	case errors.SeverityWarning:
//	    log.Warn("warning", "err", err)
//	}
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	// Check if error implements TandemError
	var tandemErr TandemError
	if As(err, &tandemErr) {
		return tandemErr.Severity()
	}

	// Default to Error severity for unknown errors
	return SeverityError
}

// IsDomainError returns true if the error is a domain-specific error
// (LaunchError, ConsoleError, MonitorAbortError, or ExtensionError).
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}

	var launchErr *LaunchError
	var consoleErr *ConsoleError
	var monitorErr *MonitorAbortError
	var extensionErr *ExtensionError

	return As(err, &launchErr) || As(err, &consoleErr) ||
		As(err, &monitorErr) || As(err, &extensionErr)
}

// IsSemanticError returns true if the error is a semantic error
// (NotFoundError, AlreadyExistsError, ValidationError, or TimeoutError).
func IsSemanticError(err error) bool {
	if err == nil {
		return false
	}

	var notFound *NotFoundError
	var alreadyExists *AlreadyExistsError
	var validation *ValidationError
	var timeout *TimeoutError

	return As(err, &notFound) || As(err, &alreadyExists) ||
		As(err, &validation) || As(err, &timeout)
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
// Unlike fmt.Errorf with %w, this preserves the TandemError interface.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to resolve profile")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "failed to start profile %s", name)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
