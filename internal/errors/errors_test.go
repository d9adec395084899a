package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// -----------------------------------------------------------------------------
// Severity Tests
// -----------------------------------------------------------------------------

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// LaunchError Tests
// -----------------------------------------------------------------------------

func TestNewLaunchError(t *testing.T) {
	cause := ErrLaunchFailed
	err := NewLaunchError("emulator failed to start", cause)

	if err.message != "emulator failed to start" {
		t.Errorf("message = %q, want %q", err.message, "emulator failed to start")
	}
	if err.cause != cause {
		t.Errorf("cause = %v, want %v", err.cause, cause)
	}
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityError)
	}
	if err.IsRetryable() {
		t.Error("IsRetryable() = true, want false")
	}
	if !err.IsUserFacing() {
		t.Error("IsUserFacing() = false, want true")
	}
}

func TestLaunchError_WithMethods(t *testing.T) {
	err := NewLaunchError("test", nil).
		WithComponent("automation").
		WithPath("/opt/maa/MAA.exe").
		WithProfile("daily").
		WithSeverity(SeverityCritical).
		WithRetryable(true)

	if err.Component != "automation" {
		t.Errorf("Component = %q, want %q", err.Component, "automation")
	}
	if err.Path != "/opt/maa/MAA.exe" {
		t.Errorf("Path = %q, want %q", err.Path, "/opt/maa/MAA.exe")
	}
	if err.Profile != "daily" {
		t.Errorf("Profile = %q, want %q", err.Profile, "daily")
	}
	if err.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityCritical)
	}
	if !err.IsRetryable() {
		t.Error("IsRetryable() = false, want true")
	}
}

func TestLaunchError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *LaunchError
		want string
	}{
		{
			name: "basic error",
			err:  NewLaunchError("test error", nil),
			want: "launch error: test error",
		},
		{
			name: "with cause",
			err:  NewLaunchError("test error", ErrLaunchFailed),
			want: "launch error: test error: process launch failed",
		},
		{
			name: "with component",
			err:  NewLaunchError("test error", nil).WithComponent("emulator"),
			want: "launch error [component=emulator]: test error",
		},
		{
			name: "with all fields",
			err:  NewLaunchError("start failed", ErrLaunchFailed).WithComponent("automation").WithProfile("daily").WithPath("/opt/maa/MAA.exe"),
			want: "launch error [component=automation, profile=daily, path=/opt/maa/MAA.exe]: start failed: process launch failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLaunchError_Is(t *testing.T) {
	err := NewLaunchError("test", ErrLaunchFailed).WithComponent("emulator")

	// Should match LaunchError type
	if !Is(err, &LaunchError{}) {
		t.Error("Is(LaunchError{}) = false, want true")
	}

	// Should match wrapped sentinel error
	if !Is(err, ErrLaunchFailed) {
		t.Error("Is(ErrLaunchFailed) = false, want true")
	}

	// Should not match unrelated errors
	if Is(err, ErrProfileNotFound) {
		t.Error("Is(ErrProfileNotFound) = true, want false")
	}
}

func TestLaunchError_Unwrap(t *testing.T) {
	cause := ErrLaunchFailed
	err := NewLaunchError("test", cause)

	if unwrapped := Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

// -----------------------------------------------------------------------------
// ConsoleError Tests
// -----------------------------------------------------------------------------

func TestNewConsoleError(t *testing.T) {
	cause := ErrConsoleUnavailable
	err := NewConsoleError("query failed", cause)

	if err.message != "query failed" {
		t.Errorf("message = %q, want %q", err.message, "query failed")
	}
	if err.cause != cause {
		t.Errorf("cause = %v, want %v", err.cause, cause)
	}
}

func TestConsoleError_WithMethods(t *testing.T) {
	err := NewConsoleError("test", nil).
		WithVerb("isrunning").
		WithTarget("index:2").
		WithOutput("unknown command").
		WithSeverity(SeverityWarning).
		WithRetryable(true)

	if err.Verb != "isrunning" {
		t.Errorf("Verb = %q, want %q", err.Verb, "isrunning")
	}
	if err.Target != "index:2" {
		t.Errorf("Target = %q, want %q", err.Target, "index:2")
	}
	if err.Output != "unknown command" {
		t.Errorf("Output = %q, want %q", err.Output, "unknown command")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}
}

func TestConsoleError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ConsoleError
		want string
	}{
		{
			name: "basic error",
			err:  NewConsoleError("test error", nil),
			want: "console error: test error",
		},
		{
			name: "with verb",
			err:  NewConsoleError("launch failed", nil).WithVerb("launch"),
			want: "console error [verb=launch]: launch failed",
		},
		{
			name: "with output",
			err:  NewConsoleError("failed", ErrConsoleUnavailable).WithVerb("quit").WithTarget("name:main").WithOutput("ERR"),
			want: "console error [verb=quit, target=name:main]: failed: console utility unavailable\nconsole output: ERR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConsoleError_Is(t *testing.T) {
	err := NewConsoleError("test", ErrConsoleUnavailable)

	if !Is(err, &ConsoleError{}) {
		t.Error("Is(ConsoleError{}) = false, want true")
	}
	if !Is(err, ErrConsoleUnavailable) {
		t.Error("Is(ErrConsoleUnavailable) = false, want true")
	}
	if Is(err, &LaunchError{}) {
		t.Error("Is(LaunchError{}) = true, want false")
	}
}

// -----------------------------------------------------------------------------
// MonitorAbortError Tests
// -----------------------------------------------------------------------------

func TestNewMonitorAbortError(t *testing.T) {
	err := NewMonitorAbortError("automation process terminated", 10)

	if err.Reason != "automation process terminated" {
		t.Errorf("Reason = %q, want %q", err.Reason, "automation process terminated")
	}
	if err.Failures != 10 {
		t.Errorf("Failures = %d, want 10", err.Failures)
	}
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityError)
	}
	if err.IsRetryable() {
		t.Error("IsRetryable() = true, want false")
	}
}

func TestMonitorAbortError_WithMethods(t *testing.T) {
	err := NewMonitorAbortError("test", 3).
		WithProfile("daily").
		WithCause(fmt.Errorf("check failed")).
		WithSeverity(SeverityCritical)

	if err.Profile != "daily" {
		t.Errorf("Profile = %q, want %q", err.Profile, "daily")
	}
	if err.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityCritical)
	}
}

func TestMonitorAbortError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *MonitorAbortError
		want string
	}{
		{
			name: "basic error",
			err:  NewMonitorAbortError("emulator instance terminated", 10),
			want: "monitor abort [failures=10]: emulator instance terminated",
		},
		{
			name: "with profile",
			err:  NewMonitorAbortError("automation process terminated", 10).WithProfile("daily"),
			want: "monitor abort [profile=daily, failures=10]: automation process terminated",
		},
		{
			name: "with cause",
			err:  NewMonitorAbortError("terminated", 5).WithCause(fmt.Errorf("gone")),
			want: "monitor abort [failures=5]: terminated: gone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMonitorAbortError_Is(t *testing.T) {
	err := NewMonitorAbortError("test", 10)

	if !Is(err, &MonitorAbortError{}) {
		t.Error("Is(MonitorAbortError{}) = false, want true")
	}
	// MonitorAbortError should match ErrLivenessLost
	if !Is(err, ErrLivenessLost) {
		t.Error("Is(ErrLivenessLost) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// ExtensionError Tests
// -----------------------------------------------------------------------------

func TestNewExtensionError(t *testing.T) {
	cause := ErrExtensionPanic
	err := NewExtensionError("hook panicked", cause)

	if err.message != "hook panicked" {
		t.Errorf("message = %q, want %q", err.message, "hook panicked")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}
	if err.IsUserFacing() {
		t.Error("IsUserFacing() = true, want false")
	}
}

func TestExtensionError_WithMethods(t *testing.T) {
	err := NewExtensionError("test", nil).
		WithExtension("check-completion").
		WithHook("AllowRun").
		WithSeverity(SeverityError)

	if err.Extension != "check-completion" {
		t.Errorf("Extension = %q, want %q", err.Extension, "check-completion")
	}
	if err.Hook != "AllowRun" {
		t.Errorf("Hook = %q, want %q", err.Hook, "AllowRun")
	}
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityError)
	}
}

func TestExtensionError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExtensionError
		want string
	}{
		{
			name: "basic error",
			err:  NewExtensionError("test error", nil),
			want: "extension error: test error",
		},
		{
			name: "with extension",
			err:  NewExtensionError("test error", nil).WithExtension("notify"),
			want: "extension error [extension=notify]: test error",
		},
		{
			name: "with all fields",
			err:  NewExtensionError("call abandoned", ErrExtensionTimeout).WithExtension("notify").WithHook("AfterProfileStart"),
			want: "extension error [extension=notify, hook=AfterProfileStart]: call abandoned: extension call timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtensionError_Is(t *testing.T) {
	err := NewExtensionError("test", ErrExtensionTimeout)

	if !Is(err, &ExtensionError{}) {
		t.Error("Is(ExtensionError{}) = false, want true")
	}
	if !Is(err, ErrExtensionTimeout) {
		t.Error("Is(ErrExtensionTimeout) = false, want true")
	}
	if Is(err, &ConsoleError{}) {
		t.Error("Is(ConsoleError{}) = true, want false")
	}
}

// -----------------------------------------------------------------------------
// NotFoundError Tests
// -----------------------------------------------------------------------------

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("profile", "daily")

	if err.ResourceType != "profile" {
		t.Errorf("ResourceType = %q, want %q", err.ResourceType, "profile")
	}
	if err.ResourceID != "daily" {
		t.Errorf("ResourceID = %q, want %q", err.ResourceID, "daily")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}
}

func TestNotFoundError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *NotFoundError
		want string
	}{
		{
			name: "basic error",
			err:  NewNotFoundError("profile", "daily"),
			want: "profile 'daily' not found",
		},
		{
			name: "with cause",
			err:  NewNotFoundError("extension", "/path").WithCause(fmt.Errorf("IO error")),
			want: "extension '/path' not found: IO error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNotFoundError_Is(t *testing.T) {
	err := NewNotFoundError("profile", "daily")

	if !Is(err, &NotFoundError{}) {
		t.Error("Is(NotFoundError{}) = false, want true")
	}
	// NotFoundError does not wrap sentinel errors by default
	if Is(err, ErrProfileNotFound) {
		t.Error("Is(ErrProfileNotFound) = true, want false (not wrapped)")
	}

	// But matches a sentinel added as cause
	wrapped := NewNotFoundError("profile", "daily").WithCause(ErrProfileNotFound)
	if !Is(wrapped, ErrProfileNotFound) {
		t.Error("Is(ErrProfileNotFound) = false, want true (wrapped as cause)")
	}
}

// -----------------------------------------------------------------------------
// AlreadyExistsError Tests
// -----------------------------------------------------------------------------

func TestNewAlreadyExistsError(t *testing.T) {
	err := NewAlreadyExistsError("profile", "daily")

	if err.ResourceType != "profile" {
		t.Errorf("ResourceType = %q, want %q", err.ResourceType, "profile")
	}
	if err.ResourceID != "daily" {
		t.Errorf("ResourceID = %q, want %q", err.ResourceID, "daily")
	}
}

func TestAlreadyExistsError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AlreadyExistsError
		want string
	}{
		{
			name: "basic error",
			err:  NewAlreadyExistsError("profile", "daily"),
			want: "profile 'daily' already exists",
		},
		{
			name: "with cause",
			err:  NewAlreadyExistsError("file", "daily.toml").WithCause(fmt.Errorf("disk error")),
			want: "file 'daily.toml' already exists: disk error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAlreadyExistsError_Is(t *testing.T) {
	err := NewAlreadyExistsError("profile", "daily")

	if !Is(err, &AlreadyExistsError{}) {
		t.Error("Is(AlreadyExistsError{}) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// ValidationError Tests
// -----------------------------------------------------------------------------

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("emulator requires exactly one of index or name")

	if err.message != "emulator requires exactly one of index or name" {
		t.Errorf("message = %q, want %q", err.message, "emulator requires exactly one of index or name")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}
}

func TestValidationError_WithMethods(t *testing.T) {
	err := NewValidationError("invalid value").
		WithField("lifetime").
		WithValue(0).
		WithCause(fmt.Errorf("must be positive"))

	if err.Field != "lifetime" {
		t.Errorf("Field = %q, want %q", err.Field, "lifetime")
	}
	if err.Value != 0 {
		t.Errorf("Value = %v, want 0", err.Value)
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "basic error",
			err:  NewValidationError("invalid input"),
			want: "validation error: invalid input",
		},
		{
			name: "with field",
			err:  NewValidationError("cannot be empty").WithField("app"),
			want: "validation error [field=app]: cannot be empty",
		},
		{
			name: "with field and value",
			err:  NewValidationError("must be positive").WithField("lifetime").WithValue(-1),
			want: "validation error [field=lifetime, value=-1]: must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Is(t *testing.T) {
	err := NewValidationError("test")

	if !Is(err, &ValidationError{}) {
		t.Error("Is(ValidationError{}) = false, want true")
	}
	// ValidationError should match ErrInvalidInput
	if !Is(err, ErrInvalidInput) {
		t.Error("Is(ErrInvalidInput) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// TimeoutError Tests
// -----------------------------------------------------------------------------

func TestNewTimeoutError(t *testing.T) {
	err := NewTimeoutError("waiting for console reply", 5*time.Second)

	if err.Operation != "waiting for console reply" {
		t.Errorf("Operation = %q, want %q", err.Operation, "waiting for console reply")
	}
	if err.Duration != 5*time.Second {
		t.Errorf("Duration = %v, want %v", err.Duration, 5*time.Second)
	}
	// Timeouts are retryable by default
	if !err.IsRetryable() {
		t.Error("IsRetryable() = false, want true")
	}
}

func TestTimeoutError_WithMethods(t *testing.T) {
	err := NewTimeoutError("test", time.Second).
		WithCause(fmt.Errorf("context deadline exceeded")).
		WithRetryable(false)

	if err.IsRetryable() {
		t.Error("IsRetryable() = true, want false")
	}
}

func TestTimeoutError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *TimeoutError
		want string
	}{
		{
			name: "basic error",
			err:  NewTimeoutError("waiting for console reply", 5*time.Second),
			want: "timeout error: waiting for console reply (timeout: 5s)",
		},
		{
			name: "with cause",
			err:  NewTimeoutError("hook dispatch", time.Minute).WithCause(fmt.Errorf("extension hung")),
			want: "timeout error: hook dispatch (timeout: 1m0s): extension hung",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimeoutError_Is(t *testing.T) {
	err := NewTimeoutError("test", time.Second)

	if !Is(err, &TimeoutError{}) {
		t.Error("Is(TimeoutError{}) = false, want true")
	}
	// TimeoutError should match ErrTimeout
	if !Is(err, ErrTimeout) {
		t.Error("Is(ErrTimeout) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// Classification Helper Tests
// -----------------------------------------------------------------------------

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "timeout error",
			err:  NewTimeoutError("test", time.Second),
			want: true,
		},
		{
			name: "launch error not retryable",
			err:  NewLaunchError("test", nil),
			want: false,
		},
		{
			name: "launch error set retryable",
			err:  NewLaunchError("test", nil).WithRetryable(true),
			want: true,
		},
		{
			name: "wrapped timeout sentinel",
			err:  fmt.Errorf("operation failed: %w", ErrTimeout),
			want: true,
		},
		{
			name: "standard error",
			err:  errors.New("standard error"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "launch error",
			err:  NewLaunchError("test", nil),
			want: true,
		},
		{
			name: "extension error",
			err:  NewExtensionError("test", nil),
			want: false,
		},
		{
			name: "not found error",
			err:  NewNotFoundError("profile", "daily"),
			want: true,
		},
		{
			name: "validation error",
			err:  NewValidationError("invalid input"),
			want: true,
		},
		{
			name: "timeout error",
			err:  NewTimeoutError("waiting", time.Second),
			want: true,
		},
		{
			name: "standard error",
			err:  errors.New("internal error"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSeverity(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Severity
	}{
		{
			name: "nil error",
			err:  nil,
			want: SeverityDebug,
		},
		{
			name: "launch error default",
			err:  NewLaunchError("test", nil),
			want: SeverityError,
		},
		{
			name: "launch error critical",
			err:  NewLaunchError("test", nil).WithSeverity(SeverityCritical),
			want: SeverityCritical,
		},
		{
			name: "extension error default",
			err:  NewExtensionError("test", nil),
			want: SeverityWarning,
		},
		{
			name: "not found error",
			err:  NewNotFoundError("profile", "daily"),
			want: SeverityWarning,
		},
		{
			name: "standard error",
			err:  errors.New("standard"),
			want: SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetSeverity(tt.err); got != tt.want {
				t.Errorf("GetSeverity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "launch error",
			err:  NewLaunchError("test", nil),
			want: true,
		},
		{
			name: "console error",
			err:  NewConsoleError("test", nil),
			want: true,
		},
		{
			name: "monitor abort error",
			err:  NewMonitorAbortError("test", 10),
			want: true,
		},
		{
			name: "extension error",
			err:  NewExtensionError("test", nil),
			want: true,
		},
		{
			name: "not found error (semantic)",
			err:  NewNotFoundError("profile", "daily"),
			want: false,
		},
		{
			name: "standard error",
			err:  errors.New("test"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDomainError(tt.err); got != tt.want {
				t.Errorf("IsDomainError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsSemanticError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "not found error",
			err:  NewNotFoundError("profile", "daily"),
			want: true,
		},
		{
			name: "already exists error",
			err:  NewAlreadyExistsError("profile", "daily"),
			want: true,
		},
		{
			name: "validation error",
			err:  NewValidationError("invalid"),
			want: true,
		},
		{
			name: "timeout error",
			err:  NewTimeoutError("waiting", time.Second),
			want: true,
		},
		{
			name: "launch error (domain)",
			err:  NewLaunchError("test", nil),
			want: false,
		},
		{
			name: "standard error",
			err:  errors.New("test"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSemanticError(tt.err); got != tt.want {
				t.Errorf("IsSemanticError() = %v, want %v", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Wrap/Wrapf Tests
// -----------------------------------------------------------------------------

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
		want    string
	}{
		{
			name:    "nil error",
			err:     nil,
			message: "context",
			want:    "",
		},
		{
			name:    "wrap standard error",
			err:     errors.New("base error"),
			message: "failed to process",
			want:    "failed to process: base error",
		},
		{
			name:    "wrap launch error",
			err:     NewLaunchError("start failed", nil),
			message: "operation failed",
			want:    "operation failed: launch error: start failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.message)
			if tt.err == nil {
				if got != nil {
					t.Errorf("Wrap(nil) = %v, want nil", got)
				}
				return
			}
			if got.Error() != tt.want {
				t.Errorf("Wrap().Error() = %q, want %q", got.Error(), tt.want)
			}
		})
	}
}

func TestWrapf(t *testing.T) {
	baseErr := errors.New("base error")
	err := Wrapf(baseErr, "failed to start profile %s", "daily")

	want := "failed to start profile daily: base error"
	if err.Error() != want {
		t.Errorf("Wrapf().Error() = %q, want %q", err.Error(), want)
	}

	// Wrapf with nil should return nil
	if got := Wrapf(nil, "test"); got != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", got)
	}
}

// -----------------------------------------------------------------------------
// Re-exported Functions Tests
// -----------------------------------------------------------------------------

func TestReexportedFunctions(t *testing.T) {
	// Test that re-exported functions work correctly
	baseErr := New("base error")
	wrappedErr := fmt.Errorf("wrapped: %w", baseErr)

	// Test Is
	if !Is(wrappedErr, baseErr) {
		t.Error("Is() should return true for wrapped error")
	}

	// Test Unwrap
	if Unwrap(wrappedErr) == nil {
		t.Error("Unwrap() should return the base error")
	}

	// Test As
	var launchErr *LaunchError
	testErr := NewLaunchError("test", nil)
	if !As(testErr, &launchErr) {
		t.Error("As() should extract LaunchError")
	}

	// Test Join
	err1 := New("error 1")
	err2 := New("error 2")
	joined := Join(err1, err2)
	if !Is(joined, err1) || !Is(joined, err2) {
		t.Error("Join() should combine errors")
	}
}

// -----------------------------------------------------------------------------
// Error Chain Tests
// -----------------------------------------------------------------------------

func TestErrorChain(t *testing.T) {
	// Create a chain of errors
	baseErr := ErrLaunchFailed
	launchErr := NewLaunchError("emulator failed to start", baseErr).WithComponent("emulator").WithProfile("daily")
	wrappedErr := Wrap(launchErr, "run up failed")

	// Should be able to find all errors in the chain
	if !Is(wrappedErr, ErrLaunchFailed) {
		t.Error("Should find ErrLaunchFailed in chain")
	}

	var extracted *LaunchError
	if !As(wrappedErr, &extracted) {
		t.Error("Should extract LaunchError from chain")
	}
	if extracted.Profile != "daily" {
		t.Errorf("Profile = %q, want %q", extracted.Profile, "daily")
	}
}

// -----------------------------------------------------------------------------
// Sentinel Error Tests
// -----------------------------------------------------------------------------

func TestSentinelErrors(t *testing.T) {
	// Verify all sentinel errors are distinct
	sentinels := []error{
		ErrProfileNotFound,
		ErrProfileInvalid,
		ErrTemplateNotFound,
		ErrTemplateCycle,
		ErrLaunchFailed,
		ErrProcessNotFound,
		ErrKillFailed,
		ErrConsoleUnavailable,
		ErrEmulatorNotRunning,
		ErrLivenessLost,
		ErrExtensionLoadFailed,
		ErrExtensionTimeout,
		ErrExtensionPanic,
		ErrTimeout,
		ErrCanceled,
		ErrInvalidInput,
		ErrOperationFailed,
	}

	// Check that each sentinel is distinct from all others
	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && Is(err1, err2) {
				t.Errorf("Sentinel error %v should not match %v", err1, err2)
			}
		}
	}
}
