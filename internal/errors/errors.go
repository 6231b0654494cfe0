// Package apperrors provides domain-specific error types for Porthall.
// These error types include contextual information to aid debugging and error reporting.
package apperrors

import "fmt"

// ConfigurationError represents configuration-related errors.
// It includes the configuration file path and specific key that caused the error.
type ConfigurationError struct {
	ConfigPath string // Path to the configuration file
	Key        string // Configuration key that caused the error
	Err        error  // Underlying error
}

// Error implements the error interface for ConfigurationError.
func (e *ConfigurationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("configuration error in %s (key: %s): %v", e.ConfigPath, e.Key, e.Err)
	}
	return fmt.Sprintf("configuration error in %s: %v", e.ConfigPath, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// DockerConnectionError represents Docker connection and operation errors.
// It includes the socket path and the operation that failed.
type DockerConnectionError struct {
	SocketPath string // Docker socket path (e.g., /var/run/docker.sock)
	Operation  string // Operation that failed (e.g., "Ping", "ListContainers")
	Err        error  // Underlying error
}

// Error implements the error interface for DockerConnectionError.
func (e *DockerConnectionError) Error() string {
	if e.SocketPath != "" {
		return fmt.Sprintf("docker %s failed (socket: %s): %v", e.Operation, e.SocketPath, e.Err)
	}
	return fmt.Sprintf("docker %s failed: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *DockerConnectionError) Unwrap() error {
	return e.Err
}

// IconValidationError represents a failed icon existence check against the
// icon catalog. It is informational: callers substitute the default icon
// rather than propagating it.
type IconValidationError struct {
	URL        string // Catalog URL that was checked
	StatusCode int    // HTTP status code (0 if the request never completed)
	Err        error  // Underlying error
}

// Error implements the error interface for IconValidationError.
func (e *IconValidationError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("icon validation failed for %s (status: %d)", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("icon validation failed for %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *IconValidationError) Unwrap() error {
	return e.Err
}

// StorageError represents a failed read or write against the shortcut store.
// It includes the operation and the affected record where known.
type StorageError struct {
	Operation  string // Operation that failed (e.g., "InsertShortcut", "UpdateShortcut")
	ShortcutID int64  // Affected shortcut ID (0 if not applicable)
	Err        error  // Underlying error
}

// Error implements the error interface for StorageError.
func (e *StorageError) Error() string {
	if e.ShortcutID > 0 {
		return fmt.Sprintf("storage %s failed for shortcut %d: %v", e.Operation, e.ShortcutID, e.Err)
	}
	return fmt.Sprintf("storage %s failed: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *StorageError) Unwrap() error {
	return e.Err
}
