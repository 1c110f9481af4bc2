package settings

import "errors"

var (
	// ErrSettingNotFound is returned when the key does not exist
	ErrSettingNotFound = errors.New("settings.repository: setting not found")

	// ErrBuildQuery is returned when the SQL query cannot be built
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute
	ErrExecQuery = errors.New("settings.repository: failed to execute query")
)
