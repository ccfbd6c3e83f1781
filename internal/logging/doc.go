// Package logging constructs the slog loggers used across printvault and
// provides the attribute helper aliases the rest of the codebase logs with.
package logging
