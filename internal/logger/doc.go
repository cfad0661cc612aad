// Package logger wraps zap with a global sugared console logger and
// context helpers (ToContext/FromContext/WithName/WithKV).
//
// Both CLIs set the level from --log-level and pass a named logger down
// through the context, so every service logs with the tool's name attached.
package logger
