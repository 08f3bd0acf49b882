// Package logging builds the zap loggers used by the command line tools.
package logging
