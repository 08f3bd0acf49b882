// Package app implements the bcnbhd command line: subcommand dispatch,
// shared flags, logging, metrics and exit codes.
//
// Exit codes: 0 success (a closed stdout pipe also counts as success),
// 2 usage error, 3 runtime failure.
package app
