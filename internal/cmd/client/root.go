// Package client contains Cobra CLI commands for the logtap inspection API.
package client

import (
	"github.com/spf13/cobra"
)

// BaseURLFunc provides the base HTTP API URL (e.g., from env or flag).
type BaseURLFunc func() string

// NewRoot constructs the client command group. It registers the logs, tail,
// options and toggle commands, all of which talk to a running demo process
// over its HTTP inspection API.
func NewRoot(baseURL BaseURLFunc) []*cobra.Command {
	return []*cobra.Command{
		newLogsCommand(baseURL),
		newTailCommand(baseURL),
		newOptionsCommand(baseURL),
		newToggleCommand(baseURL),
	}
}
