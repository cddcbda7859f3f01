package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

// newOptionsCommand constructs the `options` command group.
func newOptionsCommand(baseURL BaseURLFunc) *cobra.Command {
	optionsCmd := &cobra.Command{
		Use:   "options",
		Short: "Show or update tap options",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var body map[string]any
			if err := getJSON(baseURL()+"/v1/options", &body); err != nil {
				return err
			}
			out, _ := json.MarshalIndent(body, "", "  ")
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	optionsCmd.AddCommand(newOptionsSetCommand(baseURL))
	return optionsCmd
}

// newOptionsSetCommand constructs `options set`. Only flags the user
// actually passed end up in the PATCH body, so unnamed options keep their
// current values.
func newOptionsSetCommand(baseURL BaseURLFunc) *cobra.Command {
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update a subset of tap options",
		RunE: func(cmd *cobra.Command, _ []string) error {
			patch := map[string]any{}
			addBool := func(flag, key string) {
				if cmd.Flags().Changed(flag) {
					v, _ := cmd.Flags().GetBool(flag)
					patch[key] = v
				}
			}
			addBool("log", "log")
			addBool("info", "info")
			addBool("warn", "warn")
			addBool("error", "error")
			addBool("debug", "debug")
			if cmd.Flags().Changed("max-log-size") {
				v, _ := cmd.Flags().GetInt("max-log-size")
				patch["maxLogSize"] = v
			}
			if cmd.Flags().Changed("log-expiry-days") {
				v, _ := cmd.Flags().GetInt("log-expiry-days")
				patch["logExpiryDays"] = v
			}
			if cmd.Flags().Changed("attribution") {
				v, _ := cmd.Flags().GetString("attribution")
				patch["attribution"] = v
			}
			if len(patch) == 0 {
				return fmt.Errorf("no options given; see --help for flags")
			}

			b, err := json.Marshal(patch)
			if err != nil {
				return err
			}
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPatch,
				baseURL()+"/v1/options", bytes.NewReader(b))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("server returned %s: %s", resp.Status, string(body))
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(bytes.TrimSpace(body)))
			return nil
		},
	}
	setCmd.Flags().Bool("log", true, "Intercept the log channel")
	setCmd.Flags().Bool("info", true, "Intercept the info channel")
	setCmd.Flags().Bool("warn", true, "Intercept the warn channel")
	setCmd.Flags().Bool("error", true, "Intercept the error channel")
	setCmd.Flags().Bool("debug", false, "Report capture failures on the host console")
	setCmd.Flags().Int("max-log-size", 0, "Retained entry cap")
	setCmd.Flags().Int("log-expiry-days", 0, "Entry age limit in days (0 = no age limit)")
	setCmd.Flags().String("attribution", "", "Attribution strategy: args|stack")
	return setCmd
}

// newToggleCommand constructs the `toggle` command.
func newToggleCommand(baseURL BaseURLFunc) *cobra.Command {
	toggleCmd := &cobra.Command{
		Use:       "toggle [on|off]",
		Short:     "Enable or disable interception",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled := args[0] == "on"
			b, _ := json.Marshal(map[string]bool{"enabled": enabled})
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost,
				baseURL()+"/v1/toggle", bytes.NewReader(b))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()
			if resp.StatusCode != http.StatusNoContent {
				body, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("server returned %s: %s", resp.Status, string(body))
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "status:", "OK")
			return nil
		},
	}
	return toggleCmd
}
