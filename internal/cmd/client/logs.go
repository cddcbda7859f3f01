package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

func getJSON(url string, out any) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %s: %s", resp.Status, string(b))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// newLogsCommand constructs the `logs` command.
func newLogsCommand(baseURL BaseURLFunc) *cobra.Command {
	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "List recorded log entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			source, _ := cmd.Flags().GetString("source")
			filter, _ := cmd.Flags().GetString("filter")
			limit, _ := cmd.Flags().GetInt("limit")
			grouped, _ := cmd.Flags().GetBool("grouped")
			asJSON, _ := cmd.Flags().GetBool("json")

			if grouped {
				return runLogsGrouped(cmd, baseURL(), asJSON)
			}

			q := url.Values{}
			if source != "" {
				q.Set("source", source)
			}
			if filter != "" {
				q.Set("filter", filter)
			}
			if limit > 0 {
				q.Set("limit", strconv.Itoa(limit))
			}
			var body struct {
				Entries []entryJSON `json:"entries"`
			}
			if err := getJSON(baseURL()+"/v1/logs?"+q.Encode(), &body); err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				for _, e := range body.Entries {
					_ = enc.Encode(e)
				}
				return nil
			}
			for _, e := range body.Entries {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderEntry(e))
			}
			return nil
		},
	}
	logsCmd.Flags().String("source", "", "Only entries attributed to this source")
	logsCmd.Flags().String("filter", "", "CEL filter (server-side)")
	logsCmd.Flags().Int("limit", 0, "Keep only the most recent N entries (0 = all)")
	logsCmd.Flags().Bool("grouped", false, "Group entries by attributed source")
	logsCmd.Flags().Bool("json", false, "Emit raw JSON instead of styled lines")
	return logsCmd
}

func runLogsGrouped(cmd *cobra.Command, base string, asJSON bool) error {
	var body struct {
		Groups map[string][]entryJSON `json:"groups"`
	}
	if err := getJSON(base+"/v1/logs/grouped", &body); err != nil {
		return err
	}
	if asJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(body)
	}
	names := make([]string, 0, len(body.Groups))
	for name := range body.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), groupStyle.Render(name))
		for _, e := range body.Groups[name] {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "  "+renderEntry(e))
		}
	}
	return nil
}
