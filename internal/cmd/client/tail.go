package client

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

// newTailCommand constructs the `tail` command. It consumes the SSE stream
// at /v1/logs/tail and prints entries as they are captured.
func newTailCommand(baseURL BaseURLFunc) *cobra.Command {
	tailCmd := &cobra.Command{
		Use:   "tail",
		Short: "Stream captured entries as they arrive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, _ := cmd.Flags().GetString("filter")
			since, _ := cmd.Flags().GetString("since")
			limit, _ := cmd.Flags().GetInt("limit")
			asJSON, _ := cmd.Flags().GetBool("json")

			q := url.Values{}
			if filter != "" {
				q.Set("filter", filter)
			}
			if since != "" {
				q.Set("since", since)
			}

			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet,
				baseURL()+"/v1/logs/tail?"+q.Encode(), nil)
			if err != nil {
				return err
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("server returned %s", resp.Status)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			sc := bufio.NewScanner(resp.Body)
			sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			seen := 0
			for sc.Scan() {
				line := sc.Text()
				if !strings.HasPrefix(line, "data: ") {
					continue
				}
				var e entryJSON
				if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &e); err != nil {
					continue
				}
				if asJSON {
					_ = enc.Encode(e)
				} else {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderEntry(e))
				}
				seen++
				if limit > 0 && seen >= limit {
					return nil
				}
			}
			if err := sc.Err(); err != nil && cmd.Context().Err() == nil {
				return err
			}
			return nil
		},
	}
	tailCmd.Flags().String("filter", "", "CEL filter (server-side)")
	tailCmd.Flags().String("since", "", "Resume after this entry ID")
	tailCmd.Flags().Int("limit", 0, "Stop after N entries (0 = infinite)")
	tailCmd.Flags().Bool("json", false, "Emit raw JSON instead of styled lines")
	return tailCmd
}
