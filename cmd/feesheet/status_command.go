package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"feesheet/internal/api"
)

const statusTimeout = 3 * time.Second

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether a feesheet server is running",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			base := statusURL(cfg.Server.Bind)
			status, fetchErr := fetchStatus(cmd.Context(), base)
			if asJSON {
				if fetchErr != nil {
					return fetchErr
				}
				return writeJSON(cmd, status)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Server", colorize) {
				fmt.Fprintln(out, line)
			}
			if fetchErr != nil {
				fmt.Fprintln(out, renderStatusLine("Status", statusError, "not reachable at "+base, colorize))
				fmt.Fprintln(out, renderStatusLine("Hint", statusInfo, "start it with `feesheet serve`", colorize))
				return nil
			}
			fmt.Fprintln(out, renderStatusLine("Status", statusOK, "running (pid "+strconv.Itoa(status.PID)+")", colorize))
			fmt.Fprintln(out, renderStatusLine("Address", statusInfo, "http://"+status.Bind, colorize))
			if status.RunID != "" {
				fmt.Fprintln(out, renderStatusLine("Run", statusInfo, status.RunID, colorize))
			}
			if status.StartedAt != "" {
				fmt.Fprintln(out, renderStatusLine("Started", statusInfo, status.StartedAt, colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Sheets", statusInfo, strconv.Itoa(status.Sheets)+" open", colorize))
			if status.LockFilePath != "" {
				fmt.Fprintln(out, renderStatusLine("Lock", statusInfo, status.LockFilePath, colorize))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// statusURL turns a bind address into a dialable base URL. Wildcard hosts
// are reached over loopback.
func statusURL(bind string) string {
	host, port, err := net.SplitHostPort(strings.TrimSpace(bind))
	if err != nil {
		return "http://" + strings.TrimSpace(bind)
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func fetchStatus(parent context.Context, base string) (api.StatusResponse, error) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, statusTimeout)
	defer cancel()

	var status api.StatusResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/api/status", nil)
	if err != nil {
		return status, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return status, fmt.Errorf("query server status: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return status, fmt.Errorf("query server status: unexpected %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return status, fmt.Errorf("decode server status: %w", err)
	}
	return status, nil
}
