// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type sessionPayload struct {
	Profile *struct {
		IdentityID      string `json:"identity_id"`
		Email           string `json:"email"`
		PlatformRole    string `json:"platform_role"`
		Status          string `json:"status"`
		DefaultTenantID string `json:"default_tenant_id,omitempty"`
		DefaultContext  string `json:"default_context,omitempty"`
	} `json:"profile,omitempty"`
	Memberships []struct {
		TenantID   string   `json:"tenant_id"`
		TenantName string   `json:"tenant_name"`
		Status     string   `json:"status"`
		Roles      []string `json:"roles"`
	} `json:"memberships"`
	ActiveTenantID    string   `json:"active_tenant_id,omitempty"`
	ActiveContext     string   `json:"active_context,omitempty"`
	AvailableContexts []string `json:"available_contexts"`
	AccessState       string   `json:"access_state"`
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect and steer the portal session",
}

var resolveSessionCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		var payload sessionPayload
		if err := callSessionAPI(cmd.Context(), http.MethodGet, "/api/v0/session", nil, &payload); err != nil {
			return fmt.Errorf("failed to resolve session: %w", err)
		}

		printSession(&payload)
		return nil
	},
}

var switchTenantSessionCmd = &cobra.Command{
	Use:   "switch-tenant [tenant-id]",
	Short: "Switch the active tenant for this device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]string{"tenant_id": args[0]}

		var payload sessionPayload
		if err := callSessionAPI(cmd.Context(), http.MethodPost, "/api/v0/session/tenant", body, &payload); err != nil {
			return fmt.Errorf("failed to switch tenant: %w", err)
		}

		printSession(&payload)
		return nil
	},
}

var switchContextSessionCmd = &cobra.Command{
	Use:   "switch-context [licensing|publishing]",
	Short: "Switch the active app context for this device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]string{"context": args[0]}

		var payload sessionPayload
		if err := callSessionAPI(cmd.Context(), http.MethodPost, "/api/v0/session/context", body, &payload); err != nil {
			return fmt.Errorf("failed to switch context: %w", err)
		}

		printSession(&payload)
		return nil
	},
}

func callSessionAPI(ctx context.Context, method, path string, body, out any) error {
	endpoint := httpEndpoint
	if !strings.HasPrefix(endpoint, "http") {
		endpoint = "http://" + endpoint
	}
	endpoint = strings.TrimSuffix(endpoint, "/")

	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-Authenticated-Identity-Id", userID)
	}
	if deviceID != "" {
		req.Header.Set("X-Device-Id", deviceID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

func printSession(payload *sessionPayload) {
	fmt.Printf("Access state: %s\n", payload.AccessState)
	if payload.Profile != nil {
		fmt.Printf("Profile: %s (%s, %s)\n", payload.Profile.Email, payload.Profile.PlatformRole, payload.Profile.Status)
	}
	if payload.ActiveTenantID != "" {
		fmt.Printf("Active tenant: %s\n", payload.ActiveTenantID)
	}
	if payload.ActiveContext != "" {
		fmt.Printf("Active context: %s (available: %s)\n", payload.ActiveContext, strings.Join(payload.AvailableContexts, ", "))
	}

	if len(payload.Memberships) == 0 {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TENANT_ID\tNAME\tSTATUS\tROLES")
	for _, m := range payload.Memberships {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.TenantID, m.TenantName, m.Status, strings.Join(m.Roles, ","))
	}
	w.Flush()
}

func init() {
	sessionCmd.AddCommand(resolveSessionCmd)
	sessionCmd.AddCommand(switchTenantSessionCmd)
	sessionCmd.AddCommand(switchContextSessionCmd)
	rootCmd.AddCommand(sessionCmd)
}
