// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command portalctl is the operator and scripting client of the UniPortal API.
//
// It keeps the role-qualified login in a local session file through the
// session bridge, so later invocations reuse the token:
//
//	portalctl login --email ada@univ.fr --role etudiant
//	portalctl whoami
//	portalctl logout
//
// Operator commands (hash-password, migrate) work without the API.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/uniportal/internal/users/bridge"
)

const (
	defaultAPIURL = "http://localhost:8080"
	envAPIURL     = "UNIPORTAL_API_URL"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	apiURL      string
	sessionFile string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "portalctl",
		Short: "Command-line client for the UniPortal API",
		Long: `portalctl signs in to the UniPortal API and keeps the session locally.

Environment Variables:
  UNIPORTAL_API_URL  Backend API URL (default: http://localhost:8080)`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "Backend API URL (overrides "+envAPIURL+")")
	root.PersistentFlags().StringVar(&opts.sessionFile, "session-file", "", "Session file (default: user config dir)")

	root.AddCommand(
		newLoginCmd(opts),
		newWhoamiCmd(opts),
		newLogoutCmd(opts),
		newHashPasswordCmd(),
		newMigrateCmd(),
	)
	return root
}

// APIURL returns the API URL from flag, env, or default (in priority order).
func (o *options) APIURL() string {
	if o.apiURL != "" {
		return strings.TrimRight(o.apiURL, "/")
	}
	if envURL := os.Getenv(envAPIURL); envURL != "" {
		return strings.TrimRight(envURL, "/")
	}
	return defaultAPIURL
}

// openBridge restores the bridged session from the session file.
func (o *options) openBridge() (*bridge.Bridge, error) {
	path := o.sessionFile
	if path == "" {
		var err error
		if path, err = bridge.DefaultPath(); err != nil {
			return nil, err
		}
	}

	b := bridge.New(bridge.NewFileStorage(path))
	b.Init()
	return b, nil
}
