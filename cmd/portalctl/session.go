// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/uniportal/internal/client"
	"github.com/taibuivan/uniportal/internal/platform/sec"
	"github.com/taibuivan/uniportal/internal/users/bridge"
)

// errNotSignedIn is returned by commands that need a bridged session.
var errNotSignedIn = errors.New("not signed in: run portalctl login first")

func newLoginCmd(opts *options) *cobra.Command {
	var email, password, role string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a role-qualified login",
		Long: `Sign in as a student (etudiant) or an instructor (enseignant).

The password is read from standard input when --password is omitted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				var err error
				if password, err = readSecret(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			session, err := client.New(opts.APIURL()).Login(cmd.Context(), email, password, role)
			if err != nil {
				return err
			}

			b, err := opts.openBridge()
			if err != nil {
				return err
			}
			if err := b.SetSession(session); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", session.User.Email, session.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (read from stdin when omitted)")
	cmd.Flags().StringVar(&role, "role", string(sec.RoleStudent), "Account role: etudiant or enseignant")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newWhoamiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := opts.openBridge()
			if err != nil {
				return err
			}
			if b.State() != bridge.StateAuthenticated {
				return errNotSignedIn
			}

			principal, err := client.New(opts.APIURL()).Me(cmd.Context(), b.Token())
			if client.IsStatus(err, http.StatusUnauthorized) {
				_ = b.SetSession(nil)
				return errors.New("session expired: run portalctl login again")
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:     %d\n", principal.ID)
			fmt.Fprintf(out, "Name:   %s\n", principal.DisplayName())
			fmt.Fprintf(out, "Email:  %s\n", principal.Email)
			fmt.Fprintf(out, "Role:   %s\n", principal.Role)
			if principal.StudentNumber != "" {
				fmt.Fprintf(out, "Number: %s\n", principal.StudentNumber)
			}
			return nil
		},
	}
}

func newLogoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := opts.openBridge()
			if err != nil {
				return err
			}

			// The local record goes even when the API is unreachable.
			remoteErr := client.New(opts.APIURL()).Logout(cmd.Context())
			if err := b.SetSession(nil); err != nil {
				return err
			}

			if remoteErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", remoteErr)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

// readSecret reads a single line from r without its line terminator.
func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	secret := strings.TrimRight(line, "\r\n")
	if secret == "" {
		return "", errors.New("password is required")
	}
	return secret, nil
}
