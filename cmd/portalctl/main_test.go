// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/uniportal/internal/platform/sec"
)

// fakeAPI answers the three auth routes used by the session commands.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "Secret123!" || body["role"] != "enseignant" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Mot de passe incorrect","code":"INVALID_SECRET"}`))
			return
		}
		_, _ = w.Write([]byte(`{"user":{"firstName":"Paul","email":"paul.durand@univ.fr","token":"tok","role":"enseignant"},"token":"tok"}`))
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":3,"email":"paul.durand@univ.fr","firstName":"Paul","lastName":"Durand","role":"enseignant"}`))
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

/*
TestAPIURL verifies flag, environment and default precedence.
*/
func TestAPIURL(t *testing.T) {
	t.Setenv(envAPIURL, "")
	assert.Equal(t, defaultAPIURL, (&options{}).APIURL())

	t.Setenv(envAPIURL, "http://backend.example.com/")
	assert.Equal(t, "http://backend.example.com", (&options{}).APIURL())

	opts := &options{apiURL: "http://flag.example.com"}
	assert.Equal(t, "http://flag.example.com", opts.APIURL())
}

/*
TestSessionLifecycle walks login, whoami and logout against one session file.
*/
func TestSessionLifecycle(t *testing.T) {
	server := fakeAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "session.json")
	flags := []string{"--api-url", server.URL, "--session-file", sessionFile}

	out, _, err := run(t, "Secret123!\n", append([]string{"login", "--email", "paul.durand@univ.fr", "--role", "enseignant"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as paul.durand@univ.fr (enseignant)")

	info, err := os.Stat(sessionFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, _, err = run(t, "", append([]string{"whoami"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Paul Durand")
	assert.Contains(t, out, "enseignant")

	out, _, err = run(t, "", append([]string{"logout"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")
	assert.NoFileExists(t, sessionFile)

	_, _, err = run(t, "", append([]string{"whoami"}, flags...)...)
	assert.ErrorIs(t, err, errNotSignedIn)
}

/*
TestLogin_Rejected verifies a failed login leaves no session behind.
*/
func TestLogin_Rejected(t *testing.T) {
	server := fakeAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "session.json")

	_, _, err := run(t, "", "login", "--email", "paul.durand@univ.fr", "--password", "wrong",
		"--role", "enseignant", "--api-url", server.URL, "--session-file", sessionFile)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Mot de passe incorrect")
	assert.NoFileExists(t, sessionFile)
}

/*
TestHashPassword verifies the printed hash checks against the input.
*/
func TestHashPassword(t *testing.T) {
	out, _, err := run(t, "Secret123!\n", "hash-password")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	assert.True(t, sec.CheckPasswordHash("Secret123!", hash))

	_, _, err = run(t, "weak\n", "hash-password")
	assert.Error(t, err)
}

func TestReadSecret(t *testing.T) {
	secret, err := readSecret(strings.NewReader("pa ss\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "pa ss", secret)

	_, err = readSecret(strings.NewReader(""))
	assert.Error(t, err)
}
