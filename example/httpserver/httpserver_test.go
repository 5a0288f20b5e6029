// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yeetrun/switchparse/pkg/switchparse"
)

func TestOptions(t *testing.T) {
	args := []string{"--port", "80", `c:\wwwroot\inetpub`, "-r", "--authenticationtype", "cookie"}
	opts, err := switchparse.Parse[HttpServerOptions](&args, switchparse.WithEnumStyle(switchparse.OriginalCase|switchparse.IgnoreCase))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !opts.Recursive || opts.Port != 80 || opts.AuthenticationType != AuthCookie {
		t.Fatalf("opts = %+v", *opts)
	}
	if len(args) != 1 || args[0] != `c:\wwwroot\inetpub` {
		t.Fatalf("args = %v", args)
	}
}

func TestHandler(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	opts := &HttpServerOptions{Port: 8080, AuthenticationType: AuthBarerToken, Token: "secret"}
	h := newHandler(root, opts)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/index.txt", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/index.txt", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "hi" {
		t.Fatalf("status = %d, body = %q", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/env", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), "HTTP_AUTHENTICATION_TYPE=BarerToken") {
		t.Fatalf("env body = %q", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/sub/file.txt", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("nested status = %d, want 404 without -r", rec.Code)
	}
}

func TestServeEnvError(t *testing.T) {
	rec := httptest.NewRecorder()
	serveEnv(rec, 42)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
