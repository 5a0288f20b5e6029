// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command httpserver serves a directory, configured by switches:
//
//	httpserver --port 80 c:\wwwroot\inetpub -r
package main

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/yeetrun/switchparse/pkg/env"
	"github.com/yeetrun/switchparse/pkg/switchparse"
)

type AuthenticationType int

const (
	AuthNone AuthenticationType = iota
	AuthBarerToken
	AuthCookie
)

func (AuthenticationType) EnumNames() []string {
	return []string{"None", "BarerToken", "Cookie"}
}

type HttpServerOptions struct {
	Recursive          bool
	Port               uint16 `default:"8080"`
	AuthenticationType AuthenticationType
	AllowAnonymous     bool
	Token              string
}

func main() {
	args := os.Args[1:]
	opts, err := switchparse.Parse[HttpServerOptions](&args, switchparse.WithEnumStyle(switchparse.OriginalCase|switchparse.IgnoreCase))
	if err != nil {
		var ise *switchparse.InvalidSwitchError
		if errors.As(err, &ise) {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}
		log.Fatal(err)
	}
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	addr := fmt.Sprintf(":%d", opts.Port)
	log.Printf("serving %s on %s", root, addr)
	log.Fatal(http.ListenAndServe(addr, newHandler(root, opts)))
}

func newHandler(root string, opts *HttpServerOptions) http.Handler {
	files := http.FileServer(http.Dir(root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r, opts) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.URL.Path == "/env" {
			serveEnv(w, struct {
				Recursive          bool
				Port               uint16
				AuthenticationType AuthenticationType
				AllowAnonymous     bool
			}{opts.Recursive, opts.Port, opts.AuthenticationType, opts.AllowAnonymous})
			return
		}
		if !opts.Recursive && strings.Count(filepath.ToSlash(filepath.Clean(r.URL.Path)), "/") > 1 {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// serveEnv writes v as environment assignments, or a 500 if it cannot be
// rendered.
func serveEnv(w http.ResponseWriter, v any) {
	var buf bytes.Buffer
	if err := env.Write(&buf, "HTTP_", v); err != nil {
		log.Printf("failed to render env: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(buf.Bytes())
}

func authorized(r *http.Request, opts *HttpServerOptions) bool {
	if opts.AllowAnonymous {
		return true
	}
	switch opts.AuthenticationType {
	case AuthBarerToken:
		return r.Header.Get("Authorization") == "Bearer "+opts.Token
	case AuthCookie:
		c, err := r.Cookie("token")
		return err == nil && c.Value == opts.Token
	}
	return true
}
