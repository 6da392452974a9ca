// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

// Package main is the geosnap command-line client.
//
// geosnap signs in to a Geosnap backend, browses and uploads travel photos,
// shows the reward wallet and redeems it, and gives admins the photo
// moderation queue and reward settings.
//
// # Configuration
//
// Configuration is loaded via koanf with layered sources (highest priority wins):
//   - Environment variables (GEOSNAP_API_URL, GEOSNAP_LOG_LEVEL, ...)
//   - Config file (--config, CONFIG_PATH, ./geosnap.yaml or the user config dir)
//   - Built-in defaults
//
// The session token is kept in a BadgerDB directory under the user config
// dir so one login serves later invocations.
//
// # Example Usage
//
//	export GEOSNAP_API_URL=https://api.geosnap.example/api
//	geosnap login asha@example.com
//	geosnap upload --place-name Gokarna beach.jpg sunset.jpg
//	geosnap wallet
//	geosnap redeem --amount 250
//	geosnap watch --interval 30s
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the running command. `geosnap watch` stops its
// pollers and the metrics endpoint before exiting.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/geosnap/internal/config"
	"github.com/tomtom215/geosnap/internal/session"
)

// env is everything a run touches outside the process.
type env struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	loadConfig  func(path string) (*config.Config, error)
	openStorage func(cfg config.SessionConfig) (session.Storage, error)
}

func osEnv() env {
	return env{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		loadConfig:  config.LoadWithKoanf,
		openStorage: session.OpenStorage,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], osEnv())
	stop()
	os.Exit(code)
}
