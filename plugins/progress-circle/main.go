package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-plugin"

	"github.com/addielponce/anki-progress-circle/internal/bootstrap"
	"github.com/addielponce/anki-progress-circle/internal/platform/addonrpc"
	"github.com/addielponce/anki-progress-circle/internal/platform/config"
	"github.com/addielponce/anki-progress-circle/internal/platform/logging"
)

// The add-on takes its configuration from PROGRESS_CIRCLE_* variables, which
// the host passes through when it launches the process.
func main() {
	cfg, err := config.Load(config.NewViper())
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logging.New(logging.Options{Name: "progress-circle", Level: cfg.LogLevel, File: cfg.LogFile, JSON: true})

	app, err := bootstrap.New(cfg, log)
	if err != nil {
		log.Error("start add-on", "error", err)
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: addonrpc.HandshakeConfig,
		Plugins:         addonrpc.PluginMap(app.AddonServer()),
		GRPCServer:      plugin.DefaultGRPCServer,
		Logger:          log,
	})
}
