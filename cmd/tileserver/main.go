// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command tileserver serves generated tiles over HTTP and websockets.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	_ "net/http/pprof"

	"github.com/SoftbearStudios/tilegen/cloud"
	"github.com/SoftbearStudios/tilegen/config"
	"github.com/SoftbearStudios/tilegen/logger"
	"github.com/SoftbearStudios/tilegen/server"
	"golang.org/x/net/netutil"
)

func main() {
	var (
		configPath     string
		logFile        string
		port           int
		maxConnections int
	)

	flag.StringVar(&configPath, "config", "tilegen.yaml", "YAML config `file` (defaults if missing)")
	flag.StringVar(&logFile, "tile-log", "", "append a CSV row per rendered tile to `file`")
	flag.IntVar(&port, "port", 0, "http service port (overrides config)")
	flag.IntVar(&maxConnections, "max-connections", -1, "maximum number of inbound TCP connections (overrides config)")
	flag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	if maxConnections >= 0 {
		cfg.Server.MaxConnections = maxConnections
	}

	if err := logger.Initialize(cfg.Logging.ApplyEnv()); err != nil {
		log.Fatal(err)
	}

	var c *cloud.Cloud
	if cfg.Cloud.Enabled {
		c, err = cloud.New(cfg.Cloud)
	} else if cfg.Catalog.SQLitePath != "" {
		c, err = cloud.NewLocal(cfg.Output.Dir, cfg.Catalog.SQLitePath)
	}
	if err != nil {
		// Cloud is not required for server to function, just log an error
		logger.Error("cloud error", "error", err)
		c = nil
	}
	defer c.Close()

	s, err := server.New(server.Options{
		Config:  cfg,
		Cloud:   c,
		LogFile: logFile,
	})
	if err != nil {
		log.Fatal(err)
	}

	http.Handle("/", s.Handler())

	l, err := net.Listen("tcp", fmt.Sprint(":", cfg.Server.Port))
	if err != nil {
		log.Fatalf("Listen: %v", err)
	}
	defer l.Close()

	if cfg.Server.MaxConnections > 0 {
		l = netutil.LimitListener(l, cfg.Server.MaxConnections)
	}

	logger.Info("tile server started", "addr", l.Addr().String(), "cloud", c.String())

	log.Fatal("Serve: ", http.Serve(l, nil))
}
