package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/config"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/logging"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/server"
)

var (
	port       = flag.Int("port", 0, "listen port (used only when config.toml has no [server].port)")
	devMode    = flag.Bool("dev", false, "development mode")
	dataDir    = flag.String("dataDir", "", "data directory (overrides config.toml)")
	configPath = flag.String("config", "", "config file (default: config.toml next to the executable)")
)

func main() {
	flag.Parse()

	var (
		cfg  *config.AppConfig
		info config.LoadConfigInfo
		err  error
	)
	if *configPath != "" {
		cfg, info, err = config.LoadFile(*configPath)
	} else {
		cfg, info, err = config.LoadConfigWithInfo()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
		cfg.Log.Level = "debug"
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	log := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("config", info.Path).Str("data_dir", config.DataDir(cfg)).Msg("RTC score import service")

	ctx := context.Background()
	srv, err := server.NewServer(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init server")
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := srv.Run(addr); err != nil {
			log.Fatal().Err(err).Msg("serve")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
