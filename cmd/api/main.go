/* Copyright (c) 2025 Jonah Largen
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
    "context"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/JonahLargen/TaigaDashboard/internal/adapters/taiga"
    "github.com/JonahLargen/TaigaDashboard/internal/config"
    "github.com/JonahLargen/TaigaDashboard/internal/http"
    "github.com/JonahLargen/TaigaDashboard/internal/jobs"
    "github.com/JonahLargen/TaigaDashboard/internal/logger"
    "github.com/JonahLargen/TaigaDashboard/internal/service"
    "github.com/joho/godotenv"
)

func main() {
    _ = godotenv.Load()
    cfg := config.Load()
    log := logger.New(cfg)
    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()

    // Adapters
    tc := taiga.NewClient(cfg, log)

    // Services
    svc := service.New(cfg, log, tc)

    // Warm the cache before serving so the first request is cheap
    go func() {
        ctx2, cancel2 := context.WithTimeout(ctx, 2*time.Minute)
        defer cancel2()
        if err := svc.Warm(ctx2); err != nil {
            log.Error().Err(err).Msg("initial warm failed; first request will fetch")
        }
    }()

    // HTTP server (Gin)
    router := http.NewRouter(cfg, log, svc)

    // Cron
    cr := jobs.NewCron(cfg, log, svc)
    cr.Start()
    defer cr.Stop()

    // graceful shutdown
    errCh := make(chan error, 1)
    go func() { errCh <- router.Run(cfg.HTTPAddr) }()

    sigCh := make(chan os.Signal, 1)
    signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

    select {
    case <-sigCh:
        log.Info().Msg("shutting down...")
    case err := <-errCh:
        if err != nil { log.Error().Err(err).Msg("http server error") }
    }

    time.Sleep(500 * time.Millisecond)
}
