/* Copyright (c) 2025 Jonah Largen
 * SPDX-License-Identifier: BSD-3-Clause */
package http

import (
    "context"
    "net/http"

    "github.com/JonahLargen/TaigaDashboard/internal/config"
    "github.com/JonahLargen/TaigaDashboard/internal/service"
    "github.com/gin-gonic/gin"
    "github.com/rs/zerolog"
)

type dashboardService interface {
    Dashboard(ctx context.Context) (*service.Dashboard, error)
    Refresh(ctx context.Context) (*service.Dashboard, error)
}

type Handlers struct {
    cfg config.Config
    log zerolog.Logger
    svc dashboardService
}

func NewHandlers(cfg config.Config, log zerolog.Logger, svc dashboardService) *Handlers {
    return &Handlers{cfg: cfg, log: log, svc: svc}
}

func (h *Handlers) Healthz(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handlers) Dashboard(c *gin.Context) {
    d, err := h.svc.Dashboard(c.Request.Context())
    if err != nil {
        c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, d)
}

func (h *Handlers) RefreshNow(c *gin.Context) {
    // Run detached from the HTTP request to avoid context cancellation
    go func() {
        if _, err := h.svc.Refresh(context.Background()); err != nil {
            h.log.Error().Err(err).Msg("background refresh failed")
        }
    }()
    c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}
