package jobs

import (
    "context"
    "time"

    "github.com/JonahLargen/TaigaDashboard/internal/config"
    "github.com/robfig/cron/v3"
    "github.com/rs/zerolog"
)

type service interface { Warm(ctx context.Context) error }

type Cron struct {
    cfg config.Config
    log zerolog.Logger
    svc service
    c   *cron.Cron
}

func NewCron(cfg config.Config, log zerolog.Logger, svc service) *Cron {
    loc, _ := time.LoadLocation(cfg.TZ)
    c := cron.New(cron.WithLocation(loc), cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow)))
    cr := &Cron{cfg: cfg, log: log, svc: svc, c: c}
    _, _ = c.AddFunc(cfg.RefreshCron, cr.warm)
    return cr
}

func (cr *Cron) Start() { cr.c.Start() }
func (cr *Cron) Stop() { cr.c.Stop() }

func (cr *Cron) warm() {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
    defer cancel()
    cr.log.Info().Msg("cron: warming dashboard cache")
    if err := cr.svc.Warm(ctx); err != nil { cr.log.Error().Err(err).Msg("cron: warm failed") }
}
