package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/presensia/timetrack-backend-go/internal/pkg/jwt"
)

type SessionJobs struct {
	jwtService jwt.Service
}

func NewSessionJobs(jwtService jwt.Service) *SessionJobs {
	return &SessionJobs{
		jwtService: jwtService,
	}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("prune_revoked_tokens", 1*time.Hour, j.PruneRevokedTokens)
}

// PruneRevokedTokens sweeps revocation entries for tokens that have expired,
// keeping the in-memory revocation list bounded.
func (j *SessionJobs) PruneRevokedTokens(ctx context.Context) error {
	pruned := j.jwtService.PruneRevokedTokens(time.Now())
	if pruned > 0 {
		slog.Info("Cron: Pruned expired token revocations", "count", pruned)
	}
	return nil
}
