package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/superadriano/hana-backend/internal/auth/domain"
)

// Sweeper purges expired and revoked credential rows. Each run recomputes
// eligibility from current timestamps, so runs are idempotent and a failed
// run is simply retried on the next tick.
type Sweeper struct {
	repo     domain.Repository
	interval time.Duration
	log      *zap.Logger
}

func NewSweeper(repo domain.Repository, interval time.Duration, log *zap.Logger) *Sweeper {
	return &Sweeper{repo: repo, interval: interval, log: log}
}

// Run sweeps immediately to clear any backlog from downtime, then on every
// tick until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweepAndLog(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepAndLog(ctx)
		}
	}
}

// Sweep deletes expired or revoked refresh tokens, expired sessions and
// expired verification codes.
func (s *Sweeper) Sweep(ctx context.Context) (domain.SweepResult, error) {
	return s.repo.DeleteExpired(ctx)
}

func (s *Sweeper) sweepAndLog(ctx context.Context) {
	res, err := s.Sweep(ctx)
	if err != nil {
		s.log.Error("credential sweep failed", zap.Error(err))
		return
	}

	s.log.Info("cleaned up expired tokens and sessions",
		zap.Int64("refresh_tokens", res.RefreshTokens),
		zap.Int64("sessions", res.Sessions),
		zap.Int64("verification_codes", res.VerificationCodes),
	)
}
