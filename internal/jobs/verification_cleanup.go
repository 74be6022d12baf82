// File: internal/jobs/verification_cleanup.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"profilehub_backend/internal/config"
	"profilehub_backend/internal/user"
)

// VerificationCleanupJob nulls stale verification codes on accounts that
// never completed verification.
type VerificationCleanupJob struct {
	repo          user.Repository
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewVerificationCleanupJob creates a new VerificationCleanupJob.
func NewVerificationCleanupJob(
	repo user.Repository,
	logger *zap.Logger,
	cfg *config.Config,
) *VerificationCleanupJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &VerificationCleanupJob{
		repo:          repo,
		logger:        logger.Named("VerificationCleanupJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *VerificationCleanupJob) SetupAndStart() error {
	jobSpec := j.cfg.VerificationCleanupSchedule // e.g. "@daily", "0 1 * * *"
	if jobSpec == "" {
		j.logger.Warn("Verification cleanup schedule not defined (VERIFICATION_CLEANUP_SCHEDULE). Job will not run.")
		return nil // Not a fatal error, just won't run
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule verification cleanup job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Verification cleanup job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob is the actual work performed by the cron job.
func (j *VerificationCleanupJob) runJob() {
	j.logger.Info("Starting verification cleanup run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-time.Duration(j.cfg.VerificationCodeTTLHours) * time.Hour)
	cleared, err := j.repo.ClearExpiredVerificationCodes(ctx, cutoff)
	if err != nil {
		j.logger.Error("Verification cleanup run failed", zap.Error(err))
	} else {
		j.logger.Info("Verification cleanup run completed", zap.Int64("codes_cleared", cleared))
	}
}

// Stop gracefully stops the cron scheduler.
func (j *VerificationCleanupJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping verification cleanup scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Verification cleanup scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Verification cleanup scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

// Info logs routine messages from cron.
func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

// Error logs error messages from cron.
func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
