// File: internal/jobs/lead_digest.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"lead_capture_backend/internal/config"
	"lead_capture_backend/internal/lead"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// LeadDigestJob periodically logs how many leads were captured in the last
// 24 hours. It is read-only: the submission workflow never depends on it.
type LeadDigestJob struct {
	leadRepo      lead.Repository
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewLeadDigestJob creates a new LeadDigestJob.
func NewLeadDigestJob(
	leadRepo lead.Repository,
	logger *zap.Logger,
	cfg *config.Config,
) *LeadDigestJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &LeadDigestJob{
		leadRepo:      leadRepo,
		logger:        logger.Named("LeadDigestJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *LeadDigestJob) SetupAndStart() error {
	jobSpec := j.cfg.LeadDigestSchedule
	if jobSpec == "" {
		j.logger.Warn("Lead digest schedule not defined (LEAD_DIGEST_SCHEDULE). Job will not run.")
		return nil // Not a fatal error, just won't run
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule lead digest job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Lead digest job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob is the actual work performed by the cron job.
func (j *LeadDigestJob) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	since := time.Now().Add(-24 * time.Hour)
	count, err := j.leadRepo.CountCreatedSince(ctx, since)
	if err != nil {
		j.logger.Error("Lead digest job run failed", zap.Error(err))
		return
	}
	j.logger.Info("Lead digest", zap.Int64("leads_last_24h", count))
}

// Stop halts the cron scheduler.
func (j *LeadDigestJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping lead digest job scheduler...")
		ctx := j.cronScheduler.Stop()
		select {
		case <-ctx.Done():
		case <-time.After(5 * time.Second):
			j.logger.Warn("Timed out waiting for running digest job to finish.")
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
		}
	}
	return fields
}
