package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"mekina/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReconcileSchedule runs a sweep every thirty seconds.
const DefaultReconcileSchedule = "*/30 * * * * *"

// DefaultReconcileBatchSize bounds how many pending payments one sweep checks.
const DefaultReconcileBatchSize = 50

type paymentReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcilePaymentsCommand) (commands.ReconcileResult, error)
}

// PaymentReconciliationJob periodically asks the gateway about gateway payments
// that are still pending. Overlapping runs are skipped, and every run is bounded
// by a timeout so a hanging gateway cannot pile sweeps up.
type PaymentReconciliationJob struct {
	handler   paymentReconciler
	schedule  string
	batchSize int
	timeout   time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPaymentReconciliationJob creates the job. An empty schedule or a
// non-positive batch size falls back to the defaults.
func NewPaymentReconciliationJob(
	handler paymentReconciler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *PaymentReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	if batchSize < 1 {
		batchSize = DefaultReconcileBatchSize
	}

	logger = logger.With("component", "payment_reconciliation_job")
	return &PaymentReconciliationJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		timeout:   time.Minute,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger: logger})),
		),
		logger: logger,
	}
}

func (j *PaymentReconciliationJob) Name() string {
	return "payment reconciliation"
}

// Start registers the sweep with the scheduler and starts it.
func (j *PaymentReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		_, _ = j.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling new sweeps and waits for a running one to finish.
func (j *PaymentReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Payment reconciliation job stopped")
}

// RunOnce performs a single sweep and logs its outcome.
func (j *PaymentReconciliationJob) RunOnce(ctx context.Context) (commands.ReconcileResult, error) {
	cmd, err := commands.NewReconcilePaymentsCommand(j.batchSize)
	if err != nil {
		return commands.ReconcileResult{}, err
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			j.logger.WarnContext(ctx, "Payment reconciliation interrupted", "checked", result.Checked)
		} else {
			j.logger.ErrorContext(ctx, "Payment reconciliation finished with errors",
				"checked", result.Checked, "settled", result.Settled, "error", err)
		}
		return result, err
	}

	if result.Checked > 0 {
		j.logger.InfoContext(ctx, "Payment reconciliation finished",
			"checked", result.Checked, "settled", result.Settled)
	}
	return result, nil
}

// cronLogger routes the scheduler's own messages to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
