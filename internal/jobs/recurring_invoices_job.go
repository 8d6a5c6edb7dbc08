package jobs

import (
	"context"
	"time"

	"github.com/feinwerk/workbench-api/internal/domain"
	"go.uber.org/zap"
)

// RecurringInvoicesJobName is the name of the recurring invoice materialization job
const RecurringInvoicesJobName = "recurring_invoices"

// DefaultRecurringInvoicesTimeout bounds a single materialization run
const DefaultRecurringInvoicesTimeout = 5 * time.Minute

// RecurringInvoiceService defines the interface for materializing due
// recurring invoices. It allows the job to call the service without
// importing the service package directly.
type RecurringInvoiceService interface {
	// CreateDueInvoices creates invoices for every recurring template whose
	// next period has started, advancing each template past the periods it
	// covered. Returns the invoices created.
	CreateDueInvoices(ctx context.Context) ([]domain.InvoiceDTO, error)
}

// RecurringInvoicesJob materializes invoices from recurring templates that
// have come due.
type RecurringInvoicesJob struct {
	invoiceService RecurringInvoiceService
	logger         *zap.Logger
	timeout        time.Duration
}

// NewRecurringInvoicesJob creates a new recurring invoice job.
// The timeout controls how long a single run is allowed to take.
func NewRecurringInvoicesJob(invoiceService RecurringInvoiceService, logger *zap.Logger, timeout time.Duration) *RecurringInvoicesJob {
	return &RecurringInvoicesJob{
		invoiceService: invoiceService,
		logger:         logger,
		timeout:        timeout,
	}
}

// Run executes the recurring invoice job.
// This is called by the scheduler according to the cron expression.
func (j *RecurringInvoicesJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting recurring invoice job")

	invoices, err := j.invoiceService.CreateDueInvoices(ctx)
	if err != nil {
		j.logger.Error("recurring invoice job failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("recurring invoice job finished",
		zap.Int("invoices_created", len(invoices)),
		zap.Duration("duration", time.Since(start)))
}
