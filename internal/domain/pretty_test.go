package domain_test

import (
	"testing"
	"time"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

func TestPrettyDealStatus_OpenWithDecisionDate(t *testing.T) {
	today := date(2026, 11, 1)
	deal := &domain.Deal{
		Status:             domain.DealOpen,
		DecisionExpectedOn: ptr(date(2026, 12, 24)),
	}

	status := domain.PrettyDealStatus(deal, today)

	assert.Equal(t, "Decision expected on 24.12.2026", status.Text)
	assert.Equal(t, "info", status.CSS)
}

func TestPrettyDealStatus_OpenWithoutDecisionDate(t *testing.T) {
	today := date(2026, 11, 1)
	deal := &domain.Deal{Status: domain.DealOpen}
	deal.CreatedAt = date(2026, 3, 15)

	status := domain.PrettyDealStatus(deal, today)

	assert.Equal(t, "Open since 15.03.2026", status.Text)
	assert.Equal(t, "info", status.CSS)
}

func TestPrettyDealStatus_OverdueDecisionTurnsWarning(t *testing.T) {
	today := date(2026, 11, 1)
	deal := &domain.Deal{
		Status:             domain.DealOpen,
		DecisionExpectedOn: ptr(date(2026, 10, 20)),
	}

	status := domain.PrettyDealStatus(deal, today)

	assert.Equal(t, "warning", status.CSS)
}

func TestPrettyDealStatus_ClosedLowercasesLabel(t *testing.T) {
	today := date(2026, 11, 1)
	deal := &domain.Deal{
		Status:   domain.DealAccepted,
		ClosedOn: ptr(date(2026, 10, 5)),
	}

	status := domain.PrettyDealStatus(deal, today)

	assert.Equal(t, "accepted on 05.10.2026", status.Text)
	assert.Equal(t, "success", status.CSS)

	deal.Status = domain.DealDeclined
	status = domain.PrettyDealStatus(deal, today)

	assert.Equal(t, "declined on 05.10.2026", status.Text)
	assert.Equal(t, "danger", status.CSS)
}

func TestPrettyProjectStatus_Qualifiers(t *testing.T) {
	project := &domain.Project{
		Status:    domain.ProjectWorkInProgress,
		Invoicing: true,
	}
	assert.Equal(t, "Work in progress", domain.PrettyProjectStatus(project).Text)

	project.Invoicing = false
	assert.Equal(t, "Work in progress, no invoicing", domain.PrettyProjectStatus(project).Text)

	project.Maintenance = true
	assert.Equal(t, "Work in progress, no invoicing, maintenance", domain.PrettyProjectStatus(project).Text)

	project.Invoicing = true
	assert.Equal(t, "Work in progress, maintenance", domain.PrettyProjectStatus(project).Text)
}

func TestPrettyTaskStatus(t *testing.T) {
	today := date(2026, 8, 10)

	done := &domain.Task{Status: domain.TaskDone, ClosedAt: ptr(date(2026, 8, 1))}
	assert.Equal(t, "Done since 01.08.2026", domain.PrettyTaskStatus(done, today).Text)

	withDue := &domain.Task{Status: domain.TaskInProgress, DueOn: ptr(date(2026, 8, 15))}
	assert.Equal(t, "In progress (due in 5 days)", domain.PrettyTaskStatus(withDue, today).Text)

	plain := &domain.Task{Status: domain.TaskBacklog}
	assert.Equal(t, "Backlog", domain.PrettyTaskStatus(plain, today).Text)
}

func TestPrettyDue(t *testing.T) {
	today := date(2026, 8, 10)

	assert.Equal(t, "overdue!", domain.PrettyDue(date(2026, 8, 9), today))
	assert.Equal(t, "due today!", domain.PrettyDue(date(2026, 8, 10), today))
	assert.Equal(t, "due tomorrow", domain.PrettyDue(date(2026, 8, 11), today))
	assert.Equal(t, "due in 2 days", domain.PrettyDue(date(2026, 8, 12), today))
	assert.Equal(t, "due in 30 days", domain.PrettyDue(date(2026, 9, 9), today))
}

// Due dates are stored as UTC midnights while today usually comes from a
// server-local clock. Only the calendar dates may count, otherwise the
// fractional offset rounds a missed due date into "due today!".
func TestPrettyDue_MixedZones(t *testing.T) {
	zurich := time.FixedZone("Europe/Zurich", 2*60*60)
	due := date(2026, 8, 27)

	today := time.Date(2026, 8, 28, 9, 30, 0, 0, zurich)
	assert.Equal(t, "overdue!", domain.PrettyDue(due, today))

	today = time.Date(2026, 8, 27, 23, 45, 0, 0, zurich)
	assert.Equal(t, "due today!", domain.PrettyDue(due, today))

	today = time.Date(2026, 8, 26, 0, 15, 0, 0, zurich)
	assert.Equal(t, "due tomorrow", domain.PrettyDue(due, today))
}

func TestPrettyOfferStatus(t *testing.T) {
	offer := &domain.Offer{Status: domain.OfferInPreparation}
	offer.CreatedAt = date(2026, 5, 1)
	assert.Equal(t, "In preparation since 01.05.2026", domain.PrettyOfferStatus(offer).Text)

	offer.Status = domain.OfferOffered
	offer.OfferedOn = ptr(date(2026, 5, 10))
	assert.Equal(t, "Offered on 10.05.2026", domain.PrettyOfferStatus(offer).Text)

	offer.Status = domain.OfferAccepted
	offer.ClosedOn = ptr(date(2026, 5, 20))
	assert.Equal(t, "Accepted on 20.05.2026", domain.PrettyOfferStatus(offer).Text)

	offer.Status = domain.OfferRejected
	assert.Equal(t, "Rejected on 20.05.2026", domain.PrettyOfferStatus(offer).Text)

	offer.Status = domain.OfferReplaced
	assert.Equal(t, "Replaced", domain.PrettyOfferStatus(offer).Text)
}

func TestPrettyInvoiceStatus(t *testing.T) {
	today := date(2026, 6, 20)

	invoice := &domain.Invoice{Status: domain.InvoiceInPreparation}
	invoice.CreatedAt = date(2026, 6, 1)
	assert.Equal(t, "In preparation since 01.06.2026", domain.PrettyInvoiceStatus(invoice, today).Text)

	invoice.Status = domain.InvoiceSent
	invoice.InvoicedOn = ptr(date(2026, 6, 5))
	assert.Equal(t, "Sent on 05.06.2026", domain.PrettyInvoiceStatus(invoice, today).Text)

	invoice.Status = domain.InvoiceReminded
	assert.Equal(t, "Reminded on 05.06.2026", domain.PrettyInvoiceStatus(invoice, today).Text)

	invoice.Status = domain.InvoicePaid
	invoice.ClosedOn = ptr(date(2026, 7, 1))
	assert.Equal(t, "Paid on 01.07.2026", domain.PrettyInvoiceStatus(invoice, today).Text)

	invoice.Status = domain.InvoiceCanceled
	assert.Equal(t, "Canceled", domain.PrettyInvoiceStatus(invoice, today).Text)
}

func TestPrettyInvoiceStatus_DueHint(t *testing.T) {
	invoice := &domain.Invoice{
		Status:     domain.InvoiceSent,
		InvoicedOn: ptr(date(2026, 6, 5)),
		DueOn:      ptr(date(2026, 7, 5)),
	}

	status := domain.PrettyInvoiceStatus(invoice, date(2026, 6, 20))
	assert.Equal(t, "Sent on 05.06.2026 (due in 15 days)", status.Text)
	assert.Equal(t, "success", status.CSS)

	status = domain.PrettyInvoiceStatus(invoice, date(2026, 7, 5))
	assert.Equal(t, "Sent on 05.06.2026 (due today!)", status.Text)
	assert.Equal(t, "success", status.CSS)

	status = domain.PrettyInvoiceStatus(invoice, date(2026, 7, 6))
	assert.Equal(t, "Sent on 05.06.2026 (overdue!)", status.Text)
	assert.Equal(t, "warning", status.CSS)
}
