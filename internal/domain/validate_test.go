package domain_test

import (
	"testing"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDealTransition_RequiresClosingType(t *testing.T) {
	deal := &domain.Deal{
		Status:      domain.DealAccepted,
		Probability: domain.ProbabilityNormal,
	}

	err := domain.ValidateDealTransition(deal)
	require.Error(t, err)

	var fieldErrs domain.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "This field is required when closing a deal.", fieldErrs["closing_type"])
}

func TestValidateDealTransition_HighProbabilityNeedsDecisionDate(t *testing.T) {
	deal := &domain.Deal{
		Status:      domain.DealOpen,
		Probability: domain.ProbabilityHigh,
	}

	err := domain.ValidateDealTransition(deal)
	require.Error(t, err)

	var fieldErrs domain.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "This field is required when probability is high.", fieldErrs["decision_expected_on"])
}

func TestValidateDealTransition_AccumulatesAllViolations(t *testing.T) {
	deal := &domain.Deal{
		Status:      domain.DealDeclined,
		Probability: domain.ProbabilityHigh,
	}

	err := domain.ValidateDealTransition(deal)
	require.Error(t, err)

	var fieldErrs domain.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 2)
	assert.Contains(t, fieldErrs, "closing_type")
	assert.Contains(t, fieldErrs, "decision_expected_on")
}

func TestValidateDealTransition_Valid(t *testing.T) {
	closingTypeID := uint(3)
	deal := &domain.Deal{
		Status:        domain.DealAccepted,
		Probability:   domain.ProbabilityNormal,
		ClosingTypeID: &closingTypeID,
	}

	assert.NoError(t, domain.ValidateDealTransition(deal))
}

func TestValidateOfferTransition_OfferedStatesNeedDate(t *testing.T) {
	for _, status := range []domain.OfferStatus{
		domain.OfferOffered, domain.OfferAccepted, domain.OfferRejected,
	} {
		offer := &domain.Offer{Status: status}

		err := domain.ValidateOfferTransition(offer)
		require.Error(t, err, "status %d", status)

		var fieldErrs domain.ValidationErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, "Offered on date missing for selected state.", fieldErrs["status"])

		offer.OfferedOn = ptr(date(2026, 5, 1))
		assert.NoError(t, domain.ValidateOfferTransition(offer))
	}
}

func TestValidateOfferTransition_PreparationNeedsNoDate(t *testing.T) {
	offer := &domain.Offer{Status: domain.OfferInPreparation}
	assert.NoError(t, domain.ValidateOfferTransition(offer))

	offer.Status = domain.OfferReplaced
	assert.NoError(t, domain.ValidateOfferTransition(offer))
}

func TestValidateInvoiceTransition(t *testing.T) {
	invoice := &domain.Invoice{Status: domain.InvoiceSent}

	err := domain.ValidateInvoiceTransition(invoice)
	require.Error(t, err)

	var fieldErrs domain.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "Invoice date missing for selected state.", fieldErrs["status"])

	invoice.InvoicedOn = ptr(date(2026, 6, 1))
	assert.NoError(t, domain.ValidateInvoiceTransition(invoice))

	canceled := &domain.Invoice{Status: domain.InvoiceCanceled}
	assert.NoError(t, domain.ValidateInvoiceTransition(canceled))
}

func TestValidateTask_RejectsUnknownEnums(t *testing.T) {
	task := &domain.Task{
		Status:   domain.TaskStatus(99),
		Type:     domain.TaskType("chore"),
		Priority: domain.TaskPriority(7),
	}

	err := domain.ValidateTask(task)
	require.Error(t, err)

	var fieldErrs domain.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 3)
}

func TestValidateRecurringInvoice(t *testing.T) {
	ri := &domain.RecurringInvoice{
		Periodicity: domain.PeriodicityMonthly,
		StartsOn:    date(2026, 1, 1),
	}
	assert.NoError(t, domain.ValidateRecurringInvoice(ri))

	ri.EndsOn = ptr(date(2025, 12, 1))
	err := domain.ValidateRecurringInvoice(ri)
	require.Error(t, err)

	var fieldErrs domain.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "Must not be before the start date.", fieldErrs["ends_on"])

	ri.Periodicity = "fortnightly"
	err = domain.ValidateRecurringInvoice(ri)
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "Invalid periodicity.", fieldErrs["periodicity"])
}

func TestValidationErrors_FirstMessageWins(t *testing.T) {
	errs := domain.ValidationErrors{}
	errs.Add("status", "first")
	errs.Add("status", "second")

	assert.Equal(t, "first", errs["status"])
	assert.Equal(t, "status: first", errs.Error())
}
