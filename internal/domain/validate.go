package domain

// Lifecycle validation. These checks are pure functions over the entity
// so services and tests can run them without a database. All violations
// are collected into a ValidationErrors map, never just the first one.

// ValidateDealTransition checks the consistency rules around closing a
// deal and its probability classification.
func ValidateDealTransition(d *Deal) error {
	errs := ValidationErrors{}
	if !d.Status.IsValid() {
		errs.Add("status", "Invalid status.")
	}
	if !d.Probability.IsValid() {
		errs.Add("probability", "Invalid probability.")
	}
	if d.Status.IsClosed() && d.ClosingTypeID == nil {
		errs.Add("closing_type", "This field is required when closing a deal.")
	}
	if d.Probability == ProbabilityHigh && d.DecisionExpectedOn == nil {
		errs.Add("decision_expected_on", "This field is required when probability is high.")
	}
	return errs.ErrOrNil()
}

// ValidateOfferTransition checks that dates required by the offer status
// are present.
func ValidateOfferTransition(o *Offer) error {
	errs := ValidationErrors{}
	if !o.Status.IsValid() {
		errs.Add("status", "Invalid status.")
	}
	if o.Status.RequiresOfferedOn() && o.OfferedOn == nil {
		errs.Add("status", "Offered on date missing for selected state.")
	}
	return errs.ErrOrNil()
}

// ValidateInvoiceTransition checks that dates required by the invoice
// status are present.
func ValidateInvoiceTransition(inv *Invoice) error {
	errs := ValidationErrors{}
	if !inv.Status.IsValid() {
		errs.Add("status", "Invalid status.")
	}
	if inv.Status.RequiresInvoicedOn() && inv.InvoicedOn == nil {
		errs.Add("status", "Invoice date missing for selected state.")
	}
	return errs.ErrOrNil()
}

// ValidateTask checks task classification fields.
func ValidateTask(t *Task) error {
	errs := ValidationErrors{}
	if !t.Status.IsValid() {
		errs.Add("status", "Invalid status.")
	}
	if !t.Type.IsValid() {
		errs.Add("type", "Invalid type.")
	}
	if !t.Priority.IsValid() {
		errs.Add("priority", "Invalid priority.")
	}
	return errs.ErrOrNil()
}

// ValidateProject checks project lifecycle fields.
func ValidateProject(p *Project) error {
	errs := ValidationErrors{}
	if !p.Status.IsValid() {
		errs.Add("status", "Invalid status.")
	}
	return errs.ErrOrNil()
}

// ValidateRecurringInvoice checks the periodicity and date window of a
// recurring invoice template.
func ValidateRecurringInvoice(r *RecurringInvoice) error {
	errs := ValidationErrors{}
	if !r.Periodicity.IsValid() {
		errs.Add("periodicity", "Invalid periodicity.")
	}
	if r.EndsOn != nil && r.EndsOn.Before(r.StartsOn) {
		errs.Add("ends_on", "Must not be before the start date.")
	}
	return errs.ErrOrNil()
}
