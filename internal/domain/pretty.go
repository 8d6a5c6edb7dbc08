package domain

import (
	"fmt"
	"time"
)

// DateFormat is the display format for dates, e.g. "24.12.2026"
const DateFormat = "02.01.2006"

// FormatDate renders a date for display
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// PrettyStatus is a display-ready status with a CSS severity class
type PrettyStatus struct {
	Text string `json:"text"`
	CSS  string `json:"css"`
}

// PrettyDealStatus renders a deal status with context. Open deals show
// when a decision is expected or how long they have been open; closed
// deals show when and how they were closed. The CSS class of open deals
// depends on aging relative to today, see DealBadgeCSS.
func PrettyDealStatus(d *Deal, today time.Time) PrettyStatus {
	css := DealBadgeCSS(d, today)
	switch d.Status {
	case DealOpen:
		if d.DecisionExpectedOn != nil {
			return PrettyStatus{
				Text: fmt.Sprintf("Decision expected on %s", FormatDate(*d.DecisionExpectedOn)),
				CSS:  css,
			}
		}
		return PrettyStatus{
			Text: fmt.Sprintf("Open since %s", FormatDate(d.CreatedAt)),
			CSS:  css,
		}
	default:
		if d.ClosedOn != nil {
			return PrettyStatus{
				Text: fmt.Sprintf("%s on %s", lower(d.Status.Label()), FormatDate(*d.ClosedOn)),
				CSS:  css,
			}
		}
		return PrettyStatus{Text: lower(d.Status.Label()), CSS: css}
	}
}

// PrettyProjectStatus renders a project status with its invoicing and
// maintenance qualifiers.
func PrettyProjectStatus(p *Project) PrettyStatus {
	text := p.Status.Label()
	if !p.Invoicing {
		text += ", no invoicing"
	}
	if p.Maintenance {
		text += ", maintenance"
	}
	return PrettyStatus{Text: text, CSS: p.Status.CSS()}
}

// PrettyTaskStatus renders a task status. Done tasks show the closing
// date, open tasks with a due date show how urgent they are.
func PrettyTaskStatus(t *Task, today time.Time) PrettyStatus {
	if t.Status == TaskDone && t.ClosedAt != nil {
		return PrettyStatus{
			Text: fmt.Sprintf("Done since %s", FormatDate(*t.ClosedAt)),
			CSS:  t.Status.CSS(),
		}
	}
	if t.Status != TaskDone && t.DueOn != nil {
		return PrettyStatus{
			Text: fmt.Sprintf("%s (%s)", t.Status.Label(), PrettyDue(*t.DueOn, today)),
			CSS:  t.Status.CSS(),
		}
	}
	return PrettyStatus{Text: t.Status.Label(), CSS: t.Status.CSS()}
}

// PrettyDue phrases a due date relative to today
func PrettyDue(dueOn, today time.Time) string {
	days := daysBetween(today, dueOn)
	switch {
	case days < 0:
		return "overdue!"
	case days == 0:
		return "due today!"
	case days == 1:
		return "due tomorrow"
	default:
		return fmt.Sprintf("due in %d days", days)
	}
}

// PrettyOfferStatus renders an offer status with the date that moved it
// into its current state.
func PrettyOfferStatus(o *Offer) PrettyStatus {
	css := o.Status.CSS()
	switch o.Status {
	case OfferInPreparation:
		return PrettyStatus{
			Text: fmt.Sprintf("In preparation since %s", FormatDate(o.CreatedAt)),
			CSS:  css,
		}
	case OfferOffered:
		if o.OfferedOn != nil {
			return PrettyStatus{
				Text: fmt.Sprintf("Offered on %s", FormatDate(*o.OfferedOn)),
				CSS:  css,
			}
		}
	case OfferAccepted, OfferRejected:
		if o.ClosedOn != nil {
			return PrettyStatus{
				Text: fmt.Sprintf("%s on %s", o.Status.Label(), FormatDate(*o.ClosedOn)),
				CSS:  css,
			}
		}
	}
	return PrettyStatus{Text: o.Status.Label(), CSS: css}
}

// PrettyInvoiceStatus renders an invoice status with the date that moved
// it into its current state. Sent and reminded invoices with a due date
// carry the due phrase; once the due date has passed the badge escalates
// to warning.
func PrettyInvoiceStatus(i *Invoice, today time.Time) PrettyStatus {
	css := i.Status.CSS()
	switch i.Status {
	case InvoiceInPreparation:
		return PrettyStatus{
			Text: fmt.Sprintf("In preparation since %s", FormatDate(i.CreatedAt)),
			CSS:  css,
		}
	case InvoiceSent, InvoiceReminded:
		if i.InvoicedOn != nil {
			text := fmt.Sprintf("%s on %s", i.Status.Label(), FormatDate(*i.InvoicedOn))
			if i.DueOn != nil {
				text = fmt.Sprintf("%s (%s)", text, PrettyDue(*i.DueOn, today))
				if daysBetween(today, *i.DueOn) < 0 {
					css = "warning"
				}
			}
			return PrettyStatus{Text: text, CSS: css}
		}
	case InvoicePaid:
		if i.ClosedOn != nil {
			return PrettyStatus{
				Text: fmt.Sprintf("Paid on %s", FormatDate(*i.ClosedOn)),
				CSS:  css,
			}
		}
	}
	return PrettyStatus{Text: i.Status.Label(), CSS: css}
}

func lower(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
