package service

import "time"

// dateOf strips the time of day. Date-typed columns must never carry a
// clock component or comparisons against CURRENT_DATE drift.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WithClock replaces the service clock. Tests pin it to a fixed date so
// stamped closing dates and aging buckets stay deterministic.
func (s *DealService) WithClock(now func() time.Time) *DealService {
	s.now = now
	return s
}

// WithClock replaces the service clock, see DealService.WithClock.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

// WithClock replaces the service clock, see DealService.WithClock.
func (s *OfferService) WithClock(now func() time.Time) *OfferService {
	s.now = now
	return s
}

// WithClock replaces the service clock, see DealService.WithClock.
func (s *InvoiceService) WithClock(now func() time.Time) *InvoiceService {
	s.now = now
	return s
}
