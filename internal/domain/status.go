package domain

import "fmt"

// Status values are small ordered integers so list views can sort by
// lifecycle position. Label and CSS lookup tables are checked for
// exhaustiveness at init time: a status without display metadata is a
// defect in this file, not a recoverable condition, so we fail loudly
// rather than render a missing key.

// DealStatus represents the lifecycle state of a deal
type DealStatus int

const (
	DealOpen     DealStatus = 10
	DealAccepted DealStatus = 20
	DealDeclined DealStatus = 30
)

var dealStatusLabels = map[DealStatus]string{
	DealOpen:     "Open",
	DealAccepted: "Accepted",
	DealDeclined: "Declined",
}

var dealStatusCSS = map[DealStatus]string{
	DealOpen:     "info",
	DealAccepted: "success",
	DealDeclined: "danger",
}

// DealStatuses lists all valid deal statuses in lifecycle order
var DealStatuses = []DealStatus{DealOpen, DealAccepted, DealDeclined}

// IsValid checks if the DealStatus is a valid enum value
func (s DealStatus) IsValid() bool {
	_, ok := dealStatusLabels[s]
	return ok
}

// IsClosed reports whether the deal has reached a terminal state
func (s DealStatus) IsClosed() bool {
	return s == DealAccepted || s == DealDeclined
}

// Label returns the human-readable status name
func (s DealStatus) Label() string {
	return mustLabel(dealStatusLabels, s, "DealStatus")
}

// CSS returns the visual severity class for the status
func (s DealStatus) CSS() string {
	return mustLabel(dealStatusCSS, s, "DealStatus")
}

// Probability classifies how likely a deal is to be won
type Probability int

const (
	ProbabilityUnknown Probability = 10
	ProbabilityNormal  Probability = 20
	ProbabilityHigh    Probability = 30
)

var probabilityLabels = map[Probability]string{
	ProbabilityUnknown: "Unknown",
	ProbabilityNormal:  "Normal",
	ProbabilityHigh:    "High",
}

// IsValid checks if the Probability is a valid enum value
func (p Probability) IsValid() bool {
	_, ok := probabilityLabels[p]
	return ok
}

// Label returns the human-readable probability name
func (p Probability) Label() string {
	return mustLabel(probabilityLabels, p, "Probability")
}

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus int

const (
	ProjectAcquisition    ProjectStatus = 10
	ProjectWorkInProgress ProjectStatus = 20
	ProjectFinished       ProjectStatus = 30
	ProjectDeclined       ProjectStatus = 40
)

var projectStatusLabels = map[ProjectStatus]string{
	ProjectAcquisition:    "Acquisition",
	ProjectWorkInProgress: "Work in progress",
	ProjectFinished:       "Finished",
	ProjectDeclined:       "Declined",
}

var projectStatusCSS = map[ProjectStatus]string{
	ProjectAcquisition:    "success",
	ProjectWorkInProgress: "info",
	ProjectFinished:       "default",
	ProjectDeclined:       "warning",
}

// ProjectStatuses lists all valid project statuses in lifecycle order
var ProjectStatuses = []ProjectStatus{
	ProjectAcquisition, ProjectWorkInProgress, ProjectFinished, ProjectDeclined,
}

// IsValid checks if the ProjectStatus is a valid enum value
func (s ProjectStatus) IsValid() bool {
	_, ok := projectStatusLabels[s]
	return ok
}

// Label returns the human-readable status name
func (s ProjectStatus) Label() string {
	return mustLabel(projectStatusLabels, s, "ProjectStatus")
}

// CSS returns the visual severity class for the status
func (s ProjectStatus) CSS() string {
	return mustLabel(projectStatusCSS, s, "ProjectStatus")
}

// TaskStatus represents the lifecycle state of a task
type TaskStatus int

const (
	TaskInbox        TaskStatus = 10
	TaskBacklog      TaskStatus = 20
	TaskInProgress   TaskStatus = 30
	TaskReadyForTest TaskStatus = 40
	TaskDone         TaskStatus = 50
)

var taskStatusLabels = map[TaskStatus]string{
	TaskInbox:        "Inbox",
	TaskBacklog:      "Backlog",
	TaskInProgress:   "In progress",
	TaskReadyForTest: "Ready for test",
	TaskDone:         "Done",
}

var taskStatusCSS = map[TaskStatus]string{
	TaskInbox:        "info",
	TaskBacklog:      "info",
	TaskInProgress:   "success",
	TaskReadyForTest: "warning",
	TaskDone:         "default",
}

// TaskStatuses lists all valid task statuses in lifecycle order
var TaskStatuses = []TaskStatus{
	TaskInbox, TaskBacklog, TaskInProgress, TaskReadyForTest, TaskDone,
}

// IsValid checks if the TaskStatus is a valid enum value
func (s TaskStatus) IsValid() bool {
	_, ok := taskStatusLabels[s]
	return ok
}

// Label returns the human-readable status name
func (s TaskStatus) Label() string {
	return mustLabel(taskStatusLabels, s, "TaskStatus")
}

// CSS returns the visual severity class for the status
func (s TaskStatus) CSS() string {
	return mustLabel(taskStatusCSS, s, "TaskStatus")
}

// TaskType classifies a task
type TaskType string

const (
	TaskTypeTask        TaskType = "task"
	TaskTypeBug         TaskType = "bug"
	TaskTypeEnhancement TaskType = "enhancement"
	TaskTypeQuestion    TaskType = "question"
)

var taskTypeCSS = map[TaskType]string{
	TaskTypeTask:        "",
	TaskTypeBug:         "icon-bug icon-red",
	TaskTypeEnhancement: "icon-plus icon-green",
	TaskTypeQuestion:    "icon-question icon-blue",
}

// IsValid checks if the TaskType is a valid enum value
func (t TaskType) IsValid() bool {
	_, ok := taskTypeCSS[t]
	return ok
}

// CSS returns the icon class for the type
func (t TaskType) CSS() string {
	return mustLabel(taskTypeCSS, t, "TaskType")
}

// TaskPriority orders tasks by urgency
type TaskPriority int

const (
	PriorityBlocker TaskPriority = 50
	PriorityHigh    TaskPriority = 40
	PriorityNormal  TaskPriority = 30
	PriorityLow     TaskPriority = 20
)

var taskPriorityLabels = map[TaskPriority]string{
	PriorityBlocker: "Blocker",
	PriorityHigh:    "High",
	PriorityNormal:  "Normal",
	PriorityLow:     "Low",
}

var taskPriorityCSS = map[TaskPriority]string{
	PriorityBlocker: "label label-danger",
	PriorityHigh:    "label label-warning",
	PriorityNormal:  "label label-info",
	PriorityLow:     "label label-default",
}

// IsValid checks if the TaskPriority is a valid enum value
func (p TaskPriority) IsValid() bool {
	_, ok := taskPriorityLabels[p]
	return ok
}

// Label returns the human-readable priority name
func (p TaskPriority) Label() string {
	return mustLabel(taskPriorityLabels, p, "TaskPriority")
}

// CSS returns the label class for the priority
func (p TaskPriority) CSS() string {
	return mustLabel(taskPriorityCSS, p, "TaskPriority")
}

// OfferStatus represents the lifecycle state of an offer
type OfferStatus int

const (
	OfferInPreparation OfferStatus = 10
	OfferOffered       OfferStatus = 20
	OfferAccepted      OfferStatus = 30
	OfferRejected      OfferStatus = 40
	OfferReplaced      OfferStatus = 50
)

var offerStatusLabels = map[OfferStatus]string{
	OfferInPreparation: "In preparation",
	OfferOffered:       "Offered",
	OfferAccepted:      "Accepted",
	OfferRejected:      "Rejected",
	OfferReplaced:      "Replaced",
}

var offerStatusCSS = map[OfferStatus]string{
	OfferInPreparation: "info",
	OfferOffered:       "success",
	OfferAccepted:      "default",
	OfferRejected:      "danger",
	OfferReplaced:      "",
}

// OfferStatuses lists all valid offer statuses in lifecycle order
var OfferStatuses = []OfferStatus{
	OfferInPreparation, OfferOffered, OfferAccepted, OfferRejected, OfferReplaced,
}

// IsValid checks if the OfferStatus is a valid enum value
func (s OfferStatus) IsValid() bool {
	_, ok := offerStatusLabels[s]
	return ok
}

// RequiresOfferedOn reports whether the status only makes sense once the
// offer has actually been sent out
func (s OfferStatus) RequiresOfferedOn() bool {
	return s == OfferOffered || s == OfferAccepted || s == OfferRejected
}

// Label returns the human-readable status name
func (s OfferStatus) Label() string {
	return mustLabel(offerStatusLabels, s, "OfferStatus")
}

// CSS returns the visual severity class for the status
func (s OfferStatus) CSS() string {
	return mustLabel(offerStatusCSS, s, "OfferStatus")
}

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus int

const (
	InvoiceInPreparation InvoiceStatus = 10
	InvoiceSent          InvoiceStatus = 20
	InvoiceReminded      InvoiceStatus = 30
	InvoicePaid          InvoiceStatus = 40
	InvoiceCanceled      InvoiceStatus = 50
)

var invoiceStatusLabels = map[InvoiceStatus]string{
	InvoiceInPreparation: "In preparation",
	InvoiceSent:          "Sent",
	InvoiceReminded:      "Reminded",
	InvoicePaid:          "Paid",
	InvoiceCanceled:      "Canceled",
}

var invoiceStatusCSS = map[InvoiceStatus]string{
	InvoiceInPreparation: "info",
	InvoiceSent:          "success",
	InvoiceReminded:      "warning",
	InvoicePaid:          "default",
	InvoiceCanceled:      "danger",
}

// InvoiceStatuses lists all valid invoice statuses in lifecycle order
var InvoiceStatuses = []InvoiceStatus{
	InvoiceInPreparation, InvoiceSent, InvoiceReminded, InvoicePaid, InvoiceCanceled,
}

// IsValid checks if the InvoiceStatus is a valid enum value
func (s InvoiceStatus) IsValid() bool {
	_, ok := invoiceStatusLabels[s]
	return ok
}

// RequiresInvoicedOn reports whether the status implies the invoice left
// the house
func (s InvoiceStatus) RequiresInvoicedOn() bool {
	return s == InvoiceSent || s == InvoiceReminded || s == InvoicePaid
}

// Label returns the human-readable status name
func (s InvoiceStatus) Label() string {
	return mustLabel(invoiceStatusLabels, s, "InvoiceStatus")
}

// CSS returns the visual severity class for the status
func (s InvoiceStatus) CSS() string {
	return mustLabel(invoiceStatusCSS, s, "InvoiceStatus")
}

// mustLabel looks up display metadata for an enum value. An unmapped value
// means the enum and its tables drifted apart; that is a programming error
// and must not be rendered as a user-facing failure.
func mustLabel[K comparable](table map[K]string, key K, kind string) string {
	v, ok := table[key]
	if !ok {
		panic(fmt.Sprintf("domain: no display metadata for %s %v", kind, key))
	}
	return v
}

func init() {
	// Every status must have both a label and a CSS class. Catching drift
	// here keeps mustLabel panics out of request handling.
	for _, s := range DealStatuses {
		_, _ = s.Label(), s.CSS()
	}
	for _, s := range ProjectStatuses {
		_, _ = s.Label(), s.CSS()
	}
	for _, s := range TaskStatuses {
		_, _ = s.Label(), s.CSS()
	}
	for _, s := range OfferStatuses {
		_, _ = s.Label(), s.CSS()
	}
	for _, s := range InvoiceStatuses {
		_, _ = s.Label(), s.CSS()
	}
	if len(dealStatusCSS) != len(dealStatusLabels) ||
		len(projectStatusCSS) != len(projectStatusLabels) ||
		len(taskStatusCSS) != len(taskStatusLabels) ||
		len(offerStatusCSS) != len(offerStatusLabels) ||
		len(invoiceStatusCSS) != len(invoiceStatusLabels) {
		panic("domain: status label and CSS tables out of sync")
	}
}
