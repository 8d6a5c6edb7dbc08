package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Customer represents an organization work is done for
type Customer struct {
	BaseModel
	Name      string    `gorm:"type:varchar(200);not null;index"`
	OrgNumber string    `gorm:"type:varchar(20);column:org_number"`
	Email     string    `gorm:"type:varchar(255)"`
	Phone     string    `gorm:"type:varchar(50)"`
	Address   string    `gorm:"type:varchar(500)"`
	Notes     string    `gorm:"type:text"`
	Contacts  []Contact `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

// Contact represents an individual person at a customer
type Contact struct {
	BaseModel
	CustomerID uint      `gorm:"not null;index;column:customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID"`
	FirstName  string    `gorm:"type:varchar(100);not null;column:first_name"`
	LastName   string    `gorm:"type:varchar(100);not null;column:last_name"`
	Email      string    `gorm:"type:varchar(255)"`
	Phone      string    `gorm:"type:varchar(50)"`
	Title      string    `gorm:"type:varchar(100)"`
}

// FullName returns the contact's full name
func (c *Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ValueType categorizes deal values (e.g. "design", "programming").
// Deletion is blocked while any deal value references it.
type ValueType struct {
	BaseModel
	Title      string `gorm:"type:varchar(200);not null"`
	Position   int    `gorm:"not null;default:0"`
	IsArchived bool   `gorm:"not null;default:false;column:is_archived"`
}

// ClosingType categorizes how a deal was closed (e.g. "Award of contract",
// "Reason for losing"). RepresentsAWin decides the target status.
type ClosingType struct {
	BaseModel
	Title          string `gorm:"type:varchar(200);not null"`
	RepresentsAWin bool   `gorm:"not null;default:false;column:represents_a_win"`
	Position       int    `gorm:"not null;default:0"`
}

// AttributeGroup bundles deal attributes into one pick-one-of facet
// (e.g. "Lead source"). Required groups must carry a selection on every
// deal; archived groups stop being offered and enforced.
type AttributeGroup struct {
	BaseModel
	Title      string      `gorm:"type:varchar(200);not null"`
	IsRequired bool        `gorm:"not null;default:true;column:is_required"`
	IsArchived bool        `gorm:"not null;default:false;column:is_archived"`
	Position   int         `gorm:"not null;default:0"`
	Attributes []Attribute `gorm:"foreignKey:GroupID;constraint:OnDelete:RESTRICT"`
}

// Attribute is one selectable value within a group. Deletion is blocked
// while any deal references it; archiving hides it from pickers.
type Attribute struct {
	BaseModel
	GroupID    uint            `gorm:"not null;index;column:group_id"`
	Group      *AttributeGroup `gorm:"foreignKey:GroupID"`
	Title      string          `gorm:"type:varchar(200);not null"`
	Position   int             `gorm:"not null;default:0"`
	IsArchived bool            `gorm:"not null;default:false;column:is_archived"`
}

// Deal represents a sales opportunity in the pipeline
type Deal struct {
	BaseModel
	CustomerID         uint         `gorm:"not null;index;column:customer_id"`
	Customer           *Customer    `gorm:"foreignKey:CustomerID"`
	ContactID          *uint        `gorm:"index;column:contact_id"`
	Contact            *Contact     `gorm:"foreignKey:ContactID"`
	Title              string       `gorm:"type:varchar(200);not null"`
	Description        string       `gorm:"type:text"`
	OwnerID            string       `gorm:"type:varchar(100);not null;column:owner_id"`
	OwnerName          string       `gorm:"type:varchar(200);column:owner_name"`
	Status             DealStatus   `gorm:"not null;default:10"`
	Probability        Probability  `gorm:"not null;default:10"`
	DecisionExpectedOn *time.Time   `gorm:"type:date;column:decision_expected_on"`
	ClosedOn           *time.Time   `gorm:"type:date;column:closed_on"`
	ClosingTypeID      *uint        `gorm:"column:closing_type_id"`
	ClosingType        *ClosingType `gorm:"foreignKey:ClosingTypeID;constraint:OnDelete:RESTRICT"`
	ClosingNotice      string       `gorm:"type:text;column:closing_notice"`
	Values             []DealValue  `gorm:"foreignKey:DealID;constraint:OnDelete:CASCADE"`
	Attributes         []Attribute  `gorm:"many2many:deal_attributes"`
}

// DealValue is one valued component of a deal. The deal's total is the sum
// over its values; it is never stored on the deal itself.
type DealValue struct {
	BaseModel
	DealID uint            `gorm:"not null;uniqueIndex:idx_deal_value_type;column:deal_id"`
	TypeID uint            `gorm:"not null;uniqueIndex:idx_deal_value_type;column:type_id"`
	Type   *ValueType      `gorm:"foreignKey:TypeID;constraint:OnDelete:RESTRICT"`
	Value  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
}

// Project represents work being performed for a customer
type Project struct {
	BaseModel
	CustomerID  uint          `gorm:"not null;index;column:customer_id"`
	Customer    *Customer     `gorm:"foreignKey:CustomerID"`
	ContactID   *uint         `gorm:"index;column:contact_id"`
	Contact     *Contact      `gorm:"foreignKey:ContactID"`
	Title       string        `gorm:"type:varchar(200);not null;index"`
	Description string        `gorm:"type:text"`
	OwnerID     string        `gorm:"type:varchar(100);not null;column:owner_id"`
	OwnerName   string        `gorm:"type:varchar(200);column:owner_name"`
	Status      ProjectStatus `gorm:"not null;default:10;index"`
	Invoicing   bool          `gorm:"not null;default:true"`
	Maintenance bool          `gorm:"not null;default:false"`
	CodeNumber  int           `gorm:"not null;column:code_number"`
	Tasks       []Task        `gorm:"foreignKey:ProjectID;constraint:OnDelete:RESTRICT"`
	Offers      []Offer       `gorm:"foreignKey:ProjectID;constraint:OnDelete:RESTRICT"`
}

// Code returns the display code, e.g. "2024-0001". The sequential component
// is assigned once at creation and scoped to the creation year.
func (p *Project) Code() string {
	return fmt.Sprintf("%d-%04d", p.CreatedAt.Year(), p.CodeNumber)
}

// Task represents a unit of work within a project
type Task struct {
	BaseModel
	ProjectID   uint          `gorm:"not null;index;column:project_id"`
	Project     *Project      `gorm:"foreignKey:ProjectID"`
	ServiceID   *uint         `gorm:"index;column:service_id"`
	Service     *Service      `gorm:"foreignKey:ServiceID;constraint:OnDelete:RESTRICT"`
	Title       string        `gorm:"type:varchar(200);not null"`
	Description string        `gorm:"type:text"`
	Type        TaskType      `gorm:"type:varchar(20);not null;default:'task'"`
	Priority    TaskPriority  `gorm:"not null;default:30"`
	OwnerID     string        `gorm:"type:varchar(100);column:owner_id"`
	OwnerName   string        `gorm:"type:varchar(200);column:owner_name"`
	Status      TaskStatus    `gorm:"not null;default:10;index"`
	DueOn       *time.Time    `gorm:"type:date;column:due_on"`
	ClosedAt    *time.Time    `gorm:"column:closed_at"`
	Position    int           `gorm:"not null;default:0"`
	CodeNumber  int           `gorm:"not null;column:code_number"`
	LoggedHours []LoggedHours `gorm:"foreignKey:TaskID;constraint:OnDelete:RESTRICT"`
}

// Code returns the display code, e.g. "#17". Sequential per project.
func (t *Task) Code() string {
	return fmt.Sprintf("#%d", t.CodeNumber)
}

// Offer represents a priced proposal belonging to a project
type Offer struct {
	BaseModel
	ProjectID     uint            `gorm:"not null;index;column:project_id"`
	Project       *Project        `gorm:"foreignKey:ProjectID"`
	Title         string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	OwnerID       string          `gorm:"type:varchar(100);not null;column:owner_id"`
	OwnerName     string          `gorm:"type:varchar(200);column:owner_name"`
	Status        OfferStatus     `gorm:"not null;default:10;index"`
	OfferedOn     *time.Time      `gorm:"type:date;column:offered_on"`
	ClosedOn      *time.Time      `gorm:"type:date;column:closed_on"`
	PostalAddress string          `gorm:"type:text;column:postal_address"`
	Discount      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	LiableToVAT   bool            `gorm:"not null;default:true;column:liable_to_vat"`
	CodeNumber    int             `gorm:"not null;column:code_number"`
	Services      []Service       `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
}

// Code returns the display code, e.g. "2024-0001-o02". Requires Project to
// be preloaded; sequential per project.
func (o *Offer) Code() string {
	if o.Project == nil {
		return fmt.Sprintf("o%02d", o.CodeNumber)
	}
	return fmt.Sprintf("%s-o%02d", o.Project.Code(), o.CodeNumber)
}

// Service is a priced line of an offer. Cost feeds the offer subtotal,
// ApprovedHours feeds project and task hour overviews.
type Service struct {
	BaseModel
	OfferID       uint            `gorm:"not null;index;column:offer_id"`
	Offer         *Offer          `gorm:"foreignKey:OfferID"`
	Title         string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	ApprovedHours decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;column:approved_hours"`
	Cost          decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Position      int             `gorm:"not null;default:0"`
}

// LoggedHours is a time log entry against a task
type LoggedHours struct {
	BaseModel
	TaskID       uint            `gorm:"not null;index;column:task_id"`
	Task         *Task           `gorm:"foreignKey:TaskID"`
	RenderedByID string          `gorm:"type:varchar(100);not null;column:rendered_by_id"`
	RenderedBy   string          `gorm:"type:varchar(200);column:rendered_by"`
	RenderedOn   time.Time       `gorm:"type:date;not null;column:rendered_on"`
	Hours        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description  string          `gorm:"type:text"`
}

// TableName overrides gorm's pluralization
func (LoggedHours) TableName() string {
	return "logged_hours"
}

// Invoice bills a project. Subtotal and discount are inputs; totals are
// always computed, never stored.
type Invoice struct {
	BaseModel
	ProjectID   uint            `gorm:"not null;index;column:project_id"`
	Project     *Project        `gorm:"foreignKey:ProjectID"`
	Title       string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	OwnerID     string          `gorm:"type:varchar(100);not null;column:owner_id"`
	OwnerName   string          `gorm:"type:varchar(200);column:owner_name"`
	Status      InvoiceStatus   `gorm:"not null;default:10;index"`
	InvoicedOn  *time.Time      `gorm:"type:date;column:invoiced_on"`
	DueOn       *time.Time      `gorm:"type:date;column:due_on"`
	ClosedOn    *time.Time      `gorm:"type:date;column:closed_on"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Discount    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	LiableToVAT bool            `gorm:"not null;default:true;column:liable_to_vat"`
	CodeNumber  int             `gorm:"not null;column:code_number"`
}

// Code returns the display code, e.g. "2024-0001-i03". Requires Project to
// be preloaded; sequential per project.
func (i *Invoice) Code() string {
	if i.Project == nil {
		return fmt.Sprintf("i%02d", i.CodeNumber)
	}
	return fmt.Sprintf("%s-i%02d", i.Project.Code(), i.CodeNumber)
}

// VATRate is the tax rate applied to totals of entities liable to VAT
var VATRate = decimal.NewFromFloat(0.077)

// TotalExclTax returns the discounted subtotal
func (i *Invoice) TotalExclTax() decimal.Decimal {
	return i.Subtotal.Sub(i.Discount)
}

// TotalInclTax applies VAT on top of the discounted subtotal when liable
func (i *Invoice) TotalInclTax() decimal.Decimal {
	total := i.TotalExclTax()
	if i.LiableToVAT {
		total = total.Add(total.Mul(VATRate).Round(2))
	}
	return total
}

// Periodicity of a recurring invoice
type Periodicity string

const (
	PeriodicityWeekly    Periodicity = "weekly"
	PeriodicityMonthly   Periodicity = "monthly"
	PeriodicityQuarterly Periodicity = "quarterly"
	PeriodicityYearly    Periodicity = "yearly"
)

// IsValid checks if the Periodicity is a valid enum value
func (p Periodicity) IsValid() bool {
	switch p {
	case PeriodicityWeekly, PeriodicityMonthly, PeriodicityQuarterly, PeriodicityYearly:
		return true
	}
	return false
}

// NextDate advances a date by one period
func (p Periodicity) NextDate(from time.Time) time.Time {
	switch p {
	case PeriodicityWeekly:
		return from.AddDate(0, 0, 7)
	case PeriodicityMonthly:
		return from.AddDate(0, 1, 0)
	case PeriodicityQuarterly:
		return from.AddDate(0, 3, 0)
	case PeriodicityYearly:
		return from.AddDate(1, 0, 0)
	}
	return from
}

// RecurringInvoice is a template that materializes invoices periodically.
// NextPeriodStartsOn advances by one period per created invoice.
type RecurringInvoice struct {
	BaseModel
	ProjectID          uint            `gorm:"not null;index;column:project_id"`
	Project            *Project        `gorm:"foreignKey:ProjectID"`
	Title              string          `gorm:"type:varchar(200);not null"`
	Description        string          `gorm:"type:text"`
	OwnerID            string          `gorm:"type:varchar(100);not null;column:owner_id"`
	OwnerName          string          `gorm:"type:varchar(200);column:owner_name"`
	Periodicity        Periodicity     `gorm:"type:varchar(20);not null"`
	StartsOn           time.Time       `gorm:"type:date;not null;column:starts_on"`
	EndsOn             *time.Time      `gorm:"type:date;column:ends_on"`
	NextPeriodStartsOn time.Time       `gorm:"type:date;not null;column:next_period_starts_on"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	LiableToVAT        bool            `gorm:"not null;default:true;column:liable_to_vat"`
}

// CodeSequence backs sequential code assignment. One row per scope; the
// next value is claimed with a single atomic upsert so concurrent creators
// in the same scope never receive the same number.
type CodeSequence struct {
	ScopeType string    `gorm:"type:varchar(20);primaryKey;column:scope_type"`
	ScopeKey  string    `gorm:"type:varchar(50);primaryKey;column:scope_key"`
	LastValue int       `gorm:"not null;column:last_value"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}
