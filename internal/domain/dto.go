package domain

import "github.com/shopspring/decimal"

// DTOs for API responses. Timestamps are ISO 8601, date-only fields use
// YYYY-MM-DD in requests and responses; the display format lives in
// PrettyStatus texts only.

type CustomerDTO struct {
	ID        uint         `json:"id"`
	Name      string       `json:"name"`
	OrgNumber string       `json:"orgNumber,omitempty"`
	Email     string       `json:"email,omitempty"`
	Phone     string       `json:"phone,omitempty"`
	Address   string       `json:"address,omitempty"`
	Notes     string       `json:"notes,omitempty"`
	Contacts  []ContactDTO `json:"contacts,omitempty"`
	CreatedAt string       `json:"createdAt"`
	UpdatedAt string       `json:"updatedAt"`
}

type ContactDTO struct {
	ID         uint   `json:"id"`
	CustomerID uint   `json:"customerId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	FullName   string `json:"fullName"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Title      string `json:"title,omitempty"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

type ValueTypeDTO struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Position   int    `json:"position"`
	IsArchived bool   `json:"isArchived"`
}

type AttributeDTO struct {
	ID         uint   `json:"id"`
	GroupID    uint   `json:"groupId"`
	GroupTitle string `json:"groupTitle,omitempty"`
	Title      string `json:"title"`
	Position   int    `json:"position"`
	IsArchived bool   `json:"isArchived"`
}

type AttributeGroupDTO struct {
	ID         uint           `json:"id"`
	Title      string         `json:"title"`
	IsRequired bool           `json:"isRequired"`
	IsArchived bool           `json:"isArchived"`
	Position   int            `json:"position"`
	Attributes []AttributeDTO `json:"attributes"`
}

type ClosingTypeDTO struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	RepresentsAWin bool   `json:"representsAWin"`
	Position       int    `json:"position"`
}

type DealValueDTO struct {
	ID        uint            `json:"id"`
	TypeID    uint            `json:"typeId"`
	TypeTitle string          `json:"typeTitle,omitempty"`
	Value     decimal.Decimal `json:"value"`
}

type DealDTO struct {
	ID                 uint            `json:"id"`
	CustomerID         uint            `json:"customerId"`
	CustomerName       string          `json:"customerName,omitempty"`
	ContactID          *uint           `json:"contactId,omitempty"`
	ContactName        string          `json:"contactName,omitempty"`
	Title              string          `json:"title"`
	Description        string          `json:"description,omitempty"`
	OwnerID            string          `json:"ownerId"`
	OwnerName          string          `json:"ownerName,omitempty"`
	Status             DealStatus      `json:"status"`
	Probability        Probability     `json:"probability"`
	DecisionExpectedOn *string         `json:"decisionExpectedOn,omitempty"` // YYYY-MM-DD
	ClosedOn           *string         `json:"closedOn,omitempty"`           // YYYY-MM-DD
	ClosingTypeID      *uint           `json:"closingTypeId,omitempty"`
	ClosingTypeTitle   string          `json:"closingTypeTitle,omitempty"`
	ClosingNotice      string          `json:"closingNotice,omitempty"`
	Values             []DealValueDTO  `json:"values"`
	Attributes         []AttributeDTO  `json:"attributes,omitempty"`
	Value              decimal.Decimal `json:"value"` // sum over values
	PrettyStatus       PrettyStatus    `json:"prettyStatus"`
	Group              int             `json:"group"`
	GroupTitle         string          `json:"groupTitle,omitempty"`
	CreatedAt          string          `json:"createdAt"`
	UpdatedAt          string          `json:"updatedAt"`
}

type ProjectDTO struct {
	ID           uint          `json:"id"`
	Code         string        `json:"code"`
	CustomerID   uint          `json:"customerId"`
	CustomerName string        `json:"customerName,omitempty"`
	ContactID    *uint         `json:"contactId,omitempty"`
	ContactName  string        `json:"contactName,omitempty"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	OwnerID      string        `json:"ownerId"`
	OwnerName    string        `json:"ownerName,omitempty"`
	Status       ProjectStatus `json:"status"`
	Invoicing    bool          `json:"invoicing"`
	Maintenance  bool          `json:"maintenance"`
	PrettyStatus PrettyStatus  `json:"prettyStatus"`
	CreatedAt    string        `json:"createdAt"`
	UpdatedAt    string        `json:"updatedAt"`
}

// ProjectOverviewDTO aggregates hours across the project's tasks and the
// approved hours across services of the project's offers
type ProjectOverviewDTO struct {
	ProjectID     uint            `json:"projectId"`
	HoursLogged   decimal.Decimal `json:"hoursLogged"`
	HoursApproved decimal.Decimal `json:"hoursApproved"`
}

type TaskDTO struct {
	ID           uint         `json:"id"`
	Code         string       `json:"code"`
	ProjectID    uint         `json:"projectId"`
	ProjectTitle string       `json:"projectTitle,omitempty"`
	ServiceID    *uint        `json:"serviceId,omitempty"`
	ServiceTitle string       `json:"serviceTitle,omitempty"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	Type         TaskType     `json:"type"`
	TypeCSS      string       `json:"typeCss,omitempty"`
	Priority     TaskPriority `json:"priority"`
	PriorityCSS  string       `json:"priorityCss"`
	OwnerID      string       `json:"ownerId,omitempty"`
	OwnerName    string       `json:"ownerName,omitempty"`
	Status       TaskStatus   `json:"status"`
	DueOn        *string      `json:"dueOn,omitempty"` // YYYY-MM-DD
	ClosedAt     *string      `json:"closedAt,omitempty"`
	Position     int          `json:"position"`
	PrettyStatus PrettyStatus `json:"prettyStatus"`
	CreatedAt    string       `json:"createdAt"`
	UpdatedAt    string       `json:"updatedAt"`
}

// TaskOverviewDTO aggregates hours around a task: hours on the task
// itself, hours across all tasks sharing its service, and the service's
// approved hours
type TaskOverviewDTO struct {
	TaskID        uint             `json:"taskId"`
	LoggedThis    decimal.Decimal  `json:"loggedThis"`
	LoggedTasks   *decimal.Decimal `json:"loggedTasks,omitempty"`
	HoursApproved *decimal.Decimal `json:"hoursApproved,omitempty"`
}

type ServiceDTO struct {
	ID            uint            `json:"id"`
	OfferID       uint            `json:"offerId"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	ApprovedHours decimal.Decimal `json:"approvedHours"`
	Cost          decimal.Decimal `json:"cost"`
	Position      int             `json:"position"`
}

type OfferDTO struct {
	ID            uint            `json:"id"`
	Code          string          `json:"code"`
	ProjectID     uint            `json:"projectId"`
	ProjectTitle  string          `json:"projectTitle,omitempty"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	OwnerID       string          `json:"ownerId"`
	OwnerName     string          `json:"ownerName,omitempty"`
	Status        OfferStatus     `json:"status"`
	OfferedOn     *string         `json:"offeredOn,omitempty"` // YYYY-MM-DD
	ClosedOn      *string         `json:"closedOn,omitempty"`  // YYYY-MM-DD
	PostalAddress string          `json:"postalAddress,omitempty"`
	Services      []ServiceDTO    `json:"services"`
	Subtotal      decimal.Decimal `json:"subtotal"` // sum over service costs
	Discount      decimal.Decimal `json:"discount"`
	LiableToVAT   bool            `json:"liableToVat"`
	TotalExclTax  decimal.Decimal `json:"totalExclTax"`
	TotalInclTax  decimal.Decimal `json:"totalInclTax"`
	PrettyStatus  PrettyStatus    `json:"prettyStatus"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

type LoggedHoursDTO struct {
	ID           uint            `json:"id"`
	TaskID       uint            `json:"taskId"`
	TaskCode     string          `json:"taskCode,omitempty"`
	RenderedByID string          `json:"renderedById"`
	RenderedBy   string          `json:"renderedBy,omitempty"`
	RenderedOn   string          `json:"renderedOn"` // YYYY-MM-DD
	Hours        decimal.Decimal `json:"hours"`
	Description  string          `json:"description,omitempty"`
	CreatedAt    string          `json:"createdAt"`
}

type InvoiceDTO struct {
	ID           uint            `json:"id"`
	Code         string          `json:"code"`
	ProjectID    uint            `json:"projectId"`
	ProjectTitle string          `json:"projectTitle,omitempty"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	OwnerID      string          `json:"ownerId"`
	OwnerName    string          `json:"ownerName,omitempty"`
	Status       InvoiceStatus   `json:"status"`
	InvoicedOn   *string         `json:"invoicedOn,omitempty"` // YYYY-MM-DD
	DueOn        *string         `json:"dueOn,omitempty"`      // YYYY-MM-DD
	ClosedOn     *string         `json:"closedOn,omitempty"`   // YYYY-MM-DD
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	LiableToVAT  bool            `json:"liableToVat"`
	TotalExclTax decimal.Decimal `json:"totalExclTax"`
	TotalInclTax decimal.Decimal `json:"totalInclTax"`
	PrettyStatus PrettyStatus    `json:"prettyStatus"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

type RecurringInvoiceDTO struct {
	ID                 uint            `json:"id"`
	ProjectID          uint            `json:"projectId"`
	ProjectTitle       string          `json:"projectTitle,omitempty"`
	Title              string          `json:"title"`
	Description        string          `json:"description,omitempty"`
	OwnerID            string          `json:"ownerId"`
	OwnerName          string          `json:"ownerName,omitempty"`
	Periodicity        Periodicity     `json:"periodicity"`
	StartsOn           string          `json:"startsOn"` // YYYY-MM-DD
	EndsOn             *string         `json:"endsOn,omitempty"`
	NextPeriodStartsOn string          `json:"nextPeriodStartsOn"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	LiableToVAT        bool            `json:"liableToVat"`
	CreatedAt          string          `json:"createdAt"`
	UpdatedAt          string          `json:"updatedAt"`
}

// Pagination response wrapper
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// Request DTOs. Date-only fields arrive as YYYY-MM-DD strings.

type CreateCustomerRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	OrgNumber string `json:"orgNumber,omitempty" validate:"max=20"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty" validate:"max=50"`
	Address   string `json:"address,omitempty" validate:"max=500"`
	Notes     string `json:"notes,omitempty"`
}

type UpdateCustomerRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	OrgNumber string `json:"orgNumber,omitempty" validate:"max=20"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty" validate:"max=50"`
	Address   string `json:"address,omitempty" validate:"max=500"`
	Notes     string `json:"notes,omitempty"`
}

type CreateContactRequest struct {
	CustomerID uint   `json:"customerId" validate:"required"`
	FirstName  string `json:"firstName" validate:"required,max=100"`
	LastName   string `json:"lastName" validate:"required,max=100"`
	Email      string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone      string `json:"phone,omitempty" validate:"max=50"`
	Title      string `json:"title,omitempty" validate:"max=100"`
}

type UpdateContactRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone     string `json:"phone,omitempty" validate:"max=50"`
	Title     string `json:"title,omitempty" validate:"max=100"`
}

type CreateValueTypeRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Position int    `json:"position,omitempty" validate:"gte=0"`
}

type UpdateValueTypeRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	Position   int    `json:"position,omitempty" validate:"gte=0"`
	IsArchived bool   `json:"isArchived,omitempty"`
}

type CreateAttributeGroupRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	IsRequired *bool  `json:"isRequired,omitempty"`
	Position   int    `json:"position,omitempty" validate:"gte=0"`
}

type UpdateAttributeGroupRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	IsRequired bool   `json:"isRequired,omitempty"`
	IsArchived bool   `json:"isArchived,omitempty"`
	Position   int    `json:"position,omitempty" validate:"gte=0"`
}

type CreateAttributeRequest struct {
	GroupID  uint   `json:"groupId" validate:"required"`
	Title    string `json:"title" validate:"required,max=200"`
	Position int    `json:"position,omitempty" validate:"gte=0"`
}

type UpdateAttributeRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	Position   int    `json:"position,omitempty" validate:"gte=0"`
	IsArchived bool   `json:"isArchived,omitempty"`
}

type CreateClosingTypeRequest struct {
	Title          string `json:"title" validate:"required,max=200"`
	RepresentsAWin bool   `json:"representsAWin,omitempty"`
	Position       int    `json:"position,omitempty" validate:"gte=0"`
}

type UpdateClosingTypeRequest struct {
	Title          string `json:"title" validate:"required,max=200"`
	RepresentsAWin bool   `json:"representsAWin,omitempty"`
	Position       int    `json:"position,omitempty" validate:"gte=0"`
}

type DealValueInput struct {
	TypeID uint            `json:"typeId" validate:"required"`
	Value  decimal.Decimal `json:"value" validate:"required"`
}

type CreateDealRequest struct {
	CustomerID         uint             `json:"customerId" validate:"required"`
	ContactID          *uint            `json:"contactId,omitempty"`
	Title              string           `json:"title" validate:"required,max=200"`
	Description        string           `json:"description,omitempty"`
	OwnerID            string           `json:"ownerId" validate:"required,max=100"`
	OwnerName          string           `json:"ownerName,omitempty" validate:"max=200"`
	Probability        Probability      `json:"probability,omitempty"`
	DecisionExpectedOn *string          `json:"decisionExpectedOn,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Values             []DealValueInput `json:"values,omitempty" validate:"dive"`
	AttributeIDs       []uint           `json:"attributes,omitempty"`
}

type UpdateDealRequest struct {
	ContactID          *uint            `json:"contactId,omitempty"`
	Title              string           `json:"title" validate:"required,max=200"`
	Description        string           `json:"description,omitempty"`
	OwnerID            string           `json:"ownerId" validate:"required,max=100"`
	OwnerName          string           `json:"ownerName,omitempty" validate:"max=200"`
	Probability        Probability      `json:"probability,omitempty"`
	DecisionExpectedOn *string          `json:"decisionExpectedOn,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Values             []DealValueInput `json:"values,omitempty" validate:"dive"`
	AttributeIDs       []uint           `json:"attributes,omitempty"`
}

// UpdateDealStatusRequest drives deal lifecycle transitions. Closing a
// deal requires a closing type; the won/lost outcome is derived from the
// closing type, not sent by the client.
type UpdateDealStatusRequest struct {
	Status        DealStatus `json:"status" validate:"required"`
	ClosingTypeID *uint      `json:"closingTypeId,omitempty"`
	ClosingNotice string     `json:"closingNotice,omitempty"`
	ClosedOn      *string    `json:"closedOn,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type CreateProjectRequest struct {
	CustomerID  uint   `json:"customerId" validate:"required"`
	ContactID   *uint  `json:"contactId,omitempty"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description,omitempty"`
	OwnerID     string `json:"ownerId" validate:"required,max=100"`
	OwnerName   string `json:"ownerName,omitempty" validate:"max=200"`
	Invoicing   *bool  `json:"invoicing,omitempty"`
	Maintenance bool   `json:"maintenance,omitempty"`
}

type UpdateProjectRequest struct {
	ContactID   *uint         `json:"contactId,omitempty"`
	Title       string        `json:"title" validate:"required,max=200"`
	Description string        `json:"description,omitempty"`
	OwnerID     string        `json:"ownerId" validate:"required,max=100"`
	OwnerName   string        `json:"ownerName,omitempty" validate:"max=200"`
	Status      ProjectStatus `json:"status" validate:"required"`
	Invoicing   *bool         `json:"invoicing,omitempty"`
	Maintenance *bool         `json:"maintenance,omitempty"`
}

type CreateTaskRequest struct {
	ProjectID   uint         `json:"projectId" validate:"required"`
	ServiceID   *uint        `json:"serviceId,omitempty"`
	Title       string       `json:"title" validate:"required,max=200"`
	Description string       `json:"description,omitempty"`
	Type        TaskType     `json:"type,omitempty"`
	Priority    TaskPriority `json:"priority,omitempty"`
	OwnerID     string       `json:"ownerId,omitempty" validate:"max=100"`
	OwnerName   string       `json:"ownerName,omitempty" validate:"max=200"`
	DueOn       *string      `json:"dueOn,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Position    int          `json:"position,omitempty" validate:"gte=0"`
}

type UpdateTaskRequest struct {
	ServiceID   *uint        `json:"serviceId,omitempty"`
	Title       string       `json:"title" validate:"required,max=200"`
	Description string       `json:"description,omitempty"`
	Type        TaskType     `json:"type" validate:"required"`
	Priority    TaskPriority `json:"priority" validate:"required"`
	OwnerID     string       `json:"ownerId,omitempty" validate:"max=100"`
	OwnerName   string       `json:"ownerName,omitempty" validate:"max=200"`
	DueOn       *string      `json:"dueOn,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Position    *int         `json:"position,omitempty" validate:"omitempty,gte=0"`
}

type UpdateTaskStatusRequest struct {
	Status TaskStatus `json:"status" validate:"required"`
}

type ServiceInput struct {
	Title         string          `json:"title" validate:"required,max=200"`
	Description   string          `json:"description,omitempty"`
	ApprovedHours decimal.Decimal `json:"approvedHours,omitempty"`
	Cost          decimal.Decimal `json:"cost,omitempty"`
	Position      int             `json:"position,omitempty" validate:"gte=0"`
}

type CreateOfferRequest struct {
	ProjectID     uint            `json:"projectId" validate:"required"`
	Title         string          `json:"title" validate:"required,max=200"`
	Description   string          `json:"description,omitempty"`
	OwnerID       string          `json:"ownerId" validate:"required,max=100"`
	OwnerName     string          `json:"ownerName,omitempty" validate:"max=200"`
	PostalAddress string          `json:"postalAddress,omitempty"`
	Discount      decimal.Decimal `json:"discount,omitempty"`
	LiableToVAT   *bool           `json:"liableToVat,omitempty"`
	Services      []ServiceInput  `json:"services,omitempty" validate:"dive"`
}

type UpdateOfferRequest struct {
	Title         string          `json:"title" validate:"required,max=200"`
	Description   string          `json:"description,omitempty"`
	OwnerID       string          `json:"ownerId" validate:"required,max=100"`
	OwnerName     string          `json:"ownerName,omitempty" validate:"max=200"`
	PostalAddress string          `json:"postalAddress,omitempty"`
	Discount      decimal.Decimal `json:"discount,omitempty"`
	LiableToVAT   *bool           `json:"liableToVat,omitempty"`
}

// UpdateOfferStatusRequest drives offer lifecycle transitions. States
// past preparation require an offered-on date.
type UpdateOfferStatusRequest struct {
	Status    OfferStatus `json:"status" validate:"required"`
	OfferedOn *string     `json:"offeredOn,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ClosedOn  *string     `json:"closedOn,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type CreateLoggedHoursRequest struct {
	TaskID       uint            `json:"taskId" validate:"required"`
	RenderedByID string          `json:"renderedById" validate:"required,max=100"`
	RenderedBy   string          `json:"renderedBy,omitempty" validate:"max=200"`
	RenderedOn   string          `json:"renderedOn" validate:"required,datetime=2006-01-02"`
	Hours        decimal.Decimal `json:"hours" validate:"required"`
	Description  string          `json:"description,omitempty"`
}

type UpdateLoggedHoursRequest struct {
	RenderedOn  string          `json:"renderedOn" validate:"required,datetime=2006-01-02"`
	Hours       decimal.Decimal `json:"hours" validate:"required"`
	Description string          `json:"description,omitempty"`
}

// CreateInvoiceRequest bills a project. Naming an offer seeds subtotal
// and discount from the offer's priced services instead of the request.
type CreateInvoiceRequest struct {
	ProjectID   uint            `json:"projectId" validate:"required"`
	OfferID     *uint           `json:"offerId,omitempty"`
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description,omitempty"`
	OwnerID     string          `json:"ownerId" validate:"required,max=100"`
	OwnerName   string          `json:"ownerName,omitempty" validate:"max=200"`
	Subtotal    decimal.Decimal `json:"subtotal,omitempty"`
	Discount    decimal.Decimal `json:"discount,omitempty"`
	LiableToVAT *bool           `json:"liableToVat,omitempty"`
	DueOn       *string         `json:"dueOn,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateInvoiceRequest struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description,omitempty"`
	OwnerID     string          `json:"ownerId" validate:"required,max=100"`
	OwnerName   string          `json:"ownerName,omitempty" validate:"max=200"`
	Subtotal    decimal.Decimal `json:"subtotal,omitempty"`
	Discount    decimal.Decimal `json:"discount,omitempty"`
	LiableToVAT *bool           `json:"liableToVat,omitempty"`
	DueOn       *string         `json:"dueOn,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateInvoiceStatusRequest drives invoice lifecycle transitions. States
// past preparation require an invoiced-on date.
type UpdateInvoiceStatusRequest struct {
	Status     InvoiceStatus `json:"status" validate:"required"`
	InvoicedOn *string       `json:"invoicedOn,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ClosedOn   *string       `json:"closedOn,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type CreateRecurringInvoiceRequest struct {
	ProjectID   uint            `json:"projectId" validate:"required"`
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description,omitempty"`
	OwnerID     string          `json:"ownerId" validate:"required,max=100"`
	OwnerName   string          `json:"ownerName,omitempty" validate:"max=200"`
	Periodicity Periodicity     `json:"periodicity" validate:"required"`
	StartsOn    string          `json:"startsOn" validate:"required,datetime=2006-01-02"`
	EndsOn      *string         `json:"endsOn,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Subtotal    decimal.Decimal `json:"subtotal,omitempty"`
	LiableToVAT *bool           `json:"liableToVat,omitempty"`
}

type UpdateRecurringInvoiceRequest struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description,omitempty"`
	OwnerID     string          `json:"ownerId" validate:"required,max=100"`
	OwnerName   string          `json:"ownerName,omitempty" validate:"max=200"`
	Periodicity Periodicity     `json:"periodicity" validate:"required"`
	EndsOn      *string         `json:"endsOn,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Subtotal    decimal.Decimal `json:"subtotal,omitempty"`
	LiableToVAT *bool           `json:"liableToVat,omitempty"`
}
