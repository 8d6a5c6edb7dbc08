// Package mapper converts persistence models into API DTOs. Derived
// display fields (codes, pretty statuses, totals over preloaded
// children) are computed here so handlers never touch gorm models.
package mapper

import (
	"time"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func formatTimestampPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func ToCustomerDTO(c *domain.Customer) domain.CustomerDTO {
	dto := domain.CustomerDTO{
		ID:        c.ID,
		Name:      c.Name,
		OrgNumber: c.OrgNumber,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Notes:     c.Notes,
		CreatedAt: formatTimestamp(c.CreatedAt),
		UpdatedAt: formatTimestamp(c.UpdatedAt),
	}
	if len(c.Contacts) > 0 {
		dto.Contacts = make([]domain.ContactDTO, len(c.Contacts))
		for i := range c.Contacts {
			dto.Contacts[i] = ToContactDTO(&c.Contacts[i])
		}
	}
	return dto
}

func ToContactDTO(c *domain.Contact) domain.ContactDTO {
	return domain.ContactDTO{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		FullName:   c.FullName(),
		Email:      c.Email,
		Phone:      c.Phone,
		Title:      c.Title,
		CreatedAt:  formatTimestamp(c.CreatedAt),
		UpdatedAt:  formatTimestamp(c.UpdatedAt),
	}
}

func ToValueTypeDTO(vt *domain.ValueType) domain.ValueTypeDTO {
	return domain.ValueTypeDTO{
		ID:         vt.ID,
		Title:      vt.Title,
		Position:   vt.Position,
		IsArchived: vt.IsArchived,
	}
}

func ToClosingTypeDTO(ct *domain.ClosingType) domain.ClosingTypeDTO {
	return domain.ClosingTypeDTO{
		ID:             ct.ID,
		Title:          ct.Title,
		RepresentsAWin: ct.RepresentsAWin,
		Position:       ct.Position,
	}
}

func ToAttributeDTO(a *domain.Attribute) domain.AttributeDTO {
	dto := domain.AttributeDTO{
		ID:         a.ID,
		GroupID:    a.GroupID,
		Title:      a.Title,
		Position:   a.Position,
		IsArchived: a.IsArchived,
	}
	if a.Group != nil {
		dto.GroupTitle = a.Group.Title
	}
	return dto
}

func ToAttributeGroupDTO(g *domain.AttributeGroup) domain.AttributeGroupDTO {
	dto := domain.AttributeGroupDTO{
		ID:         g.ID,
		Title:      g.Title,
		IsRequired: g.IsRequired,
		IsArchived: g.IsArchived,
		Position:   g.Position,
		Attributes: make([]domain.AttributeDTO, len(g.Attributes)),
	}
	for i := range g.Attributes {
		dto.Attributes[i] = ToAttributeDTO(&g.Attributes[i])
	}
	return dto
}

// ToDealDTO maps a deal with its preloaded values. The total is the sum
// over the value rows; the urgency group and badge depend on today.
func ToDealDTO(d *domain.Deal, today time.Time) domain.DealDTO {
	dto := domain.DealDTO{
		ID:                 d.ID,
		CustomerID:         d.CustomerID,
		ContactID:          d.ContactID,
		Title:              d.Title,
		Description:        d.Description,
		OwnerID:            d.OwnerID,
		OwnerName:          d.OwnerName,
		Status:             d.Status,
		Probability:        d.Probability,
		DecisionExpectedOn: formatDatePtr(d.DecisionExpectedOn),
		ClosedOn:           formatDatePtr(d.ClosedOn),
		ClosingTypeID:      d.ClosingTypeID,
		ClosingNotice:      d.ClosingNotice,
		Values:             make([]domain.DealValueDTO, len(d.Values)),
		Value:              decimal.Zero,
		PrettyStatus:       domain.PrettyDealStatus(d, today),
		Group:              domain.DealGroup(d, today),
		CreatedAt:          formatTimestamp(d.CreatedAt),
		UpdatedAt:          formatTimestamp(d.UpdatedAt),
	}
	dto.GroupTitle = domain.DealGroupTitle(dto.Group)
	if d.Customer != nil {
		dto.CustomerName = d.Customer.Name
	}
	if d.Contact != nil {
		dto.ContactName = d.Contact.FullName()
	}
	if d.ClosingType != nil {
		dto.ClosingTypeTitle = d.ClosingType.Title
	}
	for i := range d.Values {
		dto.Values[i] = ToDealValueDTO(&d.Values[i])
		dto.Value = dto.Value.Add(d.Values[i].Value)
	}
	if len(d.Attributes) > 0 {
		dto.Attributes = make([]domain.AttributeDTO, len(d.Attributes))
		for i := range d.Attributes {
			dto.Attributes[i] = ToAttributeDTO(&d.Attributes[i])
		}
	}
	return dto
}

func ToDealValueDTO(v *domain.DealValue) domain.DealValueDTO {
	dto := domain.DealValueDTO{
		ID:     v.ID,
		TypeID: v.TypeID,
		Value:  v.Value,
	}
	if v.Type != nil {
		dto.TypeTitle = v.Type.Title
	}
	return dto
}

func ToProjectDTO(p *domain.Project) domain.ProjectDTO {
	dto := domain.ProjectDTO{
		ID:           p.ID,
		Code:         p.Code(),
		CustomerID:   p.CustomerID,
		ContactID:    p.ContactID,
		Title:        p.Title,
		Description:  p.Description,
		OwnerID:      p.OwnerID,
		OwnerName:    p.OwnerName,
		Status:       p.Status,
		Invoicing:    p.Invoicing,
		Maintenance:  p.Maintenance,
		PrettyStatus: domain.PrettyProjectStatus(p),
		CreatedAt:    formatTimestamp(p.CreatedAt),
		UpdatedAt:    formatTimestamp(p.UpdatedAt),
	}
	if p.Customer != nil {
		dto.CustomerName = p.Customer.Name
	}
	if p.Contact != nil {
		dto.ContactName = p.Contact.FullName()
	}
	return dto
}

func ToTaskDTO(t *domain.Task, today time.Time) domain.TaskDTO {
	dto := domain.TaskDTO{
		ID:           t.ID,
		Code:         t.Code(),
		ProjectID:    t.ProjectID,
		ServiceID:    t.ServiceID,
		Title:        t.Title,
		Description:  t.Description,
		Type:         t.Type,
		TypeCSS:      t.Type.CSS(),
		Priority:     t.Priority,
		PriorityCSS:  t.Priority.CSS(),
		OwnerID:      t.OwnerID,
		OwnerName:    t.OwnerName,
		Status:       t.Status,
		DueOn:        formatDatePtr(t.DueOn),
		ClosedAt:     formatTimestampPtr(t.ClosedAt),
		Position:     t.Position,
		PrettyStatus: domain.PrettyTaskStatus(t, today),
		CreatedAt:    formatTimestamp(t.CreatedAt),
		UpdatedAt:    formatTimestamp(t.UpdatedAt),
	}
	if t.Project != nil {
		dto.ProjectTitle = t.Project.Title
	}
	if t.Service != nil {
		dto.ServiceTitle = t.Service.Title
	}
	return dto
}

func ToServiceDTO(s *domain.Service) domain.ServiceDTO {
	return domain.ServiceDTO{
		ID:            s.ID,
		OfferID:       s.OfferID,
		Title:         s.Title,
		Description:   s.Description,
		ApprovedHours: s.ApprovedHours,
		Cost:          s.Cost,
		Position:      s.Position,
	}
}

// ToOfferDTO maps an offer with its preloaded services. The subtotal is
// the sum over service costs, totals apply discount and VAT.
func ToOfferDTO(o *domain.Offer) domain.OfferDTO {
	dto := domain.OfferDTO{
		ID:            o.ID,
		Code:          o.Code(),
		ProjectID:     o.ProjectID,
		Title:         o.Title,
		Description:   o.Description,
		OwnerID:       o.OwnerID,
		OwnerName:     o.OwnerName,
		Status:        o.Status,
		OfferedOn:     formatDatePtr(o.OfferedOn),
		ClosedOn:      formatDatePtr(o.ClosedOn),
		PostalAddress: o.PostalAddress,
		Services:      make([]domain.ServiceDTO, len(o.Services)),
		Subtotal:      decimal.Zero,
		Discount:      o.Discount,
		LiableToVAT:   o.LiableToVAT,
		PrettyStatus:  domain.PrettyOfferStatus(o),
		CreatedAt:     formatTimestamp(o.CreatedAt),
		UpdatedAt:     formatTimestamp(o.UpdatedAt),
	}
	if o.Project != nil {
		dto.ProjectTitle = o.Project.Title
	}
	for i := range o.Services {
		dto.Services[i] = ToServiceDTO(&o.Services[i])
		dto.Subtotal = dto.Subtotal.Add(o.Services[i].Cost)
	}
	dto.TotalExclTax = dto.Subtotal.Sub(dto.Discount)
	dto.TotalInclTax = dto.TotalExclTax
	if o.LiableToVAT {
		dto.TotalInclTax = dto.TotalExclTax.Add(dto.TotalExclTax.Mul(domain.VATRate).Round(2))
	}
	return dto
}

func ToLoggedHoursDTO(e *domain.LoggedHours) domain.LoggedHoursDTO {
	dto := domain.LoggedHoursDTO{
		ID:           e.ID,
		TaskID:       e.TaskID,
		RenderedByID: e.RenderedByID,
		RenderedBy:   e.RenderedBy,
		RenderedOn:   formatDate(e.RenderedOn),
		Hours:        e.Hours,
		Description:  e.Description,
		CreatedAt:    formatTimestamp(e.CreatedAt),
	}
	if e.Task != nil {
		dto.TaskCode = e.Task.Code()
	}
	return dto
}

func ToInvoiceDTO(i *domain.Invoice, today time.Time) domain.InvoiceDTO {
	dto := domain.InvoiceDTO{
		ID:           i.ID,
		Code:         i.Code(),
		ProjectID:    i.ProjectID,
		Title:        i.Title,
		Description:  i.Description,
		OwnerID:      i.OwnerID,
		OwnerName:    i.OwnerName,
		Status:       i.Status,
		InvoicedOn:   formatDatePtr(i.InvoicedOn),
		DueOn:        formatDatePtr(i.DueOn),
		ClosedOn:     formatDatePtr(i.ClosedOn),
		Subtotal:     i.Subtotal,
		Discount:     i.Discount,
		LiableToVAT:  i.LiableToVAT,
		TotalExclTax: i.TotalExclTax(),
		TotalInclTax: i.TotalInclTax(),
		PrettyStatus: domain.PrettyInvoiceStatus(i, today),
		CreatedAt:    formatTimestamp(i.CreatedAt),
		UpdatedAt:    formatTimestamp(i.UpdatedAt),
	}
	if i.Project != nil {
		dto.ProjectTitle = i.Project.Title
	}
	return dto
}

func ToRecurringInvoiceDTO(r *domain.RecurringInvoice) domain.RecurringInvoiceDTO {
	dto := domain.RecurringInvoiceDTO{
		ID:                 r.ID,
		ProjectID:          r.ProjectID,
		Title:              r.Title,
		Description:        r.Description,
		OwnerID:            r.OwnerID,
		OwnerName:          r.OwnerName,
		Periodicity:        r.Periodicity,
		StartsOn:           formatDate(r.StartsOn),
		EndsOn:             formatDatePtr(r.EndsOn),
		NextPeriodStartsOn: formatDate(r.NextPeriodStartsOn),
		Subtotal:           r.Subtotal,
		LiableToVAT:        r.LiableToVAT,
		CreatedAt:          formatTimestamp(r.CreatedAt),
		UpdatedAt:          formatTimestamp(r.UpdatedAt),
	}
	if r.Project != nil {
		dto.ProjectTitle = r.Project.Title
	}
	return dto
}

// ParseDate parses a YYYY-MM-DD request field
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// ParseDatePtr parses an optional YYYY-MM-DD request field
func ParseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
