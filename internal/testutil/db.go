// Package testutil provides database helpers and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an in-memory SQLite database with the full schema.
// Each call returns an isolated database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A fresh connection would see a fresh empty in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.Customer{},
		&domain.Contact{},
		&domain.ValueType{},
		&domain.ClosingType{},
		&domain.AttributeGroup{},
		&domain.Attribute{},
		&domain.Deal{},
		&domain.DealValue{},
		&domain.Project{},
		&domain.Task{},
		&domain.Offer{},
		&domain.Service{},
		&domain.LoggedHours{},
		&domain.Invoice{},
		&domain.RecurringInvoice{},
		&domain.CodeSequence{},
	), "failed to migrate schema")

	return db
}

// Date builds a midnight UTC time for fixtures
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestCustomer creates a customer fixture
func CreateTestCustomer(t *testing.T, db *gorm.DB, name string) *domain.Customer {
	t.Helper()
	customer := &domain.Customer{
		Name:  name,
		Email: "test@example.com",
		Phone: "0791234567",
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

// CreateTestContact creates a contact fixture for a customer
func CreateTestContact(t *testing.T, db *gorm.DB, customerID uint) *domain.Contact {
	t.Helper()
	contact := &domain.Contact{
		CustomerID: customerID,
		FirstName:  "Vera",
		LastName:   "Beispiel",
		Email:      "vera@example.com",
	}
	require.NoError(t, db.Create(contact).Error)
	return contact
}

// CreateTestValueType creates a value type fixture
func CreateTestValueType(t *testing.T, db *gorm.DB, title string) *domain.ValueType {
	t.Helper()
	vt := &domain.ValueType{Title: title}
	require.NoError(t, db.Create(vt).Error)
	return vt
}

// CreateTestAttributeGroup creates an attribute group fixture
func CreateTestAttributeGroup(t *testing.T, db *gorm.DB, title string, required bool) *domain.AttributeGroup {
	t.Helper()
	g := &domain.AttributeGroup{Title: title, IsRequired: required}
	require.NoError(t, db.Create(g).Error)
	return g
}

// CreateTestAttribute creates an attribute fixture within a group
func CreateTestAttribute(t *testing.T, db *gorm.DB, groupID uint, title string) *domain.Attribute {
	t.Helper()
	a := &domain.Attribute{GroupID: groupID, Title: title}
	require.NoError(t, db.Create(a).Error)
	return a
}

// CreateTestClosingType creates a closing type fixture
func CreateTestClosingType(t *testing.T, db *gorm.DB, title string, win bool) *domain.ClosingType {
	t.Helper()
	ct := &domain.ClosingType{Title: title, RepresentsAWin: win}
	require.NoError(t, db.Create(ct).Error)
	return ct
}

// CreateTestDeal creates an open deal fixture
func CreateTestDeal(t *testing.T, db *gorm.DB, customerID uint, title string) *domain.Deal {
	t.Helper()
	deal := &domain.Deal{
		CustomerID:  customerID,
		Title:       title,
		OwnerID:     "user-1",
		OwnerName:   "Test User",
		Status:      domain.DealOpen,
		Probability: domain.ProbabilityUnknown,
	}
	require.NoError(t, db.Create(deal).Error)
	return deal
}

// CreateTestProject creates a work-in-progress project fixture with a
// code number claimed from the year sequence
func CreateTestProject(t *testing.T, db *gorm.DB, customerID uint, title string) *domain.Project {
	t.Helper()
	var last int
	require.NoError(t, db.Raw(
		`INSERT INTO code_sequences (scope_type, scope_key, last_value, created_at, updated_at)
		 VALUES (?, ?, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		 ON CONFLICT (scope_type, scope_key)
		 DO UPDATE SET last_value = code_sequences.last_value + 1, updated_at = CURRENT_TIMESTAMP
		 RETURNING last_value`,
		"project", time.Now().UTC().Format("2006"),
	).Scan(&last).Error)

	project := &domain.Project{
		CustomerID: customerID,
		Title:      title,
		OwnerID:    "user-1",
		OwnerName:  "Test User",
		Status:     domain.ProjectWorkInProgress,
		Invoicing:  true,
		CodeNumber: last,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

// CreateTestTask creates an inbox task fixture
func CreateTestTask(t *testing.T, db *gorm.DB, projectID uint, title string) *domain.Task {
	t.Helper()
	task := &domain.Task{
		ProjectID:  projectID,
		Title:      title,
		Type:       domain.TaskTypeTask,
		Priority:   domain.PriorityNormal,
		Status:     domain.TaskInbox,
		CodeNumber: 1,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

// CreateTestOffer creates an in-preparation offer fixture
func CreateTestOffer(t *testing.T, db *gorm.DB, projectID uint, title string) *domain.Offer {
	t.Helper()
	offer := &domain.Offer{
		ProjectID:   projectID,
		Title:       title,
		OwnerID:     "user-1",
		OwnerName:   "Test User",
		Status:      domain.OfferInPreparation,
		LiableToVAT: true,
		CodeNumber:  1,
	}
	require.NoError(t, db.Create(offer).Error)
	return offer
}

// CreateTestService creates a service line fixture on an offer
func CreateTestService(t *testing.T, db *gorm.DB, offerID uint, title string, cost string) *domain.Service {
	t.Helper()
	svc := &domain.Service{
		OfferID:       offerID,
		Title:         title,
		Cost:          decimal.RequireFromString(cost),
		ApprovedHours: decimal.NewFromInt(0),
	}
	require.NoError(t, db.Create(svc).Error)
	return svc
}

// CreateTestInvoice creates an in-preparation invoice fixture
func CreateTestInvoice(t *testing.T, db *gorm.DB, projectID uint, title string) *domain.Invoice {
	t.Helper()
	invoice := &domain.Invoice{
		ProjectID:   projectID,
		Title:       title,
		OwnerID:     "user-1",
		OwnerName:   "Test User",
		Status:      domain.InvoiceInPreparation,
		Subtotal:    decimal.NewFromInt(0),
		Discount:    decimal.NewFromInt(0),
		LiableToVAT: true,
		CodeNumber:  1,
	}
	require.NoError(t, db.Create(invoice).Error)
	return invoice
}
