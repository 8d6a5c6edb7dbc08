package service_test

import (
	"testing"
	"time"

	"github.com/feinwerk/workbench-api/internal/repository"
	"github.com/feinwerk/workbench-api/internal/service"
	"github.com/feinwerk/workbench-api/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// testEnv wires every service against one in-memory database
type testEnv struct {
	db *gorm.DB

	customerService    *service.CustomerService
	dealService        *service.DealService
	valueTypeService   *service.ValueTypeService
	closingTypeService *service.ClosingTypeService
	attributeService   *service.AttributeService
	projectService     *service.ProjectService
	taskService        *service.TaskService
	offerService       *service.OfferService
	logbookService     *service.LogbookService
	invoiceService     *service.InvoiceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	sequenceRepo := repository.NewCodeSequenceRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	contactRepo := repository.NewContactRepository(db)
	dealRepo := repository.NewDealRepository(db)
	valueTypeRepo := repository.NewValueTypeRepository(db)
	closingTypeRepo := repository.NewClosingTypeRepository(db)
	attributeRepo := repository.NewAttributeRepository(db)
	projectRepo := repository.NewProjectRepository(db, sequenceRepo)
	taskRepo := repository.NewTaskRepository(db, sequenceRepo)
	offerRepo := repository.NewOfferRepository(db, sequenceRepo)
	invoiceRepo := repository.NewInvoiceRepository(db, sequenceRepo)
	logbookRepo := repository.NewLogbookRepository(db)

	return &testEnv{
		db:                 db,
		customerService:    service.NewCustomerService(customerRepo, contactRepo, logger),
		dealService:        service.NewDealService(dealRepo, customerRepo, closingTypeRepo, valueTypeRepo, attributeRepo, logger),
		valueTypeService:   service.NewValueTypeService(valueTypeRepo, logger),
		closingTypeService: service.NewClosingTypeService(closingTypeRepo, logger),
		attributeService:   service.NewAttributeService(attributeRepo, logger),
		projectService:     service.NewProjectService(projectRepo, customerRepo, offerRepo, logbookRepo, logger),
		taskService:        service.NewTaskService(taskRepo, projectRepo, offerRepo, logbookRepo, logger),
		offerService:       service.NewOfferService(offerRepo, projectRepo, logger),
		logbookService:     service.NewLogbookService(logbookRepo, taskRepo, logger),
		invoiceService:     service.NewInvoiceService(invoiceRepo, projectRepo, offerRepo, logger),
	}
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

// daysAgo returns midnight UTC n days in the past
func daysAgo(n int) time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -n)
}
