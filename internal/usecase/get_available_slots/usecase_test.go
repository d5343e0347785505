package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookflow/bookflow-api/internal/domain"
	catalogRepo "github.com/bookflow/bookflow-api/internal/infra/storage/catalog"
	"github.com/bookflow/bookflow-api/pkg/ptr"
	"github.com/bookflow/bookflow-api/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeCatalogStore struct {
	service   *domain.Service
	employees []*domain.Employee

	serviceErr   error
	employeesErr error

	gotLocationID *string
}

func (f *fakeCatalogStore) GetService(_ context.Context, serviceID string) (*domain.Service, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	if f.service == nil || f.service.ID != serviceID {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return f.service, nil
}

func (f *fakeCatalogStore) ListEligibleEmployees(_ context.Context, _ string, locationID *string) ([]*domain.Employee, error) {
	f.gotLocationID = locationID
	if f.employeesErr != nil {
		return nil, f.employeesErr
	}
	return f.employees, nil
}

type fakeBookingStore struct {
	bookings []*domain.Booking
	err      error
	calls    int
}

func (f *fakeBookingStore) ListActiveByDate(_ context.Context, _ time.Time, _ []string) ([]*domain.Booking, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings, nil
}

func workWeek(start, end string) domain.WeeklyTemplate {
	var tpl domain.WeeklyTemplate
	for d := time.Monday; d <= time.Friday; d++ {
		tpl[d] = &domain.DayHours{Start: types.TimeString(start), End: types.TimeString(end)}
	}
	return tpl
}

// monday фиксированная дата-понедельник для тестов
var monday = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

func testService() *domain.Service {
	return &domain.Service{ID: "1", Name: "Strihanie vlasov", DurationMinutes: 45, Active: true}
}

func testEmployees() []*domain.Employee {
	return []*domain.Employee{
		{ID: "1", Name: "Ján Kaderník", ServiceIDs: []string{"1"}, WeeklyTemplate: workWeek("09:00", "12:00"), Active: true},
		{ID: "2", Name: "Mária Stylistka", ServiceIDs: []string{"1"}, WeeklyTemplate: workWeek("09:00", "12:00"), Active: true},
	}
}

func TestExecute_SlotsForAllEligibleEmployees(t *testing.T) {
	catalog := &fakeCatalogStore{service: testService(), employees: testEmployees()}
	bookings := &fakeBookingStore{}
	uc := NewUseCase(catalog, bookings, 30, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: "1"})
	require.NoError(t, err)

	// По 6 слотов на каждого из двух сотрудников (09:00-12:00, 45 мин, шаг 30)
	require.Len(t, resp.Slots, 12)
	assert.Equal(t, "1", resp.Slots[0].EmployeeID)
	assert.Equal(t, "2", resp.Slots[6].EmployeeID)
	assert.Equal(t, 1, bookings.calls, "bookings must be prefetched with a single bulk query")
}

func TestExecute_EmployeeFilter(t *testing.T) {
	catalog := &fakeCatalogStore{service: testService(), employees: testEmployees()}
	uc := NewUseCase(catalog, &fakeBookingStore{}, 30, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:       monday,
		ServiceID:  "1",
		EmployeeID: ptr.Ptr("2"),
	})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	for _, s := range resp.Slots {
		assert.Equal(t, "2", s.EmployeeID)
	}
}

func TestExecute_UnknownEmployeeGivesEmptyResult(t *testing.T) {
	catalog := &fakeCatalogStore{service: testService(), employees: testEmployees()}
	uc := NewUseCase(catalog, &fakeBookingStore{}, 30, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:       monday,
		ServiceID:  "1",
		EmployeeID: ptr.Ptr("99"),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_OnlyAvailableFiltersBusySlots(t *testing.T) {
	catalog := &fakeCatalogStore{
		service:   testService(),
		employees: testEmployees()[:1],
	}
	bookings := &fakeBookingStore{bookings: []*domain.Booking{
		{EmployeeID: "1", StartTime: "10:00", EndTime: "10:45", Status: domain.StatusConfirmed},
	}}
	uc := NewUseCase(catalog, bookings, 30, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:          monday,
		ServiceID:     "1",
		OnlyAvailable: true,
	})
	require.NoError(t, err)

	// Из 6 слотов заняты 09:30, 10:00 и 10:30
	require.Len(t, resp.Slots, 3)
	for _, s := range resp.Slots {
		assert.True(t, s.Available)
	}
}

func TestExecute_ClosedDayGivesEmptyResult(t *testing.T) {
	sunday := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	catalog := &fakeCatalogStore{service: testService(), employees: testEmployees()}
	uc := NewUseCase(catalog, &fakeBookingStore{}, 30, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: sunday, ServiceID: "1"})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots, "closed day is an empty sequence, not an error")
}

func TestExecute_LocationFallsBackToService(t *testing.T) {
	svc := testService()
	svc.LocationID = ptr.Ptr("loc-1")
	catalog := &fakeCatalogStore{service: svc, employees: testEmployees()}
	uc := NewUseCase(catalog, &fakeBookingStore{}, 30, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: "1"})
	require.NoError(t, err)
	require.NotNil(t, catalog.gotLocationID)
	assert.Equal(t, "loc-1", *catalog.gotLocationID)

	// Явный фильтр локации важнее локации услуги
	_, err = uc.Execute(context.Background(), &Request{
		Date:       monday,
		ServiceID:  "1",
		LocationID: ptr.Ptr("loc-2"),
	})
	require.NoError(t, err)
	require.NotNil(t, catalog.gotLocationID)
	assert.Equal(t, "loc-2", *catalog.gotLocationID)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	catalog := &fakeCatalogStore{}
	uc := NewUseCase(catalog, &fakeBookingStore{}, 30, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: "missing"})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveServiceTreatedAsNotFound(t *testing.T) {
	svc := testService()
	svc.Active = false
	catalog := &fakeCatalogStore{service: svc}
	uc := NewUseCase(catalog, &fakeBookingStore{}, 30, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: "1"})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_StorageErrorFailsWholeRequest(t *testing.T) {
	catalog := &fakeCatalogStore{service: testService(), employees: testEmployees()}
	bookings := &fakeBookingStore{err: errors.New("connection reset")}
	uc := NewUseCase(catalog, bookings, 30, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: "1"})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Nil(t, resp, "partial results must not be returned")
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeCatalogStore{}, &fakeBookingStore{}, 30, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: "1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: monday, ServiceID: "1", EmployeeID: ptr.Ptr("")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
