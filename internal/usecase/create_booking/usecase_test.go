package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookflow/bookflow-api/internal/domain"
	catalogRepo "github.com/bookflow/bookflow-api/internal/infra/storage/catalog"
	"github.com/bookflow/bookflow-api/internal/infra/storage/memstore"
	"github.com/bookflow/bookflow-api/pkg/ptr"
	"github.com/bookflow/bookflow-api/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeCatalogStore struct {
	service  *domain.Service
	employee *domain.Employee

	serviceErr  error
	employeeErr error
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

func (f *fakeCatalogStore) GetEmployee(_ context.Context, employeeID string) (*domain.Employee, error) {
	if f.employeeErr != nil {
		return nil, f.employeeErr
	}
	if f.employee == nil || f.employee.ID != employeeID {
		return nil, catalogRepo.ErrEmployeeNotFound
	}
	return f.employee, nil
}

type fakeBookingStore struct {
	existing []*domain.Booking

	listErr   error
	createErr error

	created *domain.Booking
}

func (f *fakeBookingStore) ListActiveByEmployeeAndDate(_ context.Context, _ string, _ time.Time) ([]*domain.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.existing, nil
}

func (f *fakeBookingStore) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *booking
	created.CreatedAt = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	f.created = &created
	return &created, nil
}

type nopTxManager struct{}

func (nopTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func workWeek() domain.WeeklyTemplate {
	var tpl domain.WeeklyTemplate
	for d := time.Monday; d <= time.Friday; d++ {
		start, _ := types.NewTimeStringFromString("09:00")
		end, _ := types.NewTimeStringFromString("17:00")
		tpl[d] = &domain.DayHours{Start: start, End: end}
	}
	return tpl
}

func testService() *domain.Service {
	return &domain.Service{
		ID:              "svc-1",
		Name:            "Strihanie vlasov",
		DurationMinutes: 45,
		Price:           25,
		LocationID:      ptr.Ptr("loc-1"),
		Active:          true,
	}
}

func testEmployee() *domain.Employee {
	return &domain.Employee{
		ID:             "emp-1",
		Name:           "Ján Kaderník",
		ServiceIDs:     []string{"svc-1"},
		WeeklyTemplate: workWeek(),
		Active:         true,
	}
}

// monday 2026-03-16; the fixed clock sits a week earlier
var (
	monday  = time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)
	testNow = time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC)
)

func validRequest() *Request {
	return &Request{
		ServiceID:     "svc-1",
		EmployeeID:    "emp-1",
		Date:          monday,
		StartTime:     types.TimeString("10:00"),
		EndTime:       types.TimeString("10:45"),
		CustomerName:  "Eva Nováková",
		CustomerEmail: "eva@example.com",
		CustomerPhone: "+421 900 111 222",
	}
}

func newTestUseCase(catalog *fakeCatalogStore, bookings *fakeBookingStore) *UseCase {
	uc := NewUseCase(catalog, bookings, nopTxManager{}, domain.StatusConfirmed, nopLogger{})
	uc.timeProvider = fixedClock{now: testNow}
	return uc
}

func TestExecute_Success(t *testing.T) {
	catalog := &fakeCatalogStore{service: testService(), employee: testEmployee()}
	bookings := &fakeBookingStore{}
	uc := newTestUseCase(catalog, bookings)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	_, err = uuid.Parse(resp.ID)
	assert.NoError(t, err, "booking ID must be a valid UUID")

	assert.Equal(t, "svc-1", resp.ServiceID)
	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, "Strihanie vlasov", resp.ServiceName)
	assert.Equal(t, float64(25), resp.ServicePrice)
	assert.Equal(t, "Ján Kaderník", resp.EmployeeName)
	assert.Equal(t, "eva@example.com", resp.CustomerEmail)

	// локация не передана - берется локация услуги
	require.NotNil(t, resp.LocationID)
	assert.Equal(t, "loc-1", *resp.LocationID)
}

func TestExecute_RequestLocationWins(t *testing.T) {
	catalog := &fakeCatalogStore{service: testService(), employee: testEmployee()}
	uc := newTestUseCase(catalog, &fakeBookingStore{})

	req := validRequest()
	req.LocationID = ptr.Ptr("loc-2")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.LocationID)
	assert.Equal(t, "loc-2", *resp.LocationID)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"missing serviceID", func(r *Request) { r.ServiceID = "" }},
		{"missing employeeID", func(r *Request) { r.EmployeeID = "" }},
		{"empty locationID", func(r *Request) { r.LocationID = ptr.Ptr("") }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"invalid startTime", func(r *Request) { r.StartTime = types.TimeString("10am") }},
		{"invalid endTime", func(r *Request) { r.EndTime = types.TimeString("") }},
		{"start not before end", func(r *Request) { r.StartTime, r.EndTime = r.EndTime, r.StartTime }},
		{"zero-width interval", func(r *Request) { r.EndTime = r.StartTime }},
		{"missing customerName", func(r *Request) { r.CustomerName = "" }},
		{"missing customerEmail", func(r *Request) { r.CustomerEmail = "" }},
		{"missing customerPhone", func(r *Request) { r.CustomerPhone = "" }},
		{"notes too long", func(r *Request) {
			long := make([]byte, domain.MaxNotesLength+1)
			for i := range long {
				long[i] = 'a'
			}
			r.Notes = ptr.Ptr(string(long))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &fakeCatalogStore{service: testService(), employee: testEmployee()}
			uc := newTestUseCase(catalog, &fakeBookingStore{})

			req := validRequest()
			tt.mutate(req)

			resp, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, resp)
		})
	}
}

func TestExecute_ServiceNotFound(t *testing.T) {
	catalog := &fakeCatalogStore{service: nil, employee: testEmployee()}
	uc := newTestUseCase(catalog, &fakeBookingStore{})

	resp, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Nil(t, resp)
}

func TestExecute_InactiveServiceTreatedAsNotFound(t *testing.T) {
	svc := testService()
	svc.Active = false
	catalog := &fakeCatalogStore{service: svc, employee: testEmployee()}
	uc := newTestUseCase(catalog, &fakeBookingStore{})

	resp, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Nil(t, resp)
}

func TestExecute_EmployeeNotFound(t *testing.T) {
	catalog := &fakeCatalogStore{service: testService(), employee: nil}
	uc := newTestUseCase(catalog, &fakeBookingStore{})

	resp, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	assert.Nil(t, resp)
}

func TestExecute_InactiveEmployeeTreatedAsNotFound(t *testing.T) {
	emp := testEmployee()
	emp.Active = false
	catalog := &fakeCatalogStore{service: testService(), employee: emp}
	uc := newTestUseCase(catalog, &fakeBookingStore{})

	resp, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	assert.Nil(t, resp)
}

func TestExecute_ServiceNotOffered(t *testing.T) {
	emp := testEmployee()
	emp.ServiceIDs = []string{"svc-other"}
	catalog := &fakeCatalogStore{service: testService(), employee: emp}
	uc := newTestUseCase(catalog, &fakeBookingStore{})

	resp, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotOffered)
	assert.Nil(t, resp)
}

func TestExecute_DurationMismatch(t *testing.T) {
	catalog := &fakeCatalogStore{service: testService(), employee: testEmployee()}
	uc := newTestUseCase(catalog, &fakeBookingStore{})

	// услуга длится 45 минут, интервал - 30
	req := validRequest()
	req.EndTime = types.TimeString("10:30")

	resp, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDurationMismatch)
	assert.Nil(t, resp)
}

func TestExecute_DateInPast(t *testing.T) {
	catalog := &fakeCatalogStore{service: testService(), employee: testEmployee()}
	uc := newTestUseCase(catalog, &fakeBookingStore{})

	req := validRequest()
	req.Date = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
	assert.Nil(t, resp)
}

func TestExecute_TodayEarlierTimeInPast(t *testing.T) {
	catalog := &fakeCatalogStore{service: testService(), employee: testEmployee()}
	uc := newTestUseCase(catalog, &fakeBookingStore{})

	// часы показывают 12:00 того же дня - слот на 10:00 уже прошел
	req := validRequest()
	req.Date = testNow

	resp, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
	assert.Nil(t, resp)
}

func TestExecute_TodayLaterTimeAllowed(t *testing.T) {
	catalog := &fakeCatalogStore{service: testService(), employee: testEmployee()}
	uc := newTestUseCase(catalog, &fakeBookingStore{})

	req := validRequest()
	req.Date = testNow
	req.StartTime = types.TimeString("14:00")
	req.EndTime = types.TimeString("14:45")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestExecute_EmployeeNotWorking(t *testing.T) {
	catalog := &fakeCatalogStore{service: testService(), employee: testEmployee()}
	uc := newTestUseCase(catalog, &fakeBookingStore{})

	// воскресенье - выходной
	req := validRequest()
	req.Date = time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmployeeNotWorking)
	assert.Nil(t, resp)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	catalog := &fakeCatalogStore{service: testService(), employee: testEmployee()}
	uc := newTestUseCase(catalog, &fakeBookingStore{})

	// интервал вылезает за 17:00
	req := validRequest()
	req.StartTime = types.TimeString("16:30")
	req.EndTime = types.TimeString("17:15")

	resp, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	assert.Nil(t, resp)
}

func TestExecute_SlotConflict(t *testing.T) {
	catalog := &fakeCatalogStore{service: testService(), employee: testEmployee()}
	bookings := &fakeBookingStore{existing: []*domain.Booking{{
		ID:         "b-1",
		EmployeeID: "emp-1",
		Date:       monday,
		StartTime:  types.TimeString("10:30"),
		EndTime:    types.TimeString("11:15"),
		Status:     domain.StatusConfirmed,
	}}}
	uc := newTestUseCase(catalog, bookings)

	resp, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, resp)
	assert.Nil(t, bookings.created, "no insert after a detected conflict")
}

func TestExecute_TouchingBookingDoesNotConflict(t *testing.T) {
	catalog := &fakeCatalogStore{service: testService(), employee: testEmployee()}
	bookings := &fakeBookingStore{existing: []*domain.Booking{{
		ID:         "b-1",
		EmployeeID: "emp-1",
		Date:       monday,
		StartTime:  types.TimeString("09:15"),
		EndTime:    types.TimeString("10:00"),
		Status:     domain.StatusConfirmed,
	}}}
	uc := newTestUseCase(catalog, bookings)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestExecute_StorageErrors(t *testing.T) {
	storageErr := errors.New("connection reset")

	t.Run("catalog failure", func(t *testing.T) {
		catalog := &fakeCatalogStore{serviceErr: storageErr}
		uc := newTestUseCase(catalog, &fakeBookingStore{})

		resp, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
		assert.Nil(t, resp)
	})

	t.Run("booking list failure", func(t *testing.T) {
		catalog := &fakeCatalogStore{service: testService(), employee: testEmployee()}
		uc := newTestUseCase(catalog, &fakeBookingStore{listErr: storageErr})

		resp, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
		assert.Nil(t, resp)
	})

	t.Run("insert failure", func(t *testing.T) {
		catalog := &fakeCatalogStore{service: testService(), employee: testEmployee()}
		uc := newTestUseCase(catalog, &fakeBookingStore{createErr: storageErr})

		resp, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
		assert.Nil(t, resp)
	})

	// Причина ошибки хранилища должна оставаться в цепочке: менеджер
	// транзакций распознает по ней serialization failure и повторяет попытку
	t.Run("driver error stays unwrappable", func(t *testing.T) {
		driverErr := &pq.Error{Code: "40001"}
		catalog := &fakeCatalogStore{service: testService(), employee: testEmployee()}
		uc := newTestUseCase(catalog, &fakeBookingStore{listErr: driverErr})

		_, err := uc.Execute(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrInternal)

		var pqErr *pq.Error
		require.True(t, errors.As(err, &pqErr))
		assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
	})
}

// TestExecute_ConcurrentSameSlot гоняет N конкурирующих запросов на один
// и тот же слот через полноценное in-memory хранилище: ровно один должен
// выиграть, остальные получить ErrSlotConflict.
func TestExecute_ConcurrentSameSlot(t *testing.T) {
	store := memstore.NewWithFixtures()
	uc := NewUseCase(store, store, store, domain.StatusConfirmed, nopLogger{})

	// понедельник в далеком будущем, чтобы проверка прошлого не мешала
	date := time.Date(2030, time.January, 7, 0, 0, 0, 0, time.UTC)

	const workers = 8

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := &Request{
				ServiceID:     "1",
				EmployeeID:    "1",
				Date:          date,
				StartTime:     types.TimeString("10:00"),
				EndTime:       types.TimeString("10:45"),
				CustomerName:  "Eva Nováková",
				CustomerEmail: "eva@example.com",
				CustomerPhone: "+421 900 111 222",
			}
			_, err := uc.Execute(context.Background(), req)
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes, "exactly one request wins the slot")
	assert.Equal(t, workers-1, conflicts)
}
