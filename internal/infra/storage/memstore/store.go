// Package memstore реализует хранилище в памяти для demo-режима:
// сервис поднимается без Postgres с предзаполненным каталогом.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bookflow/bookflow-api/internal/domain"
	bookingRepo "github.com/bookflow/bookflow-api/internal/infra/storage/booking"
	catalogRepo "github.com/bookflow/bookflow-api/internal/infra/storage/catalog"
)

// Store потокобезопасное хранилище каталога и бронирований в памяти.
// Возвращает те же sentinel-ошибки, что и Postgres-репозитории,
// поэтому usecase-слой не различает режимы хранения.
type Store struct {
	mu sync.RWMutex

	services  map[string]*domain.Service
	employees map[string]*domain.Employee
	locations map[string]*domain.Location
	bookings  map[string]*domain.Booking

	// txMu сериализует транзакции DoSerializable: проверка конфликта
	// и вставка бронирования выполняются под одним мьютексом, поэтому
	// из N конкурирующих созданий на один интервал выигрывает ровно одно.
	txMu sync.Mutex
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		services:  make(map[string]*domain.Service),
		employees: make(map[string]*domain.Employee),
		locations: make(map[string]*domain.Location),
		bookings:  make(map[string]*domain.Booking),
	}
}

// NewWithFixtures создает хранилище с demo-данными салона
func NewWithFixtures() *Store {
	s := New()
	s.seedFixtures()
	return s
}

// DoSerializable выполняет fn как сериализованную транзакцию.
// В памяти нет уровней изоляции - вместо них глобальный мьютекс на запись.
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx)
}

// Do выполняет fn с теми же гарантиями, что и DoSerializable
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.DoSerializable(ctx, fn)
}

// GetService получает услугу по ID
func (s *Store) GetService(ctx context.Context, serviceID string) (*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[serviceID]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	copied := *svc
	return &copied, nil
}

// ListServices получает все активные услуги, отсортированные по имени
func (s *Store) ListServices(ctx context.Context) ([]*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	services := make([]*domain.Service, 0, len(s.services))
	for _, svc := range s.services {
		if !svc.Active {
			continue
		}
		copied := *svc
		services = append(services, &copied)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services, nil
}

// GetEmployee получает сотрудника по ID
func (s *Store) GetEmployee(ctx context.Context, employeeID string) (*domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emp, ok := s.employees[employeeID]
	if !ok {
		return nil, catalogRepo.ErrEmployeeNotFound
	}
	copied := *emp
	return &copied, nil
}

// ListEmployees получает всех активных сотрудников
func (s *Store) ListEmployees(ctx context.Context) ([]*domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees := make([]*domain.Employee, 0, len(s.employees))
	for _, emp := range s.employees {
		if !emp.Active {
			continue
		}
		copied := *emp
		employees = append(employees, &copied)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].Name < employees[j].Name })
	return employees, nil
}

// ListEligibleEmployees получает активных сотрудников, оказывающих услугу,
// с опциональной фильтрацией по локации
func (s *Store) ListEligibleEmployees(ctx context.Context, serviceID string, locationID *string) ([]*domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees := make([]*domain.Employee, 0)
	for _, emp := range s.employees {
		if !emp.Active || !emp.Offers(serviceID) {
			continue
		}
		if locationID != nil && !emp.AtLocation(*locationID) {
			continue
		}
		copied := *emp
		employees = append(employees, &copied)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].Name < employees[j].Name })
	return employees, nil
}

// GetLocation получает локацию по ID
func (s *Store) GetLocation(ctx context.Context, locationID string) (*domain.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loc, ok := s.locations[locationID]
	if !ok {
		return nil, catalogRepo.ErrLocationNotFound
	}
	copied := *loc
	return &copied, nil
}

// ListLocations получает все активные локации
func (s *Store) ListLocations(ctx context.Context) ([]*domain.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	locations := make([]*domain.Location, 0, len(s.locations))
	for _, loc := range s.locations {
		if !loc.Active {
			continue
		}
		copied := *loc
		locations = append(locations, &copied)
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i].Name < locations[j].Name })
	return locations, nil
}

// Create сохраняет новое бронирование
func (s *Store) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	copied := *booking
	copied.CreatedAt = now
	copied.UpdatedAt = now
	s.bookings[copied.ID] = &copied

	result := copied
	return &result, nil
}

// GetByID получает бронирование по ID
func (s *Store) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

// ListActiveByDate получает неотмененные бронирования указанных сотрудников на дату
func (s *Store) ListActiveByDate(ctx context.Context, date time.Time, employeeIDs []string) ([]*domain.Booking, error) {
	wanted := make(map[string]struct{}, len(employeeIDs))
	for _, id := range employeeIDs {
		wanted[id] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if !b.BlocksSlot() || !sameDate(b.Date, date) {
			continue
		}
		if _, ok := wanted[b.EmployeeID]; !ok {
			continue
		}
		copied := *b
		bookings = append(bookings, &copied)
	}
	sortByEmployeeAndStart(bookings)
	return bookings, nil
}

// ListActiveByEmployeeAndDate получает неотмененные бронирования сотрудника на дату
func (s *Store) ListActiveByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if !b.BlocksSlot() || b.EmployeeID != employeeID || !sameDate(b.Date, date) {
			continue
		}
		copied := *b
		bookings = append(bookings, &copied)
	}
	sortByEmployeeAndStart(bookings)
	return bookings, nil
}

// ListByCustomerEmail получает историю бронирований клиента, новые первыми
func (s *Store) ListByCustomerEmail(ctx context.Context, email string) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.CustomerEmail != email {
			continue
		}
		copied := *b
		bookings = append(bookings, &copied)
	}
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].Date.Equal(bookings[j].Date) {
			return bookings[i].Date.After(bookings[j].Date)
		}
		return bookings[j].StartTime.IsBefore(bookings[i].StartTime)
	})
	return bookings, nil
}

// Cancel отменяет бронирование с указанием причины
func (s *Store) Cancel(ctx context.Context, id string, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}

	now := time.Now().UTC()
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	b.CancelledAt = &now
	b.UpdatedAt = now
	return nil
}

// UpdateStatus обновляет статус бронирования
func (s *Store) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}

	b.Status = status
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func sortByEmployeeAndStart(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].EmployeeID != bookings[j].EmployeeID {
			return bookings[i].EmployeeID < bookings[j].EmployeeID
		}
		return bookings[i].StartTime.IsBefore(bookings[j].StartTime)
	})
}
