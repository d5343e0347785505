package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/bookflow/bookflow-api/internal/availability"
	"github.com/bookflow/bookflow-api/internal/domain"
	catalogRepo "github.com/bookflow/bookflow-api/internal/infra/storage/catalog"
)

// maxFanOut ограничение на параллелизм расчета слотов по сотрудникам
const maxFanOut = 8

// UseCase use case для получения доступных слотов для бронирования.
// Собирает данные одним bulk-запросом, затем независимо считает слоты
// по каждому подходящему сотруднику и склеивает результат.
type UseCase struct {
	catalogStore CatalogStore
	bookingStore BookingStore
	stepMinutes  int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// stepMinutes - шаг сетки слотов; 0 означает значение по умолчанию (30 минут).
func NewUseCase(
	catalogStore CatalogStore,
	bookingStore BookingStore,
	stepMinutes int,
	logger Logger,
) *UseCase {
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultStepMinutes
	}
	return &UseCase{
		catalogStore: catalogStore,
		bookingStore: bookingStore,
		stepMinutes:  stepMinutes,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов.
//
// Политика ошибок - fail-fast: первая ошибка хранилища прерывает запрос
// целиком, частичный результат не возвращается. Расчет по сотрудникам
// чисто вычислительный и идемпотентный, запрос безопасно повторять.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, date=%s, employee=%v, location=%v",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.EmployeeID, req.LocationID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу - она задает длительность слота
	service, err := uc.catalogStore.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%s is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 3. Определяем локацию: явный фильтр приоритетнее локации самой услуги
	locationID := req.LocationID
	if locationID == nil {
		locationID = service.LocationID
	}

	// 4. Получаем подходящих сотрудников
	employees, err := uc.catalogStore.ListEligibleEmployees(ctx, req.ServiceID, locationID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list employees for service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to list employees: %v", ErrInternal, err)
	}

	// 5. Сужаем до конкретного сотрудника, если он запрошен.
	// Неподходящий сотрудник дает пустой список слотов, а не ошибку.
	if req.EmployeeID != nil {
		employees = filterByEmployeeID(employees, *req.EmployeeID)
	}

	// Стабильный порядок обхода - по ID сотрудника
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })

	if len(employees) == 0 {
		uc.logger.Info("GetAvailableSlots: no eligible employees for service=%s", req.ServiceID)
		return &Response{Date: req.Date, ServiceID: req.ServiceID, Slots: []domain.TimeSlot{}}, nil
	}

	// 6. Одним запросом получаем все бронирования этих сотрудников на дату.
	// Никаких обращений к хранилищу внутри расчета слотов.
	employeeIDs := make([]string, len(employees))
	for i, emp := range employees {
		employeeIDs[i] = emp.ID
	}

	bookings, err := uc.bookingStore.ListActiveByDate(ctx, req.Date, employeeIDs)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	bookingsByEmployee := groupByEmployee(bookings)

	// 7. Считаем слоты по сотрудникам параллельно: каждый расчет трогает
	// только бронирования своего сотрудника
	results := make([][]domain.TimeSlot, len(employees))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxFanOut)

	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			open, ok := availability.ResolveOpenInterval(emp.WeeklyTemplate, req.Date)
			if !ok {
				// Выходной - пустая последовательность, не ошибка
				return nil
			}
			results[i] = availability.GenerateSlots(
				emp,
				open,
				service.DurationMinutes,
				uc.stepMinutes,
				bookingsByEmployee[emp.ID],
			)
			return nil
		})
	}

	// Расчет чистый и не возвращает ошибок, но дожидаемся всех веток
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: slot computation: %v", ErrInternal, err)
	}

	// 8. Склеиваем результаты в порядке сотрудников
	slots := make([]domain.TimeSlot, 0)
	for _, perEmployee := range results {
		for _, slot := range perEmployee {
			if req.OnlyAvailable && !slot.Available {
				continue
			}
			slots = append(slots, slot)
		}
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%s, date=%s, employees=%d",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat), len(employees))

	return &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}

// filterByEmployeeID оставляет только сотрудника с указанным ID
func filterByEmployeeID(employees []*domain.Employee, employeeID string) []*domain.Employee {
	filtered := make([]*domain.Employee, 0, 1)
	for _, emp := range employees {
		if emp.ID == employeeID {
			filtered = append(filtered, emp)
		}
	}
	return filtered
}

// groupByEmployee группирует бронирования по ID сотрудника
func groupByEmployee(bookings []*domain.Booking) map[string][]*domain.Booking {
	grouped := make(map[string][]*domain.Booking, len(bookings))
	for _, b := range bookings {
		grouped[b.EmployeeID] = append(grouped[b.EmployeeID], b)
	}
	return grouped
}
