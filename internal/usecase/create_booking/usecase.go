package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bookflow/bookflow-api/internal/availability"
	"github.com/bookflow/bookflow-api/internal/domain"
	catalogRepo "github.com/bookflow/bookflow-api/internal/infra/storage/catalog"
)

// UseCase use case создания бронирования.
// Проверка конфликта и вставка выполняются одной атомарной единицей:
// сериализуемая транзакция перечитывает бронирования сотрудника на дату
// (с блокировкой строк) и коммитит вставку, только если пересечений нет.
// Конкурирующие запросы на один интервал сериализуются - ровно один
// выигрывает, остальные получают ErrSlotConflict.
type UseCase struct {
	catalogStore  CatalogStore
	bookingStore  BookingStore
	txManager     TransactionManager
	timeProvider  TimeProvider
	defaultStatus domain.BookingStatus
	logger        Logger
}

// NewUseCase создает новый экземпляр use case.
// defaultStatus - статус создаваемого бронирования (pending или confirmed).
func NewUseCase(
	catalogStore CatalogStore,
	bookingStore BookingStore,
	txManager TransactionManager,
	defaultStatus domain.BookingStatus,
	logger Logger,
) *UseCase {
	if !domain.ValidStatus(defaultStatus) {
		defaultStatus = domain.DefaultBookingStatus
	}
	return &UseCase{
		catalogStore:  catalogStore,
		bookingStore:  bookingStore,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		defaultStatus: defaultStatus,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%s, employee=%s, date=%s, interval=%s-%s",
		req.ServiceID, req.EmployeeID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.catalogStore.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateBooking: service id=%s is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Получаем сотрудника
	employee, err := uc.catalogStore.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("CreateBooking: employee id=%s not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("CreateBooking: failed to get employee id=%s: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}
	if !employee.Active {
		uc.logger.Warn("CreateBooking: employee id=%s is inactive", req.EmployeeID)
		return nil, ErrEmployeeNotFound
	}

	// 5. Сотрудник должен выполнять эту услугу
	if !employee.Offers(req.ServiceID) {
		uc.logger.Warn("CreateBooking: employee id=%s does not offer service id=%s",
			req.EmployeeID, req.ServiceID)
		return nil, ErrServiceNotOffered
	}

	// 6. Интервал должен точно соответствовать длительности услуги -
	// защита от устаревшего или подмененного клиентского payload
	intervalMinutes, err := req.EndTime.Sub(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid time interval: %v", ErrInvalidInput, err)
	}
	if intervalMinutes != service.DurationMinutes {
		uc.logger.Warn("CreateBooking: interval %d min does not match service duration %d min",
			intervalMinutes, service.DurationMinutes)
		return nil, ErrDurationMismatch
	}

	// 7. Дата и время не должны быть в прошлом относительно серверных часов
	if err := validateNotInPast(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: past date check failed: %v", err)
		return nil, err
	}

	// 8. Интервал должен целиком лежать в рабочих часах сотрудника
	open, ok := availability.ResolveOpenInterval(employee.WeeklyTemplate, req.Date)
	if !ok {
		uc.logger.Warn("CreateBooking: employee id=%s is not working on %s",
			req.EmployeeID, req.Date.Format(domain.DateFormat))
		return nil, ErrEmployeeNotWorking
	}
	if !availability.WithinInterval(req.StartTime, req.EndTime, open) {
		uc.logger.Warn("CreateBooking: interval %s-%s is outside working hours %s-%s",
			req.StartTime, req.EndTime, open.Start, open.End)
		return nil, ErrOutsideWorkingHours
	}

	// 9. Атомарная единица: перепроверка конфликта + вставка
	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Перечитываем неотмененные бронирования сотрудника на дату.
		// Внутри транзакции репозиторий блокирует строки (FOR UPDATE).
		bookings, err := uc.bookingStore.ListActiveByEmployeeAndDate(txCtx, req.EmployeeID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 9.2. Тот же полуинтервальный тест, что и при генерации слотов
		if availability.HasConflict(req.StartTime, req.EndTime, bookings) {
			uc.logger.Warn("CreateBooking: slot %s-%s already taken for employee id=%s",
				req.StartTime, req.EndTime, req.EmployeeID)
			return ErrSlotConflict
		}

		// 9.3. Создаем бронирование с денормализацией данных услуги и сотрудника
		booking := &domain.Booking{
			ID:              uuid.NewString(),
			ServiceID:       req.ServiceID,
			EmployeeID:      req.EmployeeID,
			LocationID:      resolveLocationID(req, service),
			Date:            req.Date,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			DurationMinutes: service.DurationMinutes,
			Status:          uc.defaultStatus,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
			EmployeeName:    employee.Name,
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			Notes:           req.Notes,
		}

		created, err := uc.bookingStore.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s (employee=%s, %s %s-%s)",
		result.ID, result.EmployeeID, result.Date.Format(domain.DateFormat), result.StartTime, result.EndTime)

	return &Response{
		ID:              result.ID,
		ServiceID:       result.ServiceID,
		EmployeeID:      result.EmployeeID,
		LocationID:      result.LocationID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		EmployeeName:    result.EmployeeName,
		CustomerName:    result.CustomerName,
		CustomerEmail:   result.CustomerEmail,
		CustomerPhone:   result.CustomerPhone,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
	}, nil
}

// resolveLocationID возвращает локацию запроса, с откатом к локации услуги
func resolveLocationID(req *Request, service *domain.Service) *string {
	if req.LocationID != nil {
		return req.LocationID
	}
	return service.LocationID
}
