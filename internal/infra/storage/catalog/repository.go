package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/bookflow/bookflow-api/internal/domain"
	"github.com/bookflow/bookflow-api/pkg/dbmetrics"
	"github.com/bookflow/bookflow-api/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id", "name", "description", "duration_minutes", "price",
	"category", "color", "icon", "location_id", "is_active",
}

var employeeColumns = []string{
	"id", "name", "color", "avatar_url", "service_ids",
	"location_id", "working_hours", "is_active",
}

var locationColumns = []string{
	"id", "name", "address", "phone", "is_active",
}

// Repository репозиторий каталога: услуги, сотрудники, локации
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, id string) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID, &s.Name, &s.Description, &s.DurationMinutes, &s.Price,
		&s.Category, &s.Color, &s.Icon, &s.LocationID, &s.Active,
	)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return &s, nil
}

// ListServices получает все активные услуги
func (r *Repository) ListServices(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		err = rows.Scan(
			&s.ID, &s.Name, &s.Description, &s.DurationMinutes, &s.Price,
			&s.Category, &s.Color, &s.Icon, &s.LocationID, &s.Active,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan service: %v", ErrScanRow, err)
		}
		services = append(services, &s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// GetEmployee получает сотрудника по ID
func (r *Repository) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(employeeColumns...).
		From("employees").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetEmployee - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetEmployee - scan employee: %v", ErrScanRow, err)
	}

	return e, nil
}

// ListEmployees получает всех активных сотрудников
func (r *Repository) ListEmployees(ctx context.Context) ([]*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(employeeColumns...).
		From("employees").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListEmployees - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEmployees - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// ListEligibleEmployees получает активных сотрудников, оказывающих услугу.
// Фильтр по локации применяется в SQL: подходит сотрудник без привязки
// к локации либо привязанный к запрошенной.
func (r *Repository) ListEligibleEmployees(ctx context.Context, serviceID string, locationID *string) ([]*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(employeeColumns...).
		From("employees").
		Where(squirrel.Eq{"is_active": true}).
		Where("service_ids @> ?", pq.Array([]string{serviceID}))

	if locationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"location_id": nil},
			squirrel.Eq{"location_id": *locationID},
		})
	}

	query, args, err := selectBuilder.OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListEligibleEmployees - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEligibleEmployees - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// GetLocation получает локацию по ID
func (r *Repository) GetLocation(ctx context.Context, id string) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(locationColumns...).
		From("locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLocation - build select query: %v", ErrBuildQuery, err)
	}

	var l domain.Location
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&l.ID, &l.Name, &l.Address, &l.Phone, &l.Active,
	)
	if err == sql.ErrNoRows {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLocation - scan location: %v", ErrScanRow, err)
	}

	return &l, nil
}

// ListLocations получает все активные локации
func (r *Repository) ListLocations(ctx context.Context) ([]*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(locationColumns...).
		From("locations").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListLocations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLocations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	locations := make([]*domain.Location, 0)
	for rows.Next() {
		var l domain.Location
		err = rows.Scan(&l.ID, &l.Name, &l.Address, &l.Phone, &l.Active)
		if err != nil {
			return nil, fmt.Errorf("%w: ListLocations - scan location: %v", ErrScanRow, err)
		}
		locations = append(locations, &l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLocations - rows error: %v", ErrScanRow, err)
	}

	return locations, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanEmployee сканирует одну строку в сотрудника.
// working_hours хранится как JSONB и разбирается в недельное расписание.
func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var e domain.Employee
	var serviceIDs pq.StringArray
	var workingHours []byte

	err := row.Scan(
		&e.ID, &e.Name, &e.Color, &e.AvatarURL, &serviceIDs,
		&e.LocationID, &workingHours, &e.Active,
	)
	if err != nil {
		return nil, err
	}

	e.ServiceIDs = serviceIDs
	if len(workingHours) > 0 {
		if err := e.WeeklyTemplate.UnmarshalJSON(workingHours); err != nil {
			return nil, fmt.Errorf("parse working hours for employee %s: %v", e.ID, err)
		}
	}

	return &e, nil
}

// scanEmployees сканирует результаты запроса в слайс сотрудников
func scanEmployees(rows *sql.Rows) ([]*domain.Employee, error) {
	employees := make([]*domain.Employee, 0)

	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanEmployees - scan row: %v", ErrScanRow, err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEmployees - rows error: %v", ErrScanRow, err)
	}

	return employees, nil
}
