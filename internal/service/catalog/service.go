package catalog

import (
	"context"
	"fmt"

	"github.com/bookflow/bookflow-api/internal/service/catalog/models"
)

// Service сервис каталога: услуги, сотрудники и локации для клиентского виджета
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// ListServices получает все активные услуги
func (s *Service) ListServices(ctx context.Context) ([]models.ServiceResponse, error) {
	services, err := s.catalogRepo.ListServices(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	resp := make([]models.ServiceResponse, 0, len(services))
	for _, svc := range services {
		resp = append(resp, models.FromDomainService(svc))
	}
	return resp, nil
}

// ListEmployees получает активных сотрудников.
// При указании serviceID возвращаются только сотрудники, оказывающие услугу.
func (s *Service) ListEmployees(ctx context.Context, serviceID *string, locationID *string) ([]models.EmployeeResponse, error) {
	if serviceID != nil {
		eligible, err := s.catalogRepo.ListEligibleEmployees(ctx, *serviceID, locationID)
		if err != nil {
			s.logger.Error("ListEmployees: repository error: %v", err)
			return nil, fmt.Errorf("%w: ListEmployees - repository error: %v", ErrInternal, err)
		}
		list := make([]models.EmployeeResponse, 0, len(eligible))
		for _, emp := range eligible {
			list = append(list, models.FromDomainEmployee(emp))
		}
		return list, nil
	}

	all, err := s.catalogRepo.ListEmployees(ctx)
	if err != nil {
		s.logger.Error("ListEmployees: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListEmployees - repository error: %v", ErrInternal, err)
	}
	list := make([]models.EmployeeResponse, 0, len(all))
	for _, emp := range all {
		if locationID != nil && !emp.AtLocation(*locationID) {
			continue
		}
		list = append(list, models.FromDomainEmployee(emp))
	}
	return list, nil
}

// ListLocations получает все активные локации
func (s *Service) ListLocations(ctx context.Context) ([]models.LocationResponse, error) {
	locations, err := s.catalogRepo.ListLocations(ctx)
	if err != nil {
		s.logger.Error("ListLocations: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListLocations - repository error: %v", ErrInternal, err)
	}

	resp := make([]models.LocationResponse, 0, len(locations))
	for _, loc := range locations {
		resp = append(resp, models.FromDomainLocation(loc))
	}
	return resp, nil
}
