package models

import "github.com/bookflow/bookflow-api/internal/domain"

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"` // минуты
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Color       string  `json:"color"`
	Icon        *string `json:"icon,omitempty"`
	LocationID  *string `json:"locationId,omitempty"`
}

// EmployeeResponse ответ с данными сотрудника
type EmployeeResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Color      string   `json:"color"`
	Avatar     *string  `json:"avatar,omitempty"`
	Services   []string `json:"services"`
	LocationID *string  `json:"locationId,omitempty"`
}

// LocationResponse ответ с данными локации
type LocationResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   *string `json:"phone,omitempty"`
}

// FromDomainService конвертирует domain модель услуги в DTO
func FromDomainService(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Duration:    s.DurationMinutes,
		Price:       s.Price,
		Category:    s.Category,
		Color:       s.Color,
		Icon:        s.Icon,
		LocationID:  s.LocationID,
	}
}

// FromDomainEmployee конвертирует domain модель сотрудника в DTO
func FromDomainEmployee(e *domain.Employee) EmployeeResponse {
	services := e.ServiceIDs
	if services == nil {
		services = []string{}
	}
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Color:      e.Color,
		Avatar:     e.AvatarURL,
		Services:   services,
		LocationID: e.LocationID,
	}
}

// FromDomainLocation конвертирует domain модель локации в DTO
func FromDomainLocation(l *domain.Location) LocationResponse {
	return LocationResponse{
		ID:      l.ID,
		Name:    l.Name,
		Address: l.Address,
		Phone:   l.Phone,
	}
}
