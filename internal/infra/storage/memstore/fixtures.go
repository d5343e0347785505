package memstore

import (
	"time"

	"github.com/bookflow/bookflow-api/internal/domain"
	"github.com/bookflow/bookflow-api/pkg/ptr"
	"github.com/bookflow/bookflow-api/pkg/types"
)

// demoDay рабочие часы, используемые в фикстурах
func demoDay(start, end string) *domain.DayHours {
	s, _ := types.NewTimeStringFromString(start)
	e, _ := types.NewTimeStringFromString(end)
	return &domain.DayHours{Start: s, End: e}
}

// demoWeek расписание Пн-Пт 09:00-17:00, Сб 10:00-14:00, Вс выходной
func demoWeek() domain.WeeklyTemplate {
	var tpl domain.WeeklyTemplate
	for d := time.Monday; d <= time.Friday; d++ {
		tpl[d] = demoDay("09:00", "17:00")
	}
	tpl[time.Saturday] = demoDay("10:00", "14:00")
	return tpl
}

// seedFixtures заполняет хранилище demo-каталогом салона
func (s *Store) seedFixtures() {
	s.locations["1"] = &domain.Location{
		ID:      "1",
		Name:    "BookFlow Salón",
		Address: "Hlavná 12, Bratislava",
		Phone:   ptr.Ptr("+421 900 123 456"),
		Active:  true,
	}

	s.services["1"] = &domain.Service{
		ID:              "1",
		Name:            "Strihanie vlasov",
		Description:     "Profesionálne strihanie vlasov podľa vašich predstáv",
		DurationMinutes: 45,
		Price:           25,
		Category:        "hair",
		Color:           "#3B82F6",
		Icon:            ptr.Ptr("scissors"),
		Active:          true,
	}
	s.services["2"] = &domain.Service{
		ID:              "2",
		Name:            "Farbenie vlasov",
		Description:     "Kvalitné farbenie s profesionálnymi farbami",
		DurationMinutes: 90,
		Price:           55,
		Category:        "hair",
		Color:           "#8B5CF6",
		Icon:            ptr.Ptr("palette"),
		Active:          true,
	}
	s.services["3"] = &domain.Service{
		ID:              "3",
		Name:            "Manikúra",
		Description:     "Kompletná starostlivosť o vaše nechty",
		DurationMinutes: 60,
		Price:           30,
		Category:        "nails",
		Color:           "#EC4899",
		Icon:            ptr.Ptr("sparkles"),
		Active:          true,
	}

	s.employees["1"] = &domain.Employee{
		ID:             "1",
		Name:           "Ján Kaderník",
		Color:          "#3B82F6",
		ServiceIDs:     []string{"1", "2"},
		WeeklyTemplate: demoWeek(),
		Active:         true,
	}
	s.employees["2"] = &domain.Employee{
		ID:             "2",
		Name:           "Mária Stylistka",
		Color:          "#EC4899",
		ServiceIDs:     []string{"1", "2", "3"},
		WeeklyTemplate: demoWeek(),
		Active:         true,
	}
	s.employees["3"] = &domain.Employee{
		ID:             "3",
		Name:           "Peter Holič",
		Color:          "#10B981",
		ServiceIDs:     []string{"1"},
		WeeklyTemplate: demoWeek(),
		Active:         true,
	}
}
