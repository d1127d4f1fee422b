package apitest

import (
	"fmt"
	"time"

	"github.com/me/backoffice/pkg/model"
)

// Seed fills f with a small data set spread over the week before now, one
// record of each kind per day. It must be called before the first request.
func (f *Fake) Seed(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	names := []string{"Иванов Иван", "Петрова Анна", "Сидоров Олег", "Кузнецова Мария", "Смирнов Павел", "Попова Елена", "Волков Денис"}
	for i, name := range names {
		at := now.AddDate(0, 0, -i)
		status := model.RequestStatuses[i%len(model.RequestStatuses)]
		f.Requests = append(f.Requests, model.Request{
			ID:          i + 1,
			FullName:    name,
			Phone:       fmt.Sprintf("+7900000000%d", i),
			Email:       fmt.Sprintf("user%d@example.com", i+1),
			PartnerCode: "PARTNER1",
			Source:      "Лендинг",
			Status:      status,
			CreatedAt:   at,
			UpdatedAt:   at,
		})

		pay := model.PaymentStatusCompleted
		if i%3 == 2 {
			pay = model.PaymentStatusPending
		}
		f.Payments = append(f.Payments, model.Payment{
			ID:        i + 1,
			FullName:  name,
			Email:     fmt.Sprintf("user%d@example.com", i+1),
			Source:    "Реклама ВК",
			Product:   "Базовый курс",
			Amount:    int64(1000+i*250) * 100,
			Status:    pay,
			CreatedAt: at,
			UpdatedAt: at,
		})

		f.Visitors = append(f.Visitors, model.Visitor{
			ID:            fmt.Sprintf("v%d", i+1),
			TrafficSource: "Яндекс Директ",
			Country:       []string{"Россия", "Казахстан"}[i%2],
			Device:        []string{"desktop", "mobile"}[i%2],
			Browser:       "Chrome",
			PagesViewed:   i + 1,
			TimeOnSite:    fmt.Sprintf("%dm", i+2),
			CookieFile:    fmt.Sprintf("cookie-%d", i+1),
			CreatedAt:     at,
			UpdatedAt:     at,
		})
	}

	f.Partners = append(f.Partners,
		model.Partner{ID: 1, Name: "Партнёр Один", Username: "partner1", Requisites: "4276 0000 0000 0001", RequisiteType: model.RequisiteCard, BonusStatus: model.PaymentStatusPending, Code: "PARTNER1", CreatedAt: now.AddDate(0, -1, 0)},
		model.Partner{ID: 2, Name: "Партнёр Два", Username: "partner2", Requisites: "410011000000002", RequisiteType: model.RequisiteYoomoney, BonusStatus: model.PaymentStatusCompleted, Code: "PARTNER2", CreatedAt: now.AddDate(0, 0, -2)},
	)

	f.Notifications = append(f.Notifications,
		model.Notification{ID: 1, Text: "Позвонить <b>Иванову</b>", End: now.Add(50 * time.Hour), CreatedAt: now.AddDate(0, 0, -1)},
		model.Notification{ID: 2, Text: "Отправить счёт", End: now.Add(-time.Hour), CreatedAt: now.AddDate(0, 0, -3)},
	)

	f.Buttons = append(f.Buttons,
		model.Button{ID: 1, Name: "Купить", Type: "cta", IsActive: true, ClickCount: 10, CreatedAt: now},
		model.Button{ID: 2, Name: "Попробовать", Type: "cta", IsActive: true, ClickCount: 50, CreatedAt: now},
		model.Button{ID: 3, Name: "Узнать больше", Type: "info", IsActive: true, ClickCount: 30, CreatedAt: now},
	)
}
