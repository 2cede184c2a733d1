package notify

import (
	"html/template"
	"strings"
	"time"

	"cargodelivery.ru/cargo/internal/entity"
)

const (
	SubjectNewSending         = "Для вашего заказа доступно новое отправление"
	SubjectApplicationStatus  = "Обновлён статус заявки"
	SubjectApplicationCreated = "Появилась новая заявка для вашей компании"
)

var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("02.01.2006")
	},
}

var newSendingTemplate = template.Must(template.New("new_sending").Funcs(templateFuncs).Parse(`<html>
<body>
<p>Здравствуйте!</p>
<p>Для вашего заказа №{{.Order.ID}} ({{.Order.SenderFullname}} &rarr; {{.Order.RecipientFullname}})
доступно новое отправление №{{.Sending.ID}}.</p>
<p>Отправление: {{date .Sending.DepartureDate}} &rarr; {{date .Sending.ArrivalDate}} ({{.Sending.DaysLabel}}).
Цена за кубометр: {{.Sending.PriceForM3}} руб. Свободный объём уточняйте у компании.</p>
<p><a href="{{.SiteURL}}/sendings/{{.Sending.ID}}">Подробнее об отправлении</a></p>
</body>
</html>`))

var applicationStatusTemplate = template.Must(template.New("application_status").Funcs(templateFuncs).Parse(`<html>
<body>
<p>Здравствуйте!</p>
<p>Статус заявки по вашему заказу №{{.Order.ID}} изменён: <b>{{.Status}}</b>.</p>
<p>Отправление №{{.Sending.ID}}: {{date .Sending.DepartureDate}} &rarr; {{date .Sending.ArrivalDate}} ({{.Sending.DaysLabel}}).
Стоимость перевозки: {{.Price}} руб.</p>
<p><a href="{{.SiteURL}}/orders/{{.Order.ID}}">Перейти к заказу</a></p>
</body>
</html>`))

var applicationCreatedTemplate = template.Must(template.New("application_created").Funcs(templateFuncs).Parse(`<html>
<body>
<p>Здравствуйте!</p>
<p>Появилась новая заявка №{{.Application.ID}} на отправление №{{.Sending.ID}} вашей компании.</p>
<p>Заказ №{{.Order.ID}}: груз {{.Order.CargoVolume}} м&sup3;, вес {{.Order.CargoWeight}} кг,
дата отправления {{date .Order.DepartureDate}}. Стоимость перевозки: {{.Price}} руб.</p>
{{if .Application.Info}}<p>Информация по заявке: {{.Application.Info}}</p>{{end}}
<p><a href="{{.SiteURL}}/applications/{{.Application.ID}}">Перейти к заявке</a></p>
</body>
</html>`))

type NewSendingContext struct {
	Order   *entity.Order
	Sending *entity.Sending
	SiteURL string
}

func RenderNewSending(data NewSendingContext) (string, error) {
	var b strings.Builder
	if err := newSendingTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

type ApplicationStatusContext struct {
	Status  string
	Order   *entity.Order
	Sending *entity.Sending
	Price   float64
	SiteURL string
}

func RenderApplicationStatus(data ApplicationStatusContext) (string, error) {
	var b strings.Builder
	if err := applicationStatusTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

type ApplicationCreatedContext struct {
	Application *entity.Application
	Order       *entity.Order
	Sending     *entity.Sending
	Price       float64
	SiteURL     string
}

func RenderApplicationCreated(data ApplicationCreatedContext) (string, error) {
	var b strings.Builder
	if err := applicationCreatedTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// StripTags derives the plain-text variant of an HTML body by dropping
// markup. Entities and whitespace are left as-is.
func StripTags(s string) string {
	var b strings.Builder
	inTag := false

	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}

	return b.String()
}
