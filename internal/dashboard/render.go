package dashboard

import (
	"html/template"
	"io"
	"time"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>RateEdge Dashboard</title>
</head>
<body>
<h1>RateEdge</h1>
<section class="statistics">
  <div>Total records: <span id="totalRecords">{{.TotalRecords}}</span></div>
  <div>Currencies: <span id="currencies">{{.Currencies}}</span></div>
  <div>Latest date: <span id="latestDate">{{.LatestDate}}</span></div>
</section>
<section class="cards">
{{range .Cards}}  <div id="{{.ID}}" class="currency-card">
    <h2>{{.Currency}} {{.Tenor}}</h2>
    <span class="market-rate">{{.Rate}}</span>
  </div>
{{end}}</section>
{{if .Notifications}}<section class="notifications">
{{range .Notifications}}  <div class="{{.Class}}" style="background:{{.Color}}">{{.Text}}</div>
{{end}}</section>
{{end}}<footer>Generated {{.GeneratedAt}}</footer>
</body>
</html>
`

var tmpl = template.Must(template.New("dashboard").Parse(pageTemplate))

type cardView struct {
	ID       string
	Currency string
	Tenor    string
	Rate     string
}

type notificationView struct {
	Class string
	Color template.CSS
	Text  string
}

type pageView struct {
	TotalRecords  string
	Currencies    string
	LatestDate    string
	Cards         []cardView
	Notifications []notificationView
	GeneratedAt   string
}

// Render writes an HTML snapshot of the page state.
func Render(w io.Writer, page *Page) error {
	view := pageView{
		TotalRecords: textOr(page, ElemTotalRecords),
		Currencies:   textOr(page, ElemCurrencies),
		LatestDate:   textOr(page, ElemLatestDate),
		GeneratedAt:  FormatDate(time.Now().Format("2006-01-02")),
	}

	for _, spec := range DefaultCards() {
		rate := Placeholder
		if text, ok := page.DescendantText(spec.CardID, ClassMarketRate); ok {
			rate = text
		}
		view.Cards = append(view.Cards, cardView{
			ID:       spec.CardID,
			Currency: spec.Currency,
			Tenor:    spec.Tenor,
			Rate:     rate,
		})
	}

	for _, n := range page.ByClass(ClassNotification) {
		view.Notifications = append(view.Notifications, notificationView{
			Class: n.Class,
			Color: template.CSS(n.Color),
			Text:  n.Text,
		})
	}

	return tmpl.Execute(w, view)
}

func textOr(page *Page, id string) string {
	if text, ok := page.Text(id); ok {
		return text
	}
	return Placeholder
}
