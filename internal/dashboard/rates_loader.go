package dashboard

import (
	"context"

	"github.com/sirupsen/logrus"
)

// CardSpec binds one currency card to the currency/tenor it tracks.
type CardSpec struct {
	CardID   string
	Currency string
	Tenor    string
}

// DefaultCards is the fixed set of cards the dashboard shows.
func DefaultCards() []CardSpec {
	return []CardSpec{
		{CardID: "audCard", Currency: "AUD", Tenor: "10Y"},
		{CardID: "usdCard", Currency: "USD", Tenor: "10Y"},
		{CardID: "jpyCard", Currency: "JPY", Tenor: "10Y"},
		{CardID: "nzdCard", Currency: "NZD", Tenor: "10Y"},
	}
}

type rateFetcher interface {
	GetLatestRate(ctx context.Context, currency, tenor string) (*RateObservation, error)
}

// MarketRateLoader refreshes the currency cards one at a time, strictly
// in order: a request is not issued until the previous one resolved.
// Failures are contained per card; one bad currency never blocks the
// rest, and a card with no data keeps its placeholder.
type MarketRateLoader struct {
	api   rateFetcher
	page  *Page
	cards []CardSpec
}

func NewMarketRateLoader(api rateFetcher, page *Page) *MarketRateLoader {
	return &MarketRateLoader{api: api, page: page, cards: DefaultCards()}
}

func (l *MarketRateLoader) Load(ctx context.Context) {
	for _, card := range l.cards {
		obs, err := l.api.GetLatestRate(ctx, card.Currency, card.Tenor)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{"currency": card.Currency, "tenor": card.Tenor}).
				Warn("rate refresh failed for card, keeping current display")
			continue
		}
		if obs == nil {
			continue
		}
		l.page.SetDescendantText(card.CardID, ClassMarketRate, formatCardRate(obs.Rate))
	}
}
