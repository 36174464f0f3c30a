package dashboard

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Refresh runs the statistics and market-rate loaders concurrently and
// returns once both settled. The loaders never fail the refresh; each
// swallows its own errors and leaves its targets untouched.
func Refresh(ctx context.Context, client *Client, page *Page) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		NewStatisticsLoader(client, page).Load(ctx)
	}()
	go func() {
		defer wg.Done()
		NewMarketRateLoader(client, page).Load(ctx)
	}()
	wg.Wait()
}

// PresentTriggeredAlerts surfaces the recently triggered alerts as
// stacked error notifications. Like the loaders, a fetch failure is
// logged and swallowed.
func PresentTriggeredAlerts(ctx context.Context, client *Client, presenter *Presenter) {
	triggers, err := client.GetTriggeredAlerts(ctx)
	if err != nil {
		logrus.WithError(err).Warn("triggered alerts fetch failed, nothing to present")
		return
	}
	for _, tr := range triggers {
		presenter.Show(tr.Message, SeverityError)
	}
}
