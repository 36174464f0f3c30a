package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/wpo70/RateEdge/internal/dashboard"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Snapshot client: refreshes the dashboard page from a running RateEdge
// server and writes the rendered HTML to a file or stdout.
func main() {
	_ = godotenv.Load()

	baseURL := flag.String("base", envOr("RATEEDGE_BASE_URL", "http://localhost:8080"), "RateEdge server base URL")
	out := flag.String("out", "-", "output file, '-' for stdout")
	timeout := flag.Duration("timeout", 10*time.Second, "per-run timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := dashboard.NewClient(&http.Client{Timeout: *timeout}, *baseURL)
	page := dashboard.NewDashboardPage()

	// Both loaders run concurrently; each contains its own failures, so
	// a dead server still yields a page full of placeholders.
	dashboard.Refresh(ctx, client, page)
	dashboard.PresentTriggeredAlerts(ctx, client, dashboard.NewPresenter(page))

	w := os.Stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			logrus.WithError(err).Fatal("failed to create output file")
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := dashboard.Render(w, page); err != nil {
		logrus.WithError(err).Fatal("failed to render dashboard")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
