package main

import (
	"os"

	"github.com/wpo70/RateEdge/internal/app"

	"github.com/sirupsen/logrus"
)

// @title RateEdge API
// @version 1.0
// @description Swap rate statistics, observations, analytics and alerts.
// @BasePath /api
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("application terminated")
		os.Exit(1)
	}
}
