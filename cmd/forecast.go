package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kilianp07/evload/app"
	"github.com/kilianp07/evload/core/forecast"
	"github.com/kilianp07/evload/pkg/export"
)

var forecastOpts struct {
	last      string
	hours     int
	start     int
	end       int
	format    string
	overrides map[string]string
}

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Compute a one-shot forecast with the configured model",
	Example: `  evload forecast -c config.yaml --last 2024-01-01T00:00:00 --hours 24 --start 0 --end 6
  evload forecast --last "2024-01-01 18:00" --set Temperature_C=5 --format csv`,
	RunE: runForecast,
}

func init() {
	f := forecastCmd.Flags()
	f.StringVar(&forecastOpts.last, "last", "", "last observed timestamp")
	f.IntVar(&forecastOpts.hours, "hours", 0, "forecast horizon in hours (default from server.default_hours)")
	f.IntVar(&forecastOpts.start, "start", 0, "first hour of day eligible for recommendation")
	f.IntVar(&forecastOpts.end, "end", 23, "last hour of day eligible for recommendation")
	f.StringVar(&forecastOpts.format, "format", "json", "output format: json or csv")
	f.StringToStringVar(&forecastOpts.overrides, "set", nil, "feature override, e.g. --set Fleet_Size=150")
	_ = forecastCmd.MarkFlagRequired("last")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	last, err := forecast.ParseTimestamp(forecastOpts.last)
	if err != nil {
		return err
	}
	hours := forecastOpts.hours
	if hours == 0 {
		hours = cfg.Server.DefaultHours
	}
	if hours > cfg.Server.MaxHorizonHours {
		return fmt.Errorf("%w: hours must be <= %d", forecast.ErrInvalidInput, cfg.Server.MaxHorizonHours)
	}
	var overrides map[string]any
	if len(forecastOpts.overrides) > 0 {
		overrides = make(map[string]any, len(forecastOpts.overrides))
		for k, v := range forecastOpts.overrides {
			overrides[k] = v
		}
	}

	svc, err := app.NewForecaster(cfg)
	if err != nil {
		return err
	}
	res, err := svc.Forecast(cmd.Context(), forecast.Request{
		RequestID:     uuid.NewString(),
		LastTimestamp: last,
		Hours:         hours,
		Window:        forecast.HourRange{Start: forecastOpts.start, End: forecastOpts.end},
		Overrides:     overrides,
	})
	if err != nil {
		return err
	}
	return export.Write(cmd.OutOrStdout(), forecastOpts.format, res)
}
