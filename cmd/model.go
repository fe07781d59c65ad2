package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evload/app"
	"github.com/kilianp07/evload/core/forecast"
	"github.com/kilianp07/evload/core/prediction"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Model related commands",
}

var modelInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the configured model metadata and feature schema",
	RunE:  runModelInfo,
}

func init() {
	modelCmd.AddCommand(modelInfoCmd)
	rootCmd.AddCommand(modelCmd)
}

func runModelInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := app.LoadModel(cfg)
	if err != nil {
		return err
	}
	out := struct {
		prediction.Info
		Columns  []string          `json:"columns"`
		Defaults forecast.Defaults `json:"defaults"`
		Types    []string          `json:"available_types"`
	}{
		Info:     prediction.Describe(m),
		Columns:  forecast.Columns(),
		Defaults: cfg.Features.Defaults,
		Types:    prediction.ModelTypes(),
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
