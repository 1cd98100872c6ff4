package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"SectorScope/internal/di"
	"SectorScope/pkg/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath      string
		start           string
		end             string
		newsPath        string
		outputDir       string
		growthWeight    float64
		sentimentWeight float64
	)

	cmd := &cobra.Command{
		Use:   "sectorscope",
		Short: "Rank U.S. equity sectors by market-cap growth and news sentiment",
		Long: "SectorScope combines bellwether market-capitalisation growth with " +
			"news-dump sentiment to rank sector outlooks over a date window.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithEnv(configPath)
			if err != nil {
				return fmt.Errorf("config load failed: %w", err)
			}

			// Flags beat config file and environment.
			if cmd.Flags().Changed("start") {
				cfg.Analysis.Start = start
			}
			if cmd.Flags().Changed("end") {
				cfg.Analysis.End = end
			}
			if cmd.Flags().Changed("news-path") {
				cfg.Analysis.NewsPath = newsPath
			}
			if cmd.Flags().Changed("output-dir") {
				cfg.Analysis.OutputDir = outputDir
			}
			if cmd.Flags().Changed("growth-weight") {
				cfg.Analysis.GrowthWeight = growthWeight
			}
			if cmd.Flags().Changed("sentiment-weight") {
				cfg.Analysis.SentimentWeight = sentimentWeight
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			app, err := di.InitializeApp(cfg)
			if err != nil {
				return fmt.Errorf("app initialization failed: %w", err)
			}
			return app.Run()
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config/config.yaml", "config file path")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&newsPath, "news-path", "", "path to the news dump file")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for CSV exports")
	cmd.Flags().Float64Var(&growthWeight, "growth-weight", 0.7, "weight of market-cap growth in the composite score")
	cmd.Flags().Float64Var(&sentimentWeight, "sentiment-weight", 0.3, "weight of news sentiment in the composite score")

	return cmd
}
