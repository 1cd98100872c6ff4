package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"SectorScope/internal/export"
	"SectorScope/internal/ranking"
	"SectorScope/internal/usecase"
	"SectorScope/pkg/config"
	applogger "SectorScope/pkg/logger"
)

// App encapsulates one forecast run: execute the pipeline, print the
// tables, export CSVs when configured.
type App struct {
	cfg        *config.Config
	forecaster *usecase.Forecast
	log        *applogger.Logger
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, forecaster *usecase.Forecast, log *applogger.Logger) *App {
	return &App{cfg: cfg, forecaster: forecaster, log: log}
}

// Run executes the pipeline once and blocks until it finishes or a signal
// cancels it mid-fetch.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case s := <-sigCh:
			a.log.Warn("signal received, cancelling run", applogger.String("signal", s.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	start, err := a.cfg.StartDate()
	if err != nil {
		return err
	}
	end, err := a.cfg.EndDate()
	if err != nil {
		return err
	}

	report, err := a.forecaster.Run(ctx, usecase.ForecastParams{
		Start:    start,
		End:      end,
		NewsPath: a.cfg.Analysis.NewsPath,
		Weights: ranking.Weights{
			Growth:    a.cfg.Analysis.GrowthWeight,
			Sentiment: a.cfg.Analysis.SentimentWeight,
		},
		RecencyHalfLife:  a.cfg.Analysis.RecencyHalfLife,
		MinRecencyWeight: a.cfg.Analysis.MinRecencyWeight,
		NeutralScore:     a.cfg.Analysis.NeutralScore,
	})
	if err != nil {
		return err
	}

	fmt.Println("Sentiment by sector:")
	fmt.Print(export.RenderSentiment(report.Sentiment))
	fmt.Println("\nMarket capitalisation growth by sector:")
	fmt.Print(export.RenderGrowth(report.Growth))
	fmt.Println("\nComposite ranking:")
	fmt.Print(export.RenderRanking(report.Ranking))
	fmt.Printf("\nMost promising sector (highest composite score): %s\n", report.Ranking.Top())

	if dir := a.cfg.Analysis.OutputDir; dir != "" {
		if err := export.WriteCSV(dir, report); err != nil {
			return err
		}
		a.log.Info("results saved", applogger.String("dir", dir))
	}
	return nil
}
