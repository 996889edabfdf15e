// Package app wires configuration into the data source and the services shared
// by the server and the CLI.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/velocitymart/internal/config"
	"github.com/mamadbah2/velocitymart/internal/dataset"
	"github.com/mamadbah2/velocitymart/internal/repository/csvfiles"
	"github.com/mamadbah2/velocitymart/internal/repository/mongodb"
	"github.com/mamadbah2/velocitymart/internal/repository/sheets"
	"github.com/mamadbah2/velocitymart/internal/service/narrative"
	"github.com/mamadbah2/velocitymart/internal/service/notify"
	"github.com/mamadbah2/velocitymart/internal/service/reporting"
	"github.com/mamadbah2/velocitymart/pkg/clients/anthropic"
	whatsappclient "github.com/mamadbah2/velocitymart/pkg/clients/whatsapp"
)

// App holds the wired services.
type App struct {
	Config    *config.Config
	Source    dataset.Source
	Cache     *dataset.Cache
	Reports   *reporting.Service
	Narrative *narrative.Service
	Publisher *notify.WhatsAppPublisher

	closers []func(ctx context.Context) error
}

// New opens the configured source and builds the services. recorder may be nil.
func New(ctx context.Context, cfg *config.Config, recorder reporting.Recorder, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{Config: cfg}

	source, err := a.openSource(ctx, logger)
	if err != nil {
		return nil, err
	}
	a.Source = source

	a.Cache = dataset.NewCache(dataset.NewLoader(source, logger.Named("dataset.loader")), source, logger.Named("dataset.cache"))
	a.Reports = reporting.NewService(a.Cache, recorder, logger.Named("svc.reporting"))

	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey)
		logger.Info("anthropic ai client enabled")
	} else {
		logger.Debug("anthropic api key missing, narrative disabled")
	}
	a.Narrative = narrative.NewService(aiClient, logger.Named("svc.narrative"))

	var waClient whatsappclient.Client
	if cfg.WhatsApp.Enabled() {
		waClient = whatsappclient.NewClient(cfg.WhatsApp)
		logger.Info("whatsapp digest delivery enabled")
	}
	a.Publisher = notify.NewWhatsAppPublisher(waClient, cfg.WhatsApp.RecipientID, logger.Named("svc.notify"))

	return a, nil
}

// Close releases connections opened for the data source.
func (a *App) Close(ctx context.Context) error {
	var first error
	for _, c := range a.closers {
		if err := c(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (a *App) openSource(ctx context.Context, logger *zap.Logger) (dataset.Source, error) {
	cfg := a.Config
	switch cfg.Data.Source {
	case config.SourceCSV:
		return csvfiles.NewRepository(cfg.Data.Dir, logger.Named("repo.csv")), nil

	case config.SourceSheets:
		repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, logger.Named("repo.sheets"))
		if err != nil {
			return nil, fmt.Errorf("init sheets repository: %w", err)
		}
		return sheets.NewSource(repo), nil

	case config.SourceMongoDB:
		repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, fmt.Errorf("init mongodb repository: %w", err)
		}
		a.closers = append(a.closers, repo.Close)
		return mongodb.NewSource(repo), nil

	default:
		return nil, fmt.Errorf("unsupported data source %q", cfg.Data.Source)
	}
}
