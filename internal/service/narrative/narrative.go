package narrative

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
	"github.com/mamadbah2/velocitymart/internal/service/reporting"
	"github.com/mamadbah2/velocitymart/pkg/clients/anthropic"
)

// ErrDisabled is returned when no AI client is configured.
var ErrDisabled = errors.New("narrative generation disabled")

const systemPrompt = `You write the executive pitch for a dark-store operations board.
You receive the computed warehouse health figures. Write at most five short sentences in English:
state the chaos score, name the biggest penalty, mention the data integrity findings,
and close with the phase-1 re-slotting recommendation and the spike resilience.
Use only the numbers given. No markdown, no bullet points.`

// Service turns a computed dashboard into a short board narrative.
type Service struct {
	client anthropic.Client
	logger *zap.Logger
}

// NewService wires the narrative generator. client may be nil to disable it.
func NewService(client anthropic.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// Enabled reports whether an AI client is configured.
func (s *Service) Enabled() bool { return s != nil && s.client != nil }

// Generate asks the model for a narrative grounded on the dashboard digest.
func (s *Service) Generate(ctx context.Context, d models.Dashboard) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}

	text, err := s.client.Complete(ctx, systemPrompt, reporting.FormatDigest(d))
	if err != nil {
		return "", fmt.Errorf("generate narrative: %w", err)
	}

	s.logger.Debug("narrative generated", zap.String("run_id", d.RunID), zap.Int("length", len(text)))
	return text, nil
}
