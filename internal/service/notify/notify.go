package notify

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
	"github.com/mamadbah2/velocitymart/internal/service/reporting"
	client "github.com/mamadbah2/velocitymart/pkg/clients/whatsapp"
)

// ErrDisabled is returned when WhatsApp delivery is not configured.
var ErrDisabled = errors.New("digest delivery disabled")

const truncationMarker = "\n…"

// Publisher delivers a dashboard digest.
type Publisher interface {
	PublishDigest(ctx context.Context, d models.Dashboard, narrative string) error
}

// WhatsAppPublisher sends digests to a single WhatsApp recipient.
type WhatsAppPublisher struct {
	client    client.Client
	recipient string
	logger    *zap.Logger
}

// NewWhatsAppPublisher wires the publisher. A nil client disables delivery.
func NewWhatsAppPublisher(c client.Client, recipient string, logger *zap.Logger) *WhatsAppPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhatsAppPublisher{client: c, recipient: recipient, logger: logger}
}

// PublishDigest sends the digest, followed by the narrative when present.
func (p *WhatsAppPublisher) PublishDigest(ctx context.Context, d models.Dashboard, narrative string) error {
	if p.client == nil || p.recipient == "" {
		return ErrDisabled
	}

	body := reporting.FormatDigest(d)
	if narrative != "" {
		body += "\n\n" + narrative
	}
	body = truncate(body, client.MaxTextLength)

	resp, err := p.client.SendTextMessage(ctx, client.SendTextMessageRequest{To: p.recipient, Body: body})
	if err != nil {
		return fmt.Errorf("publish digest: %w", err)
	}

	messageID := ""
	if resp != nil && len(resp.Messages) > 0 {
		messageID = resp.Messages[0].ID
	}
	p.logger.Info("digest published", zap.String("run_id", d.RunID), zap.String("message_id", messageID))
	return nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit - len(truncationMarker)
	// Step back to a rune boundary.
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut] + truncationMarker
}
