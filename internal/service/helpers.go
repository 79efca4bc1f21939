package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	tokenAttempts  = 3
	publishTimeout = 5 * time.Second
)

func tokenGenerator(gen func() string) func() string {
	if gen != nil {
		return gen
	}
	return uuid.NewString
}

// withFreshToken hands insert a token that is not in use yet. A duplicate
// key on insert means another writer won the race, so a new token is drawn.
func withFreshToken(
	ctx context.Context,
	gen func() string,
	taken func(context.Context, string) (bool, error),
	insert func(token string) error,
) error {
	for i := 0; i < tokenAttempts; i++ {
		tok := gen()
		used, err := taken(ctx, tok)
		if err != nil {
			return err
		}
		if used {
			continue
		}
		err = insert(tok)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return err
	}
	return fmt.Errorf("no free token after %d attempts: %w", tokenAttempts, ErrConflict)
}

// publish never fails the caller; broker trouble is only logged.
func publish(ctx context.Context, p events.Publisher, key string, event map[string]any) {
	if p == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.PublishEvent(pctx, key, event); err != nil {
		logging.FromContext(ctx).Error("publish_event_failed", "type", event["type"], "error", err)
	}
}
