package config

import (
	"errors"
	"fmt"
	"log"
)

// Require checks the settings a server cannot start without and reports
// every problem at once.
func (c Config) Require(minSecret int) error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("missing required env DATABASE_URL"))
	}
	switch {
	case len(c.SessionSecret) == 0:
		errs = append(errs, errors.New("missing required env SESSION_SECRET"))
	case len(c.SessionSecret) < minSecret:
		errs = append(errs, fmt.Errorf("env SESSION_SECRET must be at least %d bytes", minSecret))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("env SESSION_TTL must be positive"))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		errs = append(errs, errors.New("env KAFKA_TOPIC is required with KAFKA_BROKERS"))
	}
	return errors.Join(errs...)
}

func Must(err error) {
	if err != nil {
		log.Fatalf("config: %v", err)
	}
}
