package common

import (
	"context"
	"fmt"

	"ponto.app/ponto/config"
	"ponto.app/ponto/infrastructure/devops"
)

// LoadConfig reads the lambda configuration from the environment and, when
// PONTO_SSM_PARAMETER is set, from that SSM parameter.
func LoadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}

	if cfg.SSMParameter != "" {
		params, err := devops.ConnectParameterStore(ctx)
		if err != nil {
			return nil, err
		}
		if err := cfg.Overlay(ctx, params); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
