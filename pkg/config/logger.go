package config

import "go.uber.org/zap"

// NewLogger builds a development logger for ENV=development and a production one otherwise.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
