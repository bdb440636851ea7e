package main

import (
	"testing"

	"ritual_desk/internal/adapter/persistence"
	"ritual_desk/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
)

func TestRun_ExitCodes(t *testing.T) {
	memoryCfg := config.Config{Storage: config.StorageConfig{Driver: persistence.DriverMemory}}

	cases := []struct {
		name string
		args []string
		cfg  config.Config
		want int
	}{
		{"empty store sweeps nothing", nil, memoryCfg, 0},
		{"stats only", []string{"-stats"}, memoryCfg, 0},
		{"unknown storage driver", nil, config.Config{Storage: config.StorageConfig{Driver: "cassandra"}}, 1},
		{"bad flag", []string{"-nope"}, memoryCfg, 2},
		{"invalid log level", nil, config.Config{App: config.AppConfig{LogLevel: "loud"}, Storage: memoryCfg.Storage}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, run(tc.args, tc.cfg))
		})
	}
}
