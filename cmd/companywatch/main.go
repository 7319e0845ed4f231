package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/companywatch/internal/config"
	"github.com/aleister1102/companywatch/internal/logger"
	"github.com/aleister1102/companywatch/internal/monitor"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

func main() {
	color.New(color.Bold).Println("companywatch starting...")

	flags := ParseFlags()

	if err := config.LoadDotEnv(flags.EnvFile); err != nil {
		log.Fatalf("[FATAL] Main: Could not load env file '%s': %v", flags.EnvFile, err)
	}

	bootLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, bootLogger)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load global config using path '%s': %v", flags.GlobalConfigFile, err)
	}

	if err := config.ApplyEnvOverrides(gCfg); err != nil {
		log.Fatalf("[FATAL] Main: Invalid environment override: %v", err)
	}
	if flags.Mode != "" {
		gCfg.Mode = flags.Mode
	}
	if flags.CompanyNumber != "" {
		gCfg.MonitorConfig.CompanyNumber = flags.CompanyNumber
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		log.Fatalf("[FATAL] Main: Configuration validation failed: %v", err)
	}

	zLogger, err := logger.NewWithEntityID(gCfg.LogConfig, gCfg.MonitorConfig.CompanyNumber)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not initialize logger: %v", err)
	}
	zLogger.Info().
		Str("mode", gCfg.Mode).
		Str("entity_id", gCfg.MonitorConfig.CompanyNumber).
		Msg("Configuration loaded and validated")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, gCfg, zLogger))
}

// run returns the process exit code
func run(ctx context.Context, gCfg *config.GlobalConfig, appLogger zerolog.Logger) int {
	service, err := monitor.NewService(gCfg, appLogger)
	if err != nil {
		appLogger.Error().Err(err).Msg("Failed to initialize monitor service")
		return 1
	}
	defer func() { _ = service.Close() }()

	switch gCfg.Mode {
	case config.ModeOnetime:
		if _, err := service.RunOnce(ctx); err != nil {
			return 1
		}
		appLogger.Info().Msg("companywatch finished (onetime mode).")
		return 0
	default:
		if err := service.Run(ctx); err != nil {
			appLogger.Error().Err(err).Msg("Monitor loop exited with error")
			return 1
		}
		appLogger.Info().Msg("companywatch stopped.")
		return 0
	}
}
