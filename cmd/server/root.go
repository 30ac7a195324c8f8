package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/VitaminP8/yatube/internal/config"
	"github.com/VitaminP8/yatube/internal/logging"
)

var (
	storageFlag string
	configFlag  string
)

var rootCmd = &cobra.Command{
	Use:           "yatube",
	Short:         "Yatube: блог-платформа с группами, комментариями и подписками",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storageFlag, "storage", "", "Тип хранилища: memory, postgres или sqlite (по умолчанию из конфигурации)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Путь к yaml-файлу конфигурации")

	rootCmd.AddCommand(serveCmd, migrateCmd, groupCmd, userCmd)
}

// loadConfig читает конфигурацию с учетом флагов и настраивает логгер
func loadConfig() (*config.Config, error) {
	if configFlag != "" {
		if err := os.Setenv(config.ConfigPathEnvVar, configFlag); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if storageFlag != "" {
		cfg.Storage = storageFlag
		if err := cfg.ValidateStorage(); err != nil {
			return nil, fmt.Errorf("invalid --storage: %w", err)
		}
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	return cfg, nil
}
