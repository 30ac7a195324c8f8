package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/VitaminP8/yatube/internal/config"
	"github.com/VitaminP8/yatube/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Создать или обновить схему базы данных",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Storage == config.StorageMemory {
			return errors.New("migrate needs postgres or sqlite storage")
		}

		// openStores уже выполняет миграции
		st, err := openStores(cfg)
		if err != nil {
			return err
		}
		logging.Info().Str("storage", cfg.Storage).Msg("Миграции выполнены")
		return st.Close()
	},
}
