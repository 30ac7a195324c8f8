package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/VitaminP8/yatube/internal/logging"
	"github.com/VitaminP8/yatube/internal/media"
	"github.com/VitaminP8/yatube/internal/pagecache"
	"github.com/VitaminP8/yatube/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP-сервер",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	st, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Err(err).Msg("Ошибка при закрытии хранилища")
		}
	}()

	images := media.NewStore(cfg.Media.Root, cfg.Media.MaxUploadSize)
	logging.Info().Str("media_root", images.Root()).Msg("Каталог загрузок")
	cache := pagecache.New(cfg.Cache.Size, cfg.Cache.TTL)

	h, err := web.NewHandler(st.service(images), cache, images, web.Options{
		JWTSecret:      cfg.JWT.Secret,
		SessionTTL:     cfg.JWT.TTL,
		SecureCookie:   cfg.JWT.SecureCookie,
		LoginRateLimit: cfg.HTTP.LoginRateLimit,
		MaxUploadSize:  cfg.Media.MaxUploadSize,
		Metrics:        cfg.Metrics.Enabled,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      h.Routes(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	// запуск HTTP сервера; ListenAndServe блокирует до Shutdown
	serverErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", cfg.HTTP.Addr).Msg("Сервер запущен")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// SIGHUP сбрасывает кеш страниц, SIGINT/SIGTERM останавливают сервер
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)

	for {
		select {
		case err, ok := <-serverErr:
			if ok && err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case sig := <-signals:
			if sig == syscall.SIGHUP {
				cache.Clear()
				logging.Info().Msg("Кеш страниц сброшен")
				continue
			}

			logging.Info().Str("signal", sig.String()).Msg("Завершение...")
			ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown failed: %w", err)
			}
			logging.Info().Msg("Сервер остановлен корректно")
			return nil
		}
	}
}
