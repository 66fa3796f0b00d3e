package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"boothadmin/internal/app/client"
	"boothadmin/internal/app/client/config"
	"boothadmin/internal/utils/logger"
)

var (
	cfgFile   string
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	debug     bool
	quiet     bool
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "boothadmin",
	Short: "BoothAdmin - панель администратора фотобудки",
	Long: `BoothAdmin - клиент администратора фотобудки.

Управляет пользователями, оборудованием, журналом выдачи и мероприятиями
через REST API, отправляет отметки посещаемости и загружает файлы в галерею.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if app != nil {
		if cerr := app.Close(); cerr != nil {
			log.Warn("Ошибка завершения", "error", cerr)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	// Загружаем конфигурацию
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if serverURL != "" {
		cfg.APIBaseURL = serverURL
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("ошибка конфигурации: %w", err)
		}
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	// Настраиваем логгер
	log = logger.NewWithLevel(cfg.Env, cfg.LogLevel, os.Stderr)

	// Создаем приложение
	app, err = client.New(cfg, log, client.NewConsoleNotifier(os.Stderr, quiet))
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(client.WithApp(cmd.Context(), app))
	return nil
}

func init() {
	// Глобальные флаги
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().Bool("json", false, "вывод в формате JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "не показывать уведомления об успехе")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "URL API фотобудки")

	// Команды добавляются в init.go
}
