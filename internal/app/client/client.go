package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/exp/slog"

	"boothadmin/internal/app/client/config"
	"boothadmin/internal/app/client/crypto"
	"boothadmin/internal/domain/attendance"
	"boothadmin/internal/domain/collection"
	"boothadmin/internal/domain/gallery"
	"boothadmin/internal/domain/record"
	"boothadmin/internal/domain/session"
	"boothadmin/internal/infrastructure/storage"
	"boothadmin/internal/infrastructure/storage/sqlite"
	"boothadmin/internal/metrics"
)

const sessionKeyFile = "session.key"

// App связывает конфигурацию, сессию, HTTP клиент и доменные сервисы.
// Одна команда CLI (или одна сессия browse) - одна страница.
type App struct {
	config     *config.Config
	log        *slog.Logger
	storage    storage.Storage
	sessions   *session.Service
	httpClient *HTTPClient
	metrics    *metrics.Metrics
	notifier   collection.Notifier
	attendance *attendance.Service
	gallery    *gallery.Service
}

func New(cfg *config.Config, log *slog.Logger, notifier collection.Notifier) (*App, error) {
	// Локальное хранилище сессии (SQLite)
	db, err := sqlite.New(cfg.SessionPath, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации хранилища сессии: %w", err)
	}

	// Значения сессии хранятся зашифрованными ключом рядом с базой
	sealer, err := crypto.LoadOrCreate(filepath.Join(filepath.Dir(cfg.SessionPath), sessionKeyFile))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации ключа сессии: %w", err)
	}

	m := metrics.New()
	// HTTP клиент аутентифицирует сессию, а сессия отдает ему токен
	httpCl := NewHTTPClient(cfg, nil, m, log)
	sessions := session.NewService(crypto.NewSealedRepository(db.Sessions(), sealer, log), httpCl, log)
	httpCl.tokens = sessions

	return &App{
		config:     cfg,
		log:        log,
		storage:    db,
		sessions:   sessions,
		httpClient: httpCl,
		metrics:    m,
		notifier:   notifier,
		attendance: attendance.NewService(httpCl, log),
		gallery:    gallery.NewService(httpCl, log),
	}, nil
}

func (a *App) Config() *config.Config {
	return a.config
}

func (a *App) Sessions() *session.Service {
	return a.sessions
}

func (a *App) Gallery() *gallery.Service {
	return a.gallery
}

// Login выполняет вход пользователя
func (a *App) Login(ctx context.Context, email, password string) (session.Session, error) {
	return a.sessions.Login(ctx, email, password)
}

// Logout завершает сессию
func (a *App) Logout(ctx context.Context) error {
	return a.sessions.Logout(ctx)
}

// Page создает страницу коллекции без загрузки.
func (a *App) Page(kind record.Kind) *collection.Page {
	return collection.NewPage(a.httpClient, kind,
		collection.WithPageSize(a.config.PageSize),
		collection.WithNotifier(a.notifier),
		collection.WithLogger(a.log),
	)
}

// Mount создает страницу и загружает коллекцию. Страница возвращается и
// при ошибке: ее View показывает состояние ошибки.
func (a *App) Mount(ctx context.Context, kind record.Kind) (*collection.Page, error) {
	page := a.Page(kind)
	if err := page.Mount(ctx); err != nil {
		return page, err
	}
	a.metrics.SetCollectionSize(kind.String(), page.Store.Len())
	return page, nil
}

// Get запрашивает одну запись с сервера.
func (a *App) Get(ctx context.Context, kind record.Kind, id string) (record.Record, error) {
	return a.httpClient.Get(ctx, kind, id)
}

// SubmitAttendance отправляет отметку текущего пользователя с фото из файла.
func (a *App) SubmitAttendance(ctx context.Context, status, photoPath string, now time.Time) (attendance.Submission, error) {
	sess, err := a.sessions.Current(ctx)
	if err != nil {
		return attendance.Submission{}, err
	}

	f, err := os.Open(photoPath)
	if err != nil {
		return attendance.Submission{}, fmt.Errorf("ошибка открытия фото: %w", err)
	}
	defer f.Close()

	photo, err := attendance.EncodePhoto(f, a.config.PhotoMaxSide)
	if err != nil {
		return attendance.Submission{}, err
	}

	sub, err := attendance.NewSubmission(sess, status, photo, now)
	if err != nil {
		return attendance.Submission{}, err
	}
	if err := a.attendance.Submit(ctx, sub); err != nil {
		return attendance.Submission{}, err
	}
	return sub, nil
}

// Dashboard загружает сводку по всем коллекциям.
func (a *App) Dashboard(ctx context.Context, now time.Time) (Summary, error) {
	return LoadDashboard(ctx, a.httpClient, now)
}

// Close сохраняет метрики и закрывает хранилище.
func (a *App) Close() error {
	var errs []error
	if err := a.metrics.WriteTextfile(a.config.MetricsPath); err != nil {
		a.log.Warn("Не удалось сохранить метрики", "error", err)
		errs = append(errs, err)
	}
	if err := a.storage.Close(); err != nil {
		errs = append(errs, fmt.Errorf("ошибка закрытия хранилища: %w", err))
	}
	return errors.Join(errs...)
}

type appKey struct{}

// WithApp кладет приложение в контекст команды.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

// FromContext достает приложение из контекста команды.
func FromContext(ctx context.Context) (*App, error) {
	app, ok := ctx.Value(appKey{}).(*App)
	if !ok || app == nil {
		return nil, errors.New("приложение не инициализировано")
	}
	return app, nil
}
