package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alligatorO15/fin-lists/internal/api/middleware"
	"github.com/alligatorO15/fin-lists/internal/config"
	"github.com/alligatorO15/fin-lists/internal/database"
	"github.com/alligatorO15/fin-lists/internal/filterquery"
	"github.com/alligatorO15/fin-lists/internal/listview"
	"github.com/alligatorO15/fin-lists/internal/logger"
	"github.com/alligatorO15/fin-lists/internal/models"
	"github.com/alligatorO15/fin-lists/internal/repository"
	"github.com/alligatorO15/fin-lists/internal/service"
	"github.com/alligatorO15/fin-lists/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// источники данных терминала привязаны к одному пользователю
type accountSource struct {
	svc    service.AccountService
	userID uuid.UUID
}

func (s accountSource) GetGroups(ctx context.Context) ([]models.AccountGroup, error) {
	return s.svc.GetGroups(ctx, s.userID)
}

type categorySource struct {
	svc    service.CategoryService
	userID uuid.UUID
}

func (s categorySource) Categories(ctx context.Context, t models.RecordType) ([]models.Category, error) {
	return s.svc.List(ctx, s.userID, &t)
}

func main() {
	filter := flag.String("filter", "", "начальный фильтр записей, например record_type=1&account_id=2")
	logPath := flag.String("log", "lists-tui.log", "файл для логов")
	tokenTTL := flag.Duration("token", 0, "напечатать токен API для пользователя терминала с этим сроком жизни и выйти")
	flag.Parse()

	if *tokenTTL > 0 {
		if err := printToken(*tokenTTL); err != nil {
			fmt.Fprintln(os.Stderr, "ошибка:", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*filter, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, "ошибка:", err)
		os.Exit(1)
	}
}

// printToken токен для запросов к API от имени того же пользователя
func printToken(ttl time.Duration) error {
	_ = godotenv.Load()
	cfg := config.Load()

	userID, err := cfg.UserID()
	if err != nil {
		return err
	}
	token, err := middleware.IssueToken(cfg.JWTSecret, userID, "", ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func run(filter, logPath string) error {
	_ = godotenv.Load()
	cfg := config.Load()

	zl, err := logger.NewFileLogger(cfg.LogMode, logPath)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	userID, err := cfg.UserID()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, cfg, loc, zl)

	store := filterquery.NewStore(filterquery.ParseQuery(filter))
	ctrl := listview.New(store,
		services.Record.Fetcher(userID),
		services.Account.Sink(userID),
		listview.WithLogger(zl.Named("listview")),
		listview.WithLocation(loc),
	)
	defer ctrl.Stop()

	model := tui.New(ctx, ctrl,
		accountSource{svc: services.Account, userID: userID},
		categorySource{svc: services.Category, userID: userID},
		tui.WithLogger(zl.Named("tui")),
	)

	zl.Info("terminal client started", zap.String("user_id", userID.String()), zap.String("filter", store.Current().Query()))
	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
