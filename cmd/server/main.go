package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/Leganyst/booking-core/internal/api"
	"github.com/Leganyst/booking-core/internal/auth"
	"github.com/Leganyst/booking-core/internal/cache"
	"github.com/Leganyst/booking-core/internal/config"
	"github.com/Leganyst/booking-core/internal/db"
	"github.com/Leganyst/booking-core/internal/model"
	"github.com/Leganyst/booking-core/internal/notify"
	"github.com/Leganyst/booking-core/internal/repository"
	"github.com/Leganyst/booking-core/internal/service"
	"github.com/Leganyst/booking-core/internal/sweeper"
	"github.com/Leganyst/booking-core/internal/wizard"
	"github.com/Leganyst/booking-core/internal/ws"
)

func main() {
	// 1. Загружаем .env (если есть) и конфиг из окружения.
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	loc, err := time.LoadLocation(cfg.DBTimeZone)
	if err != nil {
		log.Fatalf("load timezone %q: %v", cfg.DBTimeZone, err)
	}

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(cfg)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("sql DB: %v", err)
	}
	defer sqlDB.Close()

	// 4. Демо-фикстуры (опционально).
	if cfg.SeedDemo {
		if err := db.SeedDemo(context.Background(), gormDB, loc); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
	}

	// 5. Репозитории (реализации на GORM).
	serviceRepo := repository.NewGormServiceRepository(gormDB)
	bundleRepo := repository.NewGormBundleRepository(gormDB)
	resourceRepo := repository.NewGormResourceRepository(gormDB)
	clientRepo := repository.NewGormClientRepository(gormDB)
	bookingRepo := repository.NewGormBookingRepository(gormDB)
	eventRepo := repository.NewGormEventRepository(gormDB)

	// 6. Опциональная инфраструктура: websocket-хаб, Redis-кэш, бот.
	hub := ws.NewHub()
	defer hub.Close()

	var byteCache service.ByteCache
	if cfg.RedisAddr != "" {
		rc, err := cache.New(context.Background(), cfg.RedisAddr)
		if err != nil {
			log.Fatalf("init redis %s: %v", cfg.RedisAddr, err)
		}
		defer rc.Close()
		byteCache = rc
	}

	var notifier service.Notifier
	if cfg.BotToken != "" {
		tn, err := notify.New(cfg.BotToken, loc)
		if err != nil {
			log.Fatalf("init telegram bot: %v", err)
		}
		notifier = tn
	}

	// 7. Бизнес-слой.
	day := service.WorkingDay{
		OpenHour:  cfg.DayOpenHour,
		CloseHour: cfg.DayCloseHour,
		StepMin:   cfg.SlotMinutes,
		Loc:       loc,
	}

	catalogSvc := service.NewCatalogService(serviceRepo, bundleRepo, resourceRepo)
	resourceSvc := service.NewResourceService(resourceRepo, serviceRepo)
	clientSvc := service.NewClientService(clientRepo, eventRepo)
	bookingSvc := service.NewBookingService(bookingRepo, serviceRepo, resourceRepo, clientRepo, eventRepo, day).
		WithBroadcaster(hub)
	calendarSvc := service.NewCalendarService(bookingRepo, resourceRepo, serviceRepo, day)
	if byteCache != nil {
		bookingSvc = bookingSvc.WithCache(byteCache)
		calendarSvc = calendarSvc.WithCache(byteCache)
	}
	if notifier != nil {
		bookingSvc = bookingSvc.WithNotifier(notifier)
	}

	wizardStore := wizard.NewStore(0)
	userStore := auth.NewStaticStore(cfg.AdminTelegramIDs)

	// 8. HTTP-сервер: роутер + CORS + логирование запросов.
	handler := api.New(
		catalogSvc, resourceSvc, clientSvc, bookingSvc, calendarSvc,
		wizardStore, userStore, hub,
		cfg.JWTSecret, time.Duration(cfg.JWTExpireMin)*time.Minute,
	).Router()

	corsMW := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      api.WithLogging(corsMW.Handler(handler)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("booking core listening on %s", cfg.HTTPAddr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http serve: %v", err)
		}
	}()

	// 9. Фоновая пометка просроченных записей (опционально).
	if cfg.OverdueSweepCron != "" {
		sw, err := sweeper.New(cfg.OverdueSweepCron, bookingRepo)
		if err != nil {
			log.Fatalf("init sweeper: %v", err)
		}
		sw.Start()
		defer sw.Stop()
	}

	// 10. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}
