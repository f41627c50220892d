package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// App — конфигурация сервиса, целиком из переменных окружения.
type App struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// postgres | sqlite
	DBDriver   string `envconfig:"DB_DRIVER" default:"postgres"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"booking.db"`

	DBHost          string `envconfig:"DB_HOST" default:"postgres"`
	DBPort          int    `envconfig:"DB_PORT" default:"5432"`
	DBUser          string `envconfig:"DB_USER" default:"booking"`
	DBPassword      string `envconfig:"DB_PASSWORD" default:"booking"`
	DBName          string `envconfig:"DB_NAME" default:"booking_db"`
	DBSSLMode       string `envconfig:"DB_SSLMODE" default:"disable"`
	DBTimeZone      string `envconfig:"DB_TIMEZONE" default:"Europe/Moscow"`
	MaxOpenConns    int    `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int    `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifeTime int    `envconfig:"DB_CONN_MAX_LIFETIME_MIN" default:"30"` // минут

	JWTSecret    string `envconfig:"JWT_SECRET" default:"dev-secret"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`

	// Telegram ID администраторов через запятую.
	AdminTelegramIDs []int64 `envconfig:"ADMIN_TELEGRAM_IDS"`

	// Пусто — кэш выключен.
	RedisAddr string `envconfig:"REDIS_ADDR"`

	// Пусто — уведомления выключены.
	BotToken string `envconfig:"BOT_TOKEN"`

	// Cron-выражение для пометки просроченных записей. Пусто — выключено.
	OverdueSweepCron string `envconfig:"OVERDUE_SWEEP_CRON"`

	// Рабочий день календарной сетки.
	DayOpenHour  int `envconfig:"DAY_OPEN_HOUR" default:"9"`
	DayCloseHour int `envconfig:"DAY_CLOSE_HOUR" default:"20"`
	SlotMinutes  int `envconfig:"SLOT_MINUTES" default:"30"`

	// Разрешённые origin'ы мини-аппа, через запятую. Пусто — любые.
	CORSOrigins []string `envconfig:"CORS_ORIGINS"`

	// Залить демо-фикстуры при старте.
	SeedDemo bool `envconfig:"SEED_DEMO" default:"false"`
}

func Load() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	// минимальная валидация
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("invalid DB_DRIVER %q: want postgres or sqlite", cfg.DBDriver)
	}
	if cfg.DayOpenHour < 0 || cfg.DayCloseHour > 24 || cfg.DayOpenHour >= cfg.DayCloseHour {
		return nil, fmt.Errorf("invalid working day: open=%d close=%d", cfg.DayOpenHour, cfg.DayCloseHour)
	}
	if cfg.SlotMinutes <= 0 || 60%cfg.SlotMinutes != 0 {
		return nil, fmt.Errorf("invalid SLOT_MINUTES %d: must divide an hour", cfg.SlotMinutes)
	}

	return &cfg, nil
}
