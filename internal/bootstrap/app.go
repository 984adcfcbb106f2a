package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"blogilista/internal/config"
	mysqlClient "blogilista/internal/platform/mysql"
	postgresClient "blogilista/internal/platform/postgres"
	rabbitmqClient "blogilista/internal/platform/rabbitmq"
	redisClient "blogilista/internal/platform/redis"
	sqliteClient "blogilista/internal/platform/sqlite"
	"blogilista/internal/repository"
	"blogilista/internal/worker"
)

// App holds the process-wide clients. Redis, MQConn and EventWorker are nil
// when their dependency is disabled in config.
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *redis.Client
	MQConn      *amqp.Connection
	EventWorker *worker.BlogEventWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	app := &App{Config: cfg, StartedAt: time.Now()}
	if err := app.connect(ctx); err != nil {
		if closeErr := app.Close(); closeErr != nil {
			log.Printf("close partial resources failed: %v", closeErr)
		}
		return nil, err
	}
	return app, nil
}

func (a *App) connect(ctx context.Context) error {
	db, err := openDatabase(ctx, a.Config)
	if err != nil {
		return err
	}
	a.DB = db
	if err := repository.AutoMigrate(db); err != nil {
		return err
	}

	if a.Config.Redis.Addr != "" {
		redisCli, err := redisClient.New(ctx, a.Config.Redis.Addr, a.Config.Redis.Password, a.Config.Redis.DB)
		if err != nil {
			return err
		}
		a.Redis = redisCli
	} else {
		log.Printf("redis disabled, tokens cannot be revoked before expiry")
	}

	if a.Config.RabbitMQ.URL != "" {
		mqConn, err := rabbitmqClient.New(ctx, a.Config.RabbitMQ.URL)
		if err != nil {
			return err
		}
		a.MQConn = mqConn

		eventWorker := worker.NewBlogEventWorker(mqConn, repository.NewEventRepository(db), a.Config.RabbitMQ.BlogEventQueue)
		if err := eventWorker.Start(ctx); err != nil {
			return fmt.Errorf("start blog event worker failed: %w", err)
		}
		a.EventWorker = eventWorker
	} else {
		log.Printf("rabbitmq disabled, blog events are not recorded")
	}

	return nil
}

func openDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		return mysqlClient.New(ctx, cfg.MySQLDSN())
	case config.DriverPostgres:
		return postgresClient.New(ctx, cfg.PostgresDSN())
	case config.DriverSQLite:
		return sqliteClient.New(ctx, cfg.SQLite.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.EventWorker != nil {
		a.EventWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
