package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bentoshop/internal/app/inventory/config"
	"bentoshop/internal/app/inventory/entity"
	"bentoshop/internal/app/inventory/handler"
	"bentoshop/internal/app/inventory/repository"
	"bentoshop/internal/app/inventory/service"
	"bentoshop/internal/app/inventory/storage"
	"bentoshop/internal/app/inventory/util"
	"bentoshop/pkg/logger"
)

func main() {
	// === ИНИЦИАЛИЗАЦИЯ КОНФИГУРАЦИИ ===
	// Загружаем конфигурацию из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// === ИНИЦИАЛИЗАЦИЯ ЛОГГЕРА ===
	// JSON логи в stdout; при LOGSTASH_ADDR дублируем в Logstash (ELK Stack)
	logLevel := os.Getenv("LOG_LEVEL")
	if logstashAddr := os.Getenv("LOGSTASH_ADDR"); logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, "inventory-service", logLevel); err != nil {
			log.Printf("Failed to connect to Logstash, falling back to stdout: %v", err)
			logger.Init("inventory-service", logLevel)
		}
	} else {
		logger.Init("inventory-service", logLevel)
	}

	// === ПОДКЛЮЧЕНИЕ К БД ===
	// SQLite по умолчанию, PostgreSQL по конфигурации
	db, err := connectDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Printf("Successfully connected to database (%s)", cfg.Database.Driver)

	// === МИГРАЦИЯ СХЕМЫ ===
	// Порядок важен: products ссылается на categories и artists
	if err := db.AutoMigrate(
		&entity.Category{},
		&entity.Band{},
		&entity.Artist{},
		&entity.Product{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// === ПОДКЛЮЧЕНИЕ К REDIS ===
	// Redis используется для кеширования справочников категорий и групп
	redisClient, err := util.NewRedisClient(
		cfg.Redis.Address(),
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Successfully connected to Redis")

	// === ИНИЦИАЛИЗАЦИЯ KAFKA PRODUCER ===
	// Producer отправляет события PRODUCT_CREATED/UPDATED/DELETED
	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	log.Println("Successfully initialized Kafka producer")

	// === ИНИЦИАЛИЗАЦИЯ БЛОБ-ХРАНИЛИЩА ===
	store, err := buildStorage(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Printf("Successfully initialized %s storage", store.Backend())

	// === ИНИЦИАЛИЗАЦИЯ СЛОЯ РЕПОЗИТОРИЕВ ===
	categoryRepo := repository.NewCategoryRepository(db)
	bandRepo := repository.NewBandRepository(db)
	artistRepo := repository.NewArtistRepository(db)
	productRepo := repository.NewProductRepository(db)

	// === ИНИЦИАЛИЗАЦИЯ БИЗНЕС-ЛОГИКИ ===
	// Service layer координирует репозитории, кеш и Kafka
	catalogService := service.NewCatalogService(
		categoryRepo,
		bandRepo,
		artistRepo,
		productRepo,
		redisClient,
		kafkaProducer,
	)
	imageService := service.NewImageService(store, cfg.Watermark.Text)

	// === ИНИЦИАЛИЗАЦИЯ HTTP HANDLERS ===
	catalogHandler := handler.NewCatalogHandler(catalogService)
	imageHandler := handler.NewImageHandler(imageService)

	// === НАСТРОЙКА МАРШРУТОВ ===
	router := handler.SetupRoutes(catalogHandler, imageHandler)

	// === НАСТРОЙКА HTTP СЕРВЕРА ===
	// Production-ready настройки с таймаутами
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second, // Таймаут чтения запроса
		WriteTimeout: 15 * time.Second, // Таймаут записи ответа
		IdleTimeout:  60 * time.Second, // Таймаут idle соединений
	}

	// === ЗАПУСК HTTP СЕРВЕРА ===
	// Запускаем сервер в отдельной горутине для graceful shutdown
	go func() {
		log.Printf("Starting Inventory Service on %s", cfg.Server.Address())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// === GRACEFUL SHUTDOWN ===
	// Ожидаем сигнала завершения (SIGINT или SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Inventory Service...")

	// Даем серверу 30 секунд на завершение текущих запросов
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Inventory Service stopped gracefully")
}

// connectDB открывает соединение с БД через GORM.
// TranslateError включен: нарушения уникальности и FK приходят как
// типизированные ошибки независимо от движка.
func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}

	if cfg.Driver == "sqlite" {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		// _fk=1 включает проверку foreign keys, по умолчанию SQLite их игнорирует
		db, err := gorm.Open(sqlite.Open(cfg.Path+"?_fk=1"), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return db, nil
	}

	// Retry logic для устойчивости при запуске в Docker
	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else {
				if pingErr := sqlDB.Ping(); pingErr != nil {
					err = pingErr
				} else {
					// Настраиваем connection pool
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(5)
					sqlDB.SetConnMaxLifetime(5 * time.Minute)
					sqlDB.SetConnMaxIdleTime(1 * time.Minute)
					return db, nil
				}
			}
		}
		log.Printf("Failed to connect to database (attempt %d/10): %v", i+1, err)
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

// buildStorage выбирает реализацию блоб-хранилища по конфигурации
func buildStorage(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Backend {
	case "s3":
		return storage.NewS3Store(ctx, storage.S3Config{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Key:      cfg.S3Key,
			Secret:   cfg.S3Secret,
			Endpoint: cfg.S3Endpoint,
		})
	case "local", "":
		return storage.NewLocalStore(cfg.LocalRoot)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
