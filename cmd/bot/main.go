package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dnestruev/VALERA-2.0/infrastructure/metrics"
	"github.com/dnestruev/VALERA-2.0/infrastructure/tracing"
	"github.com/dnestruev/VALERA-2.0/internal/app/bot"
	"github.com/dnestruev/VALERA-2.0/internal/config"
	"github.com/dnestruev/VALERA-2.0/internal/model"
	notes_repo "github.com/dnestruev/VALERA-2.0/internal/repository/notes"
	"github.com/dnestruev/VALERA-2.0/internal/service/kafka"
	notes_serv "github.com/dnestruev/VALERA-2.0/internal/service/notes"
	"github.com/dnestruev/VALERA-2.0/internal/service/subscription"
	"github.com/dnestruev/VALERA-2.0/internal/service/weather"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"gopkg.in/telebot.v3"
)

func init() {
	location, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		log.Fatalf("failed to load location: %v", err)
	}
	time.Local = location
	log.Println("default time zone set to Europe/Moscow")
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	metrics.Init()
	metrics.StartMetricsServer(":8080")

	tgBot, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.TelegramConfig.Token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	})

	if err != nil {
		log.Fatal(err)
	}

	connStr := cfg.PostgresConfig.URL()
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalln(err)
	}

	if err = runMigrations(connStr); err != nil {
		log.Fatalln("migration error:", err)
	}

	_, cleanup, err := tracing.InitTracing(cfg.TracingConfig.Endpoint)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	broker, err := kafka.New(cfg.KafkaConfig.Brokers, cfg.KafkaConfig.Topic, 1, 1)
	if err != nil {
		log.Fatalf("failed to initialize kafka: %v", err)
	}
	defer broker.Close()

	notesServ := notes_serv.NewDefaultService(notes_repo.NewDefaultRepository(db))
	gate := subscription.NewGate(notesServ)
	weatherClient := weather.NewClient(cfg.WeatherConfig.APIKey)

	botImpl := bot.New(tgBot, notesServ, gate, weatherClient, broker,
		model.UserID(cfg.TelegramConfig.AdminID))
	botImpl.Start()
}

func runMigrations(dbURL string) error {
	m, err := migrate.New(
		"file://migrations",
		dbURL,
	)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}

	if err = m.Up(); !errors.Is(err, migrate.ErrNoChange) && err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
