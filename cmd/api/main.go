package main

import (
	"context"
	"errors"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"

	"fundraise-platform/internal/handlers"
	"fundraise-platform/internal/payments"
	"fundraise-platform/internal/storage"
	ws "fundraise-platform/internal/websocket"
)

// This struct will hold our loaded configuration
type Config struct {
	Addr            string `mapstructure:"ADDR"`
	DSN             string `mapstructure:"DSN"`
	StripeSecretKey string `mapstructure:"STRIPE_SECRET_KEY"`
	Currency        string `mapstructure:"CURRENCY"`
}

// loadConfig reads config.env from the working directory; every value can be
// overridden from the environment, and the file itself is optional.
func loadConfig() (config Config, err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("ADDR", ":8080")
	viper.SetDefault("DSN", "")
	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("CURRENCY", "inr")

	if err = viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}

func main() {
	log.Println("Starting fundraising platform server...")

	config, err := loadConfig()
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	// Pick the store: Postgres when a DSN is configured, in-memory otherwise.
	var store storage.Storage
	if config.DSN != "" {
		db, err := sqlx.Connect("pgx", config.DSN)
		if err != nil {
			log.Fatal("cannot connect to database:", err)
		}
		store, err = storage.NewPostgresStorage(context.Background(), db)
		if err != nil {
			log.Fatal("cannot initialize postgres storage:", err)
		}
		log.Println("Using PostgreSQL storage")
	} else {
		store = storage.NewMemStorage()
		log.Println("Using in-memory storage (state is lost on restart)")
	}
	defer store.Close()

	hub := ws.NewHub()
	go hub.Run()

	intents := payments.NewStripeClient(config.StripeSecretKey)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	handlers.RegisterRoutes(r, store, intents, hub, config.Currency)

	log.Println("Server starting on", config.Addr)
	if err := r.Run(config.Addr); err != nil {
		log.Fatal("could not start server:", err)
	}
}
