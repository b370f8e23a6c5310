package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/shopmate/support-chat/internal/ai"
	"github.com/shopmate/support-chat/internal/bot"
	"github.com/shopmate/support-chat/internal/chatsvc"
	"github.com/shopmate/support-chat/internal/config"
	"github.com/shopmate/support-chat/internal/contact"
	"github.com/shopmate/support-chat/internal/database"
	"github.com/shopmate/support-chat/internal/docstore"
	"github.com/shopmate/support-chat/internal/httpapi"
	"github.com/shopmate/support-chat/internal/metrics"
	"github.com/shopmate/support-chat/internal/order"
	"github.com/shopmate/support-chat/internal/session"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	if err := db.AutoMigrate(&order.Order{}, &contact.Request{}); err != nil {
		log.WithError(err).Fatal("migrate schema")
	}

	// Orders: import the CSV export on first run, then serve from the
	// table and the in-memory indexes.
	orderRepo := order.NewRepo(db)
	if n, err := orderRepo.Count(ctx); err != nil {
		log.WithError(err).Fatal("count orders")
	} else if n == 0 {
		if _, statErr := os.Stat(cfg.OrdersCSVPath); statErr == nil {
			rows, err := order.LoadCSV(cfg.OrdersCSVPath)
			if err != nil {
				log.WithError(err).Fatal("load orders csv")
			}
			if err := orderRepo.Import(ctx, rows); err != nil {
				log.WithError(err).Fatal("import orders")
			}
			log.WithField("orders", len(rows)).Info("imported order dataset")
		} else {
			log.WithField("path", cfg.OrdersCSVPath).Warn("orders table empty and no csv found, starting with no orders")
		}
	}

	orders, err := orderRepo.LoadAll(ctx)
	if err != nil {
		log.WithError(err).Fatal("load orders")
	}
	idx := order.NewIndex(orders)
	log.WithField("orders", idx.Len()).Info("order index built")

	var rdb *redis.Client
	needsRedis := cfg.DocstoreBackend == "redis" || cfg.SessionStore == "redis"
	if needsRedis {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Fatal("redis ping")
		}
	}

	// Fallback document index.
	var docs docstore.Store
	switch cfg.DocstoreBackend {
	case "redis":
		store := docstore.NewRedisStore(rdb, "orders")
		if err := order.Seed(ctx, store, orders); err != nil {
			log.WithError(err).Fatal("seed redis docstore")
		}
		docs = store
	case "pgvector":
		if cfg.DBDriver != "postgres" {
			log.Fatal("DOCSTORE_BACKEND=pgvector requires DB_DRIVER=postgres")
		}
		store := docstore.NewPGStore(db)
		if err := store.Migrate(); err != nil {
			log.WithError(err).Fatal("migrate docstore")
		}
		if err := order.Seed(ctx, store, orders); err != nil {
			log.WithError(err).Fatal("seed pgvector docstore")
		}
		docs = store
	case "", "none":
		// index-only lookups
	default:
		log.WithField("backend", cfg.DocstoreBackend).Fatal("unknown docstore backend")
	}

	// Session store.
	var sessions session.Store
	switch cfg.SessionStore {
	case "redis":
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
	default:
		mem := session.NewMemoryStore(cfg.SessionTTL)
		go mem.Sweep(ctx, cfg.SessionTTL/2, log)
		sessions = mem
	}

	// LLM provider.
	reg := ai.NewRegistry()
	reg.Register("ollama", cfg.OllamaModel, func(ctx context.Context, model string) (ai.Provider, error) {
		return ai.NewOllamaProvider(cfg.OllamaBaseURL, model), nil
	})
	reg.Register("openrouter", cfg.OpenRouterModel, func(ctx context.Context, model string) (ai.Provider, error) {
		return ai.NewOpenRouterProvider(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, model,
			cfg.OpenRouterSiteURL, cfg.OpenRouterAppName), nil
	})
	provider, err := reg.Get(ctx, cfg.AIProvider, "")
	if err != nil {
		log.WithError(err).Fatal("configure ai provider")
	}
	assistant := ai.NewAssistant(provider, cfg.LLMTimeout, log)

	m := metrics.New()

	// Contact requests: DB always, queue when a broker is configured.
	var notifier contact.Publisher
	if cfg.RabbitURL != "" {
		n, err := contact.NewNotifier(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			log.WithError(err).Fatal("connect rabbitmq")
		}
		defer n.Close()
		notifier = n
	} else {
		log.Warn("RABBIT_URL not set, contact requests will not be queued for dispatch")
	}
	contactSvc := contact.NewService(contact.NewRepo(db), notifier, m, log)

	flow := bot.NewContactFlow(contactSvc, log)
	orderSvc := order.NewService(idx, docs, log)
	router := bot.NewRouter(orderSvc, flow, chatsvc.NewAssistant(assistant), m, log, cfg.ChatContextWindowSize)
	svc := chatsvc.NewService(sessions, router, m, log)

	engine := httpapi.NewRouter(cfg, svc)
	log.WithField("addr", cfg.Addr).Info("listening")
	if err := engine.Run(cfg.Addr); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
