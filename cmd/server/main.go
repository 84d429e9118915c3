package main

import (
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/fedorukko2007-source/todo-app/internal/app/repositories"
	"github.com/fedorukko2007-source/todo-app/internal/app/services"
	"github.com/fedorukko2007-source/todo-app/internal/config"
	"github.com/fedorukko2007-source/todo-app/internal/kafka"
	"github.com/fedorukko2007-source/todo-app/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var store repositories.TaskStore
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pg, err := repositories.NewPostgresStore(cfg.PostgresDSN)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		store = pg
		log.Println("using postgres task store")
	default:
		store = repositories.NewFileStore(cfg.StoreFile)
		log.Printf("using file task store at %s", cfg.StoreFile)
	}

	var cache repositories.TaskCache = repositories.NoopCache{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		cache = repositories.NewRedisTaskCache(rdb)
		log.Printf("task list cache enabled via redis at %s", cfg.RedisAddr)
	}

	var events kafka.EventProducer = kafka.NoopProducer{}
	if cfg.KafkaBroker != "" {
		producer := kafka.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic)
		defer producer.Close()
		events = producer
		log.Printf("task events enabled via kafka at %s, topic %s", cfg.KafkaBroker, cfg.KafkaTopic)
	}

	service := services.NewTaskService(store, cache, events)
	server := web.NewServer(service)

	log.Printf("server started on :%s", cfg.HTTPPort)
	log.Fatal(server.Run(":" + cfg.HTTPPort))
}
