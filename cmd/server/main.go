package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	docs "github.com/tazhibayda/idea-service/docs"
	"github.com/tazhibayda/idea-service/internal/config"
	httpapi "github.com/tazhibayda/idea-service/internal/http"
	"github.com/tazhibayda/idea-service/internal/log"
	"github.com/tazhibayda/idea-service/internal/mail"
	"github.com/tazhibayda/idea-service/internal/metrics"
	"github.com/tazhibayda/idea-service/internal/queue"
	"github.com/tazhibayda/idea-service/internal/repo"
	"github.com/tazhibayda/idea-service/internal/service"
)

// @title Idea Service API
// @version 0.1.0
// @description Internal idea management: threads, ideas, engagement, notifications.
// @schemes http https
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	if _, err := log.Init(cfg.Prod); err != nil {
		panic(err)
	}
	defer log.Sync()

	tracer.Start(tracer.WithService("idea-service"))
	defer tracer.Stop()

	metrics.MustRegister()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Errorf("mongo connect: %v", err)
		os.Exit(1)
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Errorf("ensure indexes: %v", err)
		os.Exit(1)
	}

	var rds *repo.Redis
	if cfg.RedisAddr != "" {
		rds = repo.NewRedis(cfg.RedisAddr)
		if err := rds.Ping(ctx); err != nil {
			log.Errorf("redis ping: %v", err)
			os.Exit(1)
		}
		defer rds.Close()
	}

	pub := queue.NewNoop()
	if cfg.RabbitURL != "" {
		if pub, err = queue.NewRabbit(cfg.RabbitURL, cfg.RabbitExchange); err != nil {
			log.Errorf("rabbit connect: %v", err)
			os.Exit(1)
		}
	}
	defer pub.Close()

	var mailer mail.Sender = mail.LogSender{}
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	}

	notifier := service.NewNotifier(store, store, mailer, pub, cfg.RabbitExchange, cfg.BaseURL)

	users := service.NewUserService(store, store, mailer, rds, pub, cfg.RabbitExchange)
	users.JWTSecret = cfg.JWTSecret
	users.AccessTTL = time.Duration(cfg.AccessTTLMins) * time.Minute
	users.DefaultPass = cfg.DefaultPass
	users.CodeTTL = time.Duration(cfg.CodeTTLHours) * time.Hour
	users.CodeRequestGap = time.Duration(cfg.CodeRequestGap) * time.Second
	users.BaseURL = cfg.BaseURL

	ideas := service.NewIdeaService(store, store, store, store, notifier)
	ideas.DedupeViews = cfg.ViewDedupe

	h := httpapi.NewHandler(
		users,
		ideas,
		service.NewThreadService(store, store),
		service.NewCategoryService(store, store),
		service.NewDepartmentService(store, store),
		service.NewNotificationService(store, store),
		service.NewDashboardService(store, store, store),
		service.NewEvents(store),
		store,
		cfg.JWTSecret,
	)

	docs.SwaggerInfo.BasePath = "/"

	r := httpapi.NewRouter(h)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()

	log.Infof("idea-service listening on :%s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Infof("signal: %s, shutting down", s)
	case err := <-srvErr:
		log.Errorf("server error: %v", err)
	}
}
