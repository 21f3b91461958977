package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/agenteunico/crm-leads/internal/config"
	"github.com/agenteunico/crm-leads/internal/entity"
	"github.com/agenteunico/crm-leads/internal/infra/database"
	"github.com/agenteunico/crm-leads/internal/infra/http/handlers"
	"github.com/agenteunico/crm-leads/internal/infra/http/middleware"
	"github.com/agenteunico/crm-leads/internal/infra/integration/whatsapp"
	"github.com/agenteunico/crm-leads/internal/infra/mail"
	"github.com/agenteunico/crm-leads/internal/infra/queue"
	"github.com/agenteunico/crm-leads/internal/infra/worker"
	"github.com/agenteunico/crm-leads/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuração inválida: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Armazenamento: Postgres se configurado, senão memória
	var repo entity.LeadRepository = database.NewMemoryLeadRepository()
	var dbPinger handlers.Pinger
	if cfg.DatabaseURL != "" {
		pool, err := database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("falha ao conectar no Postgres: %v", err)
		}
		defer pool.Close()

		if err := database.Migrate(pool); err != nil {
			log.Fatalf("falha nas migrações: %v", err)
		}
		repo = database.NewPostgresLeadRepository(pool)
		dbPinger = pool
		log.Println("Armazenamento: Postgres")
	} else {
		log.Println("Armazenamento: memória (DATABASE_URL vazio)")
	}

	// 2. Serviços
	clock := usecase.SystemClock{}
	crm := usecase.NewCRMService(repo, clock)
	decisions := usecase.NewDecisionService(clock)

	// 3. Outreach via RabbitMQ (opcional)
	var mqState handlers.ConnectionState
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalf("falha ao iniciar RabbitMQ: %v", err)
		}
		defer rabbitMQ.Close()
		mqState = rabbitMQ.Conn

		consumerCh, err := rabbitMQ.Conn.Channel()
		if err != nil {
			log.Fatalf("falha ao abrir canal do consumidor: %v", err)
		}
		defer consumerCh.Close()

		producer := queue.NewProducer(rabbitMQ.Ch)
		waClient := whatsapp.NewClient(cfg.WhatsAppToken, cfg.WhatsAppPhoneID, cfg.WhatsAppBaseURL)
		mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)

		consumer := queue.NewWorker(consumerCh, waClient, mailSender)
		go func() {
			if err := consumer.Start(ctx, queue.QueueName); err != nil {
				log.Printf("[WORKER] %v", err)
			}
		}()

		coldWorker := worker.NewColdLeadWorker(crm, decisions, producer, cfg.ColdLeadDays, cfg.ColdLeadInterval)
		coldWorker.OnPublish(func(t entity.Tier) { middleware.RecordOutreachPublished(string(t)) })
		go coldWorker.Start(ctx)
	} else {
		log.Println("Outreach desativado (RABBITMQ_URL vazio)")
	}

	// 4. HTTP
	router := newRouter(routerDeps{
		Leads:          handlers.NewLeadHandler(crm),
		Decisions:      handlers.NewDecisionHandler(crm, decisions),
		Health:         handlers.NewHealthHandler(dbPinger, mqState, cfg.Required, os.Getenv),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:    middleware.NewRateLimiter(cfg.RateLimitPerMinute),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("AG.U.IA CRM rodando na porta %s (env=%s)", cfg.Port, cfg.AppEnv)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("servidor: %v", err)
	}
}
