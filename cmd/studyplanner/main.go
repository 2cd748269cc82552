package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"study-planner/internal/config"
	"study-planner/internal/google"
	"study-planner/internal/httpapi"
	"study-planner/internal/notify"
	"study-planner/internal/planner"
	"study-planner/internal/repository"
	"study-planner/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	auth := google.NewAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)
	syncClient := google.NewClient(auth, userRepo, categoryRepo, scheduleRepo)

	var tg *notify.Telegram
	var notifier planner.Notifier
	if cfg.TelegramToken != "" {
		tg, err = notify.NewTelegram(cfg.TelegramToken)
		if err != nil {
			log.Fatalf("init telegram: %v", err)
		}
		notifier = tg
	} else {
		log.Printf("[info] TELEGRAM_TOKEN not set, notifications disabled")
	}

	generator := planner.NewGenerator(categoryRepo, sessionRepo, scheduleRepo)
	replanner := planner.NewReplanner(userRepo, scheduleRepo, generator, syncClient, notifier)

	categorySvc := service.NewCategoryService(categoryRepo)
	sessionSvc := service.NewSessionService(sessionRepo, categoryRepo, scheduleRepo)

	scheduler := service.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleInterval(cfg.SweepInterval, func() {
		sweepCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := replanner.SweepMissed(sweepCtx, time.Now()); err != nil {
			log.Printf("sweep missed items: %v", err)
		}
	}); err != nil {
		log.Fatalf("schedule sweep job: %v", err)
	}
	if tg != nil {
		if _, err := scheduler.ScheduleDaily(cfg.AgendaTime, func() {
			agendaCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if err := tg.SendDailyAgendas(agendaCtx, userRepo, scheduleRepo, categoryRepo); err != nil {
				log.Printf("send daily agendas: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule agenda job: %v", err)
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	api := httpapi.NewServer(userRepo, scheduleRepo, categorySvc, sessionSvc, replanner, syncClient, auth, cfg.FrontendURL)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.Router(),
	}

	go func() {
		log.Printf("[info] study planner listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("[info] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}
