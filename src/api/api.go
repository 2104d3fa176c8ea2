package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teploservice/lead-api/src/api/auditlog"
	"github.com/teploservice/lead-api/src/api/config"
	"github.com/teploservice/lead-api/src/api/data"
	"github.com/teploservice/lead-api/src/api/notify"
	"github.com/teploservice/lead-api/src/api/storage"
	"github.com/teploservice/lead-api/src/api/webserver"
)

func main() {
	cfg := config.Load()

	window := time.Duration(cfg.ThrottleSeconds) * time.Second
	var throttle webserver.Throttle
	if cfg.RedisURL != "" {
		throttle = webserver.NewRedisThrottle(data.MustRedis(cfg.RedisURL), window)
	} else {
		throttle = webserver.NewMemoryThrottle(window)
	}

	router := webserver.New(webserver.Deps{
		Store:    storage.New(cfg.LeadsFile),
		Audit:    auditlog.New(cfg.LogFile),
		Email:    notify.NewEmail(cfg),
		Telegram: notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, ""),
		Throttle: throttle,
	})

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	log.Printf("Lead API listening on %s (email: %v, telegram: %v)",
		cfg.Port, cfg.NotifyEmail != "", cfg.TelegramToken != "" && cfg.TelegramChatID != "")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutCtx)
}
