// topluluk — kategori/sunucu/kanal hiyerarşili topluluk sohbet backend'i.
//
// Katmanlar:
//
//	handlers   → HTTP parse + serialize (iş mantığı yok)
//	services   → iş kuralları (sahiplik, listing pipeline, dosya temizliği)
//	repository → SQL (service'ler interface üzerinden erişir)
//	ws         → gerçek zamanlı event broadcast (Hub)
//
// Bağımlılıklar yukarıdan aşağı akar; hiçbir katman üstünü import etmez.
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

	"github.com/rs/cors"

	"github.com/akinalp/topluluk/config"
	"github.com/akinalp/topluluk/database"
	"github.com/akinalp/topluluk/middleware"
	"github.com/akinalp/topluluk/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.Path, database.Migrations())
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := os.MkdirAll(cfg.Upload.Dir, 0755); err != nil {
		log.Fatalf("[main] failed to create upload directory: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	repos := initRepositories(db.Conn)
	svcs := initServices(cfg, repos, hub)
	hnds := initHandlers(cfg, svcs, hub)
	auth := middleware.NewAuthMiddleware(svcs.Auth)

	mux := initRoutes(hnds, auth)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      corsHandler.Handler(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("[main] listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	// Graceful shutdown: SIGINT/SIGTERM gelince yeni istekleri kes,
	// devam edenlere 10 saniye tanı, WS bağlantılarını kapat.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[main] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[main] forced shutdown: %v", err)
	}
	hub.Shutdown()

	log.Println("[main] bye")
}
