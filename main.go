package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/codewith-lab/BlogHive/config"
	"github.com/codewith-lab/BlogHive/controllers"
	"github.com/codewith-lab/BlogHive/router"
	"github.com/codewith-lab/BlogHive/store"
)

func main() {
	cfg := config.InitConfig()

	db := config.InitDB(cfg)
	rdb := config.InitRedis(cfg)

	// Run database migrations and seed the starter articles
	config.MigrateDB(db)

	articles := store.NewArticleStore(db)
	deps := router.Deps{
		Articles: controllers.NewArticleController(articles, rdb),
		Auth:     controllers.NewAuthController(db, cfg),
		Config:   cfg,
	}

	r := router.InitRouter(deps)
	port := cfg.App.Port
	if port == "" {
		port = ":8080"
	}
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}
	log.Println("Server exiting")
}
