package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/vastrakart/go-storefront/app/cmd"
	"github.com/vastrakart/go-storefront/app/configs"
	"github.com/vastrakart/go-storefront/app/db/seeders"
	"github.com/vastrakart/go-storefront/app/repositories"
	"github.com/vastrakart/go-storefront/app/repositories/gormstore"
	"github.com/vastrakart/go-storefront/app/repositories/memory"
	"github.com/vastrakart/go-storefront/app/routes"
)

func main() {
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	env := configs.LoadEnv()

	var store repositories.Datastore
	if env.UseDatabase() {
		db, err := configs.OpenConnection(env)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		store = gormstore.NewStore(db)
	} else {
		log.Println("No database configured, using in-memory store")
		memStore := memory.NewStore()
		if err := seeders.Seed(context.Background(), memStore); err != nil {
			log.Fatalf("❌ Failed to seed demo data: %v", err)
		}
		store = memStore
	}

	router := routes.NewRouter(env, store)

	server := &http.Server{
		Addr:         ":" + env.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("🚀 Server starting on :%s", env.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("❌ Server error: %v", err)
	}
}
