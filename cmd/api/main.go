// Package main (in api-subfolder) provides launch of the whole application
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

	"github.com/UnendingLoop/ImageVault/internal/auth"
	"github.com/UnendingLoop/ImageVault/internal/gateway"
	"github.com/UnendingLoop/ImageVault/internal/mwlogger"
	"github.com/UnendingLoop/ImageVault/internal/repository"
	"github.com/UnendingLoop/ImageVault/internal/service"
	"github.com/UnendingLoop/ImageVault/internal/transport"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"
)

func main() {
	// read config from envs/.env file
	appConfig := config.New()
	appConfig.EnableEnv("")
	if err := appConfig.LoadEnvFiles("./.env"); err != nil {
		log.Fatalf("Failed to load envs: %s\nExiting app...", err)
	}

	// start the logger
	zlog.InitConsole()
	err := zlog.SetLevel("info")
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	// interrupt listener - the context for the whole app
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// connect to the metadata DB and apply migrations
	dbConn := repository.ConnectWithRetries(appConfig, 5, 10*time.Second)
	repository.MigrateWithRetries(dbConn.Master, "./migrations", 10, 15*time.Second)

	// token verifier for incoming bearer credentials
	verifier, err := auth.NewVerifier(appConfig.GetString("ACCESS_TOKEN_PUBLIC_KEY"))
	if err != nil {
		log.Fatalf("Failed to init token verifier: %v", err)
	}

	// upstream image-storage client
	upstreamTimeout := 10 * time.Second
	if raw := appConfig.GetString("UPSTREAM_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Failed to parse UPSTREAM_TIMEOUT: %v", err)
		}
		upstreamTimeout = parsed
	}
	upstream := gateway.NewClient(
		appConfig.GetString("UPSTREAM_BASE_URL"),
		appConfig.GetString("UPSTREAM_PRIVATE_TOKEN"),
		upstreamTimeout,
	)

	// repo and service instances
	var repo ImageAPIRepository = repository.NewPostgresImageRepo(dbConn)
	var svc ImageAPIService = service.NewImageService(repo, upstream)

	// HTTP handler instance
	handlers := transport.NewImageHandler(svc, verifier)
	// server setup
	mode := appConfig.GetString("GIN_MODE")
	engine := ginext.New(mode)

	engine.GET("/ping", handlers.SimplePinger)
	engine.GET("/api/v1/images", handlers.GetAllImages)        // list of caller's images
	engine.GET("/api/v1/images/:id", handlers.GetImage)        // single record
	engine.POST("/api/v1/images", handlers.Create)             // create through upstream
	engine.PUT("/api/v1/images/:id", handlers.Replace)         // full replace of mutable fields
	engine.PATCH("/api/v1/images/:id", handlers.PartialUpdate) // partial update
	engine.DELETE("/api/v1/images/:id", handlers.Delete)       // delete upstream + local

	srv := &http.Server{
		Addr:    ":" + appConfig.GetString("APP_PORT"),
		Handler: mwlogger.NewMWLogger(engine),
	}

	// Server launch
	go func() {
		log.Printf("Server running on http://localhost%s\n", srv.Addr)
		err := srv.ListenAndServe()
		if err != nil {
			switch {
			case errors.Is(err, http.ErrServerClosed):
				log.Println("Server gracefully stopping...")
			default:
				log.Printf("Server stopped: %v", err)
				stop()
			}
		}
	}()

	// wait for cancellation to start graceful shutdown
	<-ctx.Done()

	shutdown(srv, dbConn)
	log.Println("Exiting app...")
}

func shutdown(srv *http.Server, dbConn *dbpg.DB) {
	log.Println("Interrupt received!!! Starting shutdown sequence...")

	// Draining in-flight requests:
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("Failed to shut down HTTP-server correctly:", err)
	}
	log.Println("HTTP-server stopped.")

	// Closing DB connection
	if err := dbConn.Master.Close(); err != nil {
		log.Println("Failed to close DB-conn correctly:", err)
		return
	}
	log.Println("DBconn closed")
}
