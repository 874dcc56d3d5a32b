package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"taskflow/internal/clock"
	"taskflow/internal/config"
	"taskflow/internal/httpmw"
	"taskflow/internal/server"
	"taskflow/internal/task"
	"taskflow/internal/ws"
)

func main() {
	logger := log.Default()

	cfg := config.Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			logger.Fatal(err)
		}
	}
	cfg = config.FromEnv(cfg)

	db, err := sql.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("ping database: %v", err)
	}
	logger.Printf("connected to %s database (%s)", cfg.DB.Driver, cfg.DB.DSN)

	repo := task.NewSQLRepo(db, cfg.DB.Driver)
	if err := repo.CreateSchema(context.Background()); err != nil {
		logger.Fatal(err)
	}

	hub := ws.NewHub(logger, cfg.WS.SendBuffer, cfg.WS.BroadcastBuffer)
	go hub.Run()

	svc := task.NewService(repo, hub, clock.RealClock{}, logger)

	router := mux.NewRouter()
	rr := &server.RouteRegistry{}
	server.RegisterAPIRoutes(router, rr, &server.App{
		Tasks:   svc,
		Hub:     hub,
		BootNow: time.Now(),
	})

	handler := httpmw.Chain(router,
		httpmw.WithRequestID,
		httpmw.WithRecover(logger),
		httpmw.WithAccessLog(logger),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Printf("taskflow listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Print("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
	hub.Close()
}
