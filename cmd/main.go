package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/inkwellhq/inkwell-server/internal/api/http/handler"
	"github.com/inkwellhq/inkwell-server/internal/api/http/middleware"
	"github.com/inkwellhq/inkwell-server/internal/api/http/router"
	"github.com/inkwellhq/inkwell-server/internal/config"
	"github.com/inkwellhq/inkwell-server/internal/logger"
	"github.com/inkwellhq/inkwell-server/internal/model"
	"github.com/inkwellhq/inkwell-server/internal/repository/postgres"
	"github.com/inkwellhq/inkwell-server/internal/server"
	"github.com/inkwellhq/inkwell-server/internal/service"
	"github.com/inkwellhq/inkwell-server/internal/session"
	"github.com/inkwellhq/inkwell-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)
	sessionStore := session.NewStore()
	codec := token.NewCodec(cfg.Session.Secret, cfg.Session.TTL)

	authService := service.NewAuth(userRepo, sessionStore, cfg.Session.TTL, logger)
	postService := service.NewPost(postRepo, userRepo, logger)

	cookie := handler.CookieSettings{
		Name:   cfg.Session.CookieName,
		Domain: cfg.Session.CookieDomain,
		Secure: cfg.Session.CookieSecure,
		MaxAge: int(cfg.Session.TTL.Seconds()),
	}

	authHandler := handler.NewAuth(authService, codec, cookie, logger)
	postHandler := handler.NewPost(postService, logger)
	authenticate := middleware.NewAuthenticate(authService, codec, cfg.Session.CookieName, logger)
	logging := middleware.NewLogging(logger)

	r := router.New(authHandler, postHandler, authenticate, logging, cfg.HTTP.TemplatesGlob, cfg.HTTP.StaticDir)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
