package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/chat-feed/internal/client/centrifugo"
	"github.com/s21platform/chat-feed/internal/client/chatapi"
	"github.com/s21platform/chat-feed/internal/client/natsbus"
	"github.com/s21platform/chat-feed/internal/config"
	"github.com/s21platform/chat-feed/internal/draft"
	"github.com/s21platform/chat-feed/internal/feed"
	"github.com/s21platform/chat-feed/internal/gateway"
	"github.com/s21platform/chat-feed/internal/infra"
	"github.com/s21platform/chat-feed/internal/model"
	"github.com/s21platform/chat-feed/internal/pkg/jwt"
	"github.com/s21platform/chat-feed/internal/pkg/validator"
	db "github.com/s21platform/chat-feed/internal/repository/postgres"
	"github.com/s21platform/chat-feed/internal/rest"
	"github.com/s21platform/chat-feed/internal/timeline"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()
	logger := logger_lib.New(cfg.Logger.Host, cfg.Logger.Port, cfg.Service.Name, cfg.Platform.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = context.WithValue(ctx, config.KeyLogger, logger)

	loc, err := time.LoadLocation(cfg.Feed.Timezone)
	if err != nil {
		logger.Warn(fmt.Sprintf("unknown timezone %q, using local: %v", cfg.Feed.Timezone, err))
		loc = time.Local
	}

	chatClient := chatapi.New(cfg)
	defer chatClient.Close()

	var (
		realtime   gateway.Realtime
		publishers []db.Publisher
	)
	switch cfg.Gateway.Realtime {
	case config.RealtimeDriverCentrifugo:
		var tokens centrifugo.TokenSource = chatClient
		if cfg.Centrifuge.JWTSecret != "" {
			tokens = jwt.New(cfg.Centrifuge.JWTSecret).ForUser(cfg.Feed.UserID)
		}
		realtime = centrifugo.NewSubscriber(cfg, tokens)

		centrifugeClient := centrifugo.New(cfg)
		defer centrifugeClient.Close()
		publishers = append(publishers, centrifugeClient)
	case config.RealtimeDriverNATS:
		natsClient, err := natsbus.Connect(ctx, cfg)
		if err != nil {
			logger.Error(fmt.Sprintf("failed to connect to nats: %v", err))
			os.Exit(1)
		}
		defer natsClient.Close()
		realtime = natsClient
		publishers = append(publishers, natsClient)
	case config.RealtimeDriverPostgres:
		realtime = db.NewListener(cfg)
	case config.RealtimeDriverNone:
	default:
		logger.Error(fmt.Sprintf("unknown realtime driver %q", cfg.Gateway.Realtime))
		os.Exit(1)
	}

	var store gateway.Store
	switch cfg.Gateway.Store {
	case config.StoreDriverAPI:
		store = chatClient
	case config.StoreDriverPostgres:
		dbRepo := db.New(cfg, publishers...)
		defer dbRepo.Close()
		store = dbRepo
	default:
		logger.Error(fmt.Sprintf("unknown store driver %q", cfg.Gateway.Store))
		os.Exit(1)
	}

	var kv draft.KV = draft.NewMemoryKV()
	if cfg.Draft.Path != "" {
		pebbleKV, err := draft.OpenPebble(cfg.Draft.Path, nil)
		if err != nil {
			logger.Error(fmt.Sprintf("failed to open draft store, drafts kept in memory: %v", err))
		} else {
			defer pebbleKV.Close() //nolint:errcheck // .
			kv = pebbleKV
		}
	}

	vldtr := validator.New()
	self := model.User{
		ID:          cfg.Feed.UserID,
		DisplayName: cfg.Feed.UserDisplayName,
		AvatarRef:   cfg.Feed.UserAvatarRef,
	}

	session := feed.NewSession(self, gateway.New(store, realtime), draft.New(kv), vldtr, cfg.Feed.PageSize)
	defer session.Close()

	rows := timeline.NewBuilder(self.ID, timeline.NewEstimator(cfg.Layout), loc)
	handler := rest.New(session, rows, vldtr)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return infra.LoggerHTTP(next, logger)
	})
	handler.Register(router)
	router.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Service.Port),
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info(fmt.Sprintf("feed listening on %s", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %v", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		session.Close()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %v", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("server error: %v", err))
	}
}
