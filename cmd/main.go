package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"reversi_server/internal/adapters"
	"reversi_server/internal/bootstrap"
	authDelivery "reversi_server/internal/delivery/auth"
	gameDelivery "reversi_server/internal/delivery/game"
	roomsDelivery "reversi_server/internal/delivery/rooms"
	ownMiddleware "reversi_server/internal/middleware"
)

type mainDeliveryHandler struct {
	auth  *authDelivery.AuthHandler
	game  *gameDelivery.GameHandler
	rooms *roomsDelivery.RoomsHandler
}

func main() {
	logger := NewLogger()
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	redisAdapter := adapters.NewAdapterRedis(cfg)
	if err := redisAdapter.Init(ctx); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer redisAdapter.Close(ctx)
	logger.Info("Redis adapter initialized")

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(*cfg, logger, redisAdapter)
	handlers.Router(r, cfg.IsLocalCors)

	port := ":" + cfg.ServerPort
	logger.Infof("Server is running on port %s", port)
	if err := http.ListenAndServe(port, r); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)

	r.Post("/login", h.auth.Login)
	r.Delete("/logout", h.auth.Logout)
	r.Get("/rooms", h.rooms.HandleListRooms)
	r.Get("/ws", h.game.HandleGame)
}

func initializeDeliveryHandlers(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	redisAdapter *adapters.AdapterRedis,
) *mainDeliveryHandler {
	return &mainDeliveryHandler{
		auth:  authDelivery.NewAuthHandler(cfg, log, redisAdapter),
		game:  gameDelivery.NewGameHandler(cfg, log, redisAdapter),
		rooms: roomsDelivery.NewRoomsHandler(cfg, log, redisAdapter),
	}
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
	time.Sleep(1 * time.Second)
}
