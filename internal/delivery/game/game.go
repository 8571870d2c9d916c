package game

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"reversi_server/internal/adapters"
	"reversi_server/internal/bootstrap"
	"reversi_server/internal/domain/reversi"
	repo "reversi_server/internal/repository"
	sessionuc "reversi_server/internal/usecase/session"
)

// GameHandler is the realtime gateway: it upgrades connections, maps
// inbound requests onto controller calls and lets the hub fan results
// back out. No game logic lives here.
type GameHandler struct {
	cfg       bootstrap.Config
	log       *zap.SugaredLogger
	hub       *Hub
	sessionUC *sessionuc.SessionUseCase
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, redisAdapter *adapters.AdapterRedis) *GameHandler {
	hub := NewHub(log)
	store := repo.NewRoomRepository(cfg, log, redisAdapter.GetClient())
	return &GameHandler{
		cfg:       cfg,
		log:       log,
		hub:       hub,
		sessionUC: sessionuc.NewSessionUseCase(cfg, log, store, hub),
	}
}

type clientRequest struct {
	Type    string         `json:"type"`
	RoomID  string         `json:"roomId,omitempty"`
	Mode    string         `json:"mode,omitempty"`
	Player  reversi.Player `json:"player,omitempty"`
	Index   *int           `json:"index,omitempty"`
	Message string         `json:"message,omitempty"`
}

// HandleGame upgrades the connection, assigns it a participant id and
// pumps inbound events until the peer goes away. The transport-level
// close is what drives room teardown.
func (g *GameHandler) HandleGame(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Errorf("websocket upgrade: %v", err)
		return
	}

	participantID := uuid.New().String()
	g.hub.Register(participantID, conn)
	g.log.Infof("participant %s connected", participantID)

	defer func() {
		g.hub.Remove(participantID)
		_ = conn.Close()
		g.sessionUC.Disconnect(context.Background(), participantID)
		g.log.Infof("participant %s disconnected", participantID)
	}()

	for {
		var req clientRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.log.Debugf("read from %s: %v", participantID, err)
			}
			return
		}
		g.dispatch(r.Context(), participantID, req)
	}
}

func (g *GameHandler) dispatch(ctx context.Context, participantID string, req clientRequest) {
	if req.RoomID == "" {
		g.log.Debugf("dropping %q request without roomId from %s", req.Type, participantID)
		return
	}

	switch req.Type {
	case "joinRoom":
		g.sessionUC.Join(ctx, req.RoomID, req.Mode, participantID)
	case "makeMove":
		if req.Index == nil {
			g.log.Debugf("dropping makeMove without index from %s", participantID)
			return
		}
		g.sessionUC.MakeMove(ctx, req.RoomID, participantID, *req.Index)
	case "sendMessage":
		g.sessionUC.Chat(ctx, req.RoomID, participantID, req.Player, req.Message)
	case "getLegalMoves":
		g.sessionUC.LegalMoves(ctx, req.RoomID, participantID, req.Player)
	default:
		g.log.Debugf("unknown request type %q from %s", req.Type, participantID)
	}
}
