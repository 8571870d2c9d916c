package rooms

import (
	"net/http"

	"go.uber.org/zap"

	"reversi_server/internal/adapters"
	"reversi_server/internal/bootstrap"
	"reversi_server/internal/domain/room"
	"reversi_server/internal/httpresponse"
	repo "reversi_server/internal/repository"
)

// RoomsHandler serves the read-only lobby listing. It never touches
// gameplay state.
type RoomsHandler struct {
	cfg  bootstrap.Config
	log  *zap.SugaredLogger
	repo *repo.RoomRepository
}

type ListRoomsResponse struct {
	Rooms []room.Summary `json:"rooms"`
}

func NewRoomsHandler(cfg bootstrap.Config, log *zap.SugaredLogger, redisAdapter *adapters.AdapterRedis) *RoomsHandler {
	return &RoomsHandler{
		cfg:  cfg,
		log:  log,
		repo: repo.NewRoomRepository(cfg, log, redisAdapter.GetClient()),
	}
}

func (h *RoomsHandler) HandleListRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.log.Error("ListRooms: only GET method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	summaries, err := h.repo.List(r.Context())
	if err != nil {
		h.log.Errorf("ListRooms: %v", err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, ListRoomsResponse{Rooms: summaries})
}
