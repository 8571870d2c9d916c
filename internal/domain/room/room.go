package room

import (
	"reversi_server/internal/domain/reversi"
)

// Game modes requested on join.
const (
	ModeHuman = "human"
	ModeAI    = "ai"
)

// BotSeat is the sentinel participant id occupying the white seat of an
// AI-mode room.
const BotSeat = "ai"

// Room lifecycle statuses.
const (
	StatusAwaitingPlayers = "awaiting_players"
	StatusInProgress      = "in_progress"
	StatusFinished        = "finished"
)

// Seats maps colors to participant ids. An empty string means the seat
// is open.
type Seats struct {
	Black string `json:"black"`
	White string `json:"white"`
}

// Room is the full state of one match, serialized as the store value
// under its room id. The session controller is its sole writer.
type Room struct {
	Board         reversi.Board  `json:"board"`
	CurrentPlayer reversi.Player `json:"currentPlayer"`
	Players       Seats          `json:"players"`
	Mode          string         `json:"mode"`
	Status        string         `json:"status"`
	Winner        string         `json:"winner,omitempty"`
	// Version counts persisted mutations; the store adapter bumps it on
	// every conditional write.
	Version int64 `json:"version"`
}

// New returns a fresh room for the requested mode. Black always moves
// first. AI mode pre-fills the white seat with the bot sentinel.
func New(mode string) *Room {
	r := &Room{
		Board:         reversi.New(),
		CurrentPlayer: reversi.Black,
		Mode:          mode,
		Status:        StatusAwaitingPlayers,
	}
	if mode == ModeAI {
		r.Players.White = BotSeat
	}
	return r
}

// SeatOf returns the participant id holding the given color.
func (r *Room) SeatOf(p reversi.Player) string {
	switch p {
	case reversi.Black:
		return r.Players.Black
	case reversi.White:
		return r.Players.White
	}
	return ""
}

// HasParticipant reports whether id occupies either seat.
func (r *Room) HasParticipant(id string) bool {
	return id != "" && (r.Players.Black == id || r.Players.White == id)
}

// Full reports whether both seats are taken.
func (r *Room) Full() bool {
	return r.Players.Black != "" && r.Players.White != ""
}

// BotToMove reports whether the side to move is the bot seat.
func (r *Room) BotToMove() bool {
	return r.Mode == ModeAI && r.SeatOf(r.CurrentPlayer) == BotSeat
}

// Summary is the lobby view of an active room.
type Summary struct {
	RoomID       string `json:"roomId"`
	Players      Seats  `json:"players"`
	TotalPlayers int    `json:"totalPlayers"`
}
