package room

import (
	"fmt"

	"reversi_server/internal/domain/reversi"
)

// Event is the wire envelope fanned out by the gateway. Types keep the
// names the web client listens on.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type ScorePayload struct {
	Black int `json:"black"`
	White int `json:"white"`
}

type ChatPayload struct {
	Player  reversi.Player `json:"player"`
	Message string         `json:"message"`
}

func PlayerColorEvent(p reversi.Player) Event {
	return Event{Type: "playerColor", Payload: p}
}

func UpdateBoardEvent(b reversi.Board) Event {
	return Event{Type: "updateBoard", Payload: b}
}

func SwitchTurnEvent(p reversi.Player) Event {
	return Event{Type: "switchTurn", Payload: p}
}

func GameStartEvent() Event {
	return Event{Type: "gameStart"}
}

func ScoreEvent(b reversi.Board) Event {
	black, white := reversi.Score(b)
	return Event{Type: "score", Payload: ScorePayload{Black: black, White: white}}
}

func GameOverEvent(o reversi.Outcome) Event {
	return Event{Type: "gameOver", Payload: string(o)}
}

func SkipTurnEvent(skipped reversi.Player) Event {
	side := "Black"
	if skipped == reversi.White {
		side = "White"
	}
	return Event{
		Type:    "skipTurn",
		Payload: fmt.Sprintf("%s has no valid moves. Skipping turn.", side),
	}
}

func ValidMovesEvent(moves []int) Event {
	return Event{Type: "validMoves", Payload: moves}
}

func ChatMessageEvent(p reversi.Player, message string) Event {
	return Event{Type: "chatMessage", Payload: ChatPayload{Player: p, Message: message}}
}

func RoomFullEvent() Event {
	return Event{Type: "roomFull"}
}

func PlayerDisconnectedEvent() Event {
	return Event{Type: "playerDisconnected"}
}

func ErrorEvent(description string) Event {
	return Event{Type: "error", Payload: description}
}
