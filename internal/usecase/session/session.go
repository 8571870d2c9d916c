package session

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"reversi_server/internal/bootstrap"
	"reversi_server/internal/domain/reversi"
	"reversi_server/internal/domain/room"
	errs "reversi_server/internal/errors"
)

// RoomStore is the persistence collaborator. Mutations run inside the
// store's conditional-write cycle so concurrent calls against the same
// room serialize instead of clobbering each other.
type RoomStore interface {
	Get(ctx context.Context, roomID string) (*room.Room, error)
	Mutate(ctx context.Context, roomID string, fn func(cur *room.Room) (*room.Room, error)) (*room.Room, error)
	Delete(ctx context.Context, roomID string) error
	SetParticipantRoom(ctx context.Context, participantID, roomID string) error
	RoomIDByParticipant(ctx context.Context, participantID string) (string, error)
	DeleteParticipantRoom(ctx context.Context, participantID string) error
}

// Notifier fans controller events out to connections. Implemented by the
// gateway hub.
type Notifier interface {
	Subscribe(roomID, participantID string)
	Unsubscribe(roomID, participantID string)
	ToParticipant(participantID string, event room.Event)
	ToRoom(roomID string, event room.Event)
}

// SessionUseCase owns the per-room state machine. It is the only writer
// of room state.
type SessionUseCase struct {
	cfg      bootstrap.Config
	log      *zap.SugaredLogger
	store    RoomStore
	notifier Notifier
}

func NewSessionUseCase(cfg bootstrap.Config, log *zap.SugaredLogger, store RoomStore, notifier Notifier) *SessionUseCase {
	return &SessionUseCase{
		cfg:      cfg,
		log:      log,
		store:    store,
		notifier: notifier,
	}
}

// Join seats a participant in the room, creating it on first contact.
// Store failures are retried a bounded number of times; seat rejections
// are not. The joiner alone receives its color, the board and the turn;
// the whole room hears gameStart once both seats are taken.
func (s *SessionUseCase) Join(ctx context.Context, roomID, mode, participantID string) {
	if mode != room.ModeAI {
		mode = room.ModeHuman
	}

	var color reversi.Player
	var joined *room.Room
	var err error

	for attempt := 0; attempt < s.cfg.JoinAttempts; attempt++ {
		joined, err = s.store.Mutate(ctx, roomID, func(cur *room.Room) (*room.Room, error) {
			color = reversi.None
			if cur == nil {
				cur = room.New(mode)
			}
			if cur.Mode != mode {
				return nil, errs.ErrIncompatibleMode
			}
			switch {
			case cur.Players.Black == "":
				cur.Players.Black = participantID
				color = reversi.Black
			case cur.Players.White == "":
				cur.Players.White = participantID
				color = reversi.White
			default:
				return nil, errs.ErrRoomFull
			}
			if cur.Full() && cur.Status == room.StatusAwaitingPlayers {
				cur.Status = room.StatusInProgress
			}
			return cur, nil
		})
		if err == nil {
			break
		}
		if errors.Is(err, errs.ErrRoomFull) || errors.Is(err, errs.ErrIncompatibleMode) {
			s.log.Infof("join rejected for %s in room %s: %v", participantID, roomID, err)
			s.notifier.ToParticipant(participantID, room.RoomFullEvent())
			return
		}
		s.log.Warnf("join room %s attempt %d/%d: %v", roomID, attempt+1, s.cfg.JoinAttempts, err)
		time.Sleep(time.Duration(s.cfg.JoinRetryDelayMs) * time.Millisecond)
	}
	if err != nil {
		s.notifier.ToParticipant(participantID, room.ErrorEvent("failed to join room, please retry"))
		return
	}

	if err := s.store.SetParticipantRoom(ctx, participantID, roomID); err != nil {
		s.log.Warnf("participant index for %s: %v", participantID, err)
	}

	s.notifier.Subscribe(roomID, participantID)
	s.notifier.ToParticipant(participantID, room.PlayerColorEvent(color))
	s.notifier.ToParticipant(participantID, room.UpdateBoardEvent(joined.Board))
	s.notifier.ToParticipant(participantID, room.SwitchTurnEvent(joined.CurrentPlayer))

	if joined.Full() {
		s.notifier.ToRoom(roomID, room.GameStartEvent())
	}
	s.notifier.ToRoom(roomID, room.ScoreEvent(joined.Board))

	if joined.Status == room.StatusInProgress && joined.BotToMove() {
		s.scheduleBotTurn(roomID)
	}
}

// MakeMove applies a move for the participant holding the current seat.
// Illegal or out-of-turn moves change nothing and stay silent; a store
// failure is reported to the requester and the move is not applied.
func (s *SessionUseCase) MakeMove(ctx context.Context, roomID, participantID string, index int) {
	var skipped reversi.Player
	var outcome reversi.Outcome

	rm, err := s.store.Mutate(ctx, roomID, func(cur *room.Room) (*room.Room, error) {
		skipped, outcome = reversi.None, reversi.OutcomeNone
		if cur == nil {
			return nil, errs.ErrRoomNotFound
		}
		if cur.Status == room.StatusFinished {
			return nil, errs.ErrIllegalMove
		}
		if cur.SeatOf(cur.CurrentPlayer) != participantID {
			return nil, errs.ErrNotYourTurn
		}
		mover := cur.CurrentPlayer
		if !reversi.ApplyMove(&cur.Board, mover, index) {
			return nil, errs.ErrIllegalMove
		}
		skipped, outcome = advanceAfterMove(cur, mover)
		return cur, nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrIllegalMove) ||
			errors.Is(err, errs.ErrNotYourTurn) ||
			errors.Is(err, errs.ErrRoomNotFound) {
			s.log.Debugf("dropped move %d from %s in room %s: %v", index, participantID, roomID, err)
			return
		}
		s.log.Errorf("move in room %s: %v", roomID, err)
		s.notifier.ToParticipant(participantID, room.ErrorEvent("move could not be saved"))
		return
	}

	s.broadcastMove(roomID, rm, skipped, outcome)

	if rm.Status == room.StatusInProgress && rm.BotToMove() {
		s.scheduleBotTurn(roomID)
	}
}

// advanceAfterMove evaluates the position and hands the turn over.
// Terminal detection runs before the next player's moves are computed:
// the both-sides-stuck case must finish the game, not loop skips.
func advanceAfterMove(cur *room.Room, mover reversi.Player) (skipped reversi.Player, outcome reversi.Outcome) {
	outcome = reversi.Evaluate(cur.Board)
	if outcome != reversi.OutcomeNone {
		cur.Status = room.StatusFinished
		cur.Winner = string(outcome)
		return reversi.None, outcome
	}

	cur.CurrentPlayer = mover.Opponent()
	if len(reversi.LegalMoves(cur.Board, cur.CurrentPlayer)) == 0 {
		skipped = cur.CurrentPlayer
		cur.CurrentPlayer = mover
		return skipped, reversi.OutcomeNone
	}
	return reversi.None, reversi.OutcomeNone
}

func (s *SessionUseCase) broadcastMove(roomID string, rm *room.Room, skipped reversi.Player, outcome reversi.Outcome) {
	s.notifier.ToRoom(roomID, room.UpdateBoardEvent(rm.Board))
	s.notifier.ToRoom(roomID, room.ScoreEvent(rm.Board))

	if outcome != reversi.OutcomeNone {
		s.notifier.ToRoom(roomID, room.GameOverEvent(outcome))
		return
	}
	if skipped != reversi.None {
		s.notifier.ToRoom(roomID, room.SkipTurnEvent(skipped))
	}
	s.notifier.ToRoom(roomID, room.SwitchTurnEvent(rm.CurrentPlayer))
}

func (s *SessionUseCase) scheduleBotTurn(roomID string) {
	go s.runBotTurns(roomID)
}

// runBotTurns plays bot moves until the turn leaves the bot seat. A loop
// rather than recursion: a skip can hand the turn straight back to the
// bot, and the terminal-state check bounds the chain. Every iteration
// waits the pacing delay and then re-validates the live room state,
// since the room may have been deleted or the turn taken meanwhile.
func (s *SessionUseCase) runBotTurns(roomID string) {
	ctx := context.Background()
	delay := time.Duration(s.cfg.BotDelayMs) * time.Millisecond

	for {
		time.Sleep(delay)

		var skipped reversi.Player
		var outcome reversi.Outcome
		stale := false

		rm, err := s.store.Mutate(ctx, roomID, func(cur *room.Room) (*room.Room, error) {
			skipped, outcome, stale = reversi.None, reversi.OutcomeNone, false
			if cur == nil || cur.Status != room.StatusInProgress || !cur.BotToMove() {
				stale = true
				return nil, nil
			}
			mover := cur.CurrentPlayer

			idx, ok := reversi.ChooseMove(cur.Board, mover)
			if !ok {
				// The turn is only handed to the bot when it has a move,
				// so this is a stale snapshot more than a game state; pass
				// the turn back and let terminal detection settle it.
				cur.CurrentPlayer = mover.Opponent()
				skipped = mover
				if len(reversi.LegalMoves(cur.Board, cur.CurrentPlayer)) == 0 {
					outcome = reversi.Evaluate(cur.Board)
					cur.Status = room.StatusFinished
					cur.Winner = string(outcome)
				}
				return cur, nil
			}

			reversi.ApplyMove(&cur.Board, mover, idx)
			skipped, outcome = advanceAfterMove(cur, mover)
			return cur, nil
		})
		if err != nil {
			s.log.Errorf("bot turn in room %s: %v", roomID, err)
			return
		}
		if stale || rm == nil {
			return
		}

		s.broadcastMove(roomID, rm, skipped, outcome)

		if rm.Status != room.StatusInProgress || !rm.BotToMove() {
			return
		}
	}
}

// Disconnect tears the participant's room down: the remaining player is
// notified and the persisted state evicted immediately. Deleting an
// already-gone room is a no-op, so racing disconnects are harmless.
func (s *SessionUseCase) Disconnect(ctx context.Context, participantID string) {
	roomID, err := s.store.RoomIDByParticipant(ctx, participantID)
	if err != nil {
		s.log.Errorf("disconnect lookup for %s: %v", participantID, err)
		return
	}
	if roomID == "" {
		return
	}
	if err := s.store.DeleteParticipantRoom(ctx, participantID); err != nil {
		s.log.Warnf("participant index cleanup for %s: %v", participantID, err)
	}

	rm, err := s.store.Get(ctx, roomID)
	if err != nil {
		s.log.Errorf("disconnect load of room %s: %v", roomID, err)
		return
	}
	if rm == nil || !rm.HasParticipant(participantID) {
		return
	}

	s.notifier.ToRoom(roomID, room.PlayerDisconnectedEvent())
	if err := s.store.Delete(ctx, roomID); err != nil {
		s.log.Errorf("deleting room %s: %v", roomID, err)
	}
	s.notifier.Unsubscribe(roomID, participantID)
}

// Chat relays a message to the room when the claimed seat really belongs
// to the sender. Anything else is dropped without a reply. Messages are
// never persisted.
func (s *SessionUseCase) Chat(ctx context.Context, roomID, participantID string, player reversi.Player, text string) {
	if text == "" || participantID == "" {
		return
	}
	rm, err := s.store.Get(ctx, roomID)
	if err != nil || rm == nil {
		return
	}
	if rm.SeatOf(player) != participantID {
		s.log.Debugf("dropped chat from %s claiming seat %s in room %s: %v",
			participantID, player, roomID, errs.ErrUnauthorizedSender)
		return
	}
	s.notifier.ToRoom(roomID, room.ChatMessageEvent(player, text))
}

// LegalMoves answers the requesting participant with the ascending list
// of legal indices for the given side.
func (s *SessionUseCase) LegalMoves(ctx context.Context, roomID, participantID string, player reversi.Player) {
	rm, err := s.store.Get(ctx, roomID)
	if err != nil {
		s.notifier.ToParticipant(participantID, room.ErrorEvent("room store unavailable"))
		return
	}
	if rm == nil {
		s.notifier.ToParticipant(participantID, room.ValidMovesEvent([]int{}))
		return
	}
	s.notifier.ToParticipant(participantID, room.ValidMovesEvent(reversi.LegalMoves(rm.Board, player)))
}
