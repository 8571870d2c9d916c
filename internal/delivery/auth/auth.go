package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reversi_server/internal/adapters"
	"reversi_server/internal/bootstrap"
	"reversi_server/internal/httpresponse"
	repo "reversi_server/internal/repository"
)

// AuthHandler is the credential collaborator: it mints opaque anonymous
// identities and keeps them in redis-backed sessions. Gameplay never
// depends on it; seats are bound to connection ids.
type AuthHandler struct {
	cfg      bootstrap.Config
	log      *zap.SugaredLogger
	sessions *repo.RedisSessionStorage
}

type LoginResponse struct {
	UserID string `json:"user_id"`
}

func NewAuthHandler(cfg bootstrap.Config, log *zap.SugaredLogger, redisAdapter *adapters.AdapterRedis) *AuthHandler {
	return &AuthHandler{
		cfg:      cfg,
		log:      log,
		sessions: repo.NewSessionRedisStorage(cfg, redisAdapter.GetClient()),
	}
}

// Login creates an anonymous user and sets the sessionID cookie.
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.log.Error("Login: only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	userID := uuid.New().String()
	sessionID := uuid.New().String()

	if err := a.sessions.StoreSession(r.Context(), sessionID, userID); err != nil {
		a.log.Errorf("Login: failed to store session: %v", err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "sessionID",
		Value:    sessionID,
		Expires:  time.Now().Add(time.Duration(a.cfg.SessionTTLHours) * time.Hour),
		Secure:   true,
		HttpOnly: true,
	})

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, LoginResponse{UserID: userID})
}

// Logout removes the session referenced by the sessionID cookie.
func (a *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		a.log.Error("Logout: only DELETE method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only DELETE method is allowed")
		return
	}

	sessionCookie, err := r.Cookie("sessionID")
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			a.log.Warn("Logout: no cookie provided")
			httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
				httpresponse.ErrorResponse{ErrorDescription: http.ErrNoCookie.Error()})
			return
		}
		a.log.Error("Logout: error retrieving cookie: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	if err := a.sessions.DeleteSession(r.Context(), sessionCookie.Value); err != nil {
		a.log.Errorf("Logout: failed to delete session %s: %v", sessionCookie.Value, err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}
