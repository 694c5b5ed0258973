package controllers

import (
	"Perkdraft/services/session"
	"Perkdraft/utils/apperrors"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type createSessionRequest struct {
	HostName         string            `json:"host_name"`
	RewardsPerPlayer int               `json:"rewards_per_player"`
	Options          map[string]string `json:"options"`
}

type joinSessionRequest struct {
	SessionCode string `json:"session_code" binding:"required"`
	PlayerName  string `json:"player_name"`
	PlayerID    string `json:"player_id"`
}

type playerRequest struct {
	SessionCode string `json:"session_code" binding:"required"`
	PlayerID    string `json:"player_id"`
}

type updateNameRequest struct {
	SessionCode string `json:"session_code" binding:"required"`
	PlayerID    string `json:"player_id"`
	Name        string `json:"name"`
}

type lockSelectionRequest struct {
	SessionCode string `json:"session_code" binding:"required"`
	PlayerID    string `json:"player_id"`
	session.SelectionInput
}

type updateCandidatesRequest struct {
	SessionCode string            `json:"session_code" binding:"required"`
	PlayerID    string            `json:"player_id"`
	Candidates  []json.RawMessage `json:"candidates"`
}

type kickRequest struct {
	SessionCode    string `json:"session_code" binding:"required"`
	PlayerID       string `json:"player_id"`
	TargetPlayerID string `json:"target_player_id" binding:"required"`
}

func respondError(c *gin.Context, err error) {
	c.Error(err)
}

func cookieKey(code string) string {
	return "player:" + strings.ToUpper(strings.TrimSpace(code))
}

// rememberPlayer stores the caller's player id for a session in the cookie
func rememberPlayer(c *gin.Context, code, playerID string) {
	cookie := sessions.Default(c)
	cookie.Set(cookieKey(code), playerID)
	if err := cookie.Save(); err != nil {
		log.Printf("[HTTP] Error saving cookie for session %s: %v", code, err)
	}
}

// callerID prefers the id sent in the body and falls back to the cookie
func callerID(c *gin.Context, code, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	if id, ok := sessions.Default(c).Get(cookieKey(code)).(string); ok {
		return id
	}
	return ""
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, apperrors.Invalid("invalid request body: %v", err))
		return false
	}
	return true
}

// @Summary Creates a new session
// @Description Opens a session in the waiting phase with the caller as host
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body object{host_name=string,rewards_per_player=integer,options=object} true "Session settings"
// @Success 201 {object} session.CreateResult
// @Failure 400 {object} object{error=string,kind=string}
// @Failure 500 {object} object{error=string,kind=string}
// @Router /api/sessions [post]
func CreateSession(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createSessionRequest
		if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
			return
		}
		result, err := manager.CreateSession(c.Request.Context(), req.HostName, req.RewardsPerPlayer, req.Options)
		if err != nil {
			respondError(c, err)
			return
		}
		rememberPlayer(c, result.SessionCode, result.HostPlayerID)
		c.JSON(http.StatusCreated, result)
	}
}

// @Summary Joins a session
// @Description Adds a player, or rejoins when player_id is already known to the session
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body object{session_code=string,player_name=string,player_id=string} true "Join data"
// @Success 200 {object} session.JoinResult
// @Failure 404 {object} object{error=string,kind=string}
// @Failure 409 {object} object{error=string,kind=string}
// @Router /api/sessions/join [post]
func JoinSession(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req joinSessionRequest
		if !bindJSON(c, &req) {
			return
		}
		result, err := manager.JoinSession(c.Request.Context(), req.SessionCode, req.PlayerName, callerID(c, req.SessionCode, req.PlayerID))
		if err != nil {
			respondError(c, err)
			return
		}
		rememberPlayer(c, req.SessionCode, result.PlayerID)
		c.JSON(http.StatusOK, result)
	}
}

// @Summary Renames a player
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body object{session_code=string,player_id=string,name=string} true "New name"
// @Success 200 {object} redis.Session
// @Failure 404 {object} object{error=string,kind=string}
// @Router /api/sessions/update-name [post]
func UpdatePlayerName(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateNameRequest
		if !bindJSON(c, &req) {
			return
		}
		s, err := manager.UpdatePlayerName(c.Request.Context(), req.SessionCode, callerID(c, req.SessionCode, req.PlayerID), req.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// @Summary Rolls rewards for every player
// @Description Host only. Moves the session to the selecting phase
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body object{session_code=string,player_id=string} true "Caller"
// @Success 200 {object} redis.Session
// @Failure 403 {object} object{error=string,kind=string}
// @Failure 409 {object} object{error=string,kind=string}
// @Failure 422 {object} object{error=string,kind=string}
// @Router /api/sessions/roll-rewards [post]
func RollRewards(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req playerRequest
		if !bindJSON(c, &req) {
			return
		}
		s, err := manager.RollRewards(c.Request.Context(), req.SessionCode, callerID(c, req.SessionCode, req.PlayerID))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// @Summary Locks a player's selection
// @Description One-shot. Completes the session once every active player has locked
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body object{session_code=string,player_id=string,selection_url=string,selection_data=object,selected_index=integer} true "Selection"
// @Success 200 {object} redis.Session
// @Failure 404 {object} object{error=string,kind=string}
// @Failure 409 {object} object{error=string,kind=string}
// @Router /api/sessions/lock-selection [post]
func LockSelection(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req lockSelectionRequest
		if !bindJSON(c, &req) {
			return
		}
		s, err := manager.LockSelection(c.Request.Context(), req.SessionCode, callerID(c, req.SessionCode, req.PlayerID), req.SelectionInput)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// @Summary Stores a player's candidate payloads
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body object{session_code=string,player_id=string,candidates=[]object} true "Candidates"
// @Success 200 {object} redis.Session
// @Failure 400 {object} object{error=string,kind=string}
// @Failure 409 {object} object{error=string,kind=string}
// @Router /api/sessions/update-candidates [post]
func UpdateCandidates(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCandidatesRequest
		if !bindJSON(c, &req) {
			return
		}
		s, err := manager.UpdateCandidates(c.Request.Context(), req.SessionCode, callerID(c, req.SessionCode, req.PlayerID), req.Candidates)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// @Summary Forces the session to complete
// @Description Host only. Locks every unlocked player on their first candidate
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body object{session_code=string,player_id=string} true "Caller"
// @Success 200 {object} redis.Session
// @Failure 403 {object} object{error=string,kind=string}
// @Failure 409 {object} object{error=string,kind=string}
// @Router /api/sessions/force-advance [post]
func ForceAdvance(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req playerRequest
		if !bindJSON(c, &req) {
			return
		}
		s, err := manager.ForceAdvance(c.Request.Context(), req.SessionCode, callerID(c, req.SessionCode, req.PlayerID))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// @Summary Kicks a player
// @Description Host only. The player keeps their slot but stops counting as active
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body object{session_code=string,player_id=string,target_player_id=string} true "Kick"
// @Success 200 {object} redis.Session
// @Failure 403 {object} object{error=string,kind=string}
// @Failure 409 {object} object{error=string,kind=string}
// @Router /api/sessions/kick [post]
func KickPlayer(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req kickRequest
		if !bindJSON(c, &req) {
			return
		}
		s, err := manager.KickPlayer(c.Request.Context(), req.SessionCode, callerID(c, req.SessionCode, req.PlayerID), req.TargetPlayerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// @Summary Gives the state of a session
// @Tags sessions
// @Produce json
// @Param code path string true "Session code"
// @Success 200 {object} redis.Session
// @Failure 404 {object} object{error=string,kind=string}
// @Router /api/sessions/{code} [get]
func GetSession(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := manager.GetSession(c.Request.Context(), c.Param("code"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// @Summary Resolves a retrieval code
// @Description Returns the bundle and reward display data behind a pack code
// @Tags packs
// @Produce json
// @Param code path string true "Retrieval code"
// @Success 200 {object} redis.RetrievalEntry
// @Failure 404 {object} object{error=string,kind=string}
// @Router /api/packs/{code} [get]
func GetPack(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		entry, err := manager.GetRetrievalCode(c.Request.Context(), c.Param("code"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, entry)
	}
}
