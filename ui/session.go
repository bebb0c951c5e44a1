package ui

import (
	"net/http"

	"fitlab/domain/core"
	"fitlab/internal/playground"

	"github.com/gin-gonic/gin"
)

// SessionCookie carries the playground session ID
const SessionCookie = "fitlab_session"

// controller resolves the caller's session, creating one when the cookie is
// missing or malformed, and refreshes the cookie on every call.
func (s *Server) controller(c *gin.Context) (*playground.Controller, error) {
	var id core.SessionID
	if raw, err := c.Cookie(SessionCookie); err == nil {
		if parsed, err := core.ParseSessionID(raw); err == nil {
			id = parsed
		} else {
			s.logger.Debug("[Session] Ignoring malformed session cookie: %v", err)
		}
	}

	id, ctrl, err := s.registry.GetOrCreate(id)
	if err != nil {
		return nil, err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id.String(), 0, "/", "", false, true)
	return ctrl, nil
}
