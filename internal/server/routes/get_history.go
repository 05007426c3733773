package routes

import (
	"net/http"

	"github.com/buzzlab/relevance/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// GetHistoryHandler returns the recorded queries of one session, oldest
// first. Unknown sessions yield an empty list.
func GetHistoryHandler(c echo.Context) error {
	cc := c.(*middleware.AppContext)

	sessionID := c.Param("session_id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Session id is required"})
	}

	history := cc.App.Engine.GetConversationHistory(sessionID)
	return c.JSON(http.StatusOK, map[string]any{
		"session_id": sessionID,
		"queries":    history,
	})
}
