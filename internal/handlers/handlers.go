package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"mancalaweb/internal/backend"
	"mancalaweb/internal/board"
	"mancalaweb/internal/game"
	"mancalaweb/internal/storage"
	"mancalaweb/internal/templates"
	"mancalaweb/internal/ui"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const title = "Mancala"

var (
	boardSizes  = []int{2, 3, 4, 5, 6}
	stoneCounts = []int{1, 2, 3, 4, 5, 6}
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	Hub   *game.Hub
	Home  *ui.HomeView
	Store *storage.Store
	Log   logrus.FieldLogger
}

// NewHandler creates a new handler instance
func NewHandler(hub *game.Hub, home *ui.HomeView, store *storage.Store, log logrus.FieldLogger) *Handler {
	return &Handler{Hub: hub, Home: home, Store: store, Log: log}
}

// HandleHome serves the landing page. It is also the fallback for every
// unmapped path.
func (h *Handler) HandleHome(c *gin.Context) {
	h.renderHome(c, http.StatusOK, "")
}

func (h *Handler) renderHome(c *gin.Context, status int, msg string) {
	page := templates.HomePage{
		Title:       title,
		Error:       msg,
		BoardSizes:  boardSizes,
		StoneCounts: stoneCounts,
	}
	var err error
	if page.Stats, err = h.Store.FetchStats(c.Request.Context()); err != nil {
		h.Log.WithError(err).Warn("fetch stats")
	}
	if page.Recent, err = h.Store.RecentGames(c.Request.Context(), 5); err != nil {
		h.Log.WithError(err).Warn("fetch recent games")
	}
	c.Header("Cache-Control", "no-store")
	c.HTML(status, "home.html", page)
}

// HandleCreate creates a new game and redirects to it
func (h *Handler) HandleCreate(c *gin.Context) {
	var form ui.CreateForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderHome(c, http.StatusBadRequest, "Board size and stones per pit must be numbers.")
		return
	}

	target, b, err := h.Home.Submit(c.Request.Context(), form)
	if err != nil {
		h.renderHome(c, statusFor(err), "Could not create a game, please try again.")
		return
	}
	req := board.CreateRequest{BoardSize: form.BoardSize, StonesPerPit: form.StonesPerPit}
	if err := h.Store.RecordGame(c.Request.Context(), b, req); err != nil {
		h.Log.WithError(err).Warn("record game")
	}
	c.Redirect(http.StatusSeeOther, "/"+target)
}

// HandleBoard serves a board page
func (h *Handler) HandleBoard(c *gin.Context) {
	page := templates.BoardPage{Title: title}
	status := http.StatusOK
	s, err := h.Hub.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		status = statusFor(err)
		page.Error = errorText(err)
	}
	page.State = s.State()
	c.Header("Cache-Control", "no-store")
	c.HTML(status, "board.html", page)
}

// HandleState returns the board state as JSON
func (h *Handler) HandleState(c *gin.Context) {
	s, err := h.Hub.Ensure(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"ok": false, "error": errorText(err)})
		return
	}
	c.JSON(http.StatusOK, s.State())
}

// HandleTarget sows from a pit
func (h *Handler) HandleTarget(c *gin.Context) {
	id := c.Param("id")
	pit, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "bad pit index"})
		return
	}

	s, after, err := h.Hub.Target(c.Request.Context(), id, pit)
	if err == nil {
		if err := h.Store.RecordMove(c.Request.Context(), pit, after); err != nil {
			h.Log.WithError(err).Warn("record move")
		}
	}
	h.respondMove(c, s, err)
}

func (h *Handler) respondMove(c *gin.Context, s *game.Session, err error) {
	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML {
		c.Redirect(http.StatusSeeOther, "/board/"+s.ID)
		return
	}
	if err != nil {
		c.JSON(statusFor(err), gin.H{"ok": false, "error": errorText(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "state": s.State()})
}

// HandleHealth reports liveness
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "sessions": h.Hub.Len(), "time": time.Now().UnixMilli()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, backend.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, backend.ErrRejected), errors.Is(err, game.ErrUnknownPit):
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func errorText(err error) string {
	var se *backend.StatusError
	switch {
	case errors.Is(err, backend.ErrNotFound):
		return "Game not found."
	case errors.As(err, &se) && se.Message != "":
		return se.Message
	case errors.Is(err, game.ErrUnknownPit):
		return "No such pit."
	case errors.Is(err, board.ErrMalformedBoard):
		return "The game service sent an unreadable board."
	}
	return "The game service is unavailable."
}
