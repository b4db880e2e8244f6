package handlers

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter registers every route on a fresh gin engine.
func NewRouter(h *Handler, pages *template.Template, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))
	r.SetHTMLTemplate(pages)

	r.GET("/", h.HandleHome)
	r.GET("/healthz", h.HandleHealth)
	r.POST("/board", h.HandleCreate)
	r.GET("/board/:id", h.HandleBoard)
	r.GET("/board/:id/state", h.HandleState)
	r.POST("/board/:id/target/:index", h.HandleTarget)
	r.GET("/sse/:id", h.HandleSSE)
	r.GET("/ws/:id", h.HandleWS)
	r.NoRoute(h.HandleHome)
	return r
}
