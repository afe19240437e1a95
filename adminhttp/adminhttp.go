// Package adminhttp exposes the thresholds of a gatelog core over HTTP, for
// service consoles and field diagnostics.
//
//	GET  /categories          list categories and thresholds
//	GET  /categories/:name    one category
//	PUT  /categories/:name    {"level":"debug"}
//	GET  /sinks               list sinks and thresholds
//	GET  /sinks/:name         one sink
//	PUT  /sinks/:name         {"level":"warn"}
//	PUT  /levels              {"level":"info"} for every category
//	GET  /config              current thresholds as levelconf YAML
//	PUT  /config              apply a levelconf YAML document
//
// Failures map to 409 for an uninitialized core, 404 for an unknown name and
// 400 for an invalid level or document.
package adminhttp

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"pkt.systems/gatelog"
	"pkt.systems/gatelog/levelconf"
)

const yamlContentType = "application/yaml; charset=utf-8"

// Threshold is the JSON view of a category or sink.
type Threshold struct {
	Name  string        `json:"name"`
	Level gatelog.Level `json:"level"`
}

// LevelRequest is the body of the PUT endpoints.
type LevelRequest struct {
	Level string `json:"level" binding:"required"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error  string `json:"error"`
	Result string `json:"result"`
}

// Option customizes New.
type Option func(*handler)

// WithAudit logs every accepted change at LevelInfo, and every request at
// LevelDebug, against category.
func WithAudit(category *gatelog.Category) Option {
	return func(h *handler) {
		h.audit = category
	}
}

// WithMiddleware installs additional gin middleware before the routes.
func WithMiddleware(middleware ...gin.HandlerFunc) Option {
	return func(h *handler) {
		h.middleware = append(h.middleware, middleware...)
	}
}

type handler struct {
	core       *gatelog.Core
	audit      *gatelog.Category
	middleware []gin.HandlerFunc
}

var errUnknownName = errors.New("unknown")

// New returns the admin handler for core.
func New(core *gatelog.Core, opts ...Option) http.Handler {
	h := &handler{core: core}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	if h.audit != nil {
		engine.Use(h.requestLog)
	}
	engine.Use(h.middleware...)

	engine.GET("/categories", h.listCategories)
	engine.GET("/categories/:name", h.getCategory)
	engine.PUT("/categories/:name", h.putCategory)
	engine.GET("/sinks", h.listSinks)
	engine.GET("/sinks/:name", h.getSink)
	engine.PUT("/sinks/:name", h.putSink)
	engine.PUT("/levels", h.putLevels)
	engine.GET("/config", h.getConfig)
	engine.PUT("/config", h.putConfig)
	return engine
}

func (h *handler) requestLog(c *gin.Context) {
	c.Next()
	_ = h.core.Debug(h.audit, "admin %s %s -> %d", c.Request.Method, c.Request.URL.Path, c.Writer.Status())
}

func (h *handler) auditf(format string, args ...any) {
	if h.audit != nil {
		_ = h.core.Logv(h.audit, gatelog.LevelInfo, format, args)
	}
}

func (h *handler) listCategories(c *gin.Context) {
	if !h.core.Initialized() {
		fail(c, gatelog.ErrNotInitialized)
		return
	}
	categories := h.core.Categories()
	out := make([]Threshold, 0, len(categories))
	for _, category := range categories {
		out = append(out, Threshold{Name: category.Name(), Level: category.Level()})
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) getCategory(c *gin.Context) {
	if !h.core.Initialized() {
		fail(c, gatelog.ErrNotInitialized)
		return
	}
	category, ok := h.core.Category(c.Param("name"))
	if !ok {
		fail(c, unknown("category", c.Param("name")))
		return
	}
	c.JSON(http.StatusOK, Threshold{Name: category.Name(), Level: category.Level()})
}

func (h *handler) putCategory(c *gin.Context) {
	name := c.Param("name")
	level, ok := bindLevel(c)
	if !ok {
		return
	}
	if h.core.Initialized() {
		if _, found := h.core.Category(name); !found {
			fail(c, unknown("category", name))
			return
		}
	}
	if err := h.core.SetCategoryLevel(name, level); err != nil {
		fail(c, err)
		return
	}
	h.auditf("category %s threshold set to %s", name, level)
	c.JSON(http.StatusOK, Threshold{Name: name, Level: level})
}

func (h *handler) listSinks(c *gin.Context) {
	if !h.core.Initialized() {
		fail(c, gatelog.ErrNotInitialized)
		return
	}
	sinks := h.core.Sinks()
	out := make([]Threshold, 0, len(sinks))
	for _, sink := range sinks {
		out = append(out, Threshold{Name: sink.Name(), Level: sink.Level()})
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) getSink(c *gin.Context) {
	if !h.core.Initialized() {
		fail(c, gatelog.ErrNotInitialized)
		return
	}
	sink, ok := h.core.Sink(c.Param("name"))
	if !ok {
		fail(c, unknown("sink", c.Param("name")))
		return
	}
	c.JSON(http.StatusOK, Threshold{Name: sink.Name(), Level: sink.Level()})
}

func (h *handler) putSink(c *gin.Context) {
	name := c.Param("name")
	level, ok := bindLevel(c)
	if !ok {
		return
	}
	if h.core.Initialized() {
		if _, found := h.core.Sink(name); !found {
			fail(c, unknown("sink", name))
			return
		}
	}
	if err := h.core.SetSinkLevel(name, level); err != nil {
		fail(c, err)
		return
	}
	h.auditf("sink %s threshold set to %s", name, level)
	c.JSON(http.StatusOK, Threshold{Name: name, Level: level})
}

func (h *handler) putLevels(c *gin.Context) {
	level, ok := bindLevel(c)
	if !ok {
		return
	}
	if err := h.core.SetLevels(level); err != nil {
		fail(c, err)
		return
	}
	h.auditf("all category thresholds set to %s", level)
	h.listCategories(c)
}

func (h *handler) getConfig(c *gin.Context) {
	if !h.core.Initialized() {
		fail(c, gatelog.ErrNotInitialized)
		return
	}
	data, err := levelconf.Snapshot(h.core).Marshal()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Result: "INTERNAL"})
		return
	}
	c.Data(http.StatusOK, yamlContentType, data)
}

func (h *handler) putConfig(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		fail(c, err)
		return
	}
	doc, err := levelconf.Parse(body)
	if err != nil {
		fail(c, err)
		return
	}
	if err := doc.Apply(h.core); err != nil {
		fail(c, err)
		return
	}
	h.auditf("level configuration applied (%d categories, %d sinks)", len(doc.Categories), len(doc.Sinks))
	h.getConfig(c)
}

func bindLevel(c *gin.Context) (gatelog.Level, bool) {
	var req LevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, err)
		return gatelog.LevelOff, false
	}
	level, ok := gatelog.ParseLevel(req.Level)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error:  "unknown level " + req.Level,
			Result: gatelog.ResultInvalidParameter.String(),
		})
		return gatelog.LevelOff, false
	}
	return level, true
}

func fail(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusOf(err), ErrorResponse{
		Error:  err.Error(),
		Result: gatelog.ResultOf(err).String(),
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errUnknownName):
		return http.StatusNotFound
	case errors.Is(err, gatelog.ErrNotInitialized), errors.Is(err, gatelog.ErrAlreadyInitialized):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func unknown(kind, name string) error {
	return fmt.Errorf("%w %s %q", errUnknownName, kind, name)
}
