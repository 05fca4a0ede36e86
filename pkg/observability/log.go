package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level; failures are
// logged as warnings.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnParseStart(_ context.Context, source string) {
	h.logger.Debug("parse", "source", source)
}

func (h *LogHooks) OnParseComplete(_ context.Context, source string, rows int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("parse failed", "source", source, "err", err)
		return
	}
	h.logger.Debug("parsed", "source", source, "rows", rows, "duration", d)
}

func (h *LogHooks) OnNormalize(_ context.Context, kind string, kept, dropped int, d time.Duration) {
	h.logger.Debug("normalized", "kind", kind, "kept", kept, "dropped", dropped, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, kind string, formats []string) {
	h.logger.Debug("render", "kind", kind, "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, kind string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "kind", kind, "err", err)
		return
	}
	h.logger.Debug("rendered", "kind", kind, "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
