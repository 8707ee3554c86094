package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/daipendency/daipendency/pkg/observability"
)

// logHooks reports loading, cache and registry events as debug logs.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.LoadHooks  = logHooks{}
	_ observability.CacheHooks = logHooks{}
	_ observability.HTTPHooks  = logHooks{}
)

func registerHooks(logger *log.Logger) {
	h := logHooks{logger: logger}
	observability.SetLoadHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnLoadStart(_ context.Context, path, language string) {
	if language == "" {
		language = "auto"
	}
	h.logger.Debug("load started", "path", path, "language", language)
}

func (h logHooks) OnLoadComplete(_ context.Context, path, name string, namespaces int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "path", path, "elapsed", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("load finished", "library", name, "namespaces", namespaces, "elapsed", d.Round(time.Millisecond))
}

func (h logHooks) OnDependencyResolved(_ context.Context, dependency, path string, err error) {
	if err != nil {
		return
	}
	h.logger.Debug("dependency located", "dependency", dependency, "path", path)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (logHooks) OnCacheSet(context.Context, string, int) {}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "elapsed", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("http request failed", "method", method, "host", host, "path", path, "err", err)
}
