package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // attribute key used for tag filtering

// filteringHandler wraps a base slog.Handler and drops records by tag,
// package or file before they reach it.
type filteringHandler struct {
	base slog.Handler
	f    *filters
	tag  string // tag bound through WithAttrs, if any
}

func newFilteringHandler(base slog.Handler, f *filters) *filteringHandler {
	return &filteringHandler{base: base, f: f}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// allowed applies the enabled/disabled pair for one dimension.
// Disabled wins; an enabled set that does not contain key rejects it.
func allowed(key string, enabled, disabled map[string]struct{}) bool {
	if _, found := disabled[key]; found {
		return false
	}
	if enabled == nil {
		return true
	}
	_, found := enabled[key]
	return found
}

func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.f == nil {
		return h.base.Handle(ctx, r)
	}

	if r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			file := strings.ToLower(filepath.Base(frame.File))
			pkg := strings.ToLower(filepath.Base(filepath.Dir(frame.File)))
			if !allowed(pkg, h.f.enabledPackages, h.f.disabledPackages) {
				return nil
			}
			if !allowed(file, h.f.enabledFiles, h.f.disabledFiles) {
				return nil
			}
		}
	}

	tag := h.tag
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			return false
		}
		return true
	})

	if tag == "" {
		// Untagged messages are dropped only when specific tags are requested.
		if h.f.enabledTags != nil {
			return nil
		}
	} else if !allowed(tag, h.f.enabledTags, h.f.disabledTags) {
		return nil
	}

	return h.base.Handle(ctx, r)
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	tag := h.tag
	for _, a := range attrs {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
		}
	}
	return &filteringHandler{base: h.base.WithAttrs(attrs), f: h.f, tag: tag}
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return &filteringHandler{base: h.base.WithGroup(name), f: h.f, tag: h.tag}
}
