package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/epeers/warehouse/internal/models"
	log "github.com/sirupsen/logrus"
)

type warningContextKey struct{}

// WarningCollector gathers the model warnings raised while serving one
// request. A warning repeated with the same code and message is kept once,
// so concurrent breakeven solves reporting the same condition do not flood
// the response.
type WarningCollector struct {
	mu       sync.Mutex
	warnings []models.Warning
	seen     map[models.Warning]struct{}
}

// NewWarningContext returns a context carrying a fresh WarningCollector and
// the collector itself, for the caller to read once the services return.
func NewWarningContext(ctx context.Context) (context.Context, *WarningCollector) {
	wc := &WarningCollector{seen: make(map[models.Warning]struct{})}
	return context.WithValue(ctx, warningContextKey{}, wc), wc
}

// AddWarning records w on the collector in ctx. Without a collector it is a
// no-op.
func AddWarning(ctx context.Context, w models.Warning) {
	wc, ok := ctx.Value(warningContextKey{}).(*WarningCollector)
	if !ok || wc == nil {
		return
	}
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if _, dup := wc.seen[w]; dup {
		return
	}
	wc.seen[w] = struct{}{}
	wc.warnings = append(wc.warnings, w)
}

// Warnf formats and records a warning with the given code
func Warnf(ctx context.Context, code models.WarningCode, format string, args ...interface{}) {
	w := models.Warning{Code: code, Message: fmt.Sprintf(format, args...)}
	log.WithField("code", code).Debug(w.Message)
	AddWarning(ctx, w)
}

// Has reports whether a warning with code was recorded
func (wc *WarningCollector) Has(code models.WarningCode) bool {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	for _, w := range wc.warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// GetWarnings returns the recorded warnings in order, nil when there are none
func (wc *WarningCollector) GetWarnings() []models.Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if len(wc.warnings) == 0 {
		return nil
	}
	return append([]models.Warning(nil), wc.warnings...)
}
