package capture

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/clip"
)

// Source abstracts the system pasteboard so the monitor can be tested
// without a display server.
type Source interface {
	ReadText() []byte
	ReadImage() []byte
}

// Monitor polls a Source and feeds new payloads to the ingestor. Images are
// checked before text because some applications publish both formats for a
// single copy.
type Monitor struct {
	source   Source
	ingestor *Ingestor
	logger   *zap.Logger
	interval time.Duration
	lastHash string
}

func NewMonitor(source Source, ingestor *Ingestor, logger *zap.Logger, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Monitor{
		source:   source,
		ingestor: ingestor,
		logger:   logger,
		interval: interval,
	}
}

// Run polls until the context is cancelled. Every failure is logged and
// absorbed; the loop never stops on a bad payload.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Info("clipboard monitor started",
		zap.Duration("interval", m.interval))

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("clipboard monitor stopped")
			return ctx.Err()
		case <-ticker.C:
			m.Tick(ctx)
		}
	}
}

// Tick performs a single pasteboard check.
func (m *Monitor) Tick(ctx context.Context) {
	if data := m.source.ReadImage(); len(data) > 0 {
		hash := clip.Fingerprint(data)
		if hash == m.lastHash {
			return
		}
		m.lastHash = hash

		result, err := m.ingestor.IngestBinary(ctx, data, nil)
		if err != nil {
			m.report(err, len(data))
			return
		}
		m.logResult(result, len(data))
		return
	}

	if data := m.source.ReadText(); len(data) > 0 {
		hash := clip.FingerprintText(string(data))
		if hash == m.lastHash {
			return
		}
		m.lastHash = hash

		result, err := m.ingestor.IngestText(ctx, string(data), nil)
		if err != nil {
			m.report(err, len(data))
			return
		}
		m.logResult(result, len(data))
	}
}

func (m *Monitor) report(err error, size int) {
	switch {
	case errors.Is(err, ErrTooLarge):
		m.logger.Warn("skipped oversized payload", zap.Int("size", size))
	case errors.Is(err, ErrEmpty):
	default:
		m.logger.Error("capture failed", zap.Error(err), zap.Int("size", size))
	}
}

func (m *Monitor) logResult(result *Result, size int) {
	if result.Duplicate {
		return
	}
	m.logger.Info("captured entry",
		zap.String("id", result.Entry.ID),
		zap.String("kind", string(result.Entry.Kind)),
		zap.Int("size", size))
}
