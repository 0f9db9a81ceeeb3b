package download

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const progressLogInterval = time.Second

// fraction is received/total clamped to [0, 1]. Callers only use it when
// total is known.
func fraction(received, total int64) float64 {
	if total <= 0 {
		return 0
	}

	return min(float64(received)/float64(total), 1)
}

// progressLog reports transfer state through a logger, rate-limited to one
// line per progressLogInterval.
type progressLog struct {
	logger  *slog.Logger
	total   int64
	started time.Time
	last    time.Time
}

func newProgressLog(logger *slog.Logger, total int64) *progressLog {
	return &progressLog{logger: logger, total: total, started: time.Now()}
}

func (pl *progressLog) update(ctx context.Context, received int64) {
	now := time.Now()
	if now.Sub(pl.last) < progressLogInterval {
		return
	}

	pl.last = now
	pl.emit(ctx, "downloading", received)
}

func (pl *progressLog) emit(ctx context.Context, msg string, received int64) {
	elapsed := time.Since(pl.started)

	attrs := []slog.Attr{
		slog.Duration("elapsed", elapsed.Round(time.Millisecond)),
		slog.Int64("transferred", received),
		slog.Int64("total", pl.total),
		slog.String("mbps", fmt.Sprintf("%.2f", float64(received)/elapsed.Seconds()/(1<<20))),
	}
	if pl.total > 0 {
		attrs = append(attrs, slog.String("progress", fmt.Sprintf("%.1f%%", fraction(received, pl.total)*100)))
	}

	pl.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}
