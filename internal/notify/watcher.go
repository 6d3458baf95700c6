package notify

import (
	"sync"

	"go.uber.org/zap"

	"github.com/llehouerou/fmcli/internal/metadata"
	"github.com/llehouerou/fmcli/internal/session"
)

// DefaultTimeout is how long a song notification stays on screen, in ms.
const DefaultTimeout int32 = 5000

// TitleWatcher announces song changes. Its Observe method is a session
// observer; consecutive notifications replace each other.
type TitleWatcher struct {
	notifier Notifier
	station  string
	logger   *zap.Logger

	mu     sync.Mutex
	last   string
	lastID uint32
}

// NewTitleWatcher returns a watcher for one station.
func NewTitleWatcher(n Notifier, station string, logger *zap.Logger) *TitleWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TitleWatcher{
		notifier: n,
		station:  station,
		logger:   logger.With(zap.String("component", "notify")),
	}
}

// Observe sends a notification when the song title changes.
func (w *TitleWatcher) Observe(v session.View) {
	if v.Final || !isSongTitle(v.Title) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if v.Title == w.last {
		return
	}
	w.last = v.Title

	body := w.station
	if v.StreamName != "" && v.StreamName != metadata.Unknown {
		body = v.StreamName
	}

	id, err := w.notifier.Notify(Notification{
		Title:      v.Title,
		Body:       body,
		Icon:       "audio-x-generic",
		Timeout:    DefaultTimeout,
		ReplacesID: w.lastID,
		Urgency:    UrgencyLow,
		Category:   CategoryMusic,
		Transient:  true,
	})
	if err != nil {
		w.logger.Debug("notification failed", zap.Error(err))
		return
	}
	w.lastID = id
}

// Close dismisses the last notification.
func (w *TitleWatcher) Close() error {
	w.mu.Lock()
	id := w.lastID
	w.lastID = 0
	w.mu.Unlock()

	if id == 0 {
		return nil
	}
	return w.notifier.Close(id)
}

func isSongTitle(title string) bool {
	return title != "" && title != metadata.Loading && title != metadata.Unknown
}
