package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkHordeSurge BookmarkType = "horde_surge"
	BookmarkPileup     BookmarkType = "pileup"
	BookmarkCloseCall  BookmarkType = "close_call"
)

// closeCallHealth is the dude health below which a window counts as a close call.
const closeCallHealth = 25

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in a run.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	lastHealth float64
	seen       bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkHordeSurge(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkPileup(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkCloseCall(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	bd.lastHealth = stats.DudeHealth
	bd.seen = true

	return bookmarks
}

// Reset forgets all history, for a new episode.
func (bd *BookmarkDetector) Reset() {
	bd.historyIdx = 0
	bd.historyFull = false
	bd.seen = false
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkHordeSurge(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.ZombiesInSight
	}
	avg := float64(total) / float64(len(history))

	if float64(stats.ZombiesInSight) > avg*2.0 && stats.ZombiesInSight >= 5 {
		return &Bookmark{
			Type:        BookmarkHordeSurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d zombies in sight, %.1f on average", stats.ZombiesInSight, avg),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPileup(stats WindowStats) *Bookmark {
	if stats.Crashes < 3 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkPileup,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d crashes, fastest impacts around %.0f px/s", stats.Crashes, stats.ImpactP90),
	}
}

func (bd *BookmarkDetector) checkCloseCall(stats WindowStats) *Bookmark {
	if !bd.seen || stats.DudeHealth <= 0 {
		return nil
	}
	// trigger once when health first drops under the threshold
	if bd.lastHealth > closeCallHealth && stats.DudeHealth <= closeCallHealth {
		return &Bookmark{
			Type:        BookmarkCloseCall,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Dude health fell from %.0f to %.0f", bd.lastHealth, stats.DudeHealth),
		}
	}
	return nil
}
