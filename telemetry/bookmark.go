package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFeedingFrenzy   BookmarkType = "feeding_frenzy"
	BookmarkPopulationCrash BookmarkType = "population_crash"
	BookmarkStarvation      BookmarkType = "starvation"
	BookmarkStableZoo       BookmarkType = "stable_zoo"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType
	Tick        int64
	Description string
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// stableWindows is how many unchanged windows make a stable zoo.
const stableWindows = 5

// BookmarkDetector detects interesting moments from consecutive window stats.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentPeak   int // highest population since the last crash
	stableCount  int // consecutive windows with the same population
	starvingSeen bool
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

	// User resets are not events worth bookmarking.
	if stats.Clears > 0 || stats.Restores > 0 {
		bd.recentPeak = stats.Population
		bd.stableCount = 0
		bd.starvingSeen = false
		bd.addToHistory(stats)
		return nil
	}

	for _, check := range []func(WindowStats) *Bookmark{
		bd.checkFeedingFrenzy,
		bd.checkPopulationCrash,
		bd.checkStarvation,
		bd.checkStableZoo,
	} {
		if b := check(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	if stats.Population > bd.recentPeak {
		bd.recentPeak = stats.Population
	}
	return bookmarks
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

func (bd *BookmarkDetector) last() (WindowStats, bool) {
	if !bd.historyFull && bd.historyIdx == 0 {
		return WindowStats{}, false
	}
	return bd.history[(bd.historyIdx+bd.historySize-1)%bd.historySize], true
}

func meals(s WindowStats) int {
	return s.PlantEats + s.MeatEats + s.Kills
}

func (bd *BookmarkDetector) checkFeedingFrenzy(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	total := 0
	for _, h := range history {
		total += meals(h)
	}
	avg := float64(total) / float64(len(history))

	current := meals(stats)
	if current >= 3 && float64(current) > avg*2 {
		return &Bookmark{
			Type:        BookmarkFeedingFrenzy,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d meals against an average of %.1f", current, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPopulationCrash(stats WindowStats) *Bookmark {
	if bd.recentPeak == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.Population)/float64(bd.recentPeak)
	if drop > 0.30 && stats.Population <= bd.recentPeak-3 {
		oldPeak := bd.recentPeak
		bd.recentPeak = stats.Population
		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population fell %.0f%% from %d to %d", drop*100, oldPeak, stats.Population),
		}
	}
	return nil
}

// checkStarvation fires once when the mean weight falls a quarter below the
// previous window while nothing was eaten.
func (bd *BookmarkDetector) checkStarvation(stats WindowStats) *Bookmark {
	prev, ok := bd.last()
	if !ok || prev.WeightMean == 0 || stats.Population == 0 {
		return nil
	}
	if meals(stats) > 0 {
		bd.starvingSeen = false
		return nil
	}

	if stats.WeightMean < prev.WeightMean*0.75 && !bd.starvingSeen {
		bd.starvingSeen = true
		return &Bookmark{
			Type:        BookmarkStarvation,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Mean weight fell from %.1f to %.1f without a meal", prev.WeightMean, stats.WeightMean),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStableZoo(stats WindowStats) *Bookmark {
	prev, ok := bd.last()
	if !ok || stats.Population < 2 || stats.Population != prev.Population || stats.Kills > 0 {
		bd.stableCount = 0
		return nil
	}

	bd.stableCount++
	if bd.stableCount == stableWindows {
		return &Bookmark{
			Type:        BookmarkStableZoo,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d animals living together for %d windows", stats.Population, stableWindows),
		}
	}
	return nil
}
