package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_HordeSurge(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{
			WindowEndTick:  int32(i * 600),
			ZombiesInSight: 2,
			DudeHealth:     100,
		})
	}

	bookmarks := bd.Check(WindowStats{
		WindowEndTick:  3000,
		ZombiesInSight: 8,
		DudeHealth:     100,
	})

	if !hasBookmark(bookmarks, BookmarkHordeSurge) {
		t.Errorf("expected horde surge bookmark, got %v", bookmarks)
	}
}

func TestBookmarkDetector_NoSurgeWithoutHistory(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bookmarks := bd.Check(WindowStats{ZombiesInSight: 20, DudeHealth: 100})
	if hasBookmark(bookmarks, BookmarkHordeSurge) {
		t.Error("horde surge triggered without history")
	}
}

func TestBookmarkDetector_Pileup(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if bm := bd.Check(WindowStats{Crashes: 2, DudeHealth: 100}); hasBookmark(bm, BookmarkPileup) {
		t.Error("pileup triggered with 2 crashes")
	}
	if bm := bd.Check(WindowStats{Crashes: 3, DudeHealth: 100}); !hasBookmark(bm, BookmarkPileup) {
		t.Error("expected pileup bookmark with 3 crashes")
	}
}

func TestBookmarkDetector_CloseCall(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bd.Check(WindowStats{DudeHealth: 80})
	if bm := bd.Check(WindowStats{DudeHealth: 20}); !hasBookmark(bm, BookmarkCloseCall) {
		t.Error("expected close call when health drops to 20")
	}
	// already below the threshold: no repeat
	if bm := bd.Check(WindowStats{DudeHealth: 10}); hasBookmark(bm, BookmarkCloseCall) {
		t.Error("close call repeated while health stayed low")
	}
	// death is not a close call
	bd.Check(WindowStats{DudeHealth: 90})
	if bm := bd.Check(WindowStats{DudeHealth: 0}); hasBookmark(bm, BookmarkCloseCall) {
		t.Error("close call triggered on death")
	}
}

func TestBookmarkDetector_Reset(t *testing.T) {
	bd := NewBookmarkDetector(3)
	bd.Check(WindowStats{DudeHealth: 100})
	bd.Reset()

	// a fresh episode starting low is not a drop
	if bm := bd.Check(WindowStats{DudeHealth: 10}); hasBookmark(bm, BookmarkCloseCall) {
		t.Error("close call carried over a reset")
	}
}
