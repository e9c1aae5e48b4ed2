package collection_cache

import (
	"sync"
	"time"

	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
)

const TTL = 5 * time.Minute

// ── Admin collection list cache ──────────────────────────────────────────────
// The admin dashboard polls the list endpoint aggressively; regeneration and
// any collection mutation invalidates.

type listEntry struct {
	rows      []models.CollectionListRow
	total     int
	fetchedAt time.Time
}

var (
	listMu    sync.RWMutex
	listCache map[string]*listEntry // page key -> entry
)

func GetList(key string) ([]models.CollectionListRow, int, bool) {
	listMu.RLock()
	defer listMu.RUnlock()
	if entry, ok := listCache[key]; ok && time.Since(entry.fetchedAt) < TTL {
		return entry.rows, entry.total, true
	}
	return nil, 0, false
}

func SetList(key string, rows []models.CollectionListRow, total int) {
	listMu.Lock()
	defer listMu.Unlock()
	if listCache == nil {
		listCache = make(map[string]*listEntry)
	}
	listCache[key] = &listEntry{rows: rows, total: total, fetchedAt: time.Now()}
}

// ── Invalidate everything (call on any collection create/update/delete or
// regeneration) ──────────────────────────────────────────────────────────────

func Invalidate() {
	listMu.Lock()
	listCache = nil
	listMu.Unlock()
}
