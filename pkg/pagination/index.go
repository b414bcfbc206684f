// Package pagination builds and maintains ordered indexes of published
// puzzle identifiers for a query dimension (by author, featured, ...),
// with privacy-window filtering. The index is a persisted cache over
// the document store; it self-heals, so a lost concurrent update only
// means the next caller re-discovers the same documents.
package pagination

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrIndexCorrupt marks a persisted index that fails shape validation.
// Callers treat it as "absent" and rebuild rather than aborting.
var ErrIndexCorrupt = errors.New("index document is corrupt")

// DocMeta is the publication metadata of one puzzle document, as
// reported by the document store.
type DocMeta struct {
	ID          string
	PublishedAt time.Time
	// Private hides the puzzle from listings permanently.
	Private bool
	// PrivateUntil hides the puzzle until the given go-live time, which
	// then also becomes its effective timestamp for ordering.
	PrivateUntil *time.Time
}

// Index is the persisted index document: parallel newest-first lists of
// publish timestamps and puzzle ids, plus the privacy side lists. The
// short field names are the wire format.
type Index struct {
	Timestamps []time.Time `json:"t" firestore:"t"`
	IDs        []string    `json:"i" firestore:"i"`

	// PrivateIDs are permanently hidden.
	PrivateIDs []string `json:"pv,omitempty" firestore:"pv"`

	// PrivateUntilIDs[i] goes live at PrivateUntilTimes[i].
	PrivateUntilIDs   []string    `json:"pvui,omitempty" firestore:"pvui"`
	PrivateUntilTimes []time.Time `json:"pvut,omitempty" firestore:"pvut"`
}

// Validate checks the parallel-list shape. A violation is reported as
// ErrIndexCorrupt.
func (idx *Index) Validate() error {
	if len(idx.Timestamps) != len(idx.IDs) {
		return fmt.Errorf("%w: %d timestamps vs %d ids", ErrIndexCorrupt, len(idx.Timestamps), len(idx.IDs))
	}
	if len(idx.PrivateUntilIDs) != len(idx.PrivateUntilTimes) {
		return fmt.Errorf("%w: %d private-until ids vs %d times", ErrIndexCorrupt, len(idx.PrivateUntilIDs), len(idx.PrivateUntilTimes))
	}
	for i := 1; i < len(idx.Timestamps); i++ {
		if idx.Timestamps[i].After(idx.Timestamps[i-1]) {
			return fmt.Errorf("%w: timestamps not in descending order at %d", ErrIndexCorrupt, i)
		}
	}
	return nil
}

// Newest returns the most recent known publish timestamp, or the zero
// time for an empty index.
func (idx *Index) Newest() time.Time {
	if len(idx.Timestamps) == 0 {
		return time.Time{}
	}
	return idx.Timestamps[0]
}

// Prepend inserts newly discovered documents at the front of the index,
// newest first, recording their privacy flags in the side lists.
// Documents whose id is already indexed are skipped.
func (idx *Index) Prepend(docs []DocMeta) {
	if len(docs) == 0 {
		return
	}

	known := make(map[string]bool, len(idx.IDs))
	for _, id := range idx.IDs {
		known[id] = true
	}

	fresh := make([]DocMeta, 0, len(docs))
	for _, d := range docs {
		if d.ID == "" || known[d.ID] {
			continue
		}
		known[d.ID] = true
		fresh = append(fresh, d)
	}
	slices.SortStableFunc(fresh, func(a, b DocMeta) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})

	ids := make([]string, 0, len(fresh)+len(idx.IDs))
	ts := make([]time.Time, 0, len(fresh)+len(idx.Timestamps))
	for _, d := range fresh {
		ids = append(ids, d.ID)
		ts = append(ts, d.PublishedAt)

		if d.Private {
			idx.PrivateIDs = append(idx.PrivateIDs, d.ID)
		}
		if d.PrivateUntil != nil {
			idx.PrivateUntilIDs = append(idx.PrivateUntilIDs, d.ID)
			idx.PrivateUntilTimes = append(idx.PrivateUntilTimes, *d.PrivateUntil)
		}
	}
	idx.IDs = append(ids, idx.IDs...)
	idx.Timestamps = append(ts, idx.Timestamps...)
}

// visible returns the (id, effective-timestamp) pairs eligible for
// listing at the given instant: permanently private entries dropped,
// not-yet-live private-until entries dropped, and live private-until
// entries re-timestamped to their go-live time.
func (idx *Index) visible(now time.Time) []pair {
	private := make(map[string]bool, len(idx.PrivateIDs))
	for _, id := range idx.PrivateIDs {
		private[id] = true
	}
	goLive := make(map[string]time.Time, len(idx.PrivateUntilIDs))
	for i, id := range idx.PrivateUntilIDs {
		goLive[id] = idx.PrivateUntilTimes[i]
	}

	out := make([]pair, 0, len(idx.IDs))
	for i, id := range idx.IDs {
		if private[id] {
			continue
		}
		effective := idx.Timestamps[i]
		if live, ok := goLive[id]; ok {
			if live.After(now) {
				continue
			}
			effective = live
		}
		out = append(out, pair{id: id, effective: effective})
	}

	slices.SortStableFunc(out, func(a, b pair) int {
		return b.effective.Compare(a.effective)
	})
	return out
}

type pair struct {
	id        string
	effective time.Time
}

// pageOf slices one page out of the visible pairs and returns the ids
// plus the post-filter total.
func pageOf(pairs []pair, page, pageSize int) ([]string, int) {
	total := len(pairs)
	start := page * pageSize
	if start >= total {
		return nil, total
	}
	end := min(start+pageSize, total)

	ids := make([]string, 0, end-start)
	for _, p := range pairs[start:end] {
		ids = append(ids, p.id)
	}
	return ids, total
}
