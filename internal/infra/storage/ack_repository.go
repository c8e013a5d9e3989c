package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/ksaxena149/personal-relationship-manager/internal/domain"
)

// AckEntryName is the named entry holding the acknowledged-ID set, stored
// as a JSON array of integers.
const AckEntryName = "checkedReminders"

type ackRepositoryImpl struct {
	store KeyValueStore
}

func NewAckRepository(store KeyValueStore) domain.AckStore {
	return &ackRepositoryImpl{
		store: store,
	}
}

func (r *ackRepositoryImpl) Load(ctx context.Context) (map[domain.ReminderID]struct{}, error) {
	payload, ok, err := r.store.Get(ctx, AckEntryName)
	if err != nil {
		return nil, err
	}

	ids := make(map[domain.ReminderID]struct{})

	if !ok {
		return ids, nil
	}

	var raw []int64

	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		// Corrupt payload degrades to an empty set.
		slog.Warn("unparseable acknowledged reminder payload, treating as empty",
			"error", err,
		)

		return ids, nil
	}

	for _, id := range raw {
		ids[domain.ReminderID(id)] = struct{}{}
	}

	return ids, nil
}

func (r *ackRepositoryImpl) Save(ctx context.Context, ids map[domain.ReminderID]struct{}) error {
	raw := make([]int64, 0, len(ids))
	for id := range ids {
		raw = append(raw, id.Int64())
	}

	// Stable on-disk order keeps the payload diffable across writes.
	sort.Slice(raw, func(i, j int) bool { return raw[i] < raw[j] })

	payload, err := json.Marshal(raw)
	if err != nil {
		return err
	}

	return r.store.Set(ctx, AckEntryName, string(payload))
}

func (r *ackRepositoryImpl) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, AckEntryName)
}
