package delivery

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pscheid92/huella/internal/domain"
)

// slotItem is the persisted shape of a queue item. Field names match the slot format
// written by earlier browser-based clients so an existing slot stays readable.
type slotItem struct {
	ID        string         `json:"id"`
	Data      domain.Payload `json:"data"`
	Timestamp int64          `json:"timestamp"`
	Retries   int            `json:"retries"`
}

// EncodeSlot serializes the ordered queue into the slot format.
func EncodeSlot(items []domain.QueueItem) ([]byte, error) {
	out := make([]slotItem, len(items))
	for i, it := range items {
		out[i] = slotItem{
			ID:        it.ID,
			Data:      it.Payload,
			Timestamp: it.EnqueuedAt.UnixMilli(),
			Retries:   it.RetryCount,
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode queue slot: %w", err)
	}
	return data, nil
}

// DecodeSlot parses a slot written by EncodeSlot. Empty input decodes to an empty queue.
func DecodeSlot(data []byte) ([]domain.QueueItem, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var raw []slotItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode queue slot: %w", err)
	}

	items := make([]domain.QueueItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, domain.QueueItem{
			ID:         r.ID,
			Payload:    r.Data,
			EnqueuedAt: time.UnixMilli(r.Timestamp).UTC(),
			RetryCount: r.Retries,
		})
	}
	return items, nil
}
