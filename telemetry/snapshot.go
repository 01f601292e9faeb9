package telemetry

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/pthm-cable/menagerie/components"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds a complete copy of the world for save/restore.
// Every field is a value; nothing aliases live simulation state.
type Snapshot struct {
	Version    int
	Seq        uint64
	CapturedAt time.Time

	Background components.Background
	Entities   []EntityState
	Plant      *FoodState
	Meat       *FoodState
}

// EntityState holds one animal's complete state.
type EntityState struct {
	ID       uint32
	Species  string
	Diet     components.Diet
	FoodType components.FoodType
	Sound    components.Sound
	Color    string

	Size     int
	HorSpeed int
	VerSpeed int

	// Position and movement
	X, Y int
	XDir int
	YDir int

	Weight    float64
	EatCount  int
	Suspended bool
}

// FoodState holds an active food item.
type FoodState struct {
	Kind   components.FoodKind
	X, Y   int
	Weight float64
	Height float64
}

// EncodeSnapshot serializes a snapshot to a zstd-compressed gob blob.
func EncodeSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("create zstd writer: %w", err)
	}
	if err := gob.NewEncoder(enc).Encode(s); err != nil {
		enc.Close()
		return nil, fmt.Errorf("gob encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("flush zstd writer: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot rebuilds a snapshot from a blob made by EncodeSnapshot.
// The result shares no memory with earlier decodes.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer dec.Close()

	var s Snapshot
	if err := gob.NewDecoder(dec).Decode(&s); err != nil {
		return nil, fmt.Errorf("gob decode: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", s.Version, SnapshotVersion)
	}
	return &s, nil
}
