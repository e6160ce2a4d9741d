package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// Database Key Namespace Design
// ==============================
//
// BadgerDB is a key-value store, so prefixed keys organize the drive
// hierarchy into logical namespaces:
//
// Data Type             Prefix   Key Format                      Value
// =======================================================================
// Node Data             "n:"     n:<uuid>                        Node (JSON)
// Parent Relationships  "p:"     p:<childUUID>                   parent uuid (16 bytes)
// Children Index        "c:"     c:<parentUUID>:<seq>            child uuid (16 bytes)
// Child Key Lookup      "ck:"    ck:<childUUID>                  its "c:" key (bytes)
// Trash Index           "t:"     t:<seq>                         node uuid (16 bytes)
// Trash Key Lookup      "tk:"    tk:<uuid>                       its "t:" key (bytes)
// Root Pointer          "cfg:"   cfg:root                        root uuid (16 bytes)
// Sequence Counter      "cfg:"   cfg:seq                         uint64 (8 bytes, big endian)
//
// The children index is keyed by an insertion sequence number instead of
// the child name: names are not unique within a folder, and range scans
// over "c:<parentUUID>:" must replay children in insertion order so that
// "first match wins" lookups stay deterministic. The "ck:" reverse lookup
// gives O(1) removal of a child's index entry on move or delete.
//
// The trash index replays trashed nodes in trash order, which is the
// enumeration order the trash listing exposes.

func nodeKey(id uuid.UUID) []byte {
	return append([]byte("n:"), id[:]...)
}

func parentKey(child uuid.UUID) []byte {
	return append([]byte("p:"), child[:]...)
}

func childPrefix(parent uuid.UUID) []byte {
	return append(append([]byte("c:"), parent[:]...), ':')
}

func childKey(parent uuid.UUID, seq uint64) []byte {
	key := childPrefix(parent)
	return append(key, seqBytes(seq)...)
}

func childLookupKey(child uuid.UUID) []byte {
	return append([]byte("ck:"), child[:]...)
}

func trashKey(seq uint64) []byte {
	return append([]byte("t:"), seqBytes(seq)...)
}

func trashLookupKey(id uuid.UUID) []byte {
	return append([]byte("tk:"), id[:]...)
}

var (
	rootKey = []byte("cfg:root")
	seqKey  = []byte("cfg:seq")
)

// seqBytes renders a sequence number big endian so lexicographic key order
// matches numeric order.
func seqBytes(seq uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], seq)
	return b[:]
}

func uuidFromValue(val []byte) (uuid.UUID, error) {
	if len(val) != 16 {
		return uuid.UUID{}, fmt.Errorf("invalid uuid value length %d", len(val))
	}
	var id uuid.UUID
	copy(id[:], val)
	return id, nil
}
