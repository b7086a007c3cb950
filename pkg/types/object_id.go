package types

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"time"
)

// ObjectID is the canonical 12-byte record identifier, rendered as 24
// lowercase hex characters.
type ObjectID [12]byte

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

var (
	processUnique = readProcessUnique()
	objectIDSeq   = readSeed()
)

// IsObjectIDHex reports whether s has the canonical id shape.
func IsObjectIDHex(s string) bool {
	return objectIDPattern.MatchString(s)
}

func ParseObjectID(s string) (ObjectID, error) {
	var id ObjectID
	if !IsObjectIDHex(s) {
		return id, fmt.Errorf("invalid object id %q", s)
	}
	if _, err := hex.Decode(id[:], []byte(strings.ToLower(s))); err != nil {
		return id, fmt.Errorf("decoding object id: %w", err)
	}
	return id, nil
}

// NewObjectID builds an id from the current second, a per-process random
// block, and an incrementing counter.
func NewObjectID() ObjectID {
	return newObjectIDAt(time.Now())
}

func newObjectIDAt(ts time.Time) ObjectID {
	var id ObjectID
	binary.BigEndian.PutUint32(id[0:4], uint32(ts.Unix()))
	copy(id[4:9], processUnique[:])
	seq := atomic.AddUint32(&objectIDSeq, 1)
	id[9] = byte(seq >> 16)
	id[10] = byte(seq >> 8)
	id[11] = byte(seq)
	return id
}

func (id ObjectID) Hex() string {
	return hex.EncodeToString(id[:])
}

func (id ObjectID) String() string {
	return id.Hex()
}

func (id ObjectID) IsZero() bool {
	return id == ObjectID{}
}

// Timestamp returns the creation second encoded in the id.
func (id ObjectID) Timestamp() time.Time {
	return time.Unix(int64(binary.BigEndian.Uint32(id[0:4])), 0).UTC()
}

func (id ObjectID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Hex())
}

func (id *ObjectID) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseObjectID(raw)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func readProcessUnique() [5]byte {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Errorf("types: reading process id entropy: %w", err))
	}
	return b
}

func readSeed() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Errorf("types: reading counter seed: %w", err))
	}
	return binary.BigEndian.Uint32(b[:])
}
