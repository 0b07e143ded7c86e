package utility

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"math/rand"
	"strconv"
	"sync"
	"time"
)

// RunID identifies one scan served by the window service.
type RunID uint64

func (id RunID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

func RunIDFromString(s string) (RunID, error) {
	i, err := strconv.ParseUint(s, 10, 64)
	return RunID(i), err
}

func MustRunIDFromString(s string) RunID {
	id, err := RunIDFromString(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IDGenerator hands out random run IDs. Each server owns its own generator so
// tests can seed it without touching anyone else.
type IDGenerator struct {
	mu      sync.Mutex
	randGen *rand.Rand
}

// NewIDGenerator seeds the rng from the current time.
func NewIDGenerator() *IDGenerator {
	return NewIDGeneratorWithInt(time.Now().UnixNano())
}

// NewIDGeneratorWithInt generates deterministic IDs for testing purposes.
func NewIDGeneratorWithInt(seed int64) *IDGenerator {
	return &IDGenerator{randGen: rand.New(rand.NewSource(seed))}
}

func NewIDGeneratorWithString(seed string) *IDGenerator {
	return NewIDGeneratorWithInt(int64(hashFNV(seed)))
}

// Returns a 64 bit int from fnv hash of the string
func hashFNV(s string) uint64 {
	h := fnv.New64()
	h.Write([]byte(s))
	return h.Sum64()
}

// RandUint64 returns a random uint64.
func (g *IDGenerator) RandUint64() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.randGen.Uint64()
}

func (g *IDGenerator) GenerateRunID() RunID {
	return RunID(g.RandUint64())
}

// FingerprintInts hashes a series so that identical inputs can be spotted in
// logs without printing them.
func FingerprintInts(values []int64) uint64 {
	h := fnv.New64()
	var buf [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	return h.Sum64()
}

func FingerprintFloats(values []float64) uint64 {
	h := fnv.New64()
	var buf [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return h.Sum64()
}
