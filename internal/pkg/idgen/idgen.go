// Package idgen provides ID generation utilities
package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// SequentialGenerator generates sequential IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}

// UUIDGenerator generates UUIDs with optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}

const joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// JoinCodeGenerator produces campaign join codes: six characters from
// A-Z0-9 split into two groups, e.g. "K7Q-2ZB".
type JoinCodeGenerator struct{}

// NewJoinCode creates a join code generator
func NewJoinCode() *JoinCodeGenerator {
	return &JoinCodeGenerator{}
}

// Generate creates a new join code
func (g *JoinCodeGenerator) Generate() string {
	code := make([]byte, 0, 7)
	limit := big.NewInt(int64(len(joinCodeAlphabet)))
	for i := 0; i < 6; i++ {
		if i == 3 {
			code = append(code, '-')
		}
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand only fails when the system source is broken
			panic(fmt.Sprintf("crypto/rand.Int failed: %v", err))
		}
		code = append(code, joinCodeAlphabet[n.Int64()])
	}
	return string(code)
}
