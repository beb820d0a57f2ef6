package flake_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/flakecache/flakecache/flake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodeRejectsOutOfRange(t *testing.T) {
	_, err := flake.NewNode(1024)
	require.Error(t, err)

	_, err = flake.NewNode(-1)
	require.Error(t, err)
}

func TestNextMintsUniqueIdentifiers(t *testing.T) {
	node, err := flake.NewNode(1)
	require.NoError(t, err)

	seen := make(map[uint64]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := node.Next()
		require.Falsef(t, seen[id.ID()], "duplicate identifier %d", id.ID())
		seen[id.ID()] = true
	}
}

func TestStringIsDecimalRendering(t *testing.T) {
	node, err := flake.NewNode(2)
	require.NoError(t, err)

	id := node.Next()
	assert.Equal(t, strconv.FormatUint(id.ID(), 10), id.String())
}

func TestTimestampMillisIsRecent(t *testing.T) {
	node, err := flake.NewNode(3)
	require.NoError(t, err)

	before := time.Now().UnixMilli()
	id := node.Next()
	after := time.Now().UnixMilli()

	assert.GreaterOrEqual(t, id.TimestampMillis(), before-1000)
	assert.LessOrEqual(t, id.TimestampMillis(), after+1000)
}

func TestFromUint64RoundTrips(t *testing.T) {
	node, err := flake.NewNode(4)
	require.NoError(t, err)

	minted := node.Next()
	rebuilt := flake.FromUint64(minted.ID())

	assert.Equal(t, minted.ID(), rebuilt.ID())
	assert.Equal(t, minted.String(), rebuilt.String())
	assert.Equal(t, minted.TimestampMillis(), rebuilt.TimestampMillis())
}
