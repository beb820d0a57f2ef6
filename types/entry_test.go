package types_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/flakecache/flakecache/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// ================= TEST FIXTURES =================
//

const epoch = int64(1_700_000_000_000)

// testIdent is a hand-rolled identifier handle; entry construction only
// needs the contract, not a real snowflake.
type testIdent uint64

func (t testIdent) ID() uint64             { return uint64(t) }
func (t testIdent) String() string         { return strconv.FormatUint(uint64(t), 10) }
func (t testIdent) TimestampMillis() int64 { return epoch }

// manualClock pins time for deterministic staleness checks.
type manualClock struct {
	now int64
}

func (c *manualClock) NowMillis() int64 { return c.now }

// box is a minimal mutable value with the full capability set.
type box struct {
	items []string
}

func newBox(data any) any {
	items, _ := data.([]string)
	b := &box{items: make([]string, len(items))}
	copy(b.items, items)
	return b
}

func (b *box) Update(data any) (any, error) {
	item, ok := data.(string)
	if !ok {
		// mutate before failing so rollback has something to undo
		b.items = append(b.items, "???")
		return nil, errors.New("box rejects non-string items")
	}
	b.items = append(b.items, item)
	return len(b.items), nil
}

func (b *box) Serialize() any {
	out := make([]string, len(b.items))
	copy(out, b.items)
	return out
}

// sealed has a Serialize but no Update.
type sealed struct{}

func (sealed) Serialize() any { return nil }

// oneWay has an Update but no Serialize, so it can never be snapshotted.
type oneWay struct {
	n int
}

func (o *oneWay) Update(data any) (any, error) {
	o.n++
	return o.n, nil
}

//
// ================= KIND CLASSIFICATION =================
//

func TestKindOf(t *testing.T) {
	immutable := []any{
		true,
		int(1), int8(1), int16(1), int32(1), int64(1),
		uint(1), uint8(1), uint16(1), uint32(1), uint64(1),
		float32(1.5), float64(1.5),
		complex64(complex(1, 1)), complex(1, 1),
		"text",
		[3]int{1, 2, 3},
		types.NewFrozenSet("a", "b"),
	}
	for _, v := range immutable {
		assert.Equalf(t, types.Immutable, types.KindOf(v), "value %#v", v)
	}

	mutable := []any{
		nil,
		[]int{1},
		map[string]int{"a": 1},
		&box{},
		box{},
		func() {},
	}
	for _, v := range mutable {
		assert.Equalf(t, types.Mutable, types.KindOf(v), "value %#v", v)
	}
}

//
// ================= CONSTRUCTION =================
//

func TestNewEntryCapturesIdentityAndTiming(t *testing.T) {
	clock := &manualClock{now: epoch + 42}

	ent := types.NewEntry(testIdent(1001), "hello", epoch, 5000, nil, clock)

	assert.Equal(t, uint64(1001), ent.ID)
	assert.Equal(t, "1001", ent.IDString)
	assert.Equal(t, epoch+42, ent.CachedAt)
	assert.Equal(t, epoch, ent.FetchedAt)
	assert.Equal(t, int64(5000), ent.MaxAge)
	assert.Equal(t, types.Immutable, ent.Kind)
	assert.Equal(t, "hello", ent.Value)
}

//
// ================= STALENESS =================
//

func TestIsStaleBoundary(t *testing.T) {
	clock := &manualClock{now: epoch}
	ent := types.NewEntry(testIdent(1), "v", epoch, 5000, nil, clock)

	// Exactly at the boundary: age must EXCEED max age to be stale.
	clock.now = epoch + 5000
	assert.False(t, ent.IsStale())

	// One millisecond past the boundary it flips, and stays flipped.
	clock.now = epoch + 5001
	assert.True(t, ent.IsStale())
	clock.now = epoch + 50_000
	assert.True(t, ent.IsStale())
}

func TestMaxAgeZeroNeverStale(t *testing.T) {
	clock := &manualClock{now: epoch}
	ent := types.NewEntry(testIdent(1), "v", epoch, 0, nil, clock)

	clock.now = epoch + 1<<40
	assert.False(t, ent.IsStale())
}

func TestNegativeMaxAgeMeansUnset(t *testing.T) {
	clock := &manualClock{now: epoch}
	ent := types.NewEntry(testIdent(1), "v", epoch, -5000, nil, clock)

	clock.now = epoch + 1<<40
	assert.False(t, ent.IsStale())
}

func TestSuccessfulUpdateResetsStaleness(t *testing.T) {
	clock := &manualClock{now: epoch}
	ent := types.NewEntry(testIdent(1), "v1", epoch, 1000, nil, clock)

	clock.now = epoch + 5000
	require.True(t, ent.IsStale())

	_, err := ent.Update(clock.now, "v2")
	require.NoError(t, err)
	assert.False(t, ent.IsStale())
}

//
// ================= SERIALIZE =================
//

func TestSerializeImmutablePassesThrough(t *testing.T) {
	ent := types.NewEntry(testIdent(1), [2]int{1, 2}, epoch, 0, nil, &manualClock{now: epoch})

	plain, err := ent.Serialize()
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 2}, plain)
}

func TestSerializeMutableUsesCapability(t *testing.T) {
	b := &box{items: []string{"a", "b"}}
	ent := types.NewEntry(testIdent(1), b, epoch, 0, newBox, &manualClock{now: epoch})

	plain, err := ent.Serialize()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, plain)
}

func TestSerializeWithoutCapability(t *testing.T) {
	ent := types.NewEntry(testIdent(1), map[string]int{"a": 1}, epoch, 0, nil, &manualClock{now: epoch})

	_, err := ent.Serialize()
	require.ErrorIs(t, err, types.ErrUnserializable)
}

//
// ================= UPDATE =================
//

func TestUpdateMutableSuccessReturnsResult(t *testing.T) {
	b := &box{items: []string{"a"}}
	ent := types.NewEntry(testIdent(1), b, epoch, 0, newBox, &manualClock{now: epoch})

	res, err := ent.Update(epoch+100, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, res)
	assert.Equal(t, epoch+100, ent.FetchedAt)
}

func TestUpdateRollbackRestoresSerializedEquivalent(t *testing.T) {
	b := &box{items: []string{"a", "b"}}
	ent := types.NewEntry(testIdent(1), b, epoch, 0, newBox, &manualClock{now: epoch})

	before, err := ent.Serialize()
	require.NoError(t, err)

	// A composite non-string payload poisons the box before it fails.
	// (A scalar payload would take the replacement path instead.)
	_, err = ent.Update(epoch+100, []byte("poison"))
	require.Error(t, err)
	require.NotErrorIs(t, err, types.ErrNoUpdateMethod)

	after, serr := ent.Serialize()
	require.NoError(t, serr)
	assert.Equal(t, before, after)
	assert.Equal(t, epoch, ent.FetchedAt)
}

func TestUpdateWithoutFactory(t *testing.T) {
	b := &box{items: []string{"a"}}
	ent := types.NewEntry(testIdent(1), b, epoch, 0, nil, &manualClock{now: epoch})

	_, err := ent.Update(epoch+100, []string{"delta"})
	require.ErrorIs(t, err, types.ErrNoFactory)

	// Nothing moved: the factory check happens before any mutation.
	assert.Equal(t, []string{"a"}, b.items)
	assert.Equal(t, epoch, ent.FetchedAt)
}

func TestUpdateUnserializableValueFailsBeforeMutation(t *testing.T) {
	o := &oneWay{n: 1}
	factory := func(data any) any { return &oneWay{} }
	ent := types.NewEntry(testIdent(1), o, epoch, 0, factory, &manualClock{now: epoch})

	// The snapshot is taken before the value's Update ever runs, so a value
	// that cannot serialize fails there and is never invoked.
	_, err := ent.Update(epoch+100, map[string]int{"a": 1})
	require.ErrorIs(t, err, types.ErrUnserializable)

	assert.Equal(t, 1, o.n)
	assert.Same(t, o, ent.Value)
	assert.Equal(t, epoch, ent.FetchedAt)
}

func TestUpdateSealedValueHasNoUpdateMethod(t *testing.T) {
	ent := types.NewEntry(testIdent(1), sealed{}, epoch, 0, nil, &manualClock{now: epoch})

	_, err := ent.Update(epoch+100, map[string]int{"a": 1})
	require.ErrorIs(t, err, types.ErrNoUpdateMethod)
}

//
// ================= FROZEN SET =================
//

func TestFrozenSet(t *testing.T) {
	s := types.NewFrozenSet("a", "b", "b", "c")

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("z"))
	assert.ElementsMatch(t, []any{"a", "b", "c"}, s.Values())

	// Mutating the returned slice does not touch the set.
	vals := s.Values()
	vals[0] = "mutated"
	assert.Equal(t, 3, s.Len())
	assert.False(t, s.Has("mutated"))
}
