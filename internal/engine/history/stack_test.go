package history

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	s := New(0, "init")
	assert.Equal(t, DefaultMaxEntries, s.MaxEntries())
	assert.Equal(t, "init", s.Present())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())

	n := New(-3, 1)
	assert.Equal(t, DefaultMaxEntries, n.MaxEntries())
	assert.Equal(t, 1, n.Present())
}

func TestSetPushesPresent(t *testing.T) {
	s := New(10, "a")
	s.Set("b")
	s.Set("c")

	st := s.Snapshot()
	assert.Equal(t, []string{"a", "b"}, st.Past)
	assert.Equal(t, "c", st.Present)
	assert.Empty(t, st.Future)
	assert.True(t, s.CanUndo())
}

func TestUndoSequence(t *testing.T) {
	for n := 1; n <= 5; n++ {
		for k := 0; k <= n; k++ {
			t.Run(fmt.Sprintf("n=%d,k=%d", n, k), func(t *testing.T) {
				s := New(5, 0)
				for v := 1; v <= n; v++ {
					s.Set(v)
				}
				for i := 0; i < k; i++ {
					require.True(t, s.Undo())
				}
				assert.Equal(t, n-k, s.Present())
				assert.Equal(t, n-k, s.UndoCount())
				assert.Equal(t, k, s.RedoCount())
			})
		}
	}
}

func TestRedoRoundTrip(t *testing.T) {
	s := New(10, "a")
	s.Set("b")
	s.Set("c")

	before := s.Present()
	require.True(t, s.Undo())
	require.True(t, s.Redo())
	assert.Equal(t, before, s.Present())
	assert.Equal(t, []string{"a", "b"}, s.Snapshot().Past)
	assert.False(t, s.CanRedo())
}

func TestFutureOrder(t *testing.T) {
	s := New(10, "a")
	s.Set("b")
	s.Set("c")
	s.Undo()
	s.Undo()

	st := s.Snapshot()
	assert.Equal(t, "a", st.Present)
	assert.Equal(t, []string{"b", "c"}, st.Future)

	s.Redo()
	assert.Equal(t, "b", s.Present())
	s.Redo()
	assert.Equal(t, "c", s.Present())
}

func TestSetClearsFuture(t *testing.T) {
	s := New(10, "a")
	s.Set("b")
	s.Set("c")
	s.Undo()
	s.Undo()
	require.True(t, s.CanRedo())

	s.Set("x")
	assert.False(t, s.CanRedo())
	assert.False(t, s.Redo())
	assert.Equal(t, "x", s.Present())
	assert.Equal(t, []string{"a"}, s.Snapshot().Past)
}

func TestSetSameValueStillClearsFuture(t *testing.T) {
	s := New(10, "a")
	s.Set("b")
	s.Undo()
	require.True(t, s.CanRedo())

	s.Set("a")
	assert.False(t, s.CanRedo())
	assert.Equal(t, []string{"a"}, s.Snapshot().Past)
}

func TestBoundNeverExceeded(t *testing.T) {
	s := New(3, 0)
	for i := 1; i <= 100; i++ {
		s.Set(i)
		require.LessOrEqual(t, s.UndoCount(), 3)
	}
	assert.Equal(t, []int{97, 98, 99}, s.Snapshot().Past)
	assert.Equal(t, 100, s.Present())
}

func TestBoundedEviction(t *testing.T) {
	s := New(2, "init")
	s.Set("A")
	s.Set("B")
	s.Set("C")

	st := s.Snapshot()
	// init is evicted by the bound of two entries.
	assert.Equal(t, []string{"A", "B"}, st.Past)
	assert.Equal(t, "C", st.Present)
}

func TestEvictionThenUndo(t *testing.T) {
	s := New(2, "A")
	s.Set("B")
	s.Set("C")
	s.Set("D")

	st := s.Snapshot()
	assert.Equal(t, []string{"B", "C"}, st.Past)

	// With one slot, only the last displaced value survives.
	s1 := New(1, "x")
	s1.Set("A")
	s1.Set("B")
	s1.Set("C")
	st = s1.Snapshot()
	assert.Equal(t, []string{"B"}, st.Past)
	assert.Equal(t, "C", st.Present)

	require.True(t, s1.Undo())
	st = s1.Snapshot()
	assert.Equal(t, "B", st.Present)
	assert.Empty(t, st.Past)
	assert.Equal(t, []string{"C"}, st.Future)

	assert.False(t, s1.Undo())
	assert.Equal(t, "B", s1.Present())
}

func TestRedoRespectsBound(t *testing.T) {
	s := New(2, "a")
	s.Set("b")
	s.Set("c")
	s.Undo()
	s.Undo()
	s.SetMaxEntries(1)
	s.Redo()
	s.Redo()

	st := s.Snapshot()
	assert.Equal(t, "c", st.Present)
	assert.Equal(t, []string{"b"}, st.Past)
}

func TestUndoRedoNoOpIdempotent(t *testing.T) {
	s := New(10, "a")
	for i := 0; i < 3; i++ {
		assert.False(t, s.Undo())
		assert.False(t, s.Redo())
	}
	st := s.Snapshot()
	assert.Equal(t, "a", st.Present)
	assert.Empty(t, st.Past)
	assert.Empty(t, st.Future)
}

func TestReset(t *testing.T) {
	s := New(10, "a")
	s.Set("b")
	s.Set("c")
	s.Undo()

	s.Reset("z")
	st := s.Snapshot()
	assert.Equal(t, "z", st.Present)
	assert.Empty(t, st.Past)
	assert.Empty(t, st.Future)
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestSetMaxEntriesTrims(t *testing.T) {
	s := New(10, 0)
	for i := 1; i <= 6; i++ {
		s.Set(i)
	}
	s.SetMaxEntries(2)
	assert.Equal(t, 2, s.MaxEntries())
	assert.Equal(t, []int{4, 5}, s.Snapshot().Past)

	s.SetMaxEntries(0)
	assert.Equal(t, DefaultMaxEntries, s.MaxEntries())
}

func TestSnapshotIsCopy(t *testing.T) {
	s := New(10, []string{"a"})
	s.Set([]string{"b"})

	st := s.Snapshot()
	st.Past[0] = []string{"mutated"}
	assert.Equal(t, []string{"a"}, s.Snapshot().Past[0])
}

func TestConcurrentAccess(t *testing.T) {
	s := New(5, 0)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				switch i % 3 {
				case 0:
					s.Set(g*1000 + i)
				case 1:
					s.Undo()
				default:
					s.Redo()
				}
			}
		}(g)
	}
	wg.Wait()
	assert.LessOrEqual(t, s.UndoCount(), 5)
}
