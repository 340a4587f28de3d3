package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestAddPreservesOrder(t *testing.T) {
	t.Parallel()

	r := New[string]()
	r.Add("a")
	r.Add("b", "c")

	assert.Equal(t, []string{"a", "b", "c"}, r.Items())
	assert.Equal(t, 3, r.Len())
}

func TestItemsSnapshotIsStable(t *testing.T) {
	t.Parallel()

	r := New[int]()
	r.Add(1, 2)

	snap := r.Items()
	r.Add(3)

	assert.Equal(t, []int{1, 2}, snap)
	assert.Equal(t, []int{1, 2, 3}, r.Items())
}

func TestReplaceDefensiveCopy(t *testing.T) {
	t.Parallel()

	r := New[string]()
	r.Add("old")

	in := []string{"x", "y"}
	r.Replace(in)

	// Mutating the caller's slice must not affect the registry.
	in[0] = "mutated"
	assert.Equal(t, []string{"x", "y"}, r.Items())
}

func TestReplaceSelfAssignmentIsNoOp(t *testing.T) {
	t.Parallel()

	r := New[string]()
	r.Add("a", "b")

	before := r.Mutations()
	r.Replace(r.Items())
	assert.Equal(t, before, r.Mutations(), "self-assignment must perform zero clear/append operations")
	assert.Equal(t, []string{"a", "b"}, r.Items())
}

func TestReplaceEmptySelfAssignment(t *testing.T) {
	t.Parallel()

	r := New[string]()
	before := r.Mutations()
	r.Replace(r.Items())
	assert.Equal(t, before, r.Mutations())
}

func TestReplaceWithNilClears(t *testing.T) {
	t.Parallel()

	r := New[string]()
	r.Add("a")
	r.Replace(nil)
	assert.Equal(t, 0, r.Len())
}

func TestClear(t *testing.T) {
	t.Parallel()

	r := New[int]()
	r.Add(1, 2, 3)
	r.Clear()
	assert.Empty(t, r.Items())
}

func TestConcurrentReadersDuringAppend(t *testing.T) {
	t.Parallel()

	r := New[int]()
	const writers = 4
	const perWriter = 250

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				r.Add(i)
			}
		}()
	}

	// Readers iterate snapshots while writers append. Each observed
	// snapshot must be internally consistent (monotonically growing).
	var rg sync.WaitGroup
	for g := 0; g < 4; g++ {
		rg.Add(1)
		go func() {
			defer rg.Done()
			last := 0
			for i := 0; i < 1000; i++ {
				n := len(r.Items())
				assert.GreaterOrEqual(t, n, last)
				last = n
			}
		}()
	}

	wg.Wait()
	rg.Wait()
	assert.Equal(t, writers*perWriter, r.Len())
}

func TestConcurrentReplaceAndRead(t *testing.T) {
	t.Parallel()

	r := New[int]()
	r.Add(1, 2, 3)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			r.Replace([]int{1, 2, 3})
		}
	}()

	// During a replace window readers may observe the transient empty
	// registry; they must never observe a partial list.
	for i := 0; i < 2000; i++ {
		n := len(r.Items())
		assert.Contains(t, []int{0, 3}, n)
	}
	wg.Wait()
}
