package experiment

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAddAndRuns(t *testing.T) {
	gas, _ := NewRun(KindGas)
	dan, _ := NewRun(KindDaniell)
	dan.ID = "d1"

	s := NewStore()
	changes := 0
	cancel := s.OnChange(func() { changes++ })
	defer cancel()

	s.Add(gas, nil, dan)
	assert.Equal(t, 1, changes, "one notification per Add")
	assert.Equal(t, 2, s.Len())
	assert.NotEmpty(t, gas.ID)
	assert.Equal(t, "d1", dan.ID)

	assert.Equal(t, []*Run{gas, dan}, s.Runs())
	assert.Equal(t, []*Run{dan}, s.Runs(KindDaniell))
	assert.Equal(t, []*Run{gas, dan}, s.Runs(KindGas, KindDaniell))

	s.Add()
	s.Add(nil)
	assert.Equal(t, 1, changes, "no-op Add does not notify")
}

func TestStoreDelete(t *testing.T) {
	gas, _ := NewRun(KindGas)
	s := NewStore(gas)
	changes := 0
	s.OnChange(func() { changes++ })

	assert.False(t, s.Delete("missing"))
	assert.Equal(t, 0, changes)

	require.True(t, s.Delete(gas.ID))
	assert.Equal(t, 1, changes)
	assert.Equal(t, 0, s.Len())
}

func TestStoreSnapshotIsolation(t *testing.T) {
	gas, _ := NewRun(KindGas)
	s := NewStore(gas)

	snap := s.Runs()
	snap[0] = nil
	assert.NotNil(t, s.Runs()[0])
}

func TestStoreConcurrent(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				r, _ := NewRun(KindGas)
				s.Add(r)
				_ = s.Runs()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 200, s.Len())
}
