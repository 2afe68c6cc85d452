package sync_test

import (
	"fmt"
	gosync "sync"
	"testing"

	"github.com/gx-org/opcore/base/sync"
)

func TestLoadOrStoreConcurrent(t *testing.T) {
	var m sync.Map[string, int]
	var wg gosync.WaitGroup
	const numWriters = 8
	stored := make([]bool, numWriters)
	for i := range numWriters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, loaded := m.LoadOrStore("broadcast", i)
			stored[i] = !loaded
		}()
	}
	wg.Wait()
	numStored := 0
	for _, s := range stored {
		if s {
			numStored++
		}
	}
	if numStored != 1 {
		t.Errorf("%d goroutines stored a value but want 1", numStored)
	}
	if m.Size() != 1 {
		t.Errorf("map has %d entries but want 1", m.Size())
	}
}

func TestLoadDelete(t *testing.T) {
	var m sync.Map[string, int]
	for i := range 3 {
		m.Store(fmt.Sprintf("op%d", i), i)
	}
	if v, ok := m.Load("op1"); !ok || v != 1 {
		t.Errorf("Load(op1) = %d, %v but want 1, true", v, ok)
	}
	m.Delete("op1")
	if _, ok := m.Load("op1"); ok {
		t.Errorf("op1 still present after Delete")
	}
	if _, ok := m.Load("missing"); ok {
		t.Errorf("Load(missing) reported a value")
	}
	if m.Size() != 2 {
		t.Errorf("map has %d entries but want 2", m.Size())
	}
}
