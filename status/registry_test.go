package status

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTableCachesPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(KeyCorrect)
	b := r.Ints.Get(KeyCorrect)
	if a != b {
		t.Error("Get() returned different pointers for the same key")
	}
	assert.True(t, r.Ints.Has(KeyCorrect))
	assert.False(t, r.Ints.Has(KeyError))
}

func TestTableConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Ints.Get(KeyCorrect).Add(1)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(16), r.Ints.Get(KeyCorrect).Load())
	assert.Equal(t, 1, r.TotalCount())
}

func TestSnapshotOrder(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(KeyError).Store(2)
	r.Ints.Get(KeyCorrect).Store(5)
	r.Gauges.Get(KeyBPM).Set(120)
	r.Labels.Get(KeyTier).Store("Hard")
	r.Bools.Get(KeyAudioBackend).Store(true)

	got := r.Snapshot()
	assert.Equal(t, []Entry{
		{KeyAudioBackend, "true"},
		{KeyCorrect, "5"},
		{KeyError, "2"},
		{KeyBPM, "120.00"},
		{KeyTier, "Hard"},
	}, got)
}

func TestLabelTruncatesOnRuneBoundary(t *testing.T) {
	var l Label
	assert.Equal(t, "", l.Load())

	l.Store(strings.Repeat("x", MaxLabelLen+5))
	assert.Len(t, l.Load(), MaxLabelLen)

	// "ó" is two bytes and straddles the cap
	l.Store(strings.Repeat("x", MaxLabelLen-1) + "ó")
	assert.Equal(t, strings.Repeat("x", MaxLabelLen-1), l.Load())
	assert.True(t, utf8.ValidString(l.Load()))
}

func TestGainsByLayer(t *testing.T) {
	r := NewRegistry()
	r.Gauges.Get(KeyGainPrefix + "drums").Set(-6)
	r.Gauges.Get(KeyGainPrefix + "pad").Set(-60)
	r.Gauges.Get(KeyBPM).Set(120)

	assert.Equal(t, map[string]float64{"drums": -6, "pad": -60}, r.Gains())
	assert.Equal(t, 3, r.Gauges.Len())
}

func TestTableEachPrefixSorted(t *testing.T) {
	tb := NewTable[atomic.Int64]()
	for _, k := range []string{"b.2", "a.1", "b.1", "c"} {
		tb.Get(k)
	}
	var got []string
	tb.Each("b.", func(k string, _ *atomic.Int64) { got = append(got, k) })
	assert.Equal(t, []string{"b.1", "b.2"}, got)
}
