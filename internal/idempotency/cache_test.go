package idempotency

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shamanic-technologies/email-sending-service/internal/model"
)

func TestLookupMissAndHit(t *testing.T) {
	c := New()

	if _, ok := c.Lookup("absent"); ok {
		t.Fatalf("Lookup on empty cache reported a hit")
	}

	result := model.SendResult{Success: true, Provider: model.ChannelTransactional, MessageID: "pm_1"}
	c.Store("k1", 200, result)

	entry, ok := c.Lookup("k1")
	if !ok {
		t.Fatalf("stored entry not found")
	}
	if entry.Status != 200 {
		t.Errorf("entry.Status = %d, want 200", entry.Status)
	}
	if entry.Result != result {
		t.Errorf("entry.Result = %+v, want %+v", entry.Result, result)
	}
}

func TestExpiredEntryIsAbsentAndPurged(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	c := New(WithTTL(time.Hour), WithClock(func() time.Time { return now }))

	c.Store("k1", 200, model.SendResult{Success: true})

	now = now.Add(30 * time.Minute)
	if _, ok := c.Lookup("k1"); !ok {
		t.Fatalf("entry expired before its TTL")
	}

	now = now.Add(31 * time.Minute)
	if _, ok := c.Lookup("k1"); ok {
		t.Fatalf("entry survived past its TTL")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not purged on read, len = %d", c.Len())
	}
}

func TestStoreOverwrites(t *testing.T) {
	c := New()

	c.Store("k1", 200, model.SendResult{Success: true, MessageID: "pm_1"})
	c.Store("k1", 409, model.SendResult{Success: false, Error: "recipient not added to campaign"})

	entry, ok := c.Lookup("k1")
	if !ok {
		t.Fatalf("entry missing after overwrite")
	}
	if entry.Status != 409 || entry.Result.Success {
		t.Errorf("overwrite not applied: %+v", entry)
	}
}

func TestSweepRemovesExpiredEntries(t *testing.T) {
	var mu sync.Mutex
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	c := New(WithTTL(time.Hour), WithClock(clock))

	c.Store("old", 200, model.SendResult{Success: true})
	mu.Lock()
	now = now.Add(2 * time.Hour)
	mu.Unlock()
	c.Store("fresh", 200, model.SendResult{Success: true})

	c.sweep()

	if c.Len() != 1 {
		t.Fatalf("len after sweep = %d, want 1", c.Len())
	}
	if _, ok := c.Lookup("fresh"); !ok {
		t.Errorf("fresh entry removed by sweep")
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", n%4)
			for j := 0; j < 100; j++ {
				c.Store(key, 200, model.SendResult{Success: true})
				c.Lookup(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() != 4 {
		t.Errorf("len = %d, want 4", c.Len())
	}
}

func TestStartStop(t *testing.T) {
	c := New(WithSweepInterval(10 * time.Millisecond))
	c.Start()
	time.Sleep(25 * time.Millisecond)
	c.Stop()
	// Stop returns only after the sweep goroutine exits; a second Lookup
	// afterwards must still work.
	c.Store("k", 200, model.SendResult{Success: true})
	if _, ok := c.Lookup("k"); !ok {
		t.Errorf("cache unusable after Stop")
	}
}
