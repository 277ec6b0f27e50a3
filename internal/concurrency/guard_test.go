package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard_SharedAllowsConcurrentHolders(t *testing.T) {
	g := NewGuard()

	release1 := g.Shared()
	release2 := g.Shared()
	release1()
	release2()
}

func TestGuard_ExclusiveBlocksShared(t *testing.T) {
	g := NewGuard()

	release := g.Exclusive()

	acquired := make(chan struct{})
	go func() {
		g.Shared()()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("shared lock acquired while exclusive held")
	default:
	}

	release()
	<-acquired
}

func TestGuard_NilGuardIsNoOp(t *testing.T) {
	var g *Guard

	// Nil guards lock nothing; both sides are callable.
	g.Shared()()
	g.Exclusive()()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Shared()()
		}()
	}
	wg.Wait()

	assert.Nil(t, g)
}
