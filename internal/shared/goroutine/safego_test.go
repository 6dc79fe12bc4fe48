package goroutine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"crmdesk/internal/shared/logger"
)

func TestRun_RecoversPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		Run(logger.NewDiscard(), "exploder", func() { panic("boom") })
	})
}

func TestSafeGo_RunsFunction(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	ran := false
	SafeGo(logger.NewDiscard(), "worker", func() {
		defer wg.Done()
		ran = true
	})
	wg.Wait()
	assert.True(t, ran)
}
