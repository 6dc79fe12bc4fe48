package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuoteNumber(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		n, err := NewQuoteNumber()
		require.NoError(t, err)
		assert.Len(t, n, len("QT-")+DefaultLength)
		assert.True(t, HasPrefix(n, PrefixQuote), n)
		assert.False(t, seen[n], "duplicate %s", n)
		seen[n] = true
	}
}

func TestHasPrefix(t *testing.T) {
	assert.True(t, HasPrefix("QT-ABC234", "QT"))
	assert.False(t, HasPrefix("QT-", "QT"))
	assert.False(t, HasPrefix("QT-abc", "QT"))
	assert.False(t, HasPrefix("QT-0O1I", "QT"))
	assert.False(t, HasPrefix("VS-ABC234", "QT"))
}
