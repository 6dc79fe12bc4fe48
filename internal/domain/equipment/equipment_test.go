package equipment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEquipment_NormalizesSerial(t *testing.T) {
	e, err := NewEquipment(1, nil, " ab 12-3 ", "M402", "HP", nil)
	require.NoError(t, err)
	assert.Equal(t, "AB12-3", e.SerialNumber())
}

func TestNewEquipment_Validation(t *testing.T) {
	_, err := NewEquipment(0, nil, "X1", "", "", nil)
	assert.Error(t, err)
	_, err = NewEquipment(1, nil, "   ", "", "", nil)
	assert.Error(t, err)
}
