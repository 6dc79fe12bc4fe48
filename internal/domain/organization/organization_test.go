package organization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/internal/shared/errors"
)

func TestNormalizeName(t *testing.T) {
	for _, in := range []string{"Alianz ", "ALIANZ", " alianz", "\talianz\n"} {
		assert.Equal(t, "ALIANZ", NormalizeName(in), "input %q", in)
	}
	assert.Equal(t, "ACME CORP", NormalizeName("  Acme    Corp "))
	assert.Equal(t, "CAFÉ DEL VALLE", NormalizeName("café del valle"))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestNewOrganization(t *testing.T) {
	org, err := NewOrganization(" Acme Corp", "ACME.mx ", " 555 ", "vip")
	require.NoError(t, err)
	assert.Equal(t, "ACME CORP", org.Name())
	assert.Equal(t, "acme.mx", org.Domain())
	assert.Equal(t, "555", org.Phone())

	_, err = NewOrganization("  ", "", "", "")
	assert.True(t, errors.IsValidationError(err))
}

func TestAliases(t *testing.T) {
	a := NewAliases(map[string]string{
		"Alianz SA de CV": "alianz",
		"":                "ignored",
	})
	assert.Len(t, a, 1)
	assert.Equal(t, "ALIANZ", a.Resolve("alianz sa de cv "))
	assert.Equal(t, "ACME", a.Resolve("acme"))

	var empty Aliases
	assert.Equal(t, "ACME", empty.Resolve(" Acme"))
}
