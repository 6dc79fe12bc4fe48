package credentials

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"crmdesk/internal/infrastructure/credentials"
)

func TestMask(t *testing.T) {
	assert.Equal(t, "***", Mask("abc"))
	assert.Equal(t, "******wxyz", Mask("abcdefwxyz"))
}

func TestReadSecret_FromPipe(t *testing.T) {
	key, err := readSecret(strings.NewReader("  s3cret-key \n"))
	require.NoError(t, err)
	assert.Equal(t, "s3cret-key", key)
}

func TestSetShowClear(t *testing.T) {
	keyring.MockInit()
	t.Setenv(credentials.EnvFreshdeskKey, "")

	run := func(args []string, stdin string) string {
		cmd := NewCommand()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetIn(strings.NewReader(stdin))
		cmd.SetArgs(args)
		require.NoError(t, cmd.Execute())
		return out.String()
	}

	run([]string{"set-freshdesk"}, "abcdefgh1234\n")
	out := run([]string{"show", "--config", ""}, "")
	assert.Contains(t, out, "keyring")
	assert.Contains(t, out, "********1234")

	run([]string{"clear"}, "")
	out = run([]string{"show"}, "")
	assert.NotContains(t, out, "keyring")
}
