package logutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "canteen.log")

	logger, closer, err := New("debug", path)
	require.NoError(t, err)

	logger.Info().Str("k", "v").Msg("hello")
	closer()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"hello"`)
	assert.Contains(t, string(raw), `"k":"v"`)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New("shouting", "")
	assert.Error(t, err)
}
