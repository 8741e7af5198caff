package iojson

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	err := WriteWith(&out, &errOut, map[string]int{"a": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteLine(t *testing.T) {
	var out bytes.Buffer

	err := WriteLine(&out, map[string]string{"id": "x"})
	require.NoError(t, err)
	assert.Equal(t, "{\"id\":\"x\"}\n", out.String())
}
