package callhub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConcatenated(t *testing.T) {
	objects, err := decodeConcatenated([]byte(`{"a": 1}{"b": 2}{"c": 3}`))
	require.NoError(t, err)
	require.Len(t, objects, 3)
	assert.Equal(t, float64(2), objects[1]["b"])
}

func TestDecodeConcatenatedSingle(t *testing.T) {
	objects, err := decodeConcatenated([]byte(`{"only": true}`))
	require.NoError(t, err)
	require.Len(t, objects, 1)
}

func TestDecodeConcatenatedWhitespace(t *testing.T) {
	objects, err := decodeConcatenated([]byte("{\"a\": 1}\n{\"b\": 2}"))
	require.NoError(t, err)
	require.Len(t, objects, 2)
}

func TestDecodeConcatenatedEmpty(t *testing.T) {
	objects, err := decodeConcatenated(nil)
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestDecodeConcatenatedMalformed(t *testing.T) {
	_, err := decodeConcatenated([]byte(`{"a": 1}{broken`))
	require.Error(t, err)
}
