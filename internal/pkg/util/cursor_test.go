package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	sortValues := []interface{}{float64(1724400000000), "66c0a1b2c3d4e5f6a7b8c9d0"}

	cursor := EncodeCursor(sortValues)
	require.NotEmpty(t, cursor)

	decoded, err := DecodeCursor(cursor)
	require.NoError(t, err)
	assert.Equal(t, sortValues, decoded)
}

func TestEncodeCursor_Empty(t *testing.T) {
	assert.Empty(t, EncodeCursor(nil))
	assert.Empty(t, EncodeCursor([]interface{}{}))
}

func TestDecodeCursor(t *testing.T) {
	t.Run("空游标返回 nil", func(t *testing.T) {
		decoded, err := DecodeCursor("")
		require.NoError(t, err)
		assert.Nil(t, decoded)
	})

	t.Run("非法 Base64", func(t *testing.T) {
		_, err := DecodeCursor("%%%not-base64%%%")
		assert.Error(t, err)
	})
}
