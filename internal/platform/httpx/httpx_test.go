package httpx

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/pets?limit=5&offset=abc&neg=-1&empty=", nil)

	n, err := QueryInt(r, "limit", 20)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = QueryInt(r, "missing", 20)
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	n, err = QueryInt(r, "empty", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = QueryInt(r, "offset", 0)
	assert.EqualError(t, err, "offset must be a non-negative integer")

	_, err = QueryInt(r, "neg", 0)
	assert.Error(t, err)
}

func TestOptionalQueryInt_ZeroIsNotAbsent(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/pets?limit=0&bad=x", nil)

	n, err := OptionalQueryInt(r, "limit")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 0, *n)

	n, err = OptionalQueryInt(r, "offset")
	require.NoError(t, err)
	assert.Nil(t, n)

	_, err = OptionalQueryInt(r, "bad")
	assert.Error(t, err)
}

func TestPathInt64(t *testing.T) {
	id, err := PathInt64("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-3", "abc", "1.5"} {
		_, err := PathInt64(raw)
		assert.Error(t, err, raw)
	}
}
