package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultsWhenUnset(t *testing.T) {
	opts := DefaultRequestOptions()

	assert.Nil(t, opts.GetRawMethod())
	assert.Nil(t, opts.GetRawUrl())
	assert.Nil(t, opts.GetRawAsync())
	assert.True(t, opts.Async())
}

func TestSettersMarkFieldsSet(t *testing.T) {
	opts := DefaultRequestOptions()
	opts.SetMethod("POST")
	opts.SetUrl("/api")
	opts.SetAsync(false)

	assert.Equal(t, "POST", opts.Method())
	assert.Equal(t, "/api", opts.Url())
	assert.False(t, opts.Async())
	assert.NotNil(t, opts.GetRawAsync())
}

func TestAssignCopiesOnlySetFields(t *testing.T) {
	src := DefaultRequestOptions()
	src.SetUrl("/api")

	dst := DefaultRequestOptions()
	dst.SetMethod("PUT")
	dst.Assign(src)

	assert.Equal(t, "PUT", dst.Method())
	assert.Equal(t, "/api", dst.Url())
	assert.Nil(t, dst.GetRawAsync())
}
