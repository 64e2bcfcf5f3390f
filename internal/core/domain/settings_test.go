package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, DefaultSnippetContext, s.Search.SnippetContext)
	assert.False(t, s.Search.CaseSensitive)
	assert.False(t, s.Search.WholeWord)
	assert.Empty(t, s.Storage.DataDir)
	assert.False(t, s.Log.Verbose)
}

func TestSearchSettings_Options(t *testing.T) {
	s := SearchSettings{CaseSensitive: true, WholeWord: true}

	opts := s.Options()

	assert.True(t, opts.CaseSensitive)
	assert.True(t, opts.WholeWord)
}
