package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.LocationsEnabled())
	assert.False(t, cfg.RangesEnabled())
	assert.Empty(t, cfg.SourceType)
}

func TestConfig_MergeSkipsUnsetFields(t *testing.T) {
	cfg := Config{SourceType: "module", ECMAVersion: 2020, Locations: Bool(true)}
	cfg.Merge(Config{})

	assert.Equal(t, "module", cfg.SourceType)
	assert.Equal(t, 2020, cfg.ECMAVersion)
	assert.True(t, cfg.LocationsEnabled())
}

func TestConfig_MergeOverwritesSetFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Merge(Config{
		SourceType:     "script",
		ECMAVersion:    2015,
		Locations:      Bool(false),
		Ranges:         Bool(true),
		PreserveParens: Bool(true),
	})

	assert.Equal(t, "script", cfg.SourceType)
	assert.Equal(t, 2015, cfg.ECMAVersion)
	assert.False(t, cfg.LocationsEnabled())
	assert.True(t, cfg.RangesEnabled())
	assert.True(t, *cfg.PreserveParens)
}

func TestConfig_MergeFalseIsNotUnset(t *testing.T) {
	cfg := Config{Locations: Bool(true)}
	cfg.Merge(Config{Locations: Bool(false)})

	assert.False(t, cfg.LocationsEnabled(), "an explicit false pointer wins")
}

func TestConfig_LocationsDefaultOnWhenNil(t *testing.T) {
	var cfg Config
	assert.True(t, cfg.LocationsEnabled())
	assert.False(t, cfg.RangesEnabled())
}
