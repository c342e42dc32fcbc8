package featureflags

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvManager_DefaultsWhenUnset(t *testing.T) {
	manager := NewEnvManager("TEST_FEATURE_")
	ctx := context.Background()

	for _, flag := range All {
		assert.Equal(t, Defaults[flag], manager.IsEnabled(ctx, flag), string(flag))
	}
}

func TestEnvManager_DisabledWhenFlagSetFalse(t *testing.T) {
	t.Setenv("TEST_FEATURE_LINK_PREVIEW", "false")

	manager := NewEnvManager("TEST_FEATURE_")
	assert.False(t, manager.IsEnabled(context.Background(), LinkPreview))
}

func TestEnvManager_MultipleValues(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{"true lowercase", "true", true},
		{"TRUE uppercase", "TRUE", true},
		{"1 numeric", "1", true},
		{"enabled", "enabled", true},
		{"ENABLED", "ENABLED", true},
		{"false", "false", false},
		{"0", "0", false},
		{"other", "yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_FLAG", tt.value)

			manager := NewEnvManager("TEST_")
			assert.Equal(t, tt.expected, manager.IsEnabled(context.Background(), "FLAG"))
		})
	}
}

func TestEnvManager_SetEnabled(t *testing.T) {
	manager := NewEnvManager("TEST_")
	ctx := context.Background()

	manager.SetEnabled(BatchEnabled, false)
	assert.False(t, manager.IsEnabled(ctx, BatchEnabled))

	manager.SetEnabled(BatchEnabled, true)
	assert.True(t, manager.IsEnabled(ctx, BatchEnabled))
}

func TestEnvManager_OverrideTakesPrecedence(t *testing.T) {
	t.Setenv("TEST_FEATURE_RESULT_CACHE", "true")

	manager := NewEnvManager("TEST_FEATURE_")
	manager.SetEnabled(ResultCache, false)

	assert.False(t, manager.IsEnabled(context.Background(), ResultCache))
}

func TestEnvManager_GetAllFlags(t *testing.T) {
	t.Setenv("TEST_FEATURE_RATE_LIMIT_ENABLED", "0")

	manager := NewEnvManager("TEST_FEATURE_")
	flags := manager.GetAllFlags()

	assert.Len(t, flags, len(All))
	assert.False(t, flags[RateLimitEnabled])
	assert.True(t, flags[ResultCache])
}

func TestStaticManager(t *testing.T) {
	manager := NewStaticManager(map[FeatureFlag]bool{LinkPreview: true})
	ctx := context.Background()

	assert.True(t, manager.IsEnabled(ctx, LinkPreview))
	assert.False(t, manager.IsEnabled(ctx, ResultCache))

	manager.SetEnabled(ResultCache, true)
	all := manager.GetAllFlags()
	assert.True(t, all[ResultCache])

	all[LinkPreview] = false
	assert.True(t, manager.IsEnabled(ctx, LinkPreview), "GetAllFlags must return a copy")
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.False(t, IsEnabled(ctx, ResultCache), "no manager disables everything")

	ctx = WithManager(ctx, NewStaticManager(map[FeatureFlag]bool{ResultCache: true}))
	assert.True(t, IsEnabled(ctx, ResultCache))
	assert.False(t, IsEnabled(ctx, BatchEnabled))
}
