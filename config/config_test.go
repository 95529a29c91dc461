package config_test

import (
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/teamaker/teabot/config"
	"testing"
)

func TestNewWithDefault(t *testing.T) {
	v := config.NewViperWithDefaults()

	assert.Equal(t, false, v.GetBool(config.DebugKey), "%s should be %t", config.DebugKey, false)
	assert.Equal(t, 5000, v.GetInt(config.ResponseCacheSizeKey), "%s should be %d", config.ResponseCacheSizeKey, 5000)
	assert.Equal(t, 0, v.GetInt(config.UserInfoCacheSizeKey), "%s should be %d", config.UserInfoCacheSizeKey, 0)
	assert.Equal(t, "Local", v.GetString(config.TimeLocationKey), "%s should be %s", config.TimeLocationKey, "Local")
	assert.Equal(t, false, v.GetBool(config.ThreadedRepliesKey), "%s should be %t", config.ThreadedRepliesKey, false)
	assert.Equal(t, false, v.GetBool(config.BroadcastThreadedRepliesKey), "%s should be %t", config.BroadcastThreadedRepliesKey, false)
	assert.Equal(t, 16, v.GetInt(config.MessageProcessingPartitionCount), "%s should be %d", config.MessageProcessingPartitionCount, 16)
	assert.Equal(t, 10, v.GetInt(config.MessageProcessingBufferedMessageCount), "%s should be %d", config.MessageProcessingBufferedMessageCount, 10)
}

func TestLayeredConfigWithDefaultsAndOverrides(t *testing.T) {
	v := viper.New()
	v.Set(config.MessageProcessingPartitionCount, 32)
	v.Set(config.ResponseCacheSizeKey, 20)

	v = config.LayerConfigWithDefaults(v)

	assert.Equal(t, 32, v.GetInt(config.MessageProcessingPartitionCount))
	assert.Equal(t, 20, v.GetInt(config.ResponseCacheSizeKey))
	assert.Equal(t, "Local", v.GetString(config.TimeLocationKey))
}

func TestGetTimeLocationWithTimezoneId(t *testing.T) {
	v := viper.New()
	v.Set(config.TimeLocationKey, "America/Los_Angeles")

	timeLoc, err := config.GetTimeLocation(v)

	assert.Nil(t, err)
	if assert.NotNil(t, timeLoc) {
		assert.Equal(t, "America/Los_Angeles", timeLoc.String())
	}
}

func TestGetTimeLocationWithInvalidValue(t *testing.T) {
	v := viper.New()
	v.Set(config.TimeLocationKey, "invalid")

	_, err := config.GetTimeLocation(v)

	if assert.NotNil(t, err) {
		assert.Contains(t, err.Error(), "invalid")
	}
}

func TestGetPluginConfig(t *testing.T) {
	v := viper.New()
	v.Set(config.PluginsKey, map[string]interface{}{
		"teaRota": map[string]interface{}{
			"roster": []string{"@juma", "@adam"},
		},
	})

	pc, err := config.GetPluginConfig(v, "teaRota")

	assert.Nil(t, err)
	if assert.NotNil(t, pc) {
		assert.Equal(t, []string{"@juma", "@adam"}, pc.GetStringSlice("roster"))
	}
}

func TestGetPluginConfigWithMissingConfig(t *testing.T) {
	v := viper.New()

	_, err := config.GetPluginConfig(v, "teaRota")

	if assert.NotNil(t, err) {
		assert.Contains(t, err.Error(), "Missing plugin configuration for plugin [teaRota]")
	}
}

func TestGetPluginConfigOrEmptyWithMissingConfig(t *testing.T) {
	pc := config.GetPluginConfigOrEmpty(viper.New(), "teaRota")

	if assert.NotNil(t, pc) {
		assert.False(t, pc.IsSet("roster"))
	}
}
