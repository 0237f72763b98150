package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFallsBackToDefault(t *testing.T) {
	assert.Equal(t, "fallback", GetString("missing.key", "fallback"))
	assert.Equal(t, 42, GetInt("missing.int", 42))
	assert.True(t, GetBool("missing.bool", true))
}

func TestAddRegistersBlock(t *testing.T) {
	Add("unit", func() map[string]interface{} {
		return map[string]interface{}{
			"name":  Env("UNIT_NAME", "tarot"),
			"suits": "Wands, Cups,,Swords ,Pentacles",
		}
	})
	loadConfig()

	assert.Equal(t, "tarot", GetString("unit.name"))
	assert.Equal(t, []string{"Wands", "Cups", "Swords", "Pentacles"}, GetStringSlice("unit.suits"))
}
