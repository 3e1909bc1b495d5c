package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDirFromArgs(t *testing.T) {
	assert.Equal(t, "/tmp/cfg", configDirFromArgs([]string{"stats", "--config", "/tmp/cfg"}))
	assert.Equal(t, "/tmp/cfg", configDirFromArgs([]string{"--config=/tmp/cfg", "stats"}))
	assert.Equal(t, "", configDirFromArgs([]string{"stats", "--config"}))
	assert.Equal(t, "", configDirFromArgs(nil))
}

func TestCommandName(t *testing.T) {
	assert.Equal(t, "trade", commandName([]string{"--config", "/tmp/cfg", "trade", "add"}))
	assert.Equal(t, "stats", commandName([]string{"--json", "stats"}))
	assert.Equal(t, "journal", commandName([]string{"--debug"}))
}
