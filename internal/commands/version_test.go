package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionVariables(t *testing.T) {
	// Default values when not set via ldflags
	assert.Equal(t, "dev", Version)
	assert.Equal(t, "none", Commit)
	assert.Equal(t, "unknown", BuildDate)
}

func TestGlobalFlags(t *testing.T) {
	resetFlags(rootCmd)
	assert.False(t, GetVerbose())
	assert.False(t, GetJSONOutput())
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := execute(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "telstra-numbers dev")
	assert.Contains(t, stdout, "messaging v3 (3.1.0)")

	code, stdout, _ = execute(t, "version", "--json")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, `"apiVersion": "3.1.0"`)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abcdefg", truncate("abcdefghij", 7))
	assert.Equal(t, "abc", truncate("abc", 7))
}
