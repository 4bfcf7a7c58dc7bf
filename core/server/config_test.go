package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigIsProtected(t *testing.T) {
	assert.False(t, Config{}.IsProtected())
	assert.True(t, Config{ApiKey: "secret"}.IsProtected())
}
