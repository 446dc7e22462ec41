package mcp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/flaggate/flaggate/internal/adapters/inbound/mcp"
)

func TestNewFlaggateMCPServer(t *testing.T) {
	s := mcpadapter.NewFlaggateMCPServer()
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := mcpadapter.NewFlaggateMCPServer()
	require.NotNil(t, s)

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"flaggate_check",
		"flaggate_policy",
		"flaggate_extract",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools))
}
