package xmsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageType_String(t *testing.T) {
	assert.Equal(t, "Unknown", Unknown.String())
	assert.Equal(t, "ApplicationPaused", ApplicationPaused.String())
	assert.Equal(t, "ApplicationQuit", ApplicationQuit.String())
	assert.Equal(t, "MessageType(9000)", MessageType(9000).String())
}

func TestRegisterMessageTypeName(t *testing.T) {
	scoreChanged := CustomBase + 100
	require.NoError(t, RegisterMessageTypeName(scoreChanged, "ScoreChanged"))
	require.NoError(t, RegisterMessageTypeName(scoreChanged, "ScoreChanged"))
	assert.Equal(t, "ScoreChanged", scoreChanged.String())

	assert.ErrorIs(t, RegisterMessageTypeName(CustomBase+101, "ScoreChanged"), ErrDuplicateMessageTypeName)
	assert.ErrorIs(t, RegisterMessageTypeName(CustomBase+102, "ApplicationQuit"), ErrDuplicateMessageTypeName)
	assert.ErrorIs(t, RegisterMessageTypeName(ApplicationQuit, "Quit"), ErrReservedMessageType)
	assert.Error(t, RegisterMessageTypeName(CustomBase+103, ""))
	assert.Equal(t, "ApplicationQuit", ApplicationQuit.String())
}
