package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todobar/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in   []string
		want Type
	}{
		{[]string{"add", "pay", "rent", "##", "tomorrow"}, TypeAdd},
		{[]string{"list", "--group", "status"}, TypeList},
		{[]string{"ls"}, TypeList},
		{[]string{"update", "2", "--progress", "40"}, TypeUpdate},
		{[]string{"rm", "1"}, TypeRemove},
		{[]string{"import", "batch.json"}, TypeImport},
		{[]string{"export"}, TypeExport},
		{[]string{"history", "-n", "3"}, TypeHistory},
		{[]string{"init"}, TypeInit},
		{[]string{"HELP"}, TypeHelp},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		require.NoError(t, err, "parse %q", tc.in)
		assert.Equal(t, tc.want, cmd.Type, "parse %q", tc.in)
	}
}

func TestParseAddJoinsWords(t *testing.T) {
	cmd, err := Parse([]string{"add", "pay rent", "##", "urgent;", "home"})
	require.NoError(t, err)
	assert.Equal(t, "pay rent ## urgent; home", cmd.Add.Line)
}

func TestParseUpdateOnlySetsGivenFields(t *testing.T) {
	cmd, err := Parse([]string{"update", "--status", "in-progress", "--urgent", "3"})
	require.NoError(t, err)

	upd := cmd.Update
	assert.Equal(t, 3, upd.Index)
	require.NotNil(t, upd.Status)
	assert.Equal(t, model.StatusInProgress, *upd.Status)
	require.NotNil(t, upd.Urgent)
	assert.True(t, *upd.Urgent)
	assert.Nil(t, upd.Important)
	assert.Nil(t, upd.Progress)
	assert.Nil(t, upd.ETC)

	cmd, err = Parse([]string{"update", "1", "--important=false", "--etc", "0"})
	require.NoError(t, err)
	require.NotNil(t, cmd.Update.Important)
	assert.False(t, *cmd.Update.Important)
	require.NotNil(t, cmd.Update.ETC)
	assert.Equal(t, 0, *cmd.Update.ETC)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   []string
		code ErrorCode
	}{
		{nil, ErrCodeEmptyInput},
		{[]string{"frobnicate"}, ErrCodeUnknownCommand},
		{[]string{"add"}, ErrCodeInvalidArgument},
		{[]string{"list", "--group", "colour"}, ErrCodeInvalidArgument},
		{[]string{"list", "extra"}, ErrCodeInvalidArgument},
		{[]string{"update", "1"}, ErrCodeInvalidArgument},
		{[]string{"update", "1", "--progress", "101"}, ErrCodeInvalidArgument},
		{[]string{"update", "1", "--etc", "-2"}, ErrCodeInvalidArgument},
		{[]string{"update", "1", "--status", "later"}, ErrCodeInvalidArgument},
		{[]string{"update", "x", "--urgent"}, ErrCodeInvalidArgument},
		{[]string{"update", "0", "--urgent"}, ErrCodeInvalidArgument},
		{[]string{"remove"}, ErrCodeInvalidArgument},
		{[]string{"import"}, ErrCodeInvalidArgument},
		{[]string{"export", "a", "b"}, ErrCodeInvalidArgument},
		{[]string{"init", "now"}, ErrCodeInvalidArgument},
	}

	for _, tc := range cases {
		_, err := Parse(tc.in)
		var ce *CommandError
		require.True(t, errors.As(err, &ce), "parse %q: got %v", tc.in, err)
		assert.Equal(t, tc.code, ce.Code, "parse %q", tc.in)
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 2, ExitCode(invalid("bad")))
	assert.Equal(t, 1, ExitCode(errors.New("disk full")))
}
