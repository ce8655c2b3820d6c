package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "strobe", cmd.Use)
	assert.Contains(t, cmd.Long, "busy")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"run", "once", "report"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)
}

func TestRunCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	runCmd, _, err := cmd.Find([]string{"run"})
	require.NoError(t, err)

	threadsFlag := runCmd.Flags().Lookup("threads")
	require.NotNil(t, threadsFlag)
	assert.Equal(t, "p", threadsFlag.Shorthand)
	assert.Equal(t, "1", threadsFlag.DefValue)

	secondsFlag := runCmd.Flags().Lookup("seconds")
	require.NotNil(t, secondsFlag)
	assert.Equal(t, "t", secondsFlag.Shorthand)
	assert.Equal(t, "10", secondsFlag.DefValue)

	require.NotNil(t, runCmd.Flags().Lookup("plan"))
	require.NotNil(t, runCmd.Flags().Lookup("db"))
}

func TestReportCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	reportCmd, _, err := cmd.Find([]string{"report"})
	require.NoError(t, err)

	dbFlag := reportCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "", dbFlag.DefValue)
}
