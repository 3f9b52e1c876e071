// internal/cli/root_test.go
package cli

import (
	"bytes"
	"testing"
)

// TestRootRequiresServerArgument: invoking without a server script path is a
// usage error before any connection work begins.
func TestRootRequiresServerArgument(t *testing.T) {
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{})

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected a usage error with no server scripts")
	}
}

func TestRootFlagsRegistered(t *testing.T) {
	for _, name := range []string{"config", "model", "baseURL", "maxToolRounds", "mcpInitTimeout", "timeout", "logFile", "debug"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Fatalf("flag %q not registered", name)
		}
	}
}
