// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand_Subcommands(t *testing.T) {
	want := []string{"pick", "ghost", "catalog", "config", "version", "completion"}

	for _, name := range want {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command should register %q", name)
		}
	}
}

func TestRootCommand_GlobalFlags(t *testing.T) {
	for _, name := range []string{"log-level", "use-tui", "catalog"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing global flag --%s", name)
		}
	}

	if got := rootCmd.PersistentFlags().Lookup("catalog").DefValue; got != "sample" {
		t.Errorf("--catalog default = %q, want sample", got)
	}
}

func TestGenerateHelpMarkdown(t *testing.T) {
	md := generateHelpMarkdown(rootCmd)

	for _, want := range []string{"# sift", "## Available Commands", "**pick**", "**ghost**", "## Flags"} {
		if !strings.Contains(md, want) {
			t.Errorf("help markdown should contain %q", want)
		}
	}
}

func TestGenerateUsageMarkdown(t *testing.T) {
	var pickCmd = rootCmd
	for _, sub := range rootCmd.Commands() {
		if sub.Name() == "pick" {
			pickCmd = sub
		}
	}

	md := generateUsageMarkdown(pickCmd)
	if !strings.Contains(md, "sift pick") {
		t.Errorf("usage should show the command line, got %q", md)
	}
	if !strings.Contains(md, "### Global Flags") {
		t.Error("usage should list inherited flags")
	}
}

func TestCompletionCommand_LinuxShellsOnly(t *testing.T) {
	for _, sub := range rootCmd.Commands() {
		if sub.Name() != "completion" {
			continue
		}
		var shells []string
		for _, s := range sub.Commands() {
			shells = append(shells, s.Name())
		}
		if strings.Join(shells, ",") != "bash,fish,zsh" {
			t.Errorf("completion shells = %v", shells)
		}
		return
	}
	t.Fatal("completion command not found")
}

func TestCompletionShells_GenerateScripts(t *testing.T) {
	for _, shell := range completionShells {
		for _, desc := range []bool{true, false} {
			var buf bytes.Buffer
			if err := shell.gen(rootCmd, &buf, desc); err != nil {
				t.Errorf("%s (descriptions %v): %v", shell.name, desc, err)
				continue
			}
			if !strings.Contains(buf.String(), "sift") {
				t.Errorf("%s script should complete sift", shell.name)
			}
		}
		if !strings.Contains(shell.load, "completion "+shell.name) {
			t.Errorf("%s load line = %q", shell.name, shell.load)
		}
	}
}

func TestCompletionCommand_NoDescriptionsFlag(t *testing.T) {
	completion, _, err := rootCmd.Find([]string{"completion", "zsh"})
	if err != nil || completion.Name() != "zsh" {
		t.Fatalf("completion zsh not found: %v", err)
	}
	if completion.Flags().Lookup("no-descriptions") == nil && completion.InheritedFlags().Lookup("no-descriptions") == nil {
		t.Error("shell commands should accept --no-descriptions")
	}
}

func TestGenerateHelpMarkdown_SubcommandsOnly(t *testing.T) {
	md := generateHelpMarkdown(rootCmd)
	if strings.Contains(md, "**help**") {
		t.Error("the help command should not be listed")
	}
	if strings.Contains(md, "## Usage") {
		t.Error("the root command only groups subcommands and has no usage line")
	}
}
