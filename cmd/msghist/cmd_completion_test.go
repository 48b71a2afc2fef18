package main

import (
	"strings"
	"testing"
)

func TestGenerateBashCompletion(t *testing.T) {
	output := generateBashCompletion()

	if !strings.HasPrefix(output, "#") {
		t.Error("bash completion should start with a comment")
	}
	if !strings.HasSuffix(strings.TrimSpace(output), "complete -F _msghist msghist") {
		t.Error("bash completion should end with complete registration")
	}
	for _, want := range []string{"list", "mock", "completion", "version", "help"} {
		if !strings.Contains(output, want) {
			t.Errorf("bash completion should contain subcommand %q", want)
		}
	}
	for _, flag := range []string{"--page", "--sender", "--status", "--sort", "--detail", "--seed", "--error-rate"} {
		if !strings.Contains(output, flag) {
			t.Errorf("bash completion should contain flag %q", flag)
		}
	}
}

func TestGenerateZshCompletion(t *testing.T) {
	output := generateZshCompletion()

	if !strings.HasPrefix(output, "#compdef msghist") {
		t.Error("zsh completion must start with #compdef msghist")
	}
	if !strings.HasSuffix(strings.TrimSpace(output), `_msghist "$@"`) {
		t.Error("zsh completion should end with _msghist \"$@\" call")
	}
	for _, want := range []string{"list:", "mock:", "completion:", "version:", "help:"} {
		if !strings.Contains(output, want) {
			t.Errorf("zsh completion should describe %q", want)
		}
	}
	if !strings.Contains(output, "(text json)") {
		t.Error("zsh completion should provide output format values")
	}
}

func TestGenerateFishCompletion(t *testing.T) {
	output := generateFishCompletion()

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, "complete -c msghist") {
			t.Errorf("unexpected fish line: %q", line)
		}
	}
	for _, sub := range []string{"list", "mock", "completion", "version", "help"} {
		if !strings.Contains(output, "-a "+sub) {
			t.Errorf("fish completion should register subcommand %q", sub)
		}
	}
	if !strings.Contains(output, "'zh en'") {
		t.Error("fish completion should offer locales")
	}
}

func TestCompletionScript(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish"} {
		s, err := completionScript(shell)
		if err != nil || s == "" {
			t.Errorf("completionScript(%q) = %d bytes, %v", shell, len(s), err)
		}
	}
	if _, err := completionScript("powershell"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}
