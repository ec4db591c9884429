// Package classify routes a submitted line either to the command processor
// or to the AI responder.
package classify

import (
	"strings"

	"github.com/nhle/portfolio-term/internal/model"
)

// commandNames is every first word the command processor handles itself,
// including the Unix verbs it answers with a friendly refusal.
var commandNames = []string{
	"help", "whoami", "skills", "experience", "projects",
	"education", "certifications", "contact", "neofetch",
	"ls", "cat", "pwd", "date", "uname", "echo",
	"history", "clear", "sudo", "curl",
	"cd", "mkdir", "rm", "mv", "cp", "touch",
	"vim", "nano", "chmod", "grep", "man",
	"apt", "pip", "npm", "git", "ssh", "wget",
}

// indicators are words that mark a line as a natural-language question.
var indicators = []string{
	"tell", "show", "what", "who", "where", "how",
	"give", "list", "explain", "describe", "his", "your",
	"does", "did", "has", "have", "is", "are", "can",
}

var (
	commandSet   = toSet(commandNames)
	indicatorSet = toSet(indicators)
)

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Classify decides how raw should be handled. Callers reject empty input
// before calling it.
//
// Precedence: a known command as the first word wins, then any
// natural-language indicator, then "more than one word", and a single
// unknown word falls back to the command processor so it can print
// "command not found".
func Classify(raw string) model.Mode {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	if len(words) == 0 {
		return model.ModeCLI
	}

	if IsCommand(words[0]) {
		return model.ModeCLI
	}

	for _, w := range words {
		if _, ok := indicatorSet[w]; ok {
			return model.ModeAI
		}
	}

	if len(words) > 1 {
		return model.ModeAI
	}

	return model.ModeCLI
}

// IsCommand reports whether word (already lower-cased) is a known command.
func IsCommand(word string) bool {
	_, ok := commandSet[word]
	return ok
}

// CommandNames returns a copy of the known command names in declared order.
func CommandNames() []string {
	out := make([]string, len(commandNames))
	copy(out, commandNames)
	return out
}
