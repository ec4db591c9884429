package command

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/portfolio-term/internal/model"
	"github.com/nhle/portfolio-term/tests/testutil"
)

var fixedNow = time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)

func newTestProcessor(opts ...Option) *Processor {
	id := IdentityFromConfig(model.DefaultAppConfig().Identity)
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(id, opts...)
}

// flatten joins every textual field of out so tests can look for phrases.
func flatten(out model.Output) string {
	var b strings.Builder
	for _, blk := range out.Blocks {
		b.WriteString(blk.Label)
		b.WriteString(" ")
		b.WriteString(blk.Command)
		b.WriteString(" ")
		b.WriteString(blk.Text)
		b.WriteString(" ")
		b.WriteString(strings.Join(blk.Items, " "))
		b.WriteString("\n")
	}
	return b.String()
}

func blocksOfKind(out model.Output, kind model.BlockKind) []model.Block {
	var found []model.Block
	for _, blk := range out.Blocks {
		if blk.Kind == kind {
			found = append(found, blk)
		}
	}
	return found
}

func TestProcess_NilDataShowsLoadingNotice(t *testing.T) {
	p := newTestProcessor()
	for _, input := range []string{"help", "clear", "nonsense", ""} {
		res := p.Process(input, nil, nil)
		require.Len(t, res.Output.Blocks, 1)
		assert.Equal(t, "Loading portfolio data...", res.Output.Blocks[0].Text)
		assert.False(t, res.Clear)
	}
}

func TestProcess_SkillsEnumeratesCategoriesInOrder(t *testing.T) {
	p := newTestProcessor()
	data := testutil.SamplePortfolio()

	res := p.Process("skills", data, nil)

	headings := blocksOfKind(res.Output, model.BlockHeading)
	require.Len(t, headings, 3)
	assert.Equal(t, "▸ Languages", headings[0].Text)
	assert.Equal(t, "▸ Cloud", headings[1].Text)
	assert.Equal(t, "▸ Databases", headings[2].Text)

	tags := blocksOfKind(res.Output, model.BlockTags)
	require.Len(t, tags, 3)
	assert.Equal(t, []string{"TypeScript", "Go", "Python"}, tags[0].Items)
}

func TestProcess_CatTypoSuggestsFile(t *testing.T) {
	p := newTestProcessor()
	res := p.Process("cat about.tx", testutil.SamplePortfolio(), nil)

	require.Len(t, res.Output.Blocks, 2)
	assert.Equal(t, model.BlockError, res.Output.Blocks[0].Kind)
	assert.Equal(t, "cat: about.tx: No such file or directory", res.Output.Blocks[0].Text)
	assert.Equal(t, model.BlockHint, res.Output.Blocks[1].Kind)
	assert.Equal(t, "cat about.txt", res.Output.Blocks[1].Command)
}

func TestProcess_CatTotalMissListsFiles(t *testing.T) {
	p := newTestProcessor()
	res := p.Process("cat secrets", testutil.SamplePortfolio(), nil)

	require.Len(t, res.Output.Blocks, 2)
	hint := res.Output.Blocks[1]
	assert.Equal(t, "ls", hint.Command)
	for _, name := range FileNames() {
		assert.Contains(t, hint.Label, name)
	}
}

func TestProcess_CatEdgeCases(t *testing.T) {
	p := newTestProcessor()
	data := testutil.SamplePortfolio()

	tests := []struct {
		input string
		want  string
	}{
		{"cat", "cat: missing file operand"},
		{"cat projects", "cat: projects/: Is a directory. Try: projects"},
		{"cat projects/", "cat: projects/: Is a directory. Try: projects"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := p.Process(tt.input, data, nil)
			require.Len(t, res.Output.Blocks, 1)
			assert.Equal(t, model.BlockError, res.Output.Blocks[0].Kind)
			assert.Equal(t, tt.want, res.Output.Blocks[0].Text)
		})
	}
}

func TestProcess_CatFileMatchesCommand(t *testing.T) {
	p := newTestProcessor()
	data := testutil.SamplePortfolio()

	pairs := map[string]string{
		"cat about.txt":          "whoami",
		"cat skills.json":        "skills",
		"cat experience.md":      "experience",
		"cat contact.txt":        "contact",
		"cat certifications.txt": "certifications",
	}
	for file, cmd := range pairs {
		t.Run(file, func(t *testing.T) {
			assert.Equal(t, p.Process(cmd, data, nil), p.Process(file, data, nil))
		})
	}
}

type fixedSuggester string

func (f fixedSuggester) SuggestFile(string, []string) (string, bool) {
	return string(f), f != ""
}

func TestProcess_CatUsesInjectedSuggester(t *testing.T) {
	p := newTestProcessor(WithSuggester(fixedSuggester("contact.txt")))
	res := p.Process("cat zzz", testutil.SamplePortfolio(), nil)

	require.Len(t, res.Output.Blocks, 2)
	assert.Equal(t, "cat contact.txt", res.Output.Blocks[1].Command)
}

func TestProcess_Cd(t *testing.T) {
	p := newTestProcessor()
	data := testutil.SamplePortfolio()

	t.Run("empty prints home", func(t *testing.T) {
		res := p.Process("cd", data, nil)
		require.Len(t, res.Output.Blocks, 1)
		assert.Equal(t, "/home/suraj/portfolio", res.Output.Blocks[0].Text)
	})

	t.Run("file is not a directory", func(t *testing.T) {
		res := p.Process("cd skills.json", data, nil)
		require.Len(t, res.Output.Blocks, 2)
		assert.Equal(t, "bash: cd: skills.json: Not a directory", res.Output.Blocks[0].Text)
		assert.Equal(t, "cat skills.json", res.Output.Blocks[1].Command)
	})

	t.Run("projects dir", func(t *testing.T) {
		res := p.Process("cd projects/", data, nil)
		require.Len(t, res.Output.Blocks, 1)
		assert.Equal(t, model.BlockHint, res.Output.Blocks[0].Kind)
		assert.Equal(t, "projects", res.Output.Blocks[0].Command)
	})

	t.Run("unknown", func(t *testing.T) {
		res := p.Process("cd /etc", data, nil)
		require.Len(t, res.Output.Blocks, 2)
		assert.Equal(t, "bash: cd: /etc: No such directory", res.Output.Blocks[0].Text)
		assert.Equal(t, "ls", res.Output.Blocks[1].Command)
	})
}

func TestProcess_EchoKeepsOriginalCase(t *testing.T) {
	p := newTestProcessor()
	data := testutil.SamplePortfolio()

	assert.Equal(t, "Hello World", p.Process("echo Hello World", data, nil).Output.Blocks[0].Text)
	assert.Equal(t, "Hi", p.Process("  ECHO Hi  ", data, nil).Output.Blocks[0].Text)
	assert.Equal(t, "", p.Process("echo", data, nil).Output.Blocks[0].Text)
}

func TestProcess_EchoCutsOnRuneBoundary(t *testing.T) {
	p := newTestProcessor()
	data := testutil.SamplePortfolio()

	text := p.Process("echo\u00a0hello", data, nil).Output.Blocks[0].Text
	assert.Equal(t, "hello", text)
	assert.True(t, utf8.ValidString(text))
	assert.Equal(t, "héllo wörld", p.Process("echo héllo wörld", data, nil).Output.Blocks[0].Text)
}

func TestProcess_Sudo(t *testing.T) {
	p := newTestProcessor()
	data := testutil.SamplePortfolio()

	res := p.Process("sudo hire-me", data, nil)
	require.Len(t, res.Output.Blocks, 1)
	card := res.Output.Blocks[0]
	assert.Equal(t, model.BlockCard, card.Kind)
	assert.Contains(t, card.Items, "→ Candidate : Suraj Kumar")

	res = p.Process("sudo rm -rf /", data, nil)
	assert.Equal(t, "sudo: rm -rf /: command not found", res.Output.Blocks[0].Text)
}

func TestProcess_CurlResumeRequestsBrowser(t *testing.T) {
	p := newTestProcessor()
	data := testutil.SamplePortfolio()

	res := p.Process("curl resume.pdf", data, nil)
	assert.Equal(t, model.DefaultAppConfig().Identity.ResumeURL, res.OpenURL)
	require.Len(t, res.Output.Blocks, 1)
	assert.Equal(t, model.BlockLink, res.Output.Blocks[0].Kind)

	res = p.Process("curl example.com", data, nil)
	assert.Empty(t, res.OpenURL)
	assert.Equal(t, "curl: (6) Could not resolve host: example.com", res.Output.Blocks[0].Text)
}

func TestProcess_ClearRequestsReset(t *testing.T) {
	res := newTestProcessor().Process("clear", testutil.SamplePortfolio(), nil)
	assert.True(t, res.Clear)
	assert.True(t, res.Output.IsEmpty())
}

func TestProcess_History(t *testing.T) {
	res := newTestProcessor().Process("history", testutil.SamplePortfolio(), []string{"help", "skills"})

	require.Len(t, res.Output.Blocks, 2)
	assert.Equal(t, "   1", res.Output.Blocks[0].Label)
	assert.Equal(t, "help", res.Output.Blocks[0].Text)
	assert.Equal(t, "   2", res.Output.Blocks[1].Label)
}

func TestProcess_Flags(t *testing.T) {
	p := newTestProcessor()
	data := testutil.SamplePortfolio()

	short := p.Process("experience --short", data, nil)
	require.Len(t, short.Output.Blocks, 2)
	assert.Equal(t, "Acme Corp", short.Output.Blocks[0].Label)
	assert.Equal(t, "— Software Engineer [2023 - Present]", short.Output.Blocks[0].Text)

	full := p.Process("experience", data, nil)
	assert.Len(t, blocksOfKind(full.Output, model.BlockBullet), 3)

	list := p.Process("projects --ls", data, nil)
	require.Len(t, list.Output.Blocks, 2)
	assert.Equal(t, "◆ Terminal Portfolio", list.Output.Blocks[0].Text)

	ignored := p.Process("skills --bogus extra", data, nil)
	assert.Equal(t, p.Process("skills", data, nil), ignored)
}

func TestProcess_UnixVerbs(t *testing.T) {
	p := newTestProcessor()
	data := testutil.SamplePortfolio()

	tests := []struct {
		input string
		want  string
	}{
		{"rm -rf /", "bash: rm: permission denied (read-only filesystem)"},
		{"chmod 777 x", "bash: chmod: permission denied (read-only filesystem)"},
		{"vim about.txt", "vim: this portfolio is already perfect, no edits needed 😎"},
		{"grep go", "grep: try asking the AI instead! It knows everything about Suraj."},
		{"man ls", "No manual entry for ls. Try: help"},
		{"man", "No manual entry for man. Try: help"},
		{"npm install", "bash: npm: network commands are not available in this terminal"},
		{"pwd", "/home/suraj/portfolio"},
		{"uname -a", "Linux suraj-portfolio 5.15.0-generic #1 SMP x86_64 GNU/Linux"},
		{"date", "Sun Oct 18 2026 09:30:00 GMT+0000 (UTC)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := p.Process(tt.input, data, nil)
			require.NotEmpty(t, res.Output.Blocks)
			assert.Equal(t, tt.want, res.Output.Blocks[0].Text)
		})
	}
}

func TestProcess_GitLinksRepo(t *testing.T) {
	res := newTestProcessor().Process("git log", testutil.SamplePortfolio(), nil)
	require.Len(t, res.Output.Blocks, 1)
	assert.Equal(t, "github.com/surajkumar", res.Output.Blocks[0].Text)
}

func TestProcess_UnknownCommand(t *testing.T) {
	res := newTestProcessor().Process("foo", testutil.SamplePortfolio(), nil)

	require.Len(t, res.Output.Blocks, 2)
	assert.Equal(t, "bash: foo: command not found", res.Output.Blocks[0].Text)
	assert.Contains(t, res.Output.Blocks[1].Text, "Type 'help'")
}

func TestProcess_EveryKnownCommandRenders(t *testing.T) {
	p := newTestProcessor()
	data := testutil.SamplePortfolio()

	for word := range kinds {
		t.Run(word, func(t *testing.T) {
			res := p.Process(word, data, []string{word})
			assert.True(t, res.Clear || !res.Output.IsEmpty() || word == "echo",
				"command %q produced nothing", word)
		})
	}
}

func TestProcess_IsPure(t *testing.T) {
	p := newTestProcessor()
	data := testutil.SamplePortfolio()
	before := flatten(p.Process("whoami", data, nil).Output)

	for _, input := range []string{"skills", "neofetch", "sudo hire-me", "contact"} {
		first := p.Process(input, data, []string{"a"})
		second := p.Process(input, data, []string{"a"})
		assert.Equal(t, first, second)
	}

	assert.Equal(t, before, flatten(p.Process("whoami", data, nil).Output))
	assert.Equal(t, testutil.SamplePortfolio(), data)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindReadOnly, kindOf("touch"))
	assert.Equal(t, KindNetwork, kindOf("ssh"))
	assert.Equal(t, KindUnknown, kindOf("HELP"))
	assert.Equal(t, KindUnknown, kindOf(""))
}
