// Package command implements the virtual shell: the portfolio commands, the
// Unix-flavoured verbs it answers with friendly refusals, and the
// autocomplete catalog.
package command

import (
	"strings"
	"time"

	"github.com/nhle/portfolio-term/internal/model"
)

// Kind identifies the handler for a first word.
type Kind int

const (
	KindUnknown Kind = iota
	KindHelp
	KindWhoami
	KindSkills
	KindExperience
	KindProjects
	KindEducation
	KindCertifications
	KindContact
	KindNeofetch
	KindLs
	KindCat
	KindPwd
	KindDate
	KindUname
	KindEcho
	KindHistory
	KindClear
	KindSudo
	KindCurl
	KindCd
	KindReadOnly
	KindEditor
	KindGrep
	KindMan
	KindGit
	KindNetwork
)

var kinds = map[string]Kind{
	"help":           KindHelp,
	"whoami":         KindWhoami,
	"skills":         KindSkills,
	"experience":     KindExperience,
	"projects":       KindProjects,
	"education":      KindEducation,
	"certifications": KindCertifications,
	"contact":        KindContact,
	"neofetch":       KindNeofetch,
	"ls":             KindLs,
	"cat":            KindCat,
	"pwd":            KindPwd,
	"date":           KindDate,
	"uname":          KindUname,
	"echo":           KindEcho,
	"history":        KindHistory,
	"clear":          KindClear,
	"sudo":           KindSudo,
	"curl":           KindCurl,
	"cd":             KindCd,
	"mkdir":          KindReadOnly,
	"rm":             KindReadOnly,
	"mv":             KindReadOnly,
	"cp":             KindReadOnly,
	"touch":          KindReadOnly,
	"chmod":          KindReadOnly,
	"vim":            KindEditor,
	"nano":           KindEditor,
	"grep":           KindGrep,
	"man":            KindMan,
	"git":            KindGit,
	"ssh":            KindNetwork,
	"wget":           KindNetwork,
	"apt":            KindNetwork,
	"pip":            KindNetwork,
	"npm":            KindNetwork,
}

// kindOf maps a lower-cased first word to its handler kind.
func kindOf(word string) Kind {
	if k, ok := kinds[word]; ok {
		return k
	}
	return KindUnknown
}

// Identity holds the strings the shell prints about the machine it
// pretends to be.
type Identity struct {
	User       string
	Host       string
	Domain     string
	ResumeURL  string
	GitHubURL  string
	Role       string
	Stack      string
	Location   string
	Logo       string
	Banner     string
	StatusLine string
}

// IdentityFromConfig copies the identity section of the app config.
func IdentityFromConfig(c model.IdentityConfig) Identity {
	return Identity{
		User:       c.User,
		Host:       c.Host,
		Domain:     c.Domain,
		ResumeURL:  c.ResumeURL,
		GitHubURL:  c.GitHubURL,
		Role:       c.Role,
		Stack:      c.Stack,
		Location:   c.Location,
		Logo:       c.AsciiLogo,
		Banner:     c.Banner,
		StatusLine: c.StatusLine,
	}
}

// HomeDir is the working directory reported by pwd and a bare cd.
func (id Identity) HomeDir() string {
	return "/home/" + id.User + "/portfolio"
}

// Result is the outcome of one command. Clear asks the caller to empty the
// transcript; OpenURL, when set, asks it to open the address in a browser.
type Result struct {
	Output  model.Output
	Clear   bool
	OpenURL string
}

// Option configures a Processor.
type Option func(*Processor)

// WithClock replaces time.Now as the source for the date command.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// WithSuggester replaces the file-name suggestion strategy used by cat.
func WithSuggester(s FileSuggester) Option {
	return func(p *Processor) { p.suggester = s }
}

// Processor turns a command line into rendered output. It performs no I/O.
type Processor struct {
	id        Identity
	now       func() time.Time
	suggester FileSuggester
}

// New creates a Processor for the given identity.
func New(id Identity, opts ...Option) *Processor {
	p := &Processor{
		id:        id,
		now:       time.Now,
		suggester: StemSuggester{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs input against data. history is the list of submissions so
// far, oldest first. A nil data snapshot yields a loading notice.
func (p *Processor) Process(input string, data *model.PortfolioData, history []string) Result {
	trimmed := strings.TrimSpace(input)
	parts := strings.Fields(strings.ToLower(trimmed))

	if data == nil {
		return outputOf(model.Text(model.ToneMuted, "Loading portfolio data..."))
	}

	first := ""
	if len(parts) > 0 {
		first = parts[0]
	}
	arg := ""
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch kindOf(first) {
	case KindHelp:
		return Result{Output: renderHelp()}
	case KindWhoami:
		return Result{Output: p.renderWhoami(data)}
	case KindSkills:
		return Result{Output: renderSkills(data)}
	case KindExperience:
		return Result{Output: renderExperience(data, hasFlag(parts, "--short"))}
	case KindProjects:
		return Result{Output: renderProjects(data, hasFlag(parts, "--ls"))}
	case KindEducation:
		return Result{Output: renderEducation(data)}
	case KindCertifications:
		return Result{Output: renderCertifications(data)}
	case KindContact:
		return Result{Output: renderContact(data)}
	case KindNeofetch:
		return Result{Output: p.renderNeofetch()}
	case KindLs:
		return outputOf(model.Text(model.ToneDefault, strings.Join(listing(), "  ")))
	case KindCat:
		return Result{Output: p.cat(arg, data)}
	case KindPwd:
		return outputOf(model.Text(model.ToneDefault, p.id.HomeDir()))
	case KindDate:
		return outputOf(model.Text(model.ToneDefault, p.now().Format(dateLayout)))
	case KindUname:
		return outputOf(model.Text(model.ToneDefault,
			"Linux "+p.id.Host+" 5.15.0-generic #1 SMP x86_64 GNU/Linux"))
	case KindEcho:
		return outputOf(model.Text(model.ToneDefault, echoText(trimmed)))
	case KindHistory:
		return Result{Output: renderHistory(history)}
	case KindClear:
		return Result{Clear: true}
	case KindSudo:
		if arg == "hire-me" {
			return Result{Output: renderHireMe(data)}
		}
		return outputOf(model.Error("sudo: " + strings.Join(parts[1:], " ") + ": command not found"))
	case KindCurl:
		if arg == "resume.pdf" {
			return Result{
				Output: model.Output{Blocks: []model.Block{{
					Kind:  model.BlockLink,
					Tone:  model.ToneSuccess,
					Label: "200 OK — Resume opened in new tab:",
					Text:  "resume.pdf",
				}}},
				OpenURL: p.id.ResumeURL,
			}
		}
		return outputOf(model.Error("curl: (6) Could not resolve host: " + arg))
	case KindCd:
		return Result{Output: p.cd(arg)}
	case KindReadOnly:
		return outputOf(
			model.Error("bash: "+first+": permission denied (read-only filesystem)"),
			model.Text(model.ToneMuted, "🔒 This is a virtual portfolio — no file modifications allowed!"),
		)
	case KindEditor:
		return outputOf(model.Text(model.ToneAccent, first+": this portfolio is already perfect, no edits needed 😎"))
	case KindGrep:
		return outputOf(model.Text(model.ToneMuted,
			"grep: try asking the AI instead! It knows everything about "+firstName(data, p.id)+"."))
	case KindMan:
		topic := arg
		if topic == "" {
			topic = first
		}
		return outputOf(model.Text(model.ToneMuted, "No manual entry for "+topic+". Try: help"))
	case KindGit:
		return outputOf(model.Block{
			Kind:  model.BlockLink,
			Tone:  model.ToneDefault,
			Label: "🔗 Check out the real repo:",
			Text:  displayURL(p.id.GitHubURL),
		})
	case KindNetwork:
		return outputOf(model.Error("bash: " + first + ": network commands are not available in this terminal"))
	default:
		return outputOf(
			model.Error("bash: "+first+": command not found"),
			model.Text(model.ToneMuted, "Type 'help' to see available commands or just ask me anything in plain English!"),
		)
	}
}

// cat resolves name against the virtual file table.
func (p *Processor) cat(name string, data *model.PortfolioData) model.Output {
	if isProjectsDir(name) {
		return model.Output{Blocks: []model.Block{model.Error("cat: projects/: Is a directory. Try: projects")}}
	}

	if f, ok := lookupFile(name); ok {
		return p.fileContents(f, data)
	}

	if name == "" {
		return model.Output{Blocks: []model.Block{model.Error("cat: missing file operand")}}
	}

	known := FileNames()
	out := model.Output{Blocks: []model.Block{model.Error("cat: " + name + ": No such file or directory")}}
	if suggestion, ok := p.suggester.SuggestFile(name, known); ok {
		out = out.Add(model.Hint("💡 Did you mean: ", "cat "+suggestion, "?"))
		return out
	}
	out = out.Add(model.Hint("📁 Available files: "+strings.Join(known, ", ")+" — Try ", "ls", ""))
	return out
}

func (p *Processor) fileContents(f virtualFile, data *model.PortfolioData) model.Output {
	switch f.kind {
	case KindWhoami:
		return p.renderWhoami(data)
	case KindSkills:
		return renderSkills(data)
	case KindExperience:
		return renderExperience(data, false)
	case KindContact:
		return renderContact(data)
	case KindCertifications:
		return renderCertifications(data)
	default:
		return model.Output{Blocks: []model.Block{model.Error("cat: " + f.name + ": Permission denied")}}
	}
}

// cd simulates a read-only filesystem rooted at the home directory.
func (p *Processor) cd(target string) model.Output {
	var out model.Output
	switch {
	case target == "":
		out = out.Add(model.Text(model.ToneDefault, p.id.HomeDir()))
	case isKnownFile(target):
		out = out.Add(
			model.Error("bash: cd: "+target+": Not a directory"),
			model.Hint("💡 Try: ", "cat "+target, " to read it"),
		)
	case isProjectsDir(target):
		out = out.Add(model.Hint("📂 projects/ — Use ", "projects", " to view all projects"))
	default:
		out = out.Add(
			model.Error("bash: cd: "+target+": No such directory"),
			model.Hint("📁 Try ", "ls", " to see available files"),
		)
	}
	return out
}

func isKnownFile(name string) bool {
	_, ok := lookupFile(name)
	return ok
}

func outputOf(blocks ...model.Block) Result {
	return Result{Output: model.Output{Blocks: blocks}}
}

func hasFlag(parts []string, flag string) bool {
	for _, p := range parts {
		if p == flag {
			return true
		}
	}
	return false
}

// echoText returns everything after "echo " in the trimmed original-case
// input, or nothing when there is no argument.
func echoText(trimmed string) string {
	runes := []rune(trimmed)
	if len(runes) <= 5 {
		return ""
	}
	return string(runes[5:])
}
