package command

import (
	"fmt"
	"strings"

	"github.com/nhle/portfolio-term/internal/model"
)

// dateLayout mimics a browser's Date.toString().
const dateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

var helpRows = [][2]string{
	{"help", "Show this help menu"},
	{"whoami", "Display profile summary"},
	{"skills", "List technical skills by category"},
	{"experience", "Show work experience timeline"},
	{"experience --short", "Condensed experience view"},
	{"projects", "Show project portfolio"},
	{"projects --ls", "List project names only"},
	{"education", "Show education details"},
	{"certifications", "List certifications"},
	{"contact", "Display contact information"},
	{"neofetch", "System info (portfolio style)"},
	{"ls", "List available files"},
	{"cat <file>", "Read a file"},
	{"pwd", "Print working directory"},
	{"date", "Show current date"},
	{"uname -a", "Show system information"},
	{"echo <text>", "Print text"},
	{"history", "Show command history"},
	{"clear", "Clear the terminal"},
	{"sudo hire-me", "🤫 Easter egg"},
	{"curl resume.pdf", "Get resume link"},
}

func renderHelp() model.Output {
	var out model.Output
	for _, row := range helpRows {
		out = out.Add(model.Block{Kind: model.BlockPair, Tone: model.ToneSuccess, Label: row[0], Text: row[1]})
	}
	return out.Add(model.Text(model.ToneMuted,
		"Tip: Use ↑↓ for history · Tab to autocomplete · Or just ask me anything!"))
}

func (p *Processor) renderWhoami(data *model.PortfolioData) model.Output {
	var out model.Output
	if p.id.Banner != "" {
		out = out.Add(model.Block{Kind: model.BlockBanner, Tone: model.ToneAccent, Items: strings.Split(p.id.Banner, "\n")})
	}
	return out.Add(model.Text(model.ToneMuted, data.Summary))
}

func renderSkills(data *model.PortfolioData) model.Output {
	var out model.Output
	for _, group := range data.Skills {
		out = out.Add(
			model.Block{Kind: model.BlockHeading, Tone: model.ToneAccent, Text: "▸ " + group.Category},
			model.Block{Kind: model.BlockTags, Tone: model.TonePurple, Items: group.Items},
		)
	}
	return out
}

func renderExperience(data *model.PortfolioData, short bool) model.Output {
	var out model.Output
	for _, exp := range data.Experience {
		if short {
			out = out.Add(model.Block{
				Kind:  model.BlockPair,
				Tone:  model.ToneAccent,
				Label: exp.Company,
				Text:  "— " + exp.Role + " [" + exp.Period + "]",
			})
			continue
		}
		out = out.Add(
			model.Block{Kind: model.BlockHeading, Tone: model.ToneAccent, Text: exp.Company},
			model.Text(model.ToneDefault, exp.Role),
			model.Text(model.ToneMuted, exp.Period+" · "+exp.Location),
		)
		for _, h := range exp.Highlights {
			out = out.Add(bullet("▹", h))
		}
	}
	return out
}

func renderProjects(data *model.PortfolioData, listOnly bool) model.Output {
	var out model.Output
	for _, proj := range data.Projects {
		if listOnly {
			out = out.Add(model.Text(model.TonePurple, "◆ "+proj.Name))
			continue
		}
		out = out.Add(
			model.Block{Kind: model.BlockHeading, Tone: model.TonePurple, Text: proj.Name},
			model.Block{Kind: model.BlockTags, Tone: model.ToneAccent, Items: proj.Tech},
		)
		for _, h := range proj.Highlights {
			out = out.Add(bullet("▹", h))
		}
	}
	return out
}

func renderEducation(data *model.PortfolioData) model.Output {
	edu := data.Education
	return model.Output{Blocks: []model.Block{
		{Kind: model.BlockHeading, Tone: model.ToneAccent, Text: edu.Degree},
		model.Text(model.ToneDefault, edu.Institution),
		model.Text(model.ToneMuted, edu.Location+" · "+edu.Period),
	}}
}

func renderCertifications(data *model.PortfolioData) model.Output {
	var out model.Output
	for _, cert := range data.Certifications {
		out = out.Add(bullet("✓", cert))
	}
	return out
}

func renderContact(data *model.PortfolioData) model.Output {
	info := data.Personal
	rows := []struct {
		label string
		value string
		tone  model.Tone
	}{
		{"📧 Email", info.Email, model.ToneInfo},
		{"📱 Phone", info.Phone, model.ToneDefault},
		{"💼 LinkedIn", info.LinkedIn, model.ToneInfo},
		{"🐙 GitHub", info.GitHub, model.ToneInfo},
		{"📍 Location", info.Location, model.ToneDefault},
	}

	var out model.Output
	for _, r := range rows {
		out = out.Add(model.Block{Kind: model.BlockPair, Tone: r.tone, Label: r.label, Text: r.value})
	}
	return out
}

func (p *Processor) renderNeofetch() model.Output {
	var out model.Output
	if p.id.Logo != "" {
		out = out.Add(model.Block{Kind: model.BlockBanner, Tone: model.ToneSuccess, Items: strings.Split(p.id.Logo, "\n")})
	}

	rows := [][2]string{
		{"OS", titleCase(p.id.User) + " OS v1.0 (Debian-based)"},
		{"Host", p.id.Domain},
		{"Kernel", "creativity 5.15.0-generic"},
		{"Uptime", "2 years, shipping in prod"},
		{"Shell", "/bin/typescript"},
		{"Role", p.id.Role},
		{"Stack", p.id.Stack},
		{"Location", p.id.Location},
	}
	for _, r := range rows {
		out = out.Add(model.Block{Kind: model.BlockPair, Tone: model.ToneAccent, Label: r[0], Text: r[1]})
	}
	return out.Add(model.Block{Kind: model.BlockPair, Tone: model.ToneSuccess, Label: "Status", Text: p.id.StatusLine})
}

func renderHistory(history []string) model.Output {
	var out model.Output
	for i, h := range history {
		out = out.Add(model.Block{
			Kind:  model.BlockPair,
			Tone:  model.ToneMuted,
			Label: fmt.Sprintf("%4d", i+1),
			Text:  h,
		})
	}
	return out
}

func renderHireMe(data *model.PortfolioData) model.Output {
	info := data.Personal
	return model.Output{Blocks: []model.Block{{
		Kind:  model.BlockCard,
		Tone:  model.ToneSuccess,
		Label: "✓ sudo: privilege granted",
		Items: []string{
			"→ Candidate : " + info.Name,
			"→ Stack     : Full-Stack + DevOps + AI",
			"→ Status    : AVAILABLE",
			"→ Email     : " + info.Email,
			"→ GitHub    : " + info.GitHub,
		},
		Text: "No sudo password required to hire great engineers. 😄",
	}}}
}

func bullet(marker, text string) model.Block {
	return model.Block{Kind: model.BlockBullet, Tone: model.ToneSuccess, Label: marker, Text: text}
}

// firstName is the first word of the portfolio owner's name, falling back
// to the shell user.
func firstName(data *model.PortfolioData, id Identity) string {
	if fields := strings.Fields(data.Personal.Name); len(fields) > 0 {
		return fields[0]
	}
	return titleCase(id.User)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// displayURL drops the scheme from a URL for display.
func displayURL(u string) string {
	u = strings.TrimPrefix(u, "https://")
	return strings.TrimPrefix(u, "http://")
}
