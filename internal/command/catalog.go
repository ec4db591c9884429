package command

import "strings"

// ShowAllSentinel typed alone in the input opens the full command list.
const ShowAllSentinel = "/"

// CatalogEntry describes one suggestable command line.
type CatalogEntry struct {
	Command     string
	Icon        string
	Description string
}

// catalog is the static autocomplete list, in display order.
var catalog = []CatalogEntry{
	{Command: "help", Icon: "📋", Description: "Show all available commands"},
	{Command: "whoami", Icon: "👤", Description: "Display profile summary"},
	{Command: "skills", Icon: "⚡", Description: "Technical skills by category"},
	{Command: "experience", Icon: "💼", Description: "Work experience timeline"},
	{Command: "experience --short", Icon: "💼", Description: "Condensed experience view"},
	{Command: "projects", Icon: "📂", Description: "Featured project portfolio"},
	{Command: "projects --ls", Icon: "📂", Description: "List project names only"},
	{Command: "education", Icon: "🎓", Description: "Education background"},
	{Command: "certifications", Icon: "📜", Description: "Certifications & courses"},
	{Command: "contact", Icon: "📧", Description: "Contact information"},
	{Command: "neofetch", Icon: "🖥️", Description: "System summary card"},
	{Command: "clear", Icon: "🧹", Description: "Clear the terminal"},
	{Command: "history", Icon: "📝", Description: "Show command history"},
	{Command: "ls", Icon: "📁", Description: "List available sections"},
	{Command: "cat about.txt", Icon: "🐱", Description: "Read profile summary"},
	{Command: "cat skills.json", Icon: "🐱", Description: "Read skills data"},
	{Command: "cat experience.md", Icon: "🐱", Description: "Read experience file"},
	{Command: "cat contact.txt", Icon: "🐱", Description: "Read contact info"},
	{Command: "cat certifications.txt", Icon: "🐱", Description: "Read certifications"},
	{Command: "pwd", Icon: "📍", Description: "Print working directory"},
	{Command: "date", Icon: "📅", Description: "Current date & time"},
	{Command: "uname -a", Icon: "💻", Description: "System information"},
	{Command: "echo hello", Icon: "🔊", Description: "Echo text back"},
	{Command: "sudo hire-me", Icon: "🔒", Description: "🤫 Easter egg"},
	{Command: "curl resume.pdf", Icon: "📄", Description: "Open resume in new tab"},
}

// Catalog returns a copy of the full command catalog.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// Suggest returns the catalog entries that complete partial, in catalog
// order. The sentinel "/" lists everything; empty input lists nothing; an
// entry exactly equal to the input is not suggested back.
func Suggest(partial string) []CatalogEntry {
	p := strings.ToLower(strings.TrimSpace(partial))
	if p == ShowAllSentinel {
		return Catalog()
	}
	if p == "" {
		return nil
	}

	var matches []CatalogEntry
	for _, entry := range catalog {
		if strings.HasPrefix(entry.Command, p) && entry.Command != p {
			matches = append(matches, entry)
		}
	}
	return matches
}
