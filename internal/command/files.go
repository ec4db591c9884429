package command

import "strings"

// projectsDir is the only directory of the virtual filesystem.
const projectsDir = "projects/"

// virtualFile is a readable entry of the virtual filesystem and the
// command whose output it shows.
type virtualFile struct {
	name string
	kind Kind
}

// files is the virtual file table in listing order.
var files = []virtualFile{
	{name: "about.txt", kind: KindWhoami},
	{name: "skills.json", kind: KindSkills},
	{name: "experience.md", kind: KindExperience},
	{name: "contact.txt", kind: KindContact},
	{name: "certifications.txt", kind: KindCertifications},
}

// FileNames returns the readable file names in listing order.
func FileNames() []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.name)
	}
	return names
}

// listing is what `ls` prints: files with the projects directory slotted
// in after experience.md.
func listing() []string {
	return []string{
		"about.txt",
		"skills.json",
		"experience.md",
		projectsDir,
		"contact.txt",
		"certifications.txt",
	}
}

func lookupFile(name string) (virtualFile, bool) {
	for _, f := range files {
		if f.name == name {
			return f, true
		}
	}
	return virtualFile{}, false
}

func isProjectsDir(name string) bool {
	return name == "projects" || name == projectsDir
}

// FileSuggester proposes a known file for a name that did not resolve.
type FileSuggester interface {
	SuggestFile(name string, known []string) (string, bool)
}

// StemSuggester matches the part of name before its first "." against the
// stems of the known files.
type StemSuggester struct{}

// SuggestFile returns the first known file whose name starts with the stem
// of name followed by a dot.
func (StemSuggester) SuggestFile(name string, known []string) (string, bool) {
	stem, _, _ := strings.Cut(name, ".")
	for _, f := range known {
		if strings.HasPrefix(f, stem+".") {
			return f, true
		}
	}
	return "", false
}
