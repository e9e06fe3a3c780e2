package extractor

import (
	"strings"

	"github.com/viant/envdoc/catalog"
	"github.com/viant/envdoc/placeholder"
)

const snippetContextLines = 3

// configYAML scans the whole YAML content for placeholders
func (e *Extractor) configYAML(aUnit *unit) []*candidate {
	content := string(aUnit.content)
	lines := strings.Split(content, "\n")
	var result []*candidate
	for _, match := range placeholder.FindAll(content) {
		lineNumber := findLineNumber(lines, match.Text)
		result = append(result, &candidate{
			name:         match.Name,
			defaultValue: match.DefaultValue(),
			definition: &catalog.Definition{
				Kind:        catalog.ConfigYAML,
				FilePath:    aUnit.file.RelPath,
				LineNumber:  lineNumber,
				CodeSnippet: yamlSnippet(lines, lineNumber),
				ModuleName:  aUnit.module,
			},
		})
	}
	return result
}

// configProperties scans a properties file line by line
func (e *Extractor) configProperties(aUnit *unit) []*candidate {
	var result []*candidate
	for i, line := range strings.Split(string(aUnit.content), "\n") {
		line = strings.TrimRight(line, "\r")
		for _, match := range placeholder.FindAll(line) {
			result = append(result, &candidate{
				name:         match.Name,
				defaultValue: match.DefaultValue(),
				definition: &catalog.Definition{
					Kind:        catalog.ConfigProperties,
					FilePath:    aUnit.file.RelPath,
					LineNumber:  i + 1,
					CodeSnippet: strings.TrimSpace(line),
					ModuleName:  aUnit.module,
				},
			})
		}
	}
	return result
}

// findLineNumber returns the 1-based line of the first line containing text
func findLineNumber(lines []string, text string) int {
	for i, line := range lines {
		if strings.Contains(line, text) {
			return i + 1
		}
	}
	return 1
}

// yamlSnippet returns up to three lines preceding the 1-based line and the line itself
func yamlSnippet(lines []string, lineNumber int) string {
	end := lineNumber
	if end > len(lines) {
		end = len(lines)
	}
	start := end - 1 - snippetContextLines
	if start < 0 {
		start = 0
	}
	snippet := strings.Join(lines[start:end], "\n")
	return strings.TrimSpace(strings.ReplaceAll(snippet, "\r", ""))
}
