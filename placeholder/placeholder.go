// Package placeholder implements the ${NAME[:default]} configuration placeholder grammar
// and the name normalizations shared by extraction and usage tracing.
package placeholder

import (
	"regexp"
	"sort"
	"strings"
)

// Pattern matches ${NAME} and ${NAME:default}; the default is everything after the first ':'
var Pattern = regexp.MustCompile(`\$\{([A-Za-z0-9_.-]+)(:[^}]*)?}`)

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// Match represents a single placeholder occurrence
type Match struct {
	Name       string
	Default    string
	HasDefault bool   // true also for an empty default (${NAME:})
	Text       string // Matched text, e.g. ${NAME:default}
	Start      int    // Byte offset of the match
	End        int
}

// DefaultValue returns the inline default or nil when absent
func (m *Match) DefaultValue() *string {
	if !m.HasDefault {
		return nil
	}
	value := m.Default
	return &value
}

// FindAll returns every placeholder in text, in order of appearance
func FindAll(text string) []*Match {
	indexes := Pattern.FindAllStringSubmatchIndex(text, -1)
	if len(indexes) == 0 {
		return nil
	}
	result := make([]*Match, 0, len(indexes))
	for _, index := range indexes {
		match := &Match{
			Name:  text[index[2]:index[3]],
			Text:  text[index[0]:index[1]],
			Start: index[0],
			End:   index[1],
		}
		if index[4] != -1 {
			match.HasDefault = true
			match.Default = text[index[4]+1 : index[5]]
		}
		result = append(result, match)
	}
	return result
}

// Resolve returns the literal form of a configuration value. A value without placeholders is
// returned as is; otherwise the inline default of the first placeholder stands for the whole
// value, and false is returned when that placeholder has no default.
func Resolve(value string) (string, bool) {
	matches := FindAll(value)
	if len(matches) == 0 {
		return value, true
	}
	if !matches[0].HasDefault {
		return "", false
	}
	return matches[0].Default, true
}

// EnvName converts a property name to its environment variable spelling: app.db-url -> APP_DB_URL
func EnvName(property string) string {
	name := strings.ToUpper(property)
	name = strings.ReplaceAll(name, ".", "_")
	return strings.ReplaceAll(name, "-", "_")
}

// Kebab converts a camel case identifier to kebab case: maxPoolSize -> max-pool-size
func Kebab(identifier string) string {
	return strings.ToLower(camelBoundary.ReplaceAllString(identifier, "$1-$2"))
}

// Variants returns relaxed spellings of a property key, the key itself first, without duplicates
func Variants(key string) []string {
	candidates := []string{
		key,
		strings.ReplaceAll(key, "-", "_"),
		strings.ReplaceAll(key, ".", "_"),
		strings.ReplaceAll(key, ".", "-"),
		strings.ReplaceAll(strings.ReplaceAll(key, ".", "_"), "-", "_"),
		strings.ReplaceAll(key, "_", "-"),
		strings.ReplaceAll(key, "_", "."),
		strings.ReplaceAll(key, "-", "."),
		strings.ReplaceAll(key, "-", ""),
	}
	var result []string
	seen := make(map[string]bool, len(candidates))
	for _, candidate := range candidates {
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		result = append(result, candidate)
	}
	return result
}

// KnownNames matches references to an explicit set of variable names,
// either as a placeholder or as a quoted string literal
type KnownNames struct {
	placeholder *regexp.Regexp
	literal     *regexp.Regexp
}

// NewKnownNames compiles the matchers for names; an empty set never matches
func NewKnownNames(names []string) *KnownNames {
	if len(names) == 0 {
		return &KnownNames{}
	}
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		quoted = append(quoted, regexp.QuoteMeta(name))
	}
	// Longer names first so that a name prefixing another never shadows it
	sort.SliceStable(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })
	alternation := strings.Join(quoted, "|")
	return &KnownNames{
		placeholder: regexp.MustCompile(`\$\{(` + alternation + `)(?::[^}]*)?}`),
		literal:     regexp.MustCompile(`"(` + alternation + `)"`),
	}
}

// FindAll returns the distinct known names referenced in text: placeholder matches first, then literals
func (k *KnownNames) FindAll(text string) []string {
	if k.placeholder == nil {
		return nil
	}
	var result []string
	seen := map[string]bool{}
	for _, expr := range []*regexp.Regexp{k.placeholder, k.literal} {
		for _, match := range expr.FindAllStringSubmatch(text, -1) {
			if name := match[1]; !seen[name] {
				seen[name] = true
				result = append(result, name)
			}
		}
	}
	return result
}
