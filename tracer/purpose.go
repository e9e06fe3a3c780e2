package tracer

import (
	"regexp"

	"github.com/viant/envdoc/catalog"
)

// Rule maps a case-insensitive keyword pattern to a purpose
type Rule struct {
	Pattern *regexp.Regexp
	Purpose catalog.UsagePurpose
}

// Rules is an ordered purpose rule table; the first matching rule wins
type Rules struct {
	rules []Rule
}

// NewRules compiles the keyword table; most specific categories come first
func NewRules() *Rules {
	table := []struct {
		keywords string
		purpose  catalog.UsagePurpose
	}{
		{`security|auth|jwt|oauth|password|credential|secret`, catalog.Authentication},
		{`cache|redis|ehcache|caffeine|hazelcast`, catalog.CacheConfig},
		{`datasource|jdbc|hikari|database|db|postgres|mysql|oracle|mongo`, catalog.DatabaseConnection},
		{`resttemplate|webclient|feign|http|client|endpoint|url|uri`, catalog.ExternalAPI},
		{`feature|flag|toggle|enabled|disabled`, catalog.FeatureFlag},
		{`log|logging|logger|slf4j|logback`, catalog.LoggingConfig},
		{`server|port|host|address|ssl|tls`, catalog.ServerConfig},
		{`kafka|rabbit|mq|jms|amqp|queue|topic|message`, catalog.MessagingConfig},
	}
	result := &Rules{rules: make([]Rule, 0, len(table))}
	for _, item := range table {
		result.rules = append(result.rules, Rule{
			Pattern: regexp.MustCompile(`(?i)(` + item.keywords + `)`),
			Purpose: item.purpose,
		})
	}
	return result
}

// Classify returns the purpose of the first rule matching typeName, methodName and text
func (r *Rules) Classify(typeName, methodName, text string) catalog.UsagePurpose {
	combined := typeName + " " + methodName + " " + text
	for _, rule := range r.rules {
		if rule.Pattern.MatchString(combined) {
			return rule.Purpose
		}
	}
	return catalog.Other
}

// Len returns the number of rules
func (r *Rules) Len() int {
	return len(r.rules)
}
