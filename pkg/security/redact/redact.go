// Package redact masks credentials in strings that may reach users or logs.
package redact

import (
	"regexp"
)

var (
	// Most specific first: sk-ant- before sk-.
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	// already-masked values contain '*' and do not match
	openaiKeyPattern = regexp.MustCompile(`sk-[a-zA-Z0-9-_]{10,}`)
	hfTokenPattern   = regexp.MustCompile(`hf_[a-zA-Z0-9]{10,}`)
	googleKeyPattern = regexp.MustCompile(`AIza[0-9A-Za-z-_]{20,}`)
	bearerPattern    = regexp.MustCompile(`(?i)(bearer\s+)[^\s"']+`)
	queryKeyPattern  = regexp.MustCompile(`([?&](?:key|api_key|token)=)[^&\s"']+`)
	userinfoPattern  = regexp.MustCompile(`://([^:/\s]+):([^@/\s]+)@`)
)

// String returns s with API keys, bearer tokens and URL passwords masked.
func String(s string) string {
	s = anthropicKeyPattern.ReplaceAllString(s, "sk-ant-****")
	s = openaiKeyPattern.ReplaceAllString(s, "sk-****")
	s = hfTokenPattern.ReplaceAllString(s, "hf_****")
	s = googleKeyPattern.ReplaceAllString(s, "AIza****")
	s = bearerPattern.ReplaceAllString(s, "${1}****")
	s = queryKeyPattern.ReplaceAllString(s, "${1}****")
	s = userinfoPattern.ReplaceAllString(s, "://$1:****@")
	return s
}

// Error returns the masked message of err, or "" for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
