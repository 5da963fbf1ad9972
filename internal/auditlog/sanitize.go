package auditlog

import "strings"

const redacted = "<redacted>"

// freeTextFlags carry notes typed at the desk. Their values are not kept in
// the audit trail.
var freeTextFlags = map[string]bool{
	"--notes": true,
}

// SanitizeArgs joins command arguments for storage, replacing free-text
// flag values in both "--flag value" and "--flag=value" form.
func SanitizeArgs(args []string) string {
	out := make([]string, len(args))
	redactNext := false
	for i, arg := range args {
		switch {
		case redactNext:
			out[i] = redacted
			redactNext = false
		case freeTextFlags[arg]:
			out[i] = arg
			redactNext = true
		default:
			out[i] = arg
			if key, _, ok := strings.Cut(arg, "="); ok && freeTextFlags[key] {
				out[i] = key + "=" + redacted
			}
		}
	}
	return strings.Join(out, " ")
}
