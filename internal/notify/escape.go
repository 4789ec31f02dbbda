package notify

import "strings"

// xmlEscaper rewrites text for embedding inside the toast XML template.
// Newlines fold to spaces because toast text elements are single-line.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
	"\n", " ",
	"\r", "",
)

// EscapeXML escapes s for the XML text-node context.
func EscapeXML(s string) string { return xmlEscaper.Replace(s) }

// psEscaper neutralizes the characters PowerShell expands inside a
// double-quoted here-string: backtick (escape char), dollar (variable
// expansion) and double quote. It runs after EscapeXML in the toast path,
// which already replaced raw quotes, but it stays independent so each
// context is safe on its own.
var psEscaper = strings.NewReplacer(
	"`", "``",
	"$", "`$",
	`"`, "`\"",
	"\r", "",
	"\x00", "",
)

// EscapePowerShell escapes s for the PowerShell here-string context.
func EscapePowerShell(s string) string { return psEscaper.Replace(s) }
