package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// CompilerError is a diagnostic reported by the external stylesheet compiler.
type CompilerError struct {
	Filename string
	Line     int
	Column   int
	Extract  []string
	Kind     string
	Message  string
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return fmt.Sprintf("%s: %s in %s on line %d, column %d", e.Kind, e.Message, e.Filename, e.Line, e.Column)
}

const errorStylesheetRule = "body:before {display: block; color: #c00; white-space: pre; " +
	"font-family: monospace; background: #FDD9E1; border-top: 1px solid pink; " +
	"border-bottom: 1px solid pink; padding: 10px; content: \"%s\"; }"

// ErrorStylesheet renders a compiler error as a stylesheet that overlays an
// error banner on the page. fallbackName is used when the compiler did not
// report a file name.
func ErrorStylesheet(err *CompilerError, fallbackName string) string {
	filename := err.Filename
	if filename == "" {
		filename = fallbackName
	}

	msg := "[LESS ERROR] " + filename + ":" + strconv.Itoa(err.Line) + ": " +
		"[" + strings.Join(err.Extract, ", ") + "] (" + err.Kind + ")"
	return fmt.Sprintf(errorStylesheetRule, escapeCSSString(msg))
}

var cssStringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r\n", `\A `,
	"\n", `\A `,
	"\r", `\A `,
)

func escapeCSSString(s string) string {
	return cssStringEscaper.Replace(s)
}
