package lessc

import (
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/lessen/internal/core/domain"
)

// diagnosticPattern matches "ParseError: Unrecognised input in /a.less on line 3, column 5:".
var diagnosticPattern = regexp.MustCompile(`^(\w+): (.*) in (.+) on line (\d+), column (\d+):\s*$`)

// ParseDiagnostic extracts the first compiler diagnostic from stderr output.
// Lines following the header up to the first blank line form the extract.
// It returns nil when stderr contains no diagnostic.
func ParseDiagnostic(stderr string) *domain.CompilerError {
	lines := strings.Split(strings.ReplaceAll(stderr, "\r\n", "\n"), "\n")
	for i, line := range lines {
		m := diagnosticPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}

		lineNo, _ := strconv.Atoi(m[4])
		column, _ := strconv.Atoi(m[5])
		diag := &domain.CompilerError{
			Kind:     m[1],
			Message:  m[2],
			Filename: m[3],
			Line:     lineNo,
			Column:   column,
		}
		for _, extract := range lines[i+1:] {
			if strings.TrimSpace(extract) == "" {
				break
			}
			diag.Extract = append(diag.Extract, strings.TrimRight(extract, " \t"))
		}
		return diag
	}
	return nil
}
