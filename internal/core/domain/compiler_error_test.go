package domain_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/lessen/internal/core/domain"
)

func TestErrorStylesheet(t *testing.T) {
	tests := []struct {
		name       string
		err        *domain.CompilerError
		fallback   string
		goldenName string
	}{
		{
			name: "reported filename",
			err: &domain.CompilerError{
				Filename: "main.less",
				Line:     3,
				Column:   10,
				Extract:  []string{"body {", "  color: @foo;", "}"},
				Kind:     "NameError",
				Message:  "variable @foo is undefined",
			},
			fallback:   "ignored.less",
			goldenName: "error_stylesheet_basic",
		},
		{
			name: "fallback filename",
			err: &domain.CompilerError{
				Line:    1,
				Extract: []string{`a { content: "x" }`},
				Kind:    "ParseError",
			},
			fallback:   "broken.less",
			goldenName: "error_stylesheet_fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := goldie.New(t)
			g.Assert(t, tt.goldenName, []byte(domain.ErrorStylesheet(tt.err, tt.fallback)))
		})
	}
}

func TestErrorStylesheet_EscapesNewlines(t *testing.T) {
	sheet := domain.ErrorStylesheet(&domain.CompilerError{
		Filename: "a.less",
		Extract:  []string{"line\nbreak"},
		Kind:     "SyntaxError",
	}, "")
	assert.NotContains(t, sheet, "\n")
	assert.Contains(t, sheet, `line\A break`)
}

func TestCompilerError_Error(t *testing.T) {
	err := &domain.CompilerError{
		Filename: "/css/main.less",
		Line:     2,
		Column:   4,
		Kind:     "NameError",
		Message:  "variable @x is undefined",
	}
	assert.Equal(t, "NameError: variable @x is undefined in /css/main.less on line 2, column 4", err.Error())
}
