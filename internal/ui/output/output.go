// Package output creates termenv outputs with the color profile used by the
// lessen logger.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Profile returns the color profile for log output. NO_COLOR disables colors
// and CI forces plain ANSI. Otherwise the terminal is probed.
func Profile() termenv.Profile {
	switch {
	case os.Getenv("NO_COLOR") != "":
		return termenv.Ascii
	case os.Getenv("CI") != "":
		return termenv.ANSI
	default:
		return termenv.EnvColorProfile()
	}
}

// New creates a termenv.Output writing to w, or os.Stderr when w is nil.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(Profile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
