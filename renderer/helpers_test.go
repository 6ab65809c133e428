package renderer

import (
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestConditionalBlock(t *testing.T) {
	var b strings.Builder
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "## Empty")
		return false
	})
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "## Kept")
		return true
	})
	if got, want := b.String(), "## Kept\n"; got != want {
		t.Errorf("ConditionalBlock() wrote %q want %q", got, want)
	}
}
