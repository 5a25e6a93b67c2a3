package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanBody(t *testing.T) {
	text := func(s string) segment { return segment{kind: segText, text: s} }
	sym := func(s string) segment { return segment{kind: segSymbol, text: s} }
	push := segment{kind: segPush}
	line := segment{kind: segLine}

	tests := []struct {
		name string
		body string
		want []segment
	}{
		{name: "empty", body: "", want: nil},
		{name: "text", body: "hello", want: []segment{text("hello")}},
		{name: "symbol", body: "x #{ a } y", want: []segment{text("x "), sym("a"), text(" y")}},
		{name: "escape merges with text", body: "a ## b", want: []segment{text("a # b")}},
		{name: "lone hash is text", body: "// see issue #42", want: []segment{text("// see issue #42")}},
		{name: "hash at end of line", body: "a #\n#", want: []segment{text("a #"), push, text("#")}},
		{name: "hash before symbol", body: "##{a} #1#{a}", want: []segment{text("#{a} #1"), sym("a")}},
		{
			name: "quoted",
			body: `s = #"a\"b\n";`,
			want: []segment{text("s = "), {kind: segQuoted, text: "a\"b\n"}, text(";")},
		},
		{
			name: "line breaks",
			body: "a\n\n   \nb\n",
			want: []segment{text("a"), push, line, line, text("b"), push},
		},
		{
			name: "leading blank lines",
			body: "\n\na",
			want: []segment{line, line, text("a")},
		},
		{
			name: "trailing whitespace is trimmed",
			body: "a  \r\n  b\t",
			want: []segment{text("a"), push, text("  b")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scanBody(tt.body)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(segment{})); diff != "" {
				t.Errorf("scanBody() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanBodyErrors(t *testing.T) {
	for _, body := range []string{"#{}", "#{a", `#"open`, `#"bad \q"`, "#\"split\nline\""} {
		_, err := scanBody(body)
		assert.ErrorIs(t, err, ErrInvalid, body)
	}
}

func TestReferences(t *testing.T) {
	names, err := References("#{b} #{a}\n#{b} ## #{c}")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, names)

	_, err = References("#{")
	assert.ErrorIs(t, err, ErrInvalid)
}
