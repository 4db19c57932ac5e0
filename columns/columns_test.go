package columns

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  string
	}{
		{
			name:  "whitespace runs",
			input: "a bb ccc\ndddd e f\n",
			want:  "a     bb  ccc\ndddd  e   f\n",
		},
		{
			name:  "blank lines and ragged rows",
			input: "name size\n\n  x 1 extra\n",
			want:  "name  size\n\nx     1     extra\n",
		},
		{
			name:  "literal delimiter",
			input: "id,name\n7, seven\n",
			opts:  Options{Delimiter: ","},
			want:  "id  name\n7   seven\n",
		},
		{
			name:  "custom separator",
			input: "a b\ncc d\n",
			opts:  Options{Separator: " | "},
			want:  "a  | b\ncc | d\n",
		},
		{
			name:  "right aligned",
			input: "file 1\nbig 1024\n",
			opts:  Options{Right: map[int]bool{1: true}},
			want:  "file     1\nbig   1024\n",
		},
		{
			name:  "wide runes",
			input: "日本 x\nab y\n",
			want:  "日本  x\nab    y\n",
		},
		{
			name:  "crlf",
			input: "a b\r\nccc d\r\n",
			want:  "a    b\nccc  d\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := Format(&out, strings.NewReader(tt.input), tt.opts); err != nil {
				t.Fatal(err)
			}
			if got := out.String(); got != tt.want {
				t.Errorf("Format() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestTableReadFrom(t *testing.T) {
	tbl := &Table{}
	for _, in := range []string{"a b", "ccc d\n"} {
		if err := tbl.ReadFrom(strings.NewReader(in), ""); err != nil {
			t.Fatal(err)
		}
	}
	var out bytes.Buffer
	if err := tbl.Write(&out, Options{}); err != nil {
		t.Fatal(err)
	}
	if want := "a    b\nccc  d\n"; out.String() != want {
		t.Errorf("Write() = %q, want %q", out.String(), want)
	}
}

func TestParseColumns(t *testing.T) {
	got, err := ParseColumns("1, 3")
	if err != nil {
		t.Fatal(err)
	}
	if !got[0] || !got[2] || len(got) != 2 {
		t.Errorf("ParseColumns(1, 3) = %v", got)
	}
	for _, bad := range []string{"0", "x", "1,,2"} {
		if _, err := ParseColumns(bad); !errors.Is(err, ErrInvalidColumn) {
			t.Errorf("ParseColumns(%q) error = %v, want ErrInvalidColumn", bad, err)
		}
	}
	if got, err := ParseColumns(""); err != nil || len(got) != 0 {
		t.Errorf("ParseColumns(\"\") = %v, %v", got, err)
	}
}
