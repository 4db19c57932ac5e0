package regmv

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func setsFor(t *testing.T, pattern string, subjects ...string) []*CaptureSet {
	t.Helper()
	var sets []*CaptureSet
	for _, s := range subjects {
		sets = append(sets, mustSet(t, pattern, s, false))
	}
	return sets
}

func render(t *testing.T, sets []*CaptureSet, template string, specs ...string) []string {
	t.Helper()
	ts, err := ParseTransforms(specs)
	require.NoError(t, err)
	require.NoError(t, ApplyTransforms(sets, ts))
	var out []string
	for _, set := range sets {
		s, err := set.Render(template)
		require.NoError(t, err)
		out = append(out, s)
	}
	return out
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr error
	}{
		{"arith:1:x+1", nil},
		{"arith:*:x*2", nil},
		{"arith:1", ErrTransformSyntax},
		{"arith:1:x+", ErrTransformSyntax},
		{"arith::x", ErrTransformSyntax},
		{"default:none", nil},
		{"default:*:none", nil},
		{"default:2:none", nil},
		{"index:1", nil},
		{"index:1:0:3", nil},
		{"index:*", ErrTransformSyntax},
		{"index:1:a", ErrTransformSyntax},
		{"index:1:0:-1", ErrTransformSyntax},
		{"index:1:0:3:9", ErrTransformSyntax},
		{"case:1:upper", nil},
		{"case:1:shout", ErrTransformSyntax},
		{"rot13:1", ErrUnknownTransform},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := ParseTransform(tt.spec)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTransformsRegistered(t *testing.T) {
	names := Transforms()
	for _, want := range []string{"arith", "case", "default", "index"} {
		if !slices.Contains(names, want) {
			t.Errorf("Transforms() = %v, missing %q", names, want)
		}
	}
}

func TestArith(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		subject  string
		template string
		spec     string
		want     string
	}{
		{"increment", `img(\d+)\.png`, "img7.png", "img$1.png", "arith:1:x+1", "img8.png"},
		{"keeps width", `img(\d+)\.png`, "img007.png", "img$1.png", "arith:1:x+1", "img008.png"},
		{"grows past width", `img(\d+)\.png`, "img099.png", "img$1.png", "arith:1:x+1", "img100.png"},
		{"other group", `(\d+)x(\d+)`, "3x4", "$1", "arith:1:x*g2", "12"},
		{"named group", `(?P<w>\d+)x(?P<h>\d+)`, "3x4", "$w", "arith:w:w+h", "7"},
		{"integral division", `(\d+)`, "8", "$1", "arith:1:x/2", "4"},
		{"decimal result", `(\d+)`, "7", "$1", "arith:1:x/2", "3.5"},
		{"decimal input", `(\d+\.\d+)`, "1.25", "$1", "arith:1:x*2", "2.5"},
		{"integer division", `(\d+)`, "7", "$1", "arith:1:div(x, 2)", "3"},
		{"negative", `(\d+)`, "2", "$1", "arith:1:x-5", "-3"},
		{"all groups", `a(\d+)b(\d+)c([a-z]+)`, "a1b02cz", "$1-$2-$3", "arith:*:x+10", "11-12-z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, setsFor(t, tt.pattern, tt.subject), tt.template, tt.spec)
			require.Equal(t, []string{tt.want}, got)
		})
	}
}

func TestArithErrors(t *testing.T) {
	ts, err := ParseTransforms([]string{"arith:1:x+1"})
	require.NoError(t, err)
	err = ApplyTransforms(setsFor(t, `([a-z]+)`, "abc"), ts)
	require.ErrorIs(t, err, ErrNotNumeric)

	ts, err = ParseTransforms([]string{"arith:1:x+y"})
	require.NoError(t, err)
	err = ApplyTransforms(setsFor(t, `(\d+)`, "1"), ts)
	require.ErrorIs(t, err, ErrArithmetic)

	ts, err = ParseTransforms([]string{"arith:1:x > 1"})
	require.NoError(t, err)
	err = ApplyTransforms(setsFor(t, `(\d+)`, "3"), ts)
	require.ErrorIs(t, err, ErrArithmetic)

	ts, err = ParseTransforms([]string{"arith:5:x"})
	require.NoError(t, err)
	err = ApplyTransforms(setsFor(t, `(\d+)`, "3"), ts)
	require.ErrorIs(t, err, ErrUnknownGroup)
}

func TestDefault(t *testing.T) {
	const pattern = `(\w+?)(-(\w+))?\.txt`
	subjects := []string{"a-b.txt", "c.txt"}

	got := render(t, setsFor(t, pattern, subjects...), "$1_$3", "default:none")
	require.Equal(t, []string{"a_b", "c_none"}, got)

	got = render(t, setsFor(t, pattern, subjects...), "$1_$3", "default:*:none")
	require.Equal(t, []string{"a_b", "c_none"}, got)

	got = render(t, setsFor(t, pattern, subjects...), "$1_$3$2", "default:3:zz")
	require.Equal(t, []string{"a_b-b", "c_zz"}, got)
}

func TestIndex(t *testing.T) {
	const pattern = `(\w+)_(\d+)\.jpg`
	subjects := []string{"x_30.jpg", "y_4.jpg", "z_100.jpg", "w_4.jpg", "v_004.jpg"}

	got := render(t, setsFor(t, pattern, subjects...), "$2", "index:2")
	require.Equal(t, []string{"2", "1", "3", "1", "1"}, got)

	got = render(t, setsFor(t, pattern, subjects...), "$2", "index:2:0:3")
	require.Equal(t, []string{"001", "000", "002", "000", "000"}, got)

	got = render(t, setsFor(t, pattern, subjects...), "$1", "index:1:9")
	require.Equal(t, []string{"11", "12", "13", "10", "09"}, got)
}

func TestIndexLexical(t *testing.T) {
	got := render(t, setsFor(t, `(\w+)`, "b10", "a", "b9", "a"), "$1", "index:1")
	require.Equal(t, []string{"2", "1", "3", "1"}, got)
}

func TestCase(t *testing.T) {
	got := render(t, setsFor(t, `(\w+) (\w+)`, "hello WORLD"), "$1 $2", "case:1:upper", "case:2:lower")
	require.Equal(t, []string{"HELLO world"}, got)

	got = render(t, setsFor(t, `(.+)`, "the quick fox"), "$1", "case:*:title")
	require.Equal(t, []string{"The Quick Fox"}, got)
}

func TestTransformsRunInOrder(t *testing.T) {
	got := render(t, setsFor(t, `f(\d+)`, "f5", "f1"), "$1", "arith:1:x*10", "index:1")
	require.Equal(t, []string{"2", "1"}, got)

	got = render(t, setsFor(t, `f(\d+)`, "f5", "f1"), "$1", "index:1", "arith:1:x*10")
	require.Equal(t, []string{"20", "10"}, got)
}

func TestApplyTransformsWrapsName(t *testing.T) {
	ts, err := ParseTransforms([]string{"default:9:x"})
	require.NoError(t, err)
	err = ApplyTransforms(setsFor(t, `(a)`, "a"), ts)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownGroup))
	require.Contains(t, err.Error(), "default:9")
}
