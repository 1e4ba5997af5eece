package expr

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapScope struct {
	nums    map[string]Num
	strs    map[string]string
	failing map[string]error
}

func (m mapScope) LookupVar(name string) (Num, bool, error) {
	if err, ok := m.failing[name]; ok {
		return Num{}, true, err
	}
	n, ok := m.nums[name]
	return n, ok, nil
}

func (m mapScope) LookupString(name string) (string, bool) {
	s, ok := m.strs[name]
	return s, ok
}

func TestParseAndUnparse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1", "1"},
		{"1mm", "1mm"},
		{"2.5 mil", "2.5mil"},
		{"a+b*c", "a+b*c"},
		{"(a+b)*c", "(a+b)*c"},
		{"a-(b-c)", "a-(b-c)"},
		{"a-b-c", "a-b-c"},
		{"a/(b*c)", "a/(b*c)"},
		{"-(a+1mm)", "-(a+1mm)"},
		{"-x*2", "-x*2"},
		{`"pin"`, `"pin"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Unparse(e))

			again, err := Parse(Unparse(e))
			require.NoError(t, err)
			assert.Equal(t, Unparse(e), Unparse(again))
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"", "1 +", "(a", "a b", "*3"} {
		_, err := Parse(input)
		assert.Error(t, err, "Parse(%q)", input)
	}
}

func TestParseLineNumbers(t *testing.T) {
	e, err := Parse("a +\n\n b")
	require.NoError(t, err)
	bin, ok := e.(*Binary)
	require.True(t, ok)
	assert.Equal(t, 1, bin.X.Line())
	assert.Equal(t, 3, bin.Y.Line())
}

func TestEvalArithmetic(t *testing.T) {
	scope := mapScope{nums: map[string]Num{
		"n":     Scalar(3),
		"pitch": MMNum(0.5),
		"w":     MilNum(10),
	}}

	tests := []struct {
		input    string
		wantType Type
		wantExp  int
		wantN    float64
	}{
		{"1+2", None, 0, 3},
		{"n*pitch", MM, 1, 1.5},
		{"pitch*pitch", MM, 2, 0.25},
		{"pitch/pitch", None, 0, 1},
		{"1/pitch", MM, -1, 2},
		{"w+w", Mil, 1, 20},
		{"w*2", Mil, 1, 20},
		{"pitch+w", MM, 1, 0.754},
		{"w+pitch", MM, 1, 0.754},
		{"w*pitch", MM, 2, 0.127},
		{"-pitch", MM, 1, -0.5},
		{"(n-1)*pitch/2", MM, 1, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Eval(MustParse(tt.input), scope)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantExp, got.Exponent)
			assert.InDelta(t, tt.wantN, got.N, 1e-9)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	scope := mapScope{
		nums:    map[string]Num{"len": MMNum(1), "zero": Scalar(0)},
		failing: map[string]error{"loopy": ErrRecursive},
	}

	tests := []struct {
		input string
		want  error
	}{
		{"len+1", ErrIncompatibleExponents},
		{"len*len-len", ErrIncompatibleExponents},
		{"len/zero", ErrDivByZero},
		{"nope", ErrUndefinedVar},
		{"loopy*2", ErrRecursive},
		{`"text"+1`, ErrString},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Eval(MustParse(tt.input), scope)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)

			var ee *EvalError
			require.True(t, errors.As(err, &ee))
			assert.Equal(t, Unparse(MustParse(tt.input)), ee.Text)
		})
	}
}

// Every successful result has a type consistent with its exponent.
func TestUnitClosure(t *testing.T) {
	values := []Num{Scalar(2), MMNum(1.5), MilNum(4), MMNum(-3).Mul(MMNum(2)), Scalar(-1)}
	check := func(n Num) {
		if n.Exponent == 0 {
			assert.Equal(t, None, n.Type, "dimensionless %v", n)
		} else {
			assert.Contains(t, []Type{MM, Mil}, n.Type, "dimensioned %v", n)
		}
	}
	for _, a := range values {
		for _, b := range values {
			if r, err := a.Add(b); err == nil {
				check(r)
			}
			if r, err := a.Sub(b); err == nil {
				check(r)
			}
			check(a.Mul(b))
			if r, err := a.Div(b); err == nil {
				check(r)
			}
		}
	}
}

func TestToUnit(t *testing.T) {
	tests := []struct {
		name    string
		n       Num
		want    float64
		wantErr bool
	}{
		{"mm", MMNum(1), 10000, false},
		{"mil", MilNum(1), 254, false},
		{"area", MMNum(1).Mul(MMNum(1)), 1e8, false},
		{"inverse", Num{Type: MM, Exponent: -1, N: 1}, 1e-4, false},
		{"scalar", Scalar(1), 0, true},
		{"cube", MMNum(1).Mul(MMNum(1)).Mul(MMNum(1)), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.n.ToUnit()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotDistance)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, math.Abs(tt.want)*1e-9)
		})
	}
}

func TestUnitString(t *testing.T) {
	tests := []struct {
		n    Num
		want string
	}{
		{Scalar(3), "3"},
		{MMNum(1.5), "1.5mm"},
		{MilNum(15), "15mil"},
		{Num{Type: MM, Exponent: 2, N: 1}, "1mm^2"},
		{Num{Type: MM, Exponent: -1, N: 1}, "1mm^-1"},
		{Num{Type: Mil, Exponent: -2, N: 1}, "1mil^(-2)"},
		{Num{Type: Mil, Exponent: 2, N: 1}, "1mil^2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.n.String())
	}
}

func TestExpand(t *testing.T) {
	scope := mapScope{
		nums: map[string]Num{"i": Scalar(4), "p": MMNum(0.65)},
		strs: map[string]string{"pkg": "SOT23"},
	}

	tests := []struct {
		template string
		want     string
		wantErr  error
	}{
		{"plain", "plain", nil},
		{"$i", "4", nil},
		{"${i}x", "4x", nil},
		{"$pkg-$i", "SOT23-4", nil},
		{"pitch=$p", "pitch=0.65mm", nil},
		{"$i$i", "44", nil},
		{"${pkg", "", ErrTemplate},
		{"$1", "", ErrTemplate},
		{"${a-b}", "", ErrTemplate},
		{"$", "", ErrTemplate},
		{"$missing", "", ErrUndefinedVar},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			got, err := Expand(tt.template, scope)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandWithoutScope(t *testing.T) {
	got, err := Expand("pad_$n", nil)
	require.NoError(t, err)
	assert.Equal(t, "pad_", got)

	_, err = Expand("${n", nil)
	assert.ErrorIs(t, err, ErrTemplate)
}

func TestEvalString(t *testing.T) {
	scope := mapScope{strs: map[string]string{"name": "QFN"}}
	s, ok := EvalString(MustParse(`"abc"`), scope)
	assert.True(t, ok)
	assert.Equal(t, "abc", s)

	s, ok = EvalString(MustParse("name"), scope)
	assert.True(t, ok)
	assert.Equal(t, "QFN", s)

	_, ok = EvalString(MustParse("1+1"), scope)
	assert.False(t, ok)
}
