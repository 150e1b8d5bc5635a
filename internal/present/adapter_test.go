package present

import (
	"errors"
	"math/big"
	"testing"

	"factprime/internal/numeric"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter() *Adapter {
	return NewAdapter(numeric.New(), nil)
}

func TestDescribeFactorial(t *testing.T) {
	a := newTestAdapter()

	assert.Equal(t, "The factorial of 5 is 120", a.DescribeFactorial(big.NewInt(5)))
	assert.Equal(t, "The factorial of 0 is 1", a.DescribeFactorial(big.NewInt(0)))
	assert.Equal(t, numeric.MsgFactorialNegative, a.DescribeFactorial(big.NewInt(-1)))
}

func TestDescribePrimality(t *testing.T) {
	a := newTestAdapter()

	assert.Equal(t, "7 is a Prime Number", a.DescribePrimality(big.NewInt(7)))
	assert.Equal(t, "8 is Not a Prime Number", a.DescribePrimality(big.NewInt(8)))
	assert.Equal(t, "1 is Not a Prime Number", a.DescribePrimality(big.NewInt(1)))
	assert.Equal(t, numeric.MsgPrimeNegative, a.DescribePrimality(big.NewInt(-5)))

	pow64 := new(big.Int).Lsh(big.NewInt(1), 64)
	assert.Equal(t, "18446744073709551616 is Not a Prime Number", a.DescribePrimality(pow64))
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "42", want: "42"},
		{raw: "-3", want: "-3"},
		{raw: "+9", want: "9"},
		{raw: "  17\n", want: "17"},
		{raw: "007", want: "7"},
		{raw: "123456789012345678901234567890", want: "123456789012345678901234567890"},
		{raw: "abc", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "   ", wantErr: true},
		{raw: "3.5", wantErr: true},
		{raw: "1_000", wantErr: true},
		{raw: "0x1f", wantErr: true},
		{raw: "12abc", wantErr: true},
		{raw: "Enter number here", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			n, err := ParseInput(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrParse))
				var pe *ParseError
				require.True(t, errors.As(err, &pe))
				assert.Equal(t, tt.raw, pe.Input)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.String())
		})
	}
}

func TestParseThenDescribeNegative(t *testing.T) {
	a := newTestAdapter()

	n, err := ParseInput("-3")
	require.NoError(t, err)
	assert.Equal(t, int64(-3), n.Int64())
	assert.Equal(t, numeric.MsgFactorialNegative, a.DescribeFactorial(n))
}

func TestEvaluate(t *testing.T) {
	a := newTestAdapter()

	got, err := a.Evaluate(ActionFactorial, "5")
	require.NoError(t, err)
	assert.Equal(t, "The factorial of 5 is 120", got)

	got, err = a.Evaluate(ActionPrimeCheck, " 7 ")
	require.NoError(t, err)
	assert.Equal(t, "7 is a Prime Number", got)

	_, err = a.Evaluate(ActionPrimeCheck, "abc")
	assert.ErrorIs(t, err, ErrParse)
}

func TestEvaluateSharesCache(t *testing.T) {
	core := numeric.New()
	a := NewAdapter(core, nil)

	_, err := a.Evaluate(ActionFactorial, "12")
	require.NoError(t, err)
	_, err = a.Evaluate(ActionFactorial, "8")
	require.NoError(t, err)

	stats := core.Cache().Stats()
	assert.Equal(t, 13, stats.Entries)
	assert.Equal(t, uint64(1), stats.Hits)
}

func TestActions(t *testing.T) {
	actions := Actions()
	require.Len(t, actions, 2)

	assert.Equal(t, "Factorial", actions[0].Label())
	assert.Equal(t, "Calculates the factorial of n.", actions[0].Description())
	assert.Equal(t, "Factorial Calculator", actions[0].DialogTitle())

	assert.Equal(t, "Prime Check", actions[1].Label())
	assert.Equal(t, "Checks if the number is prime.", actions[1].Description())
	assert.Equal(t, "Prime Number Checker", actions[1].DialogTitle())
	assert.Equal(t, "prime", actions[1].String())
}
