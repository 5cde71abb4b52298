package pave

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

func newProperties() *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return gopter.NewProperties(parameters)
}

// TestCoerceRoundTripProperty checks that coercing the text form of a value
// yields the value again.
func TestCoerceRoundTripProperty(t *testing.T) {
	properties := newProperties()

	properties.Property("integers", prop.ForAll(
		func(n int) bool {
			got, err := Coerce(strconv.Itoa(n), Integer, Options{})
			return err == nil && got == n
		},
		gen.Int(),
	))

	properties.Property("floats", prop.ForAll(
		func(f float64) bool {
			got, err := Coerce(strconv.FormatFloat(f, 'g', -1, 64), Float, Options{})
			return err == nil && got == f
		},
		gen.Float64Range(-1e12, 1e12),
	))

	properties.Property("booleans", prop.ForAll(
		func(b bool) bool {
			got, err := Coerce(strconv.FormatBool(b), Boolean, Options{})
			return err == nil && got == b
		},
		gen.Bool(),
	))

	properties.Property("decimals within default precision", prop.ForAll(
		func(coef int64, scale int32) bool {
			want := decimal.New(coef, -scale)
			got, err := Coerce(want.String(), Decimal, Options{})
			if err != nil {
				return false
			}
			return want.Equal(got.(decimal.Decimal))
		},
		gen.Int64Range(-99999999999999, 99999999999999),
		gen.Int32Range(0, 10),
	))

	properties.Property("dates", prop.ForAll(
		func(days int) bool {
			want := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
			got, err := Coerce(want.Format("2006-01-02"), Date, Options{})
			return err == nil && want.Equal(got.(time.Time))
		},
		gen.IntRange(-300000, 300000),
	))

	properties.Property("datetimes", prop.ForAll(
		func(sec int64) bool {
			want := time.Unix(sec, 0).UTC()
			got, err := Coerce(want.Format(time.RFC3339), DateTime, Options{})
			return err == nil && want.Equal(got.(time.Time))
		},
		gen.Int64Range(0, 4102444800),
	))

	properties.TestingRun(t)
}

// TestStructuralGuardProperty checks that sequences and mappings never
// reach a scalar coercer.
func TestStructuralGuardProperty(t *testing.T) {
	properties := newProperties()
	scalars := []Type{Integer, Float, String, Boolean, Date, DateTime, Time, Decimal, UUID}

	properties.Property("sequences are rejected", prop.ForAll(
		func(elems []string, pick int) bool {
			in := make([]any, len(elems))
			for i, e := range elems {
				in[i] = e
			}
			_, err := Coerce(in, scalars[pick], Options{})
			return errors.Is(err, ErrTypeMismatch)
		},
		gen.SliceOf(gen.AlphaString()),
		gen.IntRange(0, len(scalars)-1),
	))

	properties.Property("mappings are rejected", prop.ForAll(
		func(m map[string]string, pick int) bool {
			_, err := Coerce(m, scalars[pick], Options{})
			return errors.Is(err, ErrTypeMismatch)
		},
		gen.MapOf(gen.AlphaString(), gen.AlphaString()),
		gen.IntRange(0, len(scalars)-1),
	))

	properties.TestingRun(t)
}

// TestArrayPathProperty checks that a failing element is reported at its
// index.
func TestArrayPathProperty(t *testing.T) {
	properties := newProperties()

	properties.Property("bad element path", prop.ForAll(
		func(size, bad int) bool {
			bad %= size
			elems := make([]any, size)
			for i := range elems {
				elems[i] = strconv.Itoa(i)
			}
			elems[bad] = "not a number"

			params := map[string]any{"list": elems}
			_, err := Declare(params, "list", Array, Options{}, func(p *Evaluator, i int) error {
				_, err := p.Elem(i, Integer, Options{})
				return err
			})

			var ipe *InvalidParameterError
			return errors.As(err, &ipe) && ipe.Param == "list["+strconv.Itoa(bad)+"]"
		},
		gen.IntRange(1, 20),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}
