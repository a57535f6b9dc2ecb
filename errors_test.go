package envconfig

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	missing := &MissingError{Key: "DB_HOST"}
	require.EqualError(t, missing, "env variable is missing: DB_HOST")
	require.ErrorIs(t, missing, ErrMissing)
	require.NotErrorIs(t, missing, ErrParse)

	cause := &strconv.NumError{Func: "ParseUint", Num: "x", Err: strconv.ErrSyntax}
	parse := &ParseError{Key: "DB_PORT", Err: cause}
	require.EqualError(t, parse, `failed to parse env variable: DB_PORT: strconv.ParseUint: parsing "x": invalid syntax`)
	require.ErrorIs(t, parse, ErrParse)
	require.ErrorIs(t, parse, strconv.ErrSyntax)
	require.NotErrorIs(t, parse, ErrMissing)

	require.EqualError(t, &ParseError{Key: "K"}, "failed to parse env variable: K")

	var se error = &SchemaError{Reason: "nil type"}
	require.EqualError(t, se, "invalid schema <nil>: nil type")
	require.True(t, errors.Is(se, ErrInvalidSchema))
}
