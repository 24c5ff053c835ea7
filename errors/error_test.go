package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPhaseErrorUnwrap(t *testing.T) {
	cause := ResourceExhaustedError{Limit: 16}
	err := fmt.Errorf("merge bucket 3: %w", PhaseError{Phase: "merging", Err: cause})
	var perr PhaseError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, "merging", perr.Phase)
	var rerr ResourceExhaustedError
	require.True(t, errors.As(err, &rerr))
	require.Equal(t, 16, rerr.Limit)
}

func TestErrorMessages(t *testing.T) {
	require.Equal(t, "Invalid configuration: zero workers", ConfigurationError{Reason: "zero workers"}.Error())
	require.Equal(t, "Expected 10 keys in input, but only 4 were available", InputUnderflowError{Want: 10, Got: 4}.Error())
	require.Contains(t, PhaseError{Phase: "aggregating", Err: fmt.Errorf("boom")}.Error(), "aggregating")
}
