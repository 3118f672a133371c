package transform_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/psurana/pulse-etl/etl/transform"
)

func TestStateNameCanonicalizesAliases(t *testing.T) {
	n := transform.NewNormalizer(transform.DefaultAliases())

	want := "Andaman And Nicobar Islands"
	require.Equal(t, want, n.StateName("Andaman & Nicobar Islands"))
	require.Equal(t, want, n.StateName("andaman and nicobar islands"))
	require.Equal(t, want, n.StateName("  ANDAMAN & NICOBAR ISLANDS  "))

	require.Equal(t, "Jammu And Kashmir", n.StateName("jammu & kashmir"))
	require.Equal(t, "Karnataka", n.StateName("karnataka"))
	require.Equal(t, "India", n.StateName("india"))
}

func TestStateNameIdempotent(t *testing.T) {
	n := transform.NewNormalizer(transform.DefaultAliases())

	for _, raw := range []string{
		"andaman & nicobar islands",
		"dadra & nagar haveli & daman & diu",
		"west bengal",
		"india",
	} {
		once := n.StateName(raw)
		require.Equal(t, once, n.StateName(once), "normalizing %q twice must not drift", raw)
	}
}

func TestStateNameTotalOverAnyInput(t *testing.T) {
	n := transform.NewNormalizer(transform.DefaultAliases())

	require.Equal(t, "", n.StateName(""))
	require.Equal(t, "", n.StateName("   "))
}

func TestCleanLabel(t *testing.T) {
	require.Equal(t, "bengaluru urban", transform.CleanLabel("  bengaluru   urban!! "))
	require.Equal(t, "north-east delhi", transform.CleanLabel("north-east delhi"))
	require.Equal(t, "recharge bill payments", transform.CleanLabel("recharge & bill payments"))
	require.Equal(t, "", transform.CleanLabel(""))
	require.Equal(t, "", transform.CleanLabel("@#$%"))
}
