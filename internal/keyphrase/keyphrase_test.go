package keyphrase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractAcronymBoost(t *testing.T) {
	e := New(nil, DefaultOptions())
	text := "RSA RSA RSA key exchange key exchange"

	phrases := e.Extract(text, 5)
	require.Equal(t, []Phrase{
		{Text: "rsa", Weight: 9},
		{Text: "key exchange", Weight: 4},
		{Text: "exchange key", Weight: 2},
	}, phrases)
	require.Equal(t, []string{"rsa", "key exchange"}, e.Phrases(text, 2))
}

func TestExtractAlphanumericBoost(t *testing.T) {
	e := New(nil, DefaultOptions())
	text := "E91 protocol uses entangled pairs. E91 differs from BB84."

	weights := e.Weights(text)
	require.Equal(t, 6, weights["e91"])
	require.Equal(t, "e91", e.Phrases(text, 3)[0])
}

func TestExtractDropsOutOfRangeLengths(t *testing.T) {
	e := New(nil, DefaultOptions())
	text := "Route A1 carries traffic while A1 stays idle"

	require.Equal(t, 4, e.Weights(text)["a1"])
	require.NotContains(t, e.Phrases(text, 20), "a1")

	long := New(nil, Options{MinChars: 3, MaxChars: 12})
	for _, p := range long.Phrases("interference mitigation strategies matter", 10) {
		require.LessOrEqual(t, len(p), 12)
	}
}

func TestExtractEmpty(t *testing.T) {
	e := New(nil, DefaultOptions())
	require.Empty(t, e.Extract("", 5))
	require.Empty(t, e.Extract("the and of", 5))
	require.Nil(t, e.Extract("cellular capacity", 0))
	require.Nil(t, e.Extract("cellular capacity", -3))
}

func TestExtractNoContainedPhrases(t *testing.T) {
	e := New(nil, DefaultOptions())
	text := strings.Repeat("Cell splitting divides a congested cell into smaller cells. ", 3) +
		"Sectoring uses directional antennas to reduce co-channel interference. " +
		"SINR improves when co-channel interference drops. QoS targets drive cell splitting."

	for _, k := range []int{1, 3, 8, 20} {
		got := e.Phrases(text, k)
		require.LessOrEqual(t, len(got), k)
		for i, a := range got {
			for j, b := range got {
				if i == j {
					continue
				}
				require.False(t, strings.Contains(a, b), "%q contains %q", a, b)
			}
		}
	}
}

func TestExtractWeightsAreNonIncreasing(t *testing.T) {
	e := New(nil, DefaultOptions())
	text := "Handoff thresholds balance dropped calls and ping-pong handoff. " +
		"Handoff margin tuning reduces ping-pong handoff between base stations."

	phrases := e.Extract(text, 10)
	for i := 1; i < len(phrases); i++ {
		require.GreaterOrEqual(t, phrases[i-1].Weight, phrases[i].Weight)
	}
}
