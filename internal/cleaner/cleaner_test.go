package cleaner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wgomg/notesift/internal/similarity"
	"github.com/wgomg/notesift/internal/tokenize"
)

const slideText = `Department of Electrical and Electronic Engineering, KUET
• Frequency reuse allows the same channel to serve distant cells without interference.
References
Wireless Communications by Theodore Rappaport, Pearson 2002
Mobile Cellular Telecommunications
Cell splitting increases capacity by dividing congested cells into smaller microcells.`

func TestCleanRemovesHeadersAndReferences(t *testing.T) {
	got := Default().Clean(slideText)
	require.Equal(t,
		"- Frequency reuse allows the same channel to serve distant cells without interference.\n"+
			"Cell splitting increases capacity by dividing congested cells into smaller microcells.",
		got)
}

func TestCleanDepartmentLine(t *testing.T) {
	require.Empty(t, Default().Clean("Department of Electrical and Electronic Engineering, KUET"))
}

func TestCleanEmptyInput(t *testing.T) {
	c := Default()
	require.Empty(t, c.Clean(""))
	require.Empty(t, c.Clean("  \n\n\t\n"))
	require.Nil(t, c.Trace(""))
}

func TestCleanTraceNamesRules(t *testing.T) {
	decisions := Default().Trace(slideText)
	require.Len(t, decisions, 6)

	rules := make([]string, 0, len(decisions))
	for _, d := range decisions {
		rules = append(rules, d.Rule)
	}
	require.Equal(t, []string{
		"header-keyword",
		"",
		"reference-heading",
		"by-author",
		"title-case",
		"",
	}, rules)
	require.True(t, decisions[1].Kept)
	require.True(t, decisions[5].Kept)
}

func TestCleanShortLines(t *testing.T) {
	c := Default()
	text := "Frequency Reuse\nThank you all\nQ1. What is SINR?"
	require.Equal(t, "Frequency Reuse\nQ1. What is SINR?", c.Clean(text))
}

func TestCleanReferenceResidualAndExit(t *testing.T) {
	text := "Bibliography\n" +
		"see also notes\n" +
		"Third Edition, revised\n" +
		"Smaller cells permit higher spectral efficiency across dense urban deployments today"

	decisions := Default().Trace(text)
	require.Equal(t, "reference-heading", decisions[0].Rule)
	require.Equal(t, ReasonInReferences, decisions[1].Rule)
	require.Equal(t, "edition", decisions[2].Rule)
	require.True(t, decisions[3].Kept)
}

func TestCleanTopicCueLeavesReferences(t *testing.T) {
	text := "References\nDefinition of cluster size and reuse distance in hexagonal layouts"
	require.Equal(t,
		"Definition of cluster size and reuse distance in hexagonal layouts",
		Default().Clean(text))
}

func TestCleanStripsInstitutionalTail(t *testing.T) {
	vocab := DefaultVocabulary()
	vocab.HeaderKeywords = []string{"semester"}
	vocab.Institutions = []string{"buet"}
	c := New(nil, vocab, DefaultOptions())

	text := "Hexagonal cells approximate the coverage of a base station Faculty of EEE\nFaculty 12"
	decisions := c.Trace(text)
	require.True(t, decisions[0].Kept)
	require.Equal(t, "Hexagonal cells approximate the coverage of a base station", decisions[0].Output)
	require.False(t, decisions[1].Kept)
	require.Equal(t, ReasonEmptyAfterTail, decisions[1].Rule)
}

func TestCleanNearDuplicates(t *testing.T) {
	text := "Frequency reuse lets distant cells share the same channel set.\n" +
		"Adjacent channel interference comes from imperfect receiver filters.\n" +
		"Frequency reuse lets distant cells share the same channel set!"

	got := Default().Clean(text)
	require.Equal(t,
		"Frequency reuse lets distant cells share the same channel set.\n"+
			"Adjacent channel interference comes from imperfect receiver filters.",
		got)
}

func TestCleanOutputHasNoNearDuplicatesOrHeaders(t *testing.T) {
	c := Default()
	text := strings.Repeat(slideText+"\n", 3) +
		"Course code EEE 4207 semester exam\n" +
		"Umbrella cell layouts cover fast moving users with large macrocells."

	out := c.Clean(text)
	lines := strings.Split(out, "\n")

	tok := tokenize.Default()
	for i, a := range lines {
		line := Line{Text: a, Content: tok.ContentTokens(a)}
		_, isHeader := c.Rules().Classify(line, ClassHeader)
		require.False(t, isHeader, "header survived: %q", a)
		_, isRefHeading := c.Rules().Classify(line, ClassReferenceHeading)
		require.False(t, isRefHeading, "reference heading survived: %q", a)

		for _, b := range lines[i+1:] {
			sim := similarity.Jaccard(
				similarity.NewSet(tok.ContentTokens(a)),
				similarity.NewSet(tok.ContentTokens(b)))
			require.Less(t, sim, DefaultDuplicateThreshold)
		}
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	c := Default()
	text := slideText + "\nHandover moves an active call between base stations without dropping it.\n" +
		"Handover moves an active call between base stations without dropping it."

	once := c.Clean(text)
	require.Equal(t, once, c.Clean(once))
}

func TestCleanCustomThresholds(t *testing.T) {
	opts := DefaultOptions()
	opts.ShortLineTokens = 1
	c := New(nil, DefaultVocabulary(), opts)
	require.Equal(t, "Thank you all", c.Clean("Thank you all"))
}

func TestNormalizeLine(t *testing.T) {
	require.Equal(t, "- Power control - uplink", NormalizeLine("  ●  Power   control — uplink\r"))
	require.Equal(t, "- a - b", NormalizeLine("▪ a – b"))
}
