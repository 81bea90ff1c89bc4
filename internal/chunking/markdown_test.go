package chunking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatty-labs/chatty-cli/internal/core/domain"
)

func TestSplitByHeaders_Basic(t *testing.T) {
	text := `## Benefits
Weekly payments cover lost wages while you recover.

## Appeals
Disputes can be lodged with the tribunal within 60 days.`

	sections, err := splitByHeaders(text)
	require.NoError(t, err)
	require.Len(t, sections, 2)

	assert.Equal(t, "Benefits", sections[0].header)
	assert.Contains(t, sections[0].content, "Weekly payments")
	assert.Equal(t, "Appeals", sections[1].header)
	assert.Contains(t, sections[1].content, "tribunal")
}

func TestSplitByHeaders_PreambleHasEmptyHeader(t *testing.T) {
	text := `This document explains the claims process.

# Claims
Lodge your claim with the insurer.`

	sections, err := splitByHeaders(text)
	require.NoError(t, err)
	require.Len(t, sections, 2)

	assert.Equal(t, "", sections[0].header)
	assert.Equal(t, "Claims", sections[1].header)
}

func TestSplitByHeaders_PrefersTopLevelHeading(t *testing.T) {
	text := `# Workers Compensation Guide
Introduction text.

## Benefits
Details about benefits.`

	sections, err := splitByHeaders(text)
	require.NoError(t, err)
	require.Len(t, sections, 2)

	// The level-1 heading wins over the level-2 heading below it.
	assert.Equal(t, "Workers Compensation Guide", sections[0].header)
	assert.Equal(t, "Workers Compensation Guide", sections[1].header)
}

func TestSplitByHeaders_NewTopHeadingClearsDeeperLevels(t *testing.T) {
	text := `## Benefits
Benefit details.

# Appeals
Appeal details.`

	sections, err := splitByHeaders(text)
	require.NoError(t, err)
	require.Len(t, sections, 2)

	assert.Equal(t, "Benefits", sections[0].header)
	// The later level-1 heading must not inherit the stale level-2 one.
	assert.Equal(t, "Appeals", sections[1].header)
}

func TestSplitByHeaders_IgnoresHeadingsInCodeFences(t *testing.T) {
	text := "# Real Heading\nBefore the fence.\n```\n# not a heading\n```\nAfter the fence."

	sections, err := splitByHeaders(text)
	require.NoError(t, err)
	require.Len(t, sections, 1)

	assert.Equal(t, "Real Heading", sections[0].header)
	assert.Contains(t, sections[0].content, "# not a heading")
}

func TestSplitByHeaders_EmptyInput(t *testing.T) {
	_, err := splitByHeaders("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = splitByHeaders("   \n\t\n")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSplitByHeaders_HeadingsOnlyNoContent(t *testing.T) {
	_, err := splitByHeaders("# One\n## Two\n")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
