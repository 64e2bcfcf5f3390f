package cli

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

func seedMeetingPage(t *testing.T, env *testEnv) (*domain.Page, *domain.Block) {
	t.Helper()
	ctx := context.Background()

	page, err := env.pages.Create(ctx, "Meeting notes")
	require.NoError(t, err)
	block, err := env.blocks.Create(ctx, page.ID, domain.BlockType{Kind: domain.BlockKindText},
		"Next meeting is on Monday", nil)
	require.NoError(t, err)
	return page, block
}

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "search")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_Flags(t *testing.T) {
	flag := searchCmd.Flags().Lookup("case-sensitive")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)

	flag = searchCmd.Flags().Lookup("whole-word")
	require.NotNil(t, flag)
	assert.Equal(t, "w", flag.Shorthand)

	assert.NotNil(t, searchCmd.Flags().Lookup("json"))
}

func TestSearchCmd_GroupsTitleAndBlockMatches(t *testing.T) {
	env := setupTestServices(t)
	page, block := seedMeetingPage(t, env)

	out, err := executeCommand(t, "search", "meeting")

	require.NoError(t, err)
	assert.Contains(t, out, "2 matches in 1 pages")
	assert.Contains(t, out, "Meeting notes ("+page.ID+")")
	assert.Contains(t, out, "[Title] Meeting notes")
	assert.Contains(t, out, "[Text] "+block.ID)
	assert.Less(t, strings.Index(out, "[Title]"), strings.Index(out, "[Text]"))
}

func TestSearchCmd_NoResults(t *testing.T) {
	env := setupTestServices(t)
	seedMeetingPage(t, env)

	out, err := executeCommand(t, "search", "absent")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_CaseSensitiveFlag(t *testing.T) {
	env := setupTestServices(t)
	seedMeetingPage(t, env)

	out, err := executeCommand(t, "search", "-c", "MEETING")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_WholeWordDefaultFromSettings(t *testing.T) {
	env := setupTestServices(t)
	seedMeetingPage(t, env)

	settings, err := env.settings.Get()
	require.NoError(t, err)
	settings.Search.WholeWord = true
	require.NoError(t, env.settings.Save(settings))

	out, err := executeCommand(t, "search", "meet")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")

	out, err = executeCommand(t, "search", "--whole-word=false", "meet")
	require.NoError(t, err)
	assert.Contains(t, out, "2 matches in 1 pages")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	env := setupTestServices(t)
	page, _ := seedMeetingPage(t, env)

	out, err := executeCommand(t, "search", "--json", "monday")

	require.NoError(t, err)
	var resp domain.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 1, resp.TotalMatches)
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, page.ID, resp.Groups[0].PageID)
	assert.Equal(t, "Text", resp.Groups[0].Matches[0].BlockType)
}

func TestSearchCmd_NotConfigured(t *testing.T) {
	setupTestServices(t)
	SetServices(nil)

	_, err := executeCommand(t, "search", "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search service not configured")
}

func TestPageLabel(t *testing.T) {
	icon := "📝"
	empty := ""
	assert.Equal(t, "Untitled", pageLabel("", nil))
	assert.Equal(t, "Notes", pageLabel("Notes", &empty))
	assert.Equal(t, "📝 Notes", pageLabel("Notes", &icon))
}
