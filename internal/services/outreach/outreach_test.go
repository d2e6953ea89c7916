package outreach

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housing-match-engine/internal/models"
	"housing-match-engine/internal/utils"
)

type fakeGenerator struct {
	response string
	err      error
	prompt   string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func testSeeker() models.RoommateProfile {
	return models.RoommateProfile{
		ID:          1,
		Name:        "Jordan",
		BudgetMin:   600,
		BudgetMax:   900,
		MoveInMonth: "2025-09",
	}
}

func TestDraftListingMessage_TemplateFallback(t *testing.T) {
	d := NewDrafter(nil)
	listing := models.Listing{Title: "Sunny room near campus", Rent: 750}

	message, err := d.DraftListingMessage(context.Background(), testSeeker(), listing)

	require.NoError(t, err)
	assert.Contains(t, message, "Sunny room near campus")
	assert.Contains(t, message, "2025-09")
	assert.Contains(t, message, "Jordan")
}

func TestDraftListingMessage_UsesGenerator(t *testing.T) {
	fake := &fakeGenerator{response: "Hello there!"}
	d := &Drafter{generator: fake, logger: utils.GetLogger()}
	listing := models.Listing{Title: "Loft sublet", Rent: 1200, Type: models.ListingTypeWholeUnit}

	message, err := d.DraftListingMessage(context.Background(), testSeeker(), listing)

	require.NoError(t, err)
	assert.Equal(t, "Hello there!", message)
	assert.Contains(t, fake.prompt, "Loft sublet")
	assert.Contains(t, fake.prompt, "$600-$900")
}

func TestDraftRoommateMessage_PropagatesError(t *testing.T) {
	fake := &fakeGenerator{err: errors.New("quota exceeded")}
	d := &Drafter{generator: fake, logger: utils.GetLogger()}
	match := models.MatchResult{
		Profile: models.RoommateProfile{ID: 2, Name: "Sam"},
		Score:   90,
		Reasons: []string{"move-in month matches (2025-09)"},
	}

	_, err := d.DraftRoommateMessage(context.Background(), testSeeker(), match)

	assert.Error(t, err)
}

func TestDraftRoommateMessage_PromptIncludesReasons(t *testing.T) {
	fake := &fakeGenerator{response: "Hi Sam!"}
	d := &Drafter{generator: fake, logger: utils.GetLogger()}
	match := models.MatchResult{
		Profile: models.RoommateProfile{ID: 2, Name: "Sam"},
		Score:   85,
		Reasons: []string{"budgets overlap at $650-$900", "sleep schedules match (medium)"},
	}

	_, err := d.DraftRoommateMessage(context.Background(), testSeeker(), match)

	require.NoError(t, err)
	assert.Contains(t, fake.prompt, "85/100")
	assert.Contains(t, fake.prompt, "budgets overlap at $650-$900")
}
