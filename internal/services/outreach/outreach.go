// Package outreach drafts first-contact messages for listings and roommate
// candidates using the Gemini API.
package outreach

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"housing-match-engine/internal/models"
	"housing-match-engine/internal/utils"
)

const defaultModel = "gemini-2.0-flash"

// contentGenerator abstracts the Gemini call so tests can substitute a fake.
type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Generator wraps the Google GenAI client for prompt-based drafting.
type Generator struct {
	client    *genai.Client
	modelName string
}

// NewGenerator creates a Generator for the Gemini API backend. An empty API
// key returns (nil, nil): the drafter then falls back to plain templates.
func NewGenerator(ctx context.Context, apiKey, model string) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Generator{client: client, modelName: model}, nil
}

// GenerateContent sends the prompt to Gemini and returns the first textual
// response.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", fmt.Errorf("gemini api returned empty response")
	}

	return output, nil
}

// Drafter produces outreach messages, via Gemini when available and via a
// plain template otherwise.
type Drafter struct {
	generator contentGenerator
	logger    *zap.Logger
}

// NewDrafter creates a Drafter. A nil generator is allowed and selects the
// template fallback.
func NewDrafter(generator *Generator) *Drafter {
	d := &Drafter{logger: utils.GetLogger()}
	if generator != nil {
		d.generator = generator
	}
	return d
}

// DraftListingMessage writes a short message from a seeker to the person
// behind a listing.
func (d *Drafter) DraftListingMessage(ctx context.Context, seeker models.RoommateProfile, listing models.Listing) (string, error) {
	if d.generator == nil {
		return fmt.Sprintf(
			"Hi! I saw your listing %q and I'm very interested. I'm looking to move in around %s with a budget of $%.0f-$%.0f. Could we set up a time to talk? - %s",
			listing.Title, seeker.MoveInMonth, seeker.BudgetMin, seeker.BudgetMax, seeker.Name), nil
	}

	prompt := buildListingPrompt(seeker, listing)
	message, err := d.generator.GenerateContent(ctx, prompt)
	if err != nil {
		d.logger.Warn("outreach generation failed", zap.Error(err))
		return "", err
	}

	return message, nil
}

// DraftRoommateMessage writes a short introduction from a seeker to a
// candidate roommate, referencing their compatibility reasons.
func (d *Drafter) DraftRoommateMessage(ctx context.Context, seeker models.RoommateProfile, match models.MatchResult) (string, error) {
	if d.generator == nil {
		return fmt.Sprintf(
			"Hi %s! We matched at %d%% compatibility on the housing board. I'm also looking for a place around %s - want to chat? - %s",
			match.Profile.Name, match.Score, seeker.MoveInMonth, seeker.Name), nil
	}

	prompt := buildRoommatePrompt(seeker, match)
	message, err := d.generator.GenerateContent(ctx, prompt)
	if err != nil {
		d.logger.Warn("outreach generation failed", zap.Error(err))
		return "", err
	}

	return message, nil
}

func buildListingPrompt(seeker models.RoommateProfile, listing models.Listing) string {
	return fmt.Sprintf(`You are helping a student contact a housing lister. Write a short, friendly, specific first message (under 120 words, no subject line, no placeholders).

SEEKER:
- Name: %s
- Budget: $%.0f-$%.0f per month
- Target move-in: %s

LISTING:
- Title: %s
- Rent: $%.0f
- Type: %s
- Available from: %s
- Features: %s

The message should mention the listing specifics, the seeker's move-in timing, and ask one concrete next-step question.`,
		seeker.Name, seeker.BudgetMin, seeker.BudgetMax, seeker.MoveInMonth,
		listing.Title, listing.Rent, listing.Type, listing.MoveInDate,
		strings.Join(listing.Features, ", "),
	)
}

func buildRoommatePrompt(seeker models.RoommateProfile, match models.MatchResult) string {
	return fmt.Sprintf(`You are helping a student introduce themselves to a potential roommate they matched with. Write a short, friendly first message (under 100 words, no placeholders).

SENDER:
- Name: %s
- Target move-in: %s

RECIPIENT:
- Name: %s

COMPATIBILITY (%d/100):
- %s

Reference one or two of the compatibility points naturally; do not list them all.`,
		seeker.Name, seeker.MoveInMonth,
		match.Profile.Name,
		match.Score,
		strings.Join(match.Reasons, "\n- "),
	)
}
