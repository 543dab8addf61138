package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mgpai22/lrctool/internal/subtitle"
)

// single transcript line to translate; speaker is context only
type Item struct {
	Index   int    `json:"index"`
	Speaker string `json:"speaker,omitempty"`
	Text    string `json:"text"`
}

// translated text for one line
type Result struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// interface for text translation
type Translator interface {
	Translate(ctx context.Context, items []Item) ([]Result, error)
}

// translation service provider
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

const (
	DefaultBatchSize   = 50
	DefaultConcurrency = 3
)

type Options struct {
	InputLanguage  string
	TargetLanguage string
	Model          string
	Prompt         string
	BatchSize      int // items per API request (default 50)
	Concurrency    int // parallel requests (default 3)
}

// creates Translator based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Translator, error) {
	if opts.TargetLanguage == "" {
		return nil, fmt.Errorf("target language is required")
	}

	switch provider {
	case ProviderGemini:
		return NewGeminiTranslator(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAITranslator(ctx, apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicTranslator(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported translation provider: %s", provider)
	}
}

// BuildPrompt creates the translation prompt for LLM providers
func BuildPrompt(opts Options, items []Item) string {
	var sb strings.Builder

	if opts.InputLanguage != "" {
		sb.WriteString(fmt.Sprintf(
			"Translate the following %s transcript lines to %s.\n\n",
			opts.InputLanguage,
			opts.TargetLanguage,
		))
	} else {
		sb.WriteString(fmt.Sprintf(
			"Translate the following transcript lines to %s.\n\n",
			opts.TargetLanguage,
		))
	}

	sb.WriteString("IMPORTANT INSTRUCTIONS:\n")
	sb.WriteString("1. Translate ONLY the 'text' field, preserving the meaning.\n")
	sb.WriteString(
		"2. The 'speaker' field names who is talking; use it for context and do not translate or return it.\n",
	)
	sb.WriteString("3. Keep each line a single line of dialogue.\n")
	sb.WriteString("4. Return ONLY a JSON array of objects with 'index' and 'text' fields.\n")
	sb.WriteString("5. The 'index' values must match the input indices exactly.\n")
	sb.WriteString("6. Do not add any explanation or markdown formatting.\n\n")

	if opts.Prompt != "" {
		sb.WriteString(
			fmt.Sprintf("Additional instructions: %s\n\n", opts.Prompt),
		)
	}

	sb.WriteString("Input JSON:\n")

	inputJSON, _ := json.MarshalIndent(items, "", "  ")
	sb.Write(inputJSON)

	sb.WriteString("\n\nOutput the translated JSON array only:")

	return sb.String()
}

// Items builds one translation item per entry, indexed by position.
func Items(entries []subtitle.Entry) []Item {
	items := make([]Item, len(entries))
	for i, entry := range entries {
		items[i] = Item{
			Index:   i,
			Speaker: entry.Speaker,
			Text:    entry.Text,
		}
	}
	return items
}

// Apply returns a copy of entries with translated texts. Timing and speakers
// are untouched. Results whose index is out of range are skipped and
// returned so the caller can report them.
func Apply(entries []subtitle.Entry, results []Result) ([]subtitle.Entry, []int) {
	translated := make([]subtitle.Entry, len(entries))
	copy(translated, entries)

	var skipped []int
	for _, result := range results {
		if result.Index < 0 || result.Index >= len(translated) {
			skipped = append(skipped, result.Index)
			continue
		}
		translated[result.Index].Text = strings.TrimSpace(result.Text)
	}

	return translated, skipped
}
