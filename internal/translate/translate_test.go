package translate

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/mgpai22/lrctool/internal/subtitle"
)

func TestFactoryReturnsGeminiTranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "Japanese"}
	translator, err := Factory(ctx, ProviderGemini, "fake-key", opts)
	if err != nil {
		t.Fatalf("Factory(ProviderGemini) returned error: %v", err)
	}
	if _, ok := translator.(*GeminiTranslator); !ok {
		t.Errorf("expected *GeminiTranslator, got %T", translator)
	}
}

func TestFactoryReturnsOpenAITranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "Spanish"}
	translator, err := Factory(ctx, ProviderOpenAI, "fake-key", opts)
	if err != nil {
		t.Fatalf("Factory(ProviderOpenAI) returned error: %v", err)
	}
	if _, ok := translator.(*OpenAITranslator); !ok {
		t.Errorf("expected *OpenAITranslator, got %T", translator)
	}
}

func TestFactoryReturnsAnthropicTranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "German"}
	translator, err := Factory(ctx, ProviderAnthropic, "fake-key", opts)
	if err != nil {
		t.Fatalf("Factory(ProviderAnthropic) returned error: %v", err)
	}
	if _, ok := translator.(*AnthropicTranslator); !ok {
		t.Errorf("expected *AnthropicTranslator, got %T", translator)
	}
}

func TestFactoryRequiresTargetLanguage(t *testing.T) {
	ctx := context.Background()
	opts := Options{} // no TargetLanguage
	_, err := Factory(ctx, ProviderGemini, "fake-key", opts)
	if err == nil {
		t.Error("expected error for missing target language")
	}
}

func TestFactoryRequiresAPIKey(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "French"}
	for _, provider := range []Provider{ProviderGemini, ProviderOpenAI, ProviderAnthropic} {
		if _, err := Factory(ctx, provider, "", opts); err == nil {
			t.Errorf("%s: expected error for missing API key", provider)
		}
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "French"}
	_, err := Factory(ctx, Provider("unknown"), "fake-key", opts)
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestBuildPrompt(t *testing.T) {
	opts := Options{
		InputLanguage:  "English",
		TargetLanguage: "Japanese",
		Prompt:         "Keep names in romaji.",
	}

	items := []Item{
		{Index: 0, Speaker: "Alice", Text: "Hello world"},
		{Index: 1, Speaker: "Bob", Text: "Goodbye"},
	}

	prompt := BuildPrompt(opts, items)

	for _, want := range []string{
		"English transcript lines",
		"to Japanese",
		"Hello world",
		`"speaker": "Alice"`,
		`"index": 0`,
		"Additional instructions: Keep names in romaji.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt should contain %q", want)
		}
	}
}

func TestBuildPromptWithoutInputLanguage(t *testing.T) {
	opts := Options{TargetLanguage: "Spanish"}

	prompt := BuildPrompt(opts, []Item{{Index: 0, Text: "Hello"}})

	if strings.Contains(prompt, "English") {
		t.Error("prompt should not contain input language when not specified")
	}
	if !strings.Contains(prompt, "to Spanish") {
		t.Error("prompt should contain target language")
	}
	if strings.Contains(prompt, "Additional instructions") {
		t.Error("prompt should not contain empty additional instructions")
	}
}

func TestItemsAndApply(t *testing.T) {
	end := uint32(4200)
	entries := []subtitle.Entry{
		{Speaker: "Alice", Text: "Hello world", StartMS: 1500, EndMS: &end},
		{Speaker: "Bob", Text: "Hi there", StartMS: 4200},
	}

	items := Items(entries)
	if len(items) != 2 || items[1].Index != 1 || items[1].Speaker != "Bob" {
		t.Fatalf("unexpected items: %+v", items)
	}

	translated, skipped := Apply(entries, []Result{
		{Index: 1, Text: " Hola "},
		{Index: 0, Text: "Hola mundo"},
		{Index: 7, Text: "stray"},
	})

	if len(skipped) != 1 || skipped[0] != 7 {
		t.Errorf("expected index 7 skipped, got %v", skipped)
	}
	if translated[0].Text != "Hola mundo" || translated[1].Text != "Hola" {
		t.Errorf("unexpected texts: %q, %q", translated[0].Text, translated[1].Text)
	}
	if translated[0].Speaker != "Alice" || translated[0].End() != 4200 {
		t.Errorf("speaker or timing changed: %+v", translated[0])
	}
	if entries[0].Text != "Hello world" {
		t.Error("Apply must not modify its input")
	}
}

// Integration test: only runs if OPENAI_API_KEY is set
func TestOpenAITranslatorIntegration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("OPENAI_API_KEY not set; skipping integration test")
	}

	ctx := context.Background()
	opts := Options{TargetLanguage: "Spanish"}
	translator, err := NewOpenAITranslator(ctx, apiKey, opts)
	if err != nil {
		t.Fatalf("NewOpenAITranslator error: %v", err)
	}

	items := []Item{
		{Index: 0, Speaker: "Alice", Text: "Hello"},
		{Index: 1, Speaker: "Bob", Text: "Goodbye"},
	}

	results, err := translator.Translate(ctx, items)
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Text == "" {
			t.Errorf("result index %d has empty text", r.Index)
		}
	}
}
