package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgpai22/lrctool/internal/subtitle"
	"github.com/mgpai22/lrctool/internal/translate"
	"github.com/spf13/cobra"
)

const transcriptExt = ".lrc"

// replaced in tests
var newTranslator = translate.Factory

var convertCmd = &cobra.Command{
	Use:   "convert [lrc_file]",
	Short: "Convert a timestamped transcript to SRT or ASS subtitles",
	Long: `Convert a transcript made of "[HH:MM:SS.fff]speaker<TAB>text" lines into subtitles.

Each line becomes one subtitle shown until the next line starts; the last line
is shown for 3 seconds. Lines that do not match the pattern are ignored.

When --format is omitted it is taken from the --output extension (.ass for ASS,
anything else SRT). When --output is omitted it is the input path with its .lrc
suffix replaced by the format extension.

Examples:
  lrctool convert talk.lrc
  lrctool convert talk.lrc -f ass
  lrctool convert talk.lrc -o subs/talk.ass
  lrctool convert talk.lrc -f srt --translate-to Japanese --provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringP("format", "f", "", "Output subtitle format (srt, ass)")
	convertCmd.Flags().
		StringP("translate-to", "t", "", "Translate line text to this language before writing")
	convertCmd.Flags().
		String("provider", "", "Translation provider (gemini, openai, anthropic)")
	convertCmd.Flags().
		String("model", "", "Model to use for translation (provider default if empty)")
	convertCmd.Flags().
		StringP("api-key", "k", "", "API key for the translation provider (or set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY)")
	convertCmd.Flags().
		Int("concurrency", 0, "Number of parallel translation requests")
	convertCmd.Flags().
		Int("batch-size", 0, "Lines per translation request")
	convertCmd.Flags().
		String("input-language", "", "Language of the transcript (auto-detected if empty)")
	convertCmd.Flags().
		String("prompt", "", "Additional instructions for the translator")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	formatStr, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	targetLang, _ := cmd.Flags().GetString("translate-to")

	format, outputPath, err := resolveOutput(inputPath, formatStr, outputPath)
	if errors.Is(err, subtitle.ErrUnsupportedFormat) {
		fmt.Fprintf(
			cmd.ErrOrStderr(),
			"unsupported output format: %s (supported: srt, ass)\n",
			formatStr,
		)
		return nil
	}
	if err != nil {
		return err
	}

	logger.Infow("Starting transcript conversion",
		"input", inputPath,
		"output", outputPath,
		"format", format,
	)

	entries, err := subtitle.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	entries = subtitle.Resolve(entries)

	logger.Infow("Parsed transcript",
		"entries", len(entries),
	)

	if targetLang != "" {
		entries, err = translateEntries(cmd.Context(), cmd, entries, targetLang)
		if err != nil {
			return err
		}
	}

	writer, err := subtitle.NewWriter(format)
	if err != nil {
		return fmt.Errorf("failed to create subtitle writer: %w", err)
	}

	if err := writer.Write(entries, outputPath); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Subtitles converted successfully: %s\n", absOutput)
	fmt.Fprintf(out, "  Entries: %d\n", len(entries))
	fmt.Fprintf(out, "  Format: %s\n", format)
	if targetLang != "" {
		fmt.Fprintf(out, "  Translated to: %s\n", targetLang)
	}

	return nil
}

// resolveOutput settles the output format and path from the optional flags.
// An explicit format always wins, even over a mismatching output extension.
func resolveOutput(
	inputPath, formatStr, outputPath string,
) (subtitle.Format, string, error) {
	var format subtitle.Format
	switch {
	case formatStr != "":
		parsed, err := subtitle.ParseFormat(formatStr)
		if err != nil {
			return "", "", err
		}
		format = parsed
	case outputPath != "":
		format = subtitle.FormatFromPath(outputPath)
	default:
		format = subtitle.FormatSRT
	}

	if outputPath == "" {
		outputPath = deriveOutputPath(inputPath, format)
	}

	return format, outputPath, nil
}

// talk.lrc -> talk.srt, notes.txt -> notes.txt.srt
func deriveOutputPath(inputPath string, format subtitle.Format) string {
	base := strings.TrimSuffix(inputPath, transcriptExt)
	return base + subtitle.ExtensionFor(format)
}

func translateEntries(
	ctx context.Context,
	cmd *cobra.Command,
	entries []subtitle.Entry,
	targetLang string,
) ([]subtitle.Entry, error) {
	if len(entries) == 0 {
		logger.Infow("No entries to translate")
		return entries, nil
	}

	if cfgErr != nil {
		return nil, cfgErr
	}

	settings := *cfg
	flags := cmd.Flags()
	if flags.Changed("provider") {
		settings.Translate.Provider, _ = flags.GetString("provider")
	}
	if flags.Changed("model") {
		settings.Translate.Model, _ = flags.GetString("model")
	}
	if flags.Changed("concurrency") {
		settings.Translate.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("batch-size") {
		settings.Translate.BatchSize, _ = flags.GetInt("batch-size")
	}
	if flags.Changed("input-language") {
		settings.Translate.InputLanguage, _ = flags.GetString("input-language")
	}
	if flags.Changed("prompt") {
		settings.Translate.Prompt, _ = flags.GetString("prompt")
	}

	settings.Translate.Provider = strings.ToLower(settings.Translate.Provider)
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	provider := settings.Translate.Provider
	apiKey, _ := flags.GetString("api-key")
	if apiKey == "" {
		apiKey = settings.APIKey(provider)
	}
	if apiKey == "" {
		return nil, fmt.Errorf(
			"API key is required: use --api-key flag or set %s_API_KEY environment variable",
			strings.ToUpper(provider),
		)
	}

	opts := translate.Options{
		InputLanguage:  settings.Translate.InputLanguage,
		TargetLanguage: targetLang,
		Model:          settings.Translate.Model,
		Prompt:         settings.Translate.Prompt,
		BatchSize:      settings.Translate.BatchSize,
		Concurrency:    settings.Translate.Concurrency,
	}

	translator, err := newTranslator(ctx, translate.Provider(provider), apiKey, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create translator: %w", err)
	}

	logger.Infow("Translating transcript",
		"provider", provider,
		"target_language", targetLang,
		"items", len(entries),
		"concurrency", opts.Concurrency,
	)

	results, err := translator.Translate(ctx, translate.Items(entries))
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}

	translated, skipped := translate.Apply(entries, results)
	for _, idx := range skipped {
		logger.Warnw("Skipping invalid result index",
			"index", idx,
			"max", len(entries)-1,
		)
	}

	logger.Infow("Translation complete",
		"results", len(results),
	)

	return translated, nil
}
