package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"deckwright/internal/deck"
	"deckwright/internal/history"
	"deckwright/internal/language"
	"deckwright/internal/pipeline"
	"deckwright/internal/services/unsplash"
)

const (
	defaultTopic    = "Artificial Intelligence in Healthcare"
	defaultDuration = 10
	defaultAudience = "University students"
	defaultLanguage = "English"
)

var experienceLevels = []string{"beginner", "intermediate", "expert"}

type generateOptions struct {
	topic    string
	duration int
	audience string
	language string
	theme    string
	output   string

	speakerAge        int
	speakerRole       string
	speakerExperience string

	jsonOutput bool
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a deck, speaker script, and notes for a topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, ctx, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.topic, "topic", "t", defaultTopic, "Presentation topic")
	flags.IntVarP(&opts.duration, "duration", "d", defaultDuration, "Talk length in minutes")
	flags.StringVarP(&opts.audience, "audience", "a", defaultAudience, "Target audience")
	flags.StringVarP(&opts.language, "language", "l", defaultLanguage, "Output language")
	flags.StringVarP(&opts.output, "output", "o", "", "Deck output path (default: <output.dir>/<topic>.pptx)")
	flags.StringVar(&opts.theme, "theme", "", "Visual theme (see `deckwright themes`)")
	flags.IntVar(&opts.speakerAge, "speaker-age", 0, "Speaker age; enables the speaker profile")
	flags.StringVar(&opts.speakerRole, "speaker-role", "", "Speaker role, used with --speaker-age")
	flags.StringVar(&opts.speakerExperience, "speaker-experience", "", "Speaker experience (beginner, intermediate, expert), used with --speaker-age")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Print the result as JSON")

	return cmd
}

// userInput builds the pipeline request. Role and experience only apply
// when an age is given.
func (o generateOptions) userInput() (deck.UserInput, error) {
	in := deck.UserInput{
		Topic:           strings.TrimSpace(o.topic),
		DurationMinutes: o.duration,
		Audience:        strings.TrimSpace(o.audience),
		Language:        language.DisplayName(o.language),
		Theme:           strings.TrimSpace(o.theme),
	}
	if o.speakerAge <= 0 {
		return in, nil
	}
	level := strings.ToLower(strings.TrimSpace(o.speakerExperience))
	if level != "" && !validExperience(level) {
		return deck.UserInput{}, fmt.Errorf("--speaker-experience must be one of %s (got %q)", strings.Join(experienceLevels, ", "), o.speakerExperience)
	}
	in.Speaker = &deck.SpeakerProfile{
		Age:             o.speakerAge,
		Role:            strings.TrimSpace(o.speakerRole),
		ExperienceLevel: level,
	}
	return in, nil
}

func validExperience(level string) bool {
	for _, candidate := range experienceLevels {
		if level == candidate {
			return true
		}
	}
	return false
}

func runGenerate(cmd *cobra.Command, ctx *commandContext, opts generateOptions) error {
	in, err := opts.userInput()
	if err != nil {
		return err
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger()
	if err != nil {
		return err
	}
	gen, err := ctx.generator(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("generation backend: %w", err)
	}

	return ctx.withStore(func(store *history.Store) error {
		deps := pipeline.Dependencies{Generator: gen, Store: store}
		if client := unsplash.NewConfiguredClient(cfg); client != nil {
			deps.Searcher = client
		}
		p, err := pipeline.New(cfg, deps, logger)
		if err != nil {
			return err
		}

		exec := p.Start(cmd.Context(), in, opts.output)
		progress := newProgressRenderer(cmd.ErrOrStderr())
		for event := range exec.Events() {
			progress.render(event)
		}
		res, err := exec.Wait()
		if err != nil {
			return err
		}

		if opts.jsonOutput {
			return writeJSON(cmd, res)
		}
		writeResult(cmd.OutOrStdout(), res)
		return nil
	})
}

func writeResult(out io.Writer, res pipeline.Result) {
	fmt.Fprintf(out, "Deck:    %s\n", res.DeckPath)
	if res.ScriptPath != "" {
		fmt.Fprintf(out, "Script:  %s\n", res.ScriptPath)
	}
	if res.PlanPath != "" {
		fmt.Fprintf(out, "Plan:    %s\n", res.PlanPath)
	}
	fmt.Fprintf(out, "Slides:  %d (%d with images)\n", res.SlideCount, res.ImagesIncluded)
	fmt.Fprintf(out, "Review:  %d/10\n", res.ReviewScore)
	fmt.Fprintf(out, "Run ID:  %s\n", res.RunID)
}
