package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/plangen"
	"github.com/sameer-hoda/mynextpr-sub001/internal/infra/artifacts"
	"github.com/sameer-hoda/mynextpr-sub001/internal/infra/config"
	"github.com/sameer-hoda/mynextpr-sub001/internal/infra/llm/gemini"
)

type cliOptions struct {
	goalDistance string
	goalTime     string
	fitnessLevel string
	age          string
	sex          string
	persona      string
	userID       string
	timeout      time.Duration
	asJSON       bool
	useFallback  bool
}

func main() {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "plancli",
		Short: "Generate a personalized running plan from the terminal",
		Long: `plancli runs the plan generation pipeline once and prints the result.

With GEMINI_API_KEY set it calls the model; --fallback skips the call and
prints the deterministic starter plan instead.

Examples:
  plancli --goal 10K --fitness Intermediate --age 35 --sex female
  plancli --goal 5K --fitness Beginner --age 28 --sex male --persona "The Gentle Start"
  plancli --goal half-marathon --fallback`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.goalDistance, "goal", "", "goal distance, e.g. 5K, 10K, half-marathon")
	flags.StringVar(&opts.goalTime, "time", "", "goal time, e.g. sub-50:00 (optional)")
	flags.StringVar(&opts.fitnessLevel, "fitness", "", "current fitness level, e.g. Beginner")
	flags.StringVar(&opts.age, "age", "", "runner age")
	flags.StringVar(&opts.sex, "sex", "", "runner sex")
	flags.StringVar(&opts.persona, "persona", "", "coach persona, e.g. The Balanced & Motivational")
	flags.StringVar(&opts.userID, "user", "local", "owner id stamped on every workout")
	flags.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "model call timeout")
	flags.BoolVar(&opts.asJSON, "json", false, "print the plan as JSON")
	flags.BoolVar(&opts.useFallback, "fallback", false, "skip the model and print the fallback plan")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *cliOptions) error {
	profile := plangen.UserProfile{
		GoalDistance: opts.goalDistance,
		GoalTime:     opts.goalTime,
		FitnessLevel: opts.fitnessLevel,
		Age:          opts.age,
		Sex:          opts.sex,
		CoachPersona: opts.persona,
		UserID:       opts.userID,
	}

	plan, err := buildPlan(ctx, profile, opts)
	if err != nil {
		return err
	}

	if opts.asJSON {
		encoded, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return fmt.Errorf("encode plan: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	}

	printPlan(plan)
	return nil
}

func buildPlan(ctx context.Context, profile plangen.UserProfile, opts *cliOptions) (plangen.Plan, error) {
	if opts.useFallback {
		return plangen.FallbackPlan(profile), nil
	}

	cfg, err := config.Load()
	if err != nil {
		return plangen.Plan{}, err
	}

	// Logs go to stderr so the plan stays clean on stdout.
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	client, err := gemini.NewClient(
		cfg.Gemini.APIKey,
		cfg.Gemini.BaseURL,
		cfg.Gemini.Model,
		cfg.Gemini.Temperature,
		cfg.Gemini.MaxOutputTokens,
		log,
	)
	if err != nil {
		return plangen.Plan{}, err
	}

	svc := plangen.NewService(client, artifacts.NopRecorder{}, log)

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()
	return svc.GeneratePlan(ctx, profile)
}

func printPlan(plan plangen.Plan) {
	fmt.Println(plan.Overview)
	for _, workout := range plan.Workouts {
		fmt.Println()
		fmt.Printf("Day %d: %s [%s]\n", workout.Day, workout.Title, workout.Type)
		fmt.Printf("  %s\n", workout.Description)
		if workout.Warmup != nil {
			fmt.Printf("  Warmup:   %s\n", *workout.Warmup)
		}
		if workout.MainSet != nil {
			fmt.Printf("  Main set: %s\n", *workout.MainSet)
		}
		if workout.Cooldown != nil {
			fmt.Printf("  Cooldown: %s\n", *workout.Cooldown)
		}
		meta := make([]string, 0, 2)
		if workout.DurationMinutes != nil {
			meta = append(meta, fmt.Sprintf("%.0f min", *workout.DurationMinutes))
		}
		if workout.DistanceKm != nil {
			meta = append(meta, fmt.Sprintf("%.1f km", *workout.DistanceKm))
		}
		if len(meta) > 0 {
			fmt.Printf("  %s\n", strings.Join(meta, " / "))
		}
	}
}
