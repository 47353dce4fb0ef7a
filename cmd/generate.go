package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/devforge/pmagent/internal/credentials"
	"github.com/devforge/pmagent/internal/generator"
)

var generateCmd = &cobra.Command{
	Use:   `generate "<idea>" ["<tech stack>"]`,
	Short: "Generate a feature specification bundle from a product idea",
	Long: `Generate a complete feature specification from a short product idea.

The bundle is written to a new directory under the artifact root and contains
the full record as a structured data file plus a human-readable README.

Examples:
  pmagent generate "Task management app"
  pmagent generate "Task management app" "React, Node.js, PostgreSQL"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	idea := args[0]
	techStack := ""
	if len(args) > 1 {
		techStack = args[1]
	}

	cfg := GetConfig()
	creds, err := credentials.Load(appFs, cfg.Credentials.File)
	if err != nil {
		return err
	}
	strategy, err := generator.StrategyByName(cfg.Generator.Strategy)
	if err != nil {
		return err
	}
	gen := generator.New(cfg.Generator.Version, creds, generator.WithStrategy(strategy))

	featureStore, err := GetStore()
	if err != nil {
		return err
	}

	printTitle("PM Agent: Analyzing feature idea...")
	fmt.Printf("   Idea: %s\n", idea)
	if verbose || cfg.Verbose {
		fmt.Printf("   Strategy: %s\n", gen.Strategy().Name())
		if providers := gen.Providers(); len(providers) > 0 {
			fmt.Printf("   Credentials present for: %s\n", strings.Join(providers, ", "))
		}
	}

	id, err := featureStore.AllocateID(time.Now())
	if err != nil {
		return fmt.Errorf("allocate feature identifier: %w", err)
	}

	record := gen.Generate(id, idea, techStack)
	if err := featureStore.Save(record); err != nil {
		return fmt.Errorf("save feature %s: %w", id, err)
	}

	criteriaCount := 0
	for _, block := range record.AcceptanceCriteria {
		criteriaCount += len(block.Criteria)
	}

	printSuccess("PM Agent: Feature %s specified", id)
	fmt.Printf("   📋 %d user stories\n", len(record.UserStories))
	fmt.Printf("   ✅ %d acceptance criteria\n", criteriaCount)
	fmt.Printf("   🔧 %d technical requirements\n", len(record.TechnicalRequirements))
	fmt.Println()
	fmt.Printf("📁 Feature saved to: %s/\n", featureStore.Dir(id))
	fmt.Printf("📄 View spec: %s\n", featureStore.ReadmePath(id))

	return nil
}
