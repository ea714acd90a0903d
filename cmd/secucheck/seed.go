package main

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	evalapp "github.com/sngm3741/secucheck/api/internal/evaluation/application"
	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Store randomly generated evaluations for local development",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		if count <= 0 {
			return fmt.Errorf("--count must be positive")
		}
		randomSeed, _ := cmd.Flags().GetInt64("seed")
		if randomSeed == 0 {
			randomSeed = time.Now().UnixNano()
		}

		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.close(context.Background())

		rng := rand.New(rand.NewSource(randomSeed))
		created, err := seedEvaluations(cmd.Context(), svc.commands, rng, count)
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d evaluations (seed=%d)\n", created, randomSeed)
		return err
	},
}

func init() {
	seedCmd.Flags().Int("count", 20, "Number of evaluations to create")
	seedCmd.Flags().Int64("seed", 0, "Random seed (0 picks one from the clock)")
}

var (
	seedFirstNames = []string{"Ana", "Luis", "Marta", "Jorge", "Lucia", "Pablo", "Elena", "Diego", "Sofia", "Carlos"}
	seedLastNames  = []string{"Garcia", "Lopez", "Martinez", "Sanchez", "Perez", "Gomez", "Ruiz", "Diaz"}
	seedDomains    = []string{"example.com", "example.org", "example.net"}
)

// seedEvaluations submits count random answer sets and returns how many
// were stored before the first failure.
func seedEvaluations(ctx context.Context, commands evalapp.EvaluationCommandService, rng *rand.Rand, count int) (int, error) {
	for i := 0; i < count; i++ {
		first := seedFirstNames[rng.Intn(len(seedFirstNames))]
		last := seedLastNames[rng.Intn(len(seedLastNames))]

		answers := make(map[string]any, 5)
		for _, q := range domain.Questions() {
			answers[string(q.ID)] = string(q.Options[rng.Intn(len(q.Options))].Value)
		}

		_, err := commands.Submit(ctx, evalapp.SubmitEvaluationCommand{
			Name:    first + " " + last,
			Email:   fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), i, seedDomains[rng.Intn(len(seedDomains))]),
			Answers: answers,
		})
		if err != nil {
			return i, fmt.Errorf("seed evaluation %d: %w", i+1, err)
		}
	}
	return count, nil
}
