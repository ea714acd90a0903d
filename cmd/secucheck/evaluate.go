package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	evalapp "github.com/sngm3741/secucheck/api/internal/evaluation/application"
	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a set of answers and store the evaluation",
	Example: `  secucheck evaluate --name "Ana" --email ana@example.com \
    --password si --two-factor si --updates siempre --public-wifi no --backup no`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.close(context.Background())

		flags := cmd.Flags()
		name, _ := flags.GetString("name")
		email, _ := flags.GetString("email")

		// Unset flags are left out so validation reports them as missing.
		answers := map[string]any{}
		for flag, question := range answerFlags {
			if flags.Changed(flag) {
				value, _ := flags.GetString(flag)
				answers[string(question)] = value
			}
		}

		evaluation, err := svc.commands.Submit(cmd.Context(), evalapp.SubmitEvaluationCommand{
			Name:    name,
			Email:   email,
			Answers: answers,
		})
		if verr, ok := domain.IsValidationError(err); ok {
			for _, f := range verr.Fields {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", f.Field, f.Message)
			}
			return fmt.Errorf("invalid evaluation")
		}
		if err != nil {
			return err
		}

		printResult(cmd.OutOrStdout(), evaluation)
		return nil
	},
}

var answerFlags = map[string]domain.QuestionID{
	"password":    domain.QuestionPassword,
	"two-factor":  domain.QuestionTwoFactor,
	"updates":     domain.QuestionUpdates,
	"public-wifi": domain.QuestionPublicWifi,
	"backup":      domain.QuestionBackup,
}

func init() {
	f := evaluateCmd.Flags()
	f.String("name", "", "Your name (2-50 characters)")
	f.String("email", "", "Your email address")
	f.String("password", "", "Strong, unique passwords? si|no")
	f.String("two-factor", "", "Two-factor authentication enabled? si|no")
	f.String("updates", "", "How often do you update? siempre|a-veces|nunca")
	f.String("public-wifi", "", "Do you use public WiFi? si|no")
	f.String("backup", "", "Regular backups? si|no")
}

func printResult(w io.Writer, evaluation *domain.Evaluation) {
	fmt.Fprintf(w, "id:    %s\n", evaluation.ID)
	fmt.Fprintf(w, "score: %d/100 (%s)\n", evaluation.Score, domain.LevelFor(evaluation.Score))
	if len(evaluation.Recommendations) == 0 {
		fmt.Fprintln(w, "no recommendations, keep it up")
		return
	}
	fmt.Fprintln(w, "recommendations:")
	for _, r := range evaluation.Recommendations {
		fmt.Fprintf(w, "  [%s] %s: %s\n", r.Priority, r.Title, r.Description)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
