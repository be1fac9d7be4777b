package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	"github.com/SscSPs/hr_memo_app/internal/core/services"
	"github.com/spf13/cobra"
)

func queueCmd() *cobra.Command {
	var level int

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Print the memoranda awaiting a decision at a level",
		Example: `  hr_admin queue --level 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, repos, closeRepos, err := openRepositories(ctx)
			if err != nil {
				return err
			}
			defer closeRepos()

			svc := services.NewMemorandumService(repos.MemorandumRepo, services.WithLevelPermissions(cfg.LevelPermissions))
			memos, err := svc.ListReviewQueue(ctx, domain.ValidationLevel(level))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tPRIORITY\tAUTHOR\tTITLE")
			for _, m := range memos {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", m.MemorandumID, m.CreatedAt.Format("2006-01-02 15:04"), m.Priority, m.AuthorName, m.Title)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d memoranda awaiting level %d\n", len(memos), level)
			return nil
		},
	}

	cmd.Flags().IntVar(&level, "level", 1, "validation level (1-3)")
	return cmd
}
