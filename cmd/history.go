package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ghunsub/internal/config"
	"ghunsub/internal/store/postgres"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent unsubscribe actions from the history store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("database-url") {
			cfg.DatabaseURL = flagDatabaseURL
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("history requires a database (--database-url or $DATABASE_URL)")
		}

		history, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open history store: %v", err)
		}
		defer history.Close()

		records, err := history.RecentUnsubscribes(flagHistoryLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No unsubscribes recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tREPOSITORY\tTYPE\tTITLE")
		for _, record := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				record.CreatedAt.Format("2006-01-02 15:04"),
				record.Repository, record.SubjectType, record.Title)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "maximum number of rows to show")
}
