package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/seed"
)

func newPopulateCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Fill an empty catalog with sample genres, authors, books and copies",
		Long: `Fill an empty catalog with sample data.

The command refuses to touch a catalog that already holds books.

Examples:
  locallibrary populate
  locallibrary populate --db ./sample.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = cfg.Database.Path
			}
			return runPopulate(cmd, dbPath)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Catalog database path, defaults to DATABASE_PATH")
	return cmd
}

func runPopulate(cmd *cobra.Command, dbPath string) error {
	db, err := database.NewDatabaseWithLogLevel(dbPath, logger.Silent)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := seed.Populate(db.DB, time.Now())
	if errors.Is(err, seed.ErrNotEmpty) {
		warn(cmd, "%s already holds books, nothing added", dbPath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("populate: %w", err)
	}

	ok(cmd, "Populated %s", color.CyanString(dbPath))
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-16s %d\n", "genres:", res.Genres)
	fmt.Fprintf(out, "  %-16s %d\n", "authors:", res.Authors)
	fmt.Fprintf(out, "  %-16s %d\n", "books:", res.Books)
	fmt.Fprintf(out, "  %-16s %d\n", "book instances:", res.BookInstances)
	return nil
}
