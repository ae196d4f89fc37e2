package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List saved games",
	Args:  cobra.NoArgs,
	RunE:  runListSaves,
}

var deleteSaveCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved game",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteSave,
}

func init() {
	savesCmd.AddCommand(deleteSaveCmd)
}

func runListSaves(cmd *cobra.Command, _ []string) error {
	env, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer env.close()

	saves, err := env.store.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(saves) == 0 {
		fmt.Println("No saved games.")
		return nil
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tUPDATED")
	for _, s := range saves {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Name, s.Size, s.UpdatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

func runDeleteSave(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer env.close()

	if err := env.store.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	env.logger.Info("save deleted", zap.String("save", args[0]))
	fmt.Printf("Deleted %s.\n", args[0])
	return nil
}
