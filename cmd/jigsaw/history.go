package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-jigsaw/internal/platform/tui"
)

var (
	flagHistoryLimit int
	flagHistoryTUI   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs and best solves",
	Long: `Display the most recent puzzle runs and the best solves.

Examples:
  jigsaw history
  jigsaw history --limit 5
  jigsaw history --tui`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs and solves to list")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse best solves interactively")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store := openStore(cmd)
	if store == nil {
		return fmt.Errorf("history database unavailable at %s", appConfig.Storage.DBPath)
	}
	defer store.Close()

	if flagHistoryTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunHistory(store, width, height)
	}

	runs, err := store.RecentRuns(flagHistoryLimit)
	if err != nil {
		return err
	}
	fmt.Println("Recent runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'jigsaw shuffle <image>' to create the first puzzle!")
		return nil
	}
	fmt.Printf("  %-36s  %-5s  %-16s  %s\n", "Run", "Grid", "Date", "Picture")
	fmt.Printf("  %-36s  %-5s  %-16s  %s\n", "---", "----", "----", "-------")
	for _, r := range runs {
		fmt.Printf("  %-36s  %-5s  %-16s  %s\n", r.ID,
			fmt.Sprintf("%dx%d", r.GridSize, r.GridSize),
			r.CreatedAt.Format("2006-01-02 15:04"), r.Source)
	}

	solves, err := store.BestSolves(0, flagHistoryLimit)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Best solves")
	fmt.Println()
	if len(solves) == 0 {
		fmt.Println("No solves recorded yet.")
		return nil
	}
	fmt.Printf("  %-4s  %-5s  %-5s  %-5s  %-6s  %s\n", "Rank", "Grid", "Moves", "Turns", "Time", "Player")
	fmt.Printf("  %-4s  %-5s  %-5s  %-5s  %-6s  %s\n", "----", "----", "-----", "-----", "----", "------")
	for i, row := range tui.SolveRows(solves) {
		fmt.Printf("  %-4d  %-5s  %-5s  %-5s  %-6s  %s\n", i+1, row[1], row[2], row[3], row[4], row[5])
	}

	stats, err := store.GetStats()
	if err == nil {
		fmt.Println()
		fmt.Printf("%d runs, %d solves\n", stats.Runs, stats.Solves)
	}
	return nil
}
