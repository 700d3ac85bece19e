package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tomz197/invaders/internal/config"
	loopconfig "github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/score"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var redisAddr string

	root := &cobra.Command{
		Use:          "invaders-scores",
		Short:        "Inspect the leaderboard and manage cosmetics",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&redisAddr, "redis", config.GetEnv("REDIS_ADDR", "localhost:6379"), "redis address")

	open := func(ctx context.Context) (*score.RedisStore, func() error, error) {
		ctx, cancel := context.WithTimeout(ctx, loopconfig.StoreCallTimeout)
		defer cancel()
		return score.Dial(ctx, redisAddr)
	}

	root.AddCommand(newLeaderboardCmd(open), newEquipCmd(open))
	return root
}

type openFunc func(ctx context.Context) (*score.RedisStore, func() error, error)

func newLeaderboardCmd(open openFunc) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the best scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, closeStore, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			records, err := store.Top(cmd.Context(), n)
			if err != nil {
				return err
			}
			printLeaderboard(cmd.OutOrStdout(), records)
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "top", "n", loopconfig.LeaderboardSize, "number of records to show")
	return cmd
}

func newEquipCmd(open openFunc) *cobra.Command {
	var names []string
	for _, c := range score.Palette {
		names = append(names, string(c))
	}

	return &cobra.Command{
		Use:   "equip <username> <colour>",
		Short: "Set the projectile colour for a player",
		Long:  "Set the projectile colour for a player. Colours: " + strings.Join(names, ", ") + " or " + string(score.CosmeticDefault) + ".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := score.ParseCosmetic(args[1])
			if err != nil {
				return err
			}
			store, closeStore, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Equip(cmd.Context(), args[0], c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now fires %s\n", strings.TrimSpace(args[0]), c)
			return nil
		},
	}
}

func printLeaderboard(w io.Writer, records []score.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No scores yet")
		return
	}

	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			rec.Username,
			strconv.Itoa(rec.Score),
			strconv.Itoa(rec.Coins),
			rec.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "PILOT", "SCORE", "COINS", "WHEN").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 2 || col == 3 {
				return cell.Align(lipgloss.Right)
			}
			return cell
		})
	fmt.Fprintln(w, t.Render())
}
