package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/pokersim/holdem/internal/analysis"
	"github.com/pokersim/holdem/internal/deck"
	"github.com/pokersim/holdem/internal/display"
	"github.com/pokersim/holdem/internal/fileutil"
	"github.com/pokersim/holdem/internal/montecarlo"
	"github.com/pokersim/holdem/internal/statistics"
)

type CLI struct {
	Hole          string `arg:"" help:"Hero hole cards (e.g., 'AsKd')" required:""`
	Board         string `short:"b" help:"Community board cards (e.g., 'Td7s8h')"`
	Opponents     int    `short:"o" default:"1" help:"Number of random opponents (1-8)"`
	Trials        int    `short:"n" default:"10000" help:"Number of Monte Carlo trials"`
	Seed          int64  `help:"Random seed for reproducible results (0 for the fixed default)"`
	Workers       int    `short:"w" default:"0" help:"Worker goroutines (0 = one per CPU)"`
	Streets       bool   `short:"s" help:"Show equity at each street"`
	Possibilities bool   `short:"p" help:"Show hero hand type distribution"`
	Output        string `short:"j" help:"Write the result as JSON to this file" type:"path"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))
)

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	hole, err := deck.ParseCards(cli.Hole)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing hole cards: %v\n", err)
		kctx.Exit(1)
	}

	var board []deck.Card
	if cli.Board != "" {
		board, err = deck.ParseCards(cli.Board)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing board: %v\n", err)
			kctx.Exit(1)
		}
	}

	workers := cli.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	start := time.Now()
	result, err := montecarlo.Run(ctx, montecarlo.Params{
		Hole:      hole,
		Board:     board,
		Opponents: cli.Opponents,
		Trials:    cli.Trials,
		Seed:      cli.Seed,
		Workers:   workers,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		kctx.Exit(1)
	}
	duration := time.Since(start)

	displayResult(hole, board, result)

	if cli.Streets {
		fmt.Println()
		if err := displayStreets(ctx, hole, board, cli); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			kctx.Exit(1)
		}
	}

	if cli.Possibilities {
		fmt.Println()
		if err := displayPossibilities(ctx, hole, board, cli); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			kctx.Exit(1)
		}
	}

	if cli.Output != "" {
		if err := writeResultFile(cli.Output, hole, board, cli, result); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", cli.Output, err)
			kctx.Exit(1)
		}
	}

	fmt.Printf("\n%d trials in %v\n", result.Total, duration.Truncate(time.Millisecond))
}

// resultFile is the JSON export: the raw counts plus derived rates and the
// 95% interval on the win rate.
type resultFile struct {
	Hole      string  `json:"hole"`
	Board     string  `json:"board,omitempty"`
	Opponents int     `json:"opponents"`
	Seed      int64   `json:"seed"`
	montecarlo.SimResult
	WinRate     float64 `json:"win_pct"`
	TieRate     float64 `json:"tie_pct"`
	LossRate    float64 `json:"loss_pct"`
	Equity      float64 `json:"equity"`
	WinRateLow  float64 `json:"win_pct_low"`
	WinRateHigh float64 `json:"win_pct_high"`
}

func writeResultFile(path string, hole, board []deck.Card, cli CLI, result montecarlo.SimResult) error {
	low, high := statistics.Proportion{Successes: result.Wins, Trials: result.Total}.Wilson95()
	data, err := json.MarshalIndent(resultFile{
		Hole:        deck.FormatCards(hole),
		Board:       deck.FormatCards(board),
		Opponents:   cli.Opponents,
		Seed:        cli.Seed,
		SimResult:   result,
		WinRate:     result.WinRate(),
		TieRate:     result.TieRate(),
		LossRate:    result.LossRate(),
		Equity:      result.Equity(),
		WinRateLow:  low,
		WinRateHigh: high,
	}, "", "  ")
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, append(data, '\n'), 0o644)
}

func displayResult(hole, board []deck.Card, result montecarlo.SimResult) {
	if len(board) > 0 {
		fmt.Printf("%s\n", headerStyle.Render("board"))
		fmt.Printf("%s\n\n", display.Cards(board))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"),
		headerStyle.Render("loss"),
		headerStyle.Render("equity"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		display.Cards(hole),
		winStyle.Render(fmt.Sprintf("%.1f%%", result.WinRate()*100)),
		tieStyle.Render(fmt.Sprintf("%.1f%%", result.TieRate()*100)),
		lossStyle.Render(fmt.Sprintf("%.1f%%", result.LossRate()*100)),
		handStyle.Render(fmt.Sprintf("%.1f%%", result.Equity()*100)))
	w.Flush()

	low, high := statistics.Proportion{Successes: result.Wins, Trials: result.Total}.Wilson95()
	fmt.Printf("\nwin rate 95%% interval: %.1f%% - %.1f%%\n", low*100, high*100)

	fmt.Printf("\n%s\n", analysis.StrategyMessage(result.WinRate(), result.TieRate()))
}

func displayStreets(ctx context.Context, hole, board []deck.Card, cli CLI) error {
	streets, err := analysis.EquityByStreet(ctx, hole, board, cli.Opponents, cli.Trials, cli.Seed)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("street"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"),
		headerStyle.Render("equity"))
	for _, street := range streets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			categoryStyle.Render(street.Street),
			winStyle.Render(fmt.Sprintf("%.1f%%", street.WinRate*100)),
			tieStyle.Render(fmt.Sprintf("%.1f%%", street.TieRate*100)),
			handStyle.Render(fmt.Sprintf("%.1f%%", street.Equity*100)))
	}
	return w.Flush()
}

func displayPossibilities(ctx context.Context, hole, board []deck.Card, cli CLI) error {
	cards := append(append([]deck.Card{}, hole...), board...)
	report, err := analysis.Live(ctx, cards, cli.Opponents, cli.Trials, cli.Seed)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("freq"))

	// Strongest first.
	for i := len(orderedCategories) - 1; i >= 0; i-- {
		name := orderedCategories[i]
		freq, ok := report.Distribution[name]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n",
			categoryStyle.Render(name),
			winStyle.Render(fmt.Sprintf("%.1f%%", freq*100)))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, draw := range report.Draws {
		fmt.Printf("%s\n", tieStyle.Render(draw))
	}
	return nil
}

var orderedCategories = []string{
	"High Card", "One Pair", "Two Pair", "Three of a Kind", "Straight",
	"Flush", "Full House", "Four of a Kind", "Straight Flush",
}
