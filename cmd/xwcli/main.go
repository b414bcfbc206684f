package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	xword "crosswarped.com/xword"
	"crosswarped.com/xword/internal/suggest"
	"crosswarped.com/xword/pkg/primitives"
)

func main() {

	checkFile := flag.String("check", "", "Validate the puzzle document at this path")
	newSize := flag.String("new", "", "Create a blank puzzle document, e.g. -new 5x5")
	outFile := flag.String("out", "", "Where to write the new puzzle document (default stdout)")
	symmetry := flag.String("symmetry", "none", "Symmetry for a new puzzle (none, rotational, mirror-horizontal, mirror-vertical, diagonal-nwse, diagonal-nesw)")
	suggestWord := flag.String("suggest", "", "Suggest clues for this answer (needs GCP_PROJECT_ID)")
	suggestCount := flag.Int("count", 5, "How many clue suggestions to request")

	timeout := flag.Duration("timeout", 30*time.Second, "Timeout for remote calls")

	flag.Parse()

	modes := 0
	for _, set := range []bool{*checkFile != "", *newSize != "", *suggestWord != ""} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		fmt.Println("Use exactly one of -check, -new, or -suggest")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch {
	case *checkFile != "":
		os.Exit(runCheck(*checkFile))
	case *newSize != "":
		os.Exit(runNew(*newSize, *symmetry, *outFile))
	default:
		os.Exit(runSuggest(ctx, *suggestWord, *suggestCount))
	}
}

func runCheck(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println("Error reading puzzle:", err)
		return 1
	}
	p, err := xword.DecodePuzzle(data)
	if err != nil {
		fmt.Println("Error decoding puzzle:", err)
		return 1
	}

	fmt.Printf("%s (%dx%d) by %s\n", p.Title, p.Grid.Width(), p.Grid.Height(), p.Author)
	fmt.Println("--------------------------------")
	fmt.Println(p.Grid.Repr())

	entries := xword.DeriveEntries(p.Grid)
	fmt.Printf("%d entries:\n", len(entries))
	for _, e := range entries {
		word := "(incomplete)"
		if w, ok := e.Word(p.Grid); ok {
			word = w
		}
		clue := p.Clues.Get(e.Direction, e.Label)
		if clue == "" {
			clue = "(no clue)"
		}
		fmt.Printf("  %d %s: %s — %s\n", e.Label, e.Direction, word, clue)
	}

	findings := xword.ValidateForPublish(p.Grid, p.Clues)
	for _, f := range findings {
		fmt.Printf("%s: [%s] %s\n", f.Severity, f.Code, f.Message)
	}
	if xword.PublishBlocked(findings) {
		fmt.Println("Not publishable")
		return 1
	}
	fmt.Println("Publishable")
	return 0
}

func runNew(size, symmetry, outFile string) int {
	var width, height int
	if _, err := fmt.Sscanf(strings.ToLower(size), "%dx%d", &width, &height); err != nil {
		fmt.Println("Size must look like 5x5, got:", size)
		return 1
	}
	sym, err := primitives.ParseSymmetry(symmetry)
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}

	g, err := xword.NewBlank(width, height)
	if err != nil {
		fmt.Println("Error creating grid:", err)
		return 1
	}
	p := &xword.Puzzle{
		ID:   uuid.NewString(),
		Grid: g.WithSymmetry(sym),
	}

	data, err := xword.EncodePuzzle(p)
	if err != nil {
		fmt.Println("Error encoding puzzle:", err)
		return 1
	}
	if outFile == "" {
		fmt.Println(string(data))
		return 0
	}
	if err := os.WriteFile(outFile, data, 0o644); err != nil {
		fmt.Println("Error writing puzzle:", err)
		return 1
	}
	fmt.Println("Wrote", outFile)
	return 0
}

func runSuggest(ctx context.Context, answer string, count int) int {
	projectID := os.Getenv("GCP_PROJECT_ID")
	if projectID == "" {
		fmt.Println("GCP_PROJECT_ID must be set for -suggest")
		return 1
	}

	client, err := suggest.NewClient(ctx, projectID, os.Getenv("GCP_REGION"))
	if err != nil {
		fmt.Println("Error creating client:", err)
		return 1
	}
	defer client.Close()

	clues, err := client.Clues(ctx, answer, count)
	if err != nil {
		fmt.Println("Error suggesting clues:", err)
		return 1
	}
	for _, c := range clues {
		fmt.Println("-", c)
	}
	return 0
}
