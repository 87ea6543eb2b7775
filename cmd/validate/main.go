package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/jwebster45206/zoinkies/pkg/catalog"
	"github.com/jwebster45206/zoinkies/pkg/loot"
	"github.com/jwebster45206/zoinkies/pkg/state"
)

// requiredIDs are the reference items the resolver looks up.
var requiredIDs = []string{
	state.Minion,
	state.General,
	state.Tower,
	state.Chest,
	state.EnergyStation,
	state.GoldKey,
	state.DiamondKey,
	state.FreedLeader,
}

// respawningIDs must carry a respawn duration.
var respawningIDs = []string{
	state.Minion,
	state.Chest,
	state.EnergyStation,
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <catalog.json|catalog.yaml>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	if err := run(os.Stdout, filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Catalog file is valid!")
}

func run(out io.Writer, filename string) error {
	fmt.Fprintf(out, "Validating %s...\n", filename)

	c, err := catalog.Load(filename)
	if err != nil {
		return err
	}

	var problems []string
	problems = append(problems, validateCatalog(c)...)
	problems = append(problems, validateLootTables(out, loot.Tables)...)

	if len(problems) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(problems, "\n"))
	}
	return nil
}

func validateCatalog(c *catalog.Catalog) []string {
	var problems []string
	for _, id := range requiredIDs {
		if _, ok := c.Lookup(id); !ok {
			problems = append(problems, fmt.Sprintf("missing reference item %q", id))
		}
	}
	for _, id := range respawningIDs {
		ri, ok := c.Lookup(id)
		if ok && !ri.Respawns() {
			problems = append(problems, fmt.Sprintf("reference item %q needs a respawn_duration", id))
		}
		if ok && ri.RespawnDuration != nil && ri.RespawnDuration.Std() <= 0 {
			problems = append(problems, fmt.Sprintf("reference item %q has a non-positive respawn_duration", id))
		}
	}
	if ri, ok := c.Lookup(state.Tower); ok && ri.Respawns() {
		problems = append(problems, "reference item \"tower\" must not respawn")
	}
	return problems
}

// validateLootTables prints each table's weight sum and flags tables that do
// not sum to 1.
func validateLootTables(out io.Writer, tables map[string]loot.Table) []string {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	slices.Sort(names)

	var problems []string
	for _, name := range names {
		total := loot.TotalWeight(tables[name])
		fmt.Fprintf(out, "  loot table %-8s weight %.6f\n", name, total)
		if math.Abs(total-1) > loot.WeightTolerance {
			problems = append(problems, fmt.Sprintf("loot table %q weights sum to %.6f, want 1", name, total))
		}
	}
	return problems
}
