package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hupe1980/tabgo"
	"github.com/hupe1980/tabgo/filter"
	"github.com/hupe1980/tabgo/model"
)

var sample = []byte(`Game Name,Genre,Platform,Release Year,User Rating
Zelda,Action,Switch,2017,9.5
Mario,Platform,Switch,2017,9.0
Doom,Action,PC,2016,8.5
Stardew,Sim,PC,2016,8.9
Tetris,Puzzle,Mobile,1984,8.0
Witcher,RPG,PC,2015,9.3
Hades,Action,PC,2020,9.1
`)

func main() {
	ctx := context.Background()

	ds, err := tabgo.Load(ctx, sample, tabgo.GamesSchema(), model.GamesMapping)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("--- Dataset ---")
	fmt.Println("Rows:", ds.Len())
	fmt.Println("Encoding:", ds.Encoding())
	fmt.Println("Categories:", ds.Categories())

	view := ds.Filter(filter.Filter{Subcategories: []string{"PC", "Switch"}})

	s := view.Summary()
	fmt.Println("\n--- Summary ---")
	fmt.Println("Rows:", s.Rows)
	fmt.Println("Mean score:", s.MeanScore.Text())
	fmt.Printf("Years: %s-%s\n", s.YearMin.Text(), s.YearMax.Text())

	fmt.Println("\n--- Similar to Zelda ---")
	results, err := view.Similar(ctx, "Zelda", 3)
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range results {
		fmt.Printf("Name: %s, Distance: %.4f\n", r.Record.Name, r.Distance)
	}

	fmt.Println("\n--- Export ---")
	if err := view.ExportCSV(os.Stdout, tabgo.WithBOM()); err != nil {
		log.Fatal(err)
	}
}
