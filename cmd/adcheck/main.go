// Command adcheck scores a single ad submission from a JSON file without
// running the service. Exit status: 0 approved, 1 manual review, 2 rejected.
// Usage: go run ./cmd/adcheck [-rules ruleset.json] [-seed 1] submission.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tarekm/adsift/internal/logging"
	"github.com/tarekm/adsift/internal/moderation"
)

func main() {
	rulesPath := flag.String("rules", "", "Path to a JSON ruleset (empty = builtin rules)")
	seed := flag.Int64("seed", 1, "Image sampler seed")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: adcheck [-rules ruleset.json] [-seed n] submission.json")
		os.Exit(2)
	}

	rules := moderation.DefaultRuleSet()
	if *rulesPath != "" {
		var err error
		rules, err = moderation.LoadRuleSet(*rulesPath)
		if err != nil {
			log.Fatalf("ruleset: %v", err)
		}
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("reading submission: %v", err)
	}
	var sub moderation.Submission
	if err := json.Unmarshal(raw, &sub); err != nil {
		log.Fatalf("parsing submission: %v", err)
	}

	classifier := moderation.NewStockSampler(moderation.DefaultFlagProbability, *seed)
	engine, err := moderation.NewEngine(rules, classifier, logging.NewStdoutLogger("adcheck"))
	if err != nil {
		log.Fatalf("engine: %v", err)
	}

	res := engine.Moderate(context.Background(), &sub)

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		log.Fatalf("encoding result: %v", err)
	}
	fmt.Println(string(out))

	switch res.Decision {
	case moderation.DecisionRejected:
		os.Exit(2)
	case moderation.DecisionManualReview:
		os.Exit(1)
	}
}
