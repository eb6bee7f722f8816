package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/sarchlab/bfir/verify"
)

func main() {
	casesPath := flag.String("cases", "verify/testdata/conformance.yaml", "YAML conformance file")
	flag.Parse()

	suite, err := verify.LoadCasesFromYAML(*casesPath)
	if err != nil {
		log.Fatalf("Failed to load cases from %s: %v", *casesPath, err)
	}

	fmt.Println("==============================================================================")
	fmt.Printf("CONFORMANCE: %s\n", suite.Name)
	fmt.Println("==============================================================================")
	fmt.Printf("\nLoaded %d cases from %s\n\n", len(suite.Cases), *casesPath)

	failed := 0
	for i, c := range suite.Cases {
		if err := c.Check(); err != nil {
			failed++
			fmt.Printf("❌ %3d %s\n      %v\n", i+1, c.Name, err)
			continue
		}
		fmt.Printf("✅ %3d %s\n", i+1, c.Name)
	}

	fmt.Println()
	fmt.Println("==============================================================================")
	fmt.Println("SUMMARY")
	fmt.Println("==============================================================================")
	fmt.Printf("Passed: %d  Failed: %d\n\n", len(suite.Cases)-failed, failed)

	if failed > 0 {
		log.Fatalf("%d of %d conformance cases failed", failed, len(suite.Cases))
	}
}
