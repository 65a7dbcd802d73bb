/*
Command diac-eval compares a restored file against a known-correct
reference and reports word-level restoration accuracy. It is the ported
form of the original engine's -d demo mode's diff/accuracy report (see
pkg/evalset), kept out of the main diac binary since it has nothing to do
with restoring text itself.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vholub/diac/pkg/evalset"
)

func main() {
	referencePath := flag.String("reference", "", "Path to the known-correct reference file")
	candidatePath := flag.String("candidate", "", "Path to the restored candidate file")
	flag.Parse()

	if *referencePath == "" || *candidatePath == "" {
		fmt.Fprintln(os.Stderr, "usage: diac-eval -reference ref.txt -candidate out.txt")
		os.Exit(2)
	}

	reference, err := os.Open(*referencePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening reference: %v\n", err)
		os.Exit(1)
	}
	defer reference.Close()

	candidate, err := os.Open(*candidatePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening candidate: %v\n", err)
		os.Exit(1)
	}
	defer candidate.Close()

	report, err := evalset.Compare(reference, candidate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "comparing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("words: %d, mismatches: %d, accuracy: %.2f%%\n",
		report.TotalWords, report.MismatchWords, report.Accuracy()*100)
	for _, m := range report.Mismatches {
		fmt.Printf("  [%d] expected %q, got %q\n", m.Index, m.Reference, m.Candidate)
	}
}
