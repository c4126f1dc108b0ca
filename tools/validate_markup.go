//go:build ignore

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/muurk/xamlrt/internal/markup"
	"github.com/muurk/xamlrt/internal/uitree"
)

// Statistics tracks parsing results
type Statistics struct {
	TotalFiles      int
	ParseSuccess    int
	ParseFailure    int
	TotalNodes      int
	ElementKinds    map[string]int
	UnknownNames    map[string]int
	EventBindings   map[string]int
	FailureTypes    map[string]int
	FailedDocuments []FailedDocument
}

// FailedDocument stores information about parsing failures
type FailedDocument struct {
	File  string
	Kind  string
	Error string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: validate_markup <directory-or-file>")
		fmt.Println("Example: validate_markup internal/markup/testdata/")
		fmt.Println("         validate_markup form.xaml")
		os.Exit(1)
	}

	path := os.Args[1]

	stats := Statistics{
		ElementKinds:  make(map[string]int),
		UnknownNames:  make(map[string]int),
		EventBindings: make(map[string]int),
		FailureTypes:  make(map[string]int),
	}

	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("Error accessing path: %v\n", err)
		os.Exit(1)
	}

	var files []string
	if info.IsDir() {
		for _, ext := range []string{"*.xaml", "*.xml", "*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(path, ext))
			if err != nil {
				fmt.Printf("Error finding markup files: %v\n", err)
				os.Exit(1)
			}
			files = append(files, matches...)
		}
		if len(files) == 0 {
			fmt.Printf("No markup files found in %s\n", path)
			os.Exit(1)
		}
		sort.Strings(files)
	} else {
		files = []string{path}
	}

	fmt.Printf("=== xamlrt Markup Validator ===\n")
	fmt.Printf("Files to process: %d\n\n", len(files))

	for _, file := range files {
		processFile(file, &stats)
	}

	printStatistics(&stats)
	if stats.ParseFailure > 0 {
		os.Exit(1)
	}
}

func processFile(filename string, stats *Statistics) {
	stats.TotalFiles++

	tree, err := markup.Load(filename)
	if err != nil {
		kind := failureKind(err)
		stats.ParseFailure++
		stats.FailureTypes[kind]++
		stats.FailedDocuments = append(stats.FailedDocuments, FailedDocument{
			File:  filename,
			Kind:  kind,
			Error: err.Error(),
		})
		return
	}

	stats.ParseSuccess++
	for _, n := range tree.Nodes() {
		stats.TotalNodes++
		stats.ElementKinds[n.Kind().String()]++
		if n.Kind() == uitree.KindUnknown {
			stats.UnknownNames[n.ElementName()]++
		}
		for _, a := range n.Attributes() {
			if strings.HasSuffix(a.Name, ".Click") {
				stats.EventBindings[a.Value]++
			}
		}
	}
}

// failureKind names the error category for the distribution table.
func failureKind(err error) string {
	var re *markup.ReadError
	if errors.As(err, &re) {
		return "read/" + re.Type.String()
	}
	var ae *uitree.AssemblyError
	if errors.As(err, &ae) {
		return "assembly/" + ae.Type.String()
	}
	return "other"
}

func printStatistics(stats *Statistics) {
	fmt.Printf("\n========================================\n")
	fmt.Printf("VALIDATION RESULTS\n")
	fmt.Printf("========================================\n\n")

	fmt.Printf("Files Processed:    %d\n", stats.TotalFiles)
	fmt.Printf("Parse Success:      %d (%.2f%%)\n", stats.ParseSuccess,
		float64(stats.ParseSuccess)/float64(stats.TotalFiles)*100)
	fmt.Printf("Parse Failure:      %d (%.2f%%)\n", stats.ParseFailure,
		float64(stats.ParseFailure)/float64(stats.TotalFiles)*100)
	fmt.Printf("Nodes Built:        %d\n", stats.TotalNodes)

	printDistribution("ELEMENT KIND DISTRIBUTION", stats.ElementKinds, stats.TotalNodes)

	if len(stats.UnknownNames) > 0 {
		printDistribution("UNKNOWN ELEMENT NAMES", stats.UnknownNames, stats.ElementKinds["Unknown"])
	}

	if len(stats.EventBindings) > 0 {
		total := 0
		for _, c := range stats.EventBindings {
			total += c
		}
		printDistribution("CLICK METHOD BINDINGS", stats.EventBindings, total)
	}

	if len(stats.FailedDocuments) > 0 {
		printDistribution("FAILURE TYPES", stats.FailureTypes, stats.ParseFailure)

		fmt.Printf("\n----------------------------------------\n")
		fmt.Printf("PARSE FAILURES (%d total)\n", len(stats.FailedDocuments))
		fmt.Printf("----------------------------------------\n")

		maxShow := 10
		if len(stats.FailedDocuments) > maxShow {
			fmt.Printf("(Showing first %d of %d failures)\n\n", maxShow, len(stats.FailedDocuments))
		}

		for i, failed := range stats.FailedDocuments {
			if i >= maxShow {
				break
			}
			fmt.Printf("\nFailure #%d:\n", i+1)
			fmt.Printf("  File: %s\n", failed.File)
			fmt.Printf("  Kind: %s\n", failed.Kind)
			fmt.Printf("  Error: %s\n", failed.Error)
		}
	}

	fmt.Printf("\n========================================\n")
	if stats.ParseFailure == 0 {
		fmt.Printf("✅ SUCCESS: All documents parsed successfully!\n")
	} else {
		fmt.Printf("⚠️  ISSUES FOUND: %d documents failed to parse\n", stats.ParseFailure)
	}
	fmt.Printf("========================================\n")
}

func printDistribution(title string, counts map[string]int, total int) {
	fmt.Printf("\n----------------------------------------\n")
	fmt.Printf("%s\n", title)
	fmt.Printf("----------------------------------------\n")

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		percentage := 0.0
		if total > 0 {
			percentage = float64(counts[k]) / float64(total) * 100
		}
		fmt.Printf("%-24s %d (%.2f%%)\n", k+":", counts[k], percentage)
	}
}
