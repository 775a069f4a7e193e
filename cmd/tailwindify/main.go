package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/vyeos/tailwindify/internal/config"
	"github.com/vyeos/tailwindify/internal/log"
	"github.com/vyeos/tailwindify/internal/transform"
	"github.com/vyeos/tailwindify/internal/version"
)

func main() {
	root := flag.String("root", ".", "project root to scan")
	configPath := flag.String("config", "", "config file (default: discover under root)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetFullVersion())
		return
	}

	if *verbose {
		log.SetLevel(log.LevelDebug)
	}

	cfg, err := loadConfig(*root, *configPath)
	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	results, report, err := transform.New(cfg).Run(*root)
	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	printResults(results)
	printReport(report)
}

func loadConfig(root, path string) (*config.Config, error) {
	if path == "" {
		path = config.Discover(root)
	}
	if path == "" {
		log.Debug("no config file found, using defaults")
		return config.Default(), nil
	}
	return config.Load(path)
}

func printResults(results []transform.Result) {
	for _, r := range results {
		if len(r.Classes) == 0 && len(r.Unconverted) == 0 {
			continue
		}

		target := r.Selector
		if target == "" {
			target = "<" + r.Tag + ">"
		}
		fmt.Printf("%s  %s\n", r.File, target)
		if len(r.Classes) > 0 {
			fmt.Printf("  class: %s\n", strings.Join(r.Classes, " "))
		}
		for _, kept := range r.Unconverted {
			fmt.Printf("  css:   %s\n", kept)
		}
	}
}

func printReport(report transform.Report) {
	fmt.Printf("\nconverted %d declarations", report.Converted)
	issues := []string{}
	if report.Unmappable > 0 {
		issues = append(issues, fmt.Sprintf("%d unmappable", report.Unmappable))
	}
	if report.Unresolved > 0 {
		issues = append(issues, fmt.Sprintf("%d unresolved", report.Unresolved))
	}
	if report.Circular > 0 {
		issues = append(issues, fmt.Sprintf("%d circular", report.Circular))
	}
	if report.Undefined > 0 {
		issues = append(issues, fmt.Sprintf("%d undefined", report.Undefined))
	}
	if len(issues) > 0 {
		fmt.Printf(" (%s)", strings.Join(issues, ", "))
	}
	fmt.Println()
}
