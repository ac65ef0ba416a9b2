// Package main is the entry point for the prepball CLI tool, which projects
// next-season rosters from multi-year player history and simulates season
// schedules to produce win probabilities.
package main

import "github.com/tmessick/prepball/cmd"

func main() {
	cmd.Execute()
}
