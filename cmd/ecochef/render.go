package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/rushteam/ecochef/core"
)

var (
	contentColor       = color.New(color.FgCyan).SprintFunc()
	collaborativeColor = color.New(color.FgMagenta).SprintFunc()
)

func renderResults(out io.Writer, results []core.RecipeResult) {
	if len(results) == 0 {
		fmt.Fprintln(out, color.YellowString("no recipes found"))
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"#", "Title", "Source", "Dietary", "Ingredients"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	for i, r := range results {
		table.Append([]string{
			fmt.Sprint(i + 1),
			r.Title,
			sourceLabel(r.Source),
			strings.Join(r.DietaryTags, ", "),
			truncate(strings.Join(r.Ingredients, ", "), 60),
		})
	}
	table.Render()
}

func sourceLabel(source string) string {
	switch source {
	case core.SourceContentBased:
		return contentColor(source)
	case core.SourceCollaborative:
		return collaborativeColor(source)
	default:
		return source
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
