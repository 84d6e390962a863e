package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/truncate"

	"github.com/ivlev/scenedeck/internal/deck"
	"github.com/ivlev/scenedeck/internal/engine"
)

var errIssuesFound = errors.New("deck has issues")

const narrationWidth = 40

var stepHeaders = []string{"Slide", "Scene", "Step", "Visible", "Focused", "Expanded", "Narration"}

func runInspect(args []string) error {
	c := newCLI("inspect")
	cfg, err := c.parse(args)
	if err != nil {
		return err
	}

	logger := c.logger(cfg)
	defer logger.Close()

	path, err := resolveDeckPath(cfg)
	if err != nil {
		return err
	}
	d, issues, err := loadDeck(path, logger)
	if err != nil {
		return err
	}

	fmt.Printf("[*] Deck: %s (%d slides)\n", path, len(d.Slides))
	printStepTable(os.Stdout, d)
	if len(issues) > 0 {
		fmt.Printf("[!] %d issue(s), run \"scenedeck validate\" for details\n", len(issues))
	}
	return nil
}

func runValidate(args []string) error {
	c := newCLI("validate")
	cfg, err := c.parse(args)
	if err != nil {
		return err
	}

	logger := c.logger(cfg)
	defer logger.Close()

	path, err := resolveDeckPath(cfg)
	if err != nil {
		return err
	}
	_, issues, err := loadDeck(path, logger)
	if err != nil {
		return err
	}

	if len(issues) == 0 {
		fmt.Printf("[+] %s: no issues\n", path)
		return nil
	}
	for _, issue := range issues {
		fmt.Printf("[!] %s\n", issue)
	}
	return errIssuesFound
}

// The table truncates any cell as wide as its column, so cells are padded
// to keep every column wider than its content.
var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	headerStyle = cellStyle.Copy().Bold(true)
)

func printStepTable(w io.Writer, d *deck.Deck) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == 0 {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(stepHeaders...).
		Rows(stepRows(d)...)
	fmt.Fprintln(w, t.Render())
}

// stepRows lists what every step of every scene shows
func stepRows(d *deck.Deck) [][]string {
	var rows [][]string

	for i := range d.Slides {
		slide := &d.Slides[i]
		ids := slide.ItemIDs()

		if len(slide.Scenes) == 0 {
			rows = append(rows, stepRow(d, slide, ids, nil, 0, 1))
			continue
		}

		for j := range slide.Scenes {
			scene := &slide.Scenes[j]
			total := engine.SceneSteps(scene)
			for step := 0; step < total; step++ {
				rows = append(rows, stepRow(d, slide, ids, scene, step, total))
			}
		}
	}
	return rows
}

func stepRow(d *deck.Deck, slide *deck.Slide, ids []string, scene *deck.Scene, step, total int) []string {
	var visible []string
	for _, id := range ids {
		vis := engine.ItemVisibility(id, scene, step, total)
		if vis.Visible && !vis.Hidden {
			visible = append(visible, id)
		}
	}

	sceneID, label := "-", strconv.Itoa(step+1)
	if scene != nil {
		sceneID = scene.ID
		switch {
		case engine.HasOverview(&scene.Layer) && step == 0:
			label += " overview"
		case engine.IsExitStep(&scene.Layer, step, total):
			label += " exit"
		}
	}

	narration := engine.Narration(d.Scripts, slide.ID, scene, step, total)

	return []string{
		slide.ID,
		sceneID,
		label,
		strings.Join(visible, ", "),
		orDash(engine.FocusedWidget(scene, step, total)),
		orDash(engine.StepExpandedCard(scene, step, total)),
		truncate.StringWithTail(narration, narrationWidth, "…"),
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
