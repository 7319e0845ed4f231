package reporter

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/aleister1102/companywatch/internal/models"
	"github.com/fatih/color"
)

// ConsolePresenter prints change blocks and heartbeats as colored text
type ConsolePresenter struct {
	out     io.Writer
	mu      sync.Mutex
	title   *color.Color
	added   *color.Color
	removed *color.Color
	quiet   *color.Color
}

// NewConsolePresenter writes to out, or stdout when out is nil
func NewConsolePresenter(out io.Writer) *ConsolePresenter {
	if out == nil {
		out = os.Stdout
	}
	return &ConsolePresenter{
		out:     out,
		title:   color.New(color.Bold),
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
		quiet:   color.New(color.FgYellow),
	}
}

// PresentChange prints a titled block with Added and Removed sublists
func (p *ConsolePresenter) PresentChange(_ context.Context, change models.RenderedChange) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.title.Fprintf(p.out, "--- %s ---\n", change.Title); err != nil {
		return err
	}
	if err := p.printSection(p.added, "Added", change.Added); err != nil {
		return err
	}
	if err := p.printSection(p.removed, "Removed", change.Removed); err != nil {
		return err
	}
	_, err := fmt.Fprintln(p.out)
	return err
}

// PresentHeartbeat prints "[timestamp] No changes detected."
func (p *ConsolePresenter) PresentHeartbeat(_ context.Context, hb models.Heartbeat) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, err := p.quiet.Fprintf(p.out, "[%s] No changes detected.\n", hb.Timestamp.Format(time.DateTime))
	return err
}

func (p *ConsolePresenter) printSection(c *color.Color, label string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	if _, err := c.Fprintf(p.out, "  %s:\n", label); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(p.out, "    %s\n", line); err != nil {
			return err
		}
	}
	return nil
}
