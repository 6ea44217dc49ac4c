package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/existflow/credboard/internal/aggregate"
	"github.com/existflow/credboard/internal/api"
	"github.com/existflow/credboard/internal/clip"
	"github.com/existflow/credboard/internal/config"
	"github.com/existflow/credboard/internal/export"
	"github.com/existflow/credboard/internal/logger"
	"github.com/existflow/credboard/internal/model"
	"golang.org/x/term"
)

var (
	// clipboardWriter is a package-level variable to allow mocking in tests
	clipboardWriter clip.Writer = clip.System{}

	// isTerminal reports whether w is an interactive terminal
	isTerminal = func(w io.Writer) bool {
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
)

func newClient(c *config.Config) *api.Client {
	client := api.NewClient(c.ServerURL,
		api.WithTimeout(c.RequestTimeout),
		api.WithLogger(logger.WithFields(logger.F("component", "api"))))
	logger.Debug("API client ready", logger.F("base_url", client.BaseURL()), logger.F("timeout", c.RequestTimeout))
	return client
}

func newEngine(c *config.Config) *aggregate.Engine {
	return aggregate.New(newClient(c), aggregate.Options{Concurrency: c.Concurrency})
}

func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q", kind, s)
	}
	return id, nil
}

// loadSection looks a section up by id and runs a pass over it
func loadSection(ctx context.Context, c *config.Config, sectionID int64) (model.Section, *aggregate.View, error) {
	client := newClient(c)
	sections, err := client.FetchSections(ctx)
	if err != nil {
		return model.Section{}, nil, fmt.Errorf("failed to load sections: %w", err)
	}

	var section model.Section
	found := false
	for _, s := range sections {
		if s.ID == sectionID {
			section, found = s, true
			break
		}
	}
	if !found {
		return model.Section{}, nil, fmt.Errorf("section %d not found", sectionID)
	}

	engine := aggregate.New(client, aggregate.Options{Concurrency: c.Concurrency})
	view, err := engine.Section(ctx, section)
	if err != nil {
		return model.Section{}, nil, err
	}
	return section, view, nil
}

// warnFailures reports partial fetch failures without failing the command
func warnFailures(w io.Writer, view *aggregate.View) {
	for _, f := range view.Failures {
		fmt.Fprintf(w, "⚠️  %s\n", export.Notice(f))
	}
}
