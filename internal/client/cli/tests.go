package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/aipapergrader/papergrader/internal/client/models"
)

// Tests lists the tests visible to the current user. Results come from the
// cache when fresh; otherwise a single fetch is made even if several
// commands race for the same list.
func (a *App) Tests(ctx context.Context) error {
	if !a.ensureLoggedIn() {
		return nil
	}

	tests, err := a.tests.List(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}

	if len(tests) == 0 {
		printlnFn("No tests yet")
		return nil
	}
	for _, t := range tests {
		line := fmt.Sprintf("[%d] %s", t.ID, t.Name)
		if t.Description != "" {
			line += " — " + t.Description
		}
		printlnFn(line)
	}
	return nil
}

// NewTest prompts for a name and optional description and creates a test.
// Teacher only.
func (a *App) NewTest(ctx context.Context) error {
	if !a.ensure(models.RoleTeacher) {
		return nil
	}

	name, err := getSimpleText(a.reader, "Enter test name", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Enter description (optional)", os.Stdout)
	if err != nil {
		return err
	}

	t, err := a.tests.Create(ctx, name, description)
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn(fmt.Sprintf("Created test [%d] %s", t.ID, t.Name))
	return nil
}

// SelectTest makes a test the target of subsequent question commands,
// mirroring opening a test's detail page.
func (a *App) SelectTest(ctx context.Context, args []string) error {
	if !a.ensureLoggedIn() {
		return nil
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		printlnFn("Usage: use <test-id>")
		return err
	}

	a.selectedTest = id
	printlnFn(fmt.Sprintf("Working on test %d", id))
	return nil
}
