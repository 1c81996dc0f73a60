package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"folio/internal/scaffold"
	"folio/internal/testsupport"
)

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestScaffoldCommandWritesProject(t *testing.T) {
	site := testsupport.NewSite(t)
	site.AddProject("iceland_2023", "b.jpg", "a.jpg")

	out, stderr, err := runCLI(t, []string{"iceland_2023", "Iceland", "Landscapes / Travel"}, site.ConfigPath)
	if err != nil {
		t.Fatalf("scaffold: %v (stderr %q)", err, stderr)
	}
	requireContains(t, out, "Scaffolded iceland_2023 (2 images")
	requireContains(t, out, "projects/iceland_2023.html")
	requireContains(t, out, "created")
	requireContains(t, out, "portfolio.html")
	requireContains(t, out, "updated")
	requireContains(t, out, "Recent projects: iceland_2023")
	requireContains(t, stderr, "project scaffolded")

	if !site.Exists("projects/iceland_2023.html") {
		t.Fatal("expected project page to be written")
	}
	requireContains(t, site.Read("portfolio.html"), `href="projects/iceland_2023.html"`)
	requireContains(t, site.Read("index.html"), "projects/iceland_2023.html")
}

func TestScaffoldCommandRejectsDuplicateUnlessForced(t *testing.T) {
	site := testsupport.NewSite(t)
	site.AddProject("dunes", "a.jpg")
	args := []string{"dunes", "Dunes", "Desert"}

	if _, _, err := runCLI(t, args, site.ConfigPath); err != nil {
		t.Fatalf("first scaffold: %v", err)
	}
	before := site.Snapshot()

	_, _, err := runCLI(t, args, site.ConfigPath)
	if !errors.Is(err, scaffold.ErrDuplicateProject) {
		t.Fatalf("expected ErrDuplicateProject, got %v", err)
	}
	requireContains(t, err.Error(), "--force")

	out, _, err := runCLI(t, append(args, "--force"), site.ConfigPath)
	if err != nil {
		t.Fatalf("forced scaffold: %v", err)
	}
	requireContains(t, out, "Regenerated dunes")
	if strings.Contains(out, "created") || strings.Contains(out, "updated") {
		t.Fatalf("expected every output unchanged, got %q", out)
	}

	after := site.Snapshot()
	if len(before) != len(after) {
		t.Fatalf("forced run changed the file set: %d -> %d", len(before), len(after))
	}
	for path, content := range before {
		if after[path] != content {
			t.Fatalf("forced run changed %s", path)
		}
	}
}

func TestScaffoldCommandJSON(t *testing.T) {
	site := testsupport.NewSite(t)
	site.AddProject("fjords", "a.png", "b.png", "c.png")

	out, _, err := runCLI(t, []string{"fjords", "", "Norway", "--json"}, site.ConfigPath)
	if err != nil {
		t.Fatalf("scaffold --json: %v", err)
	}
	var result scaffold.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode result: %v\n%s", err, out)
	}
	if result.Slug != "fjords" || result.Title != "Fjords" || result.Images != 3 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.RunID == "" {
		t.Fatal("expected a run id")
	}
	if len(result.Outputs) != 4 {
		t.Fatalf("expected 4 outputs, got %+v", result.Outputs)
	}
}

func TestScaffoldCommandArgumentErrors(t *testing.T) {
	site := testsupport.NewSite(t)

	_, _, err := runCLI(t, []string{"only-a-slug"}, site.ConfigPath)
	if err == nil {
		t.Fatal("expected error for a single argument")
	}
	requireContains(t, err.Error(), "expected 3 arguments")

	_, _, err = runCLI(t, []string{"../escape", "Title", "Sub"}, site.ConfigPath)
	if !errors.Is(err, scaffold.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	_, _, err = runCLI(t, []string{"missing", "Title", "Sub"}, site.ConfigPath)
	if !errors.Is(err, scaffold.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, _, err = runCLI(t, []string{"--log-level", "loud", "x", "Title", "Sub"}, site.ConfigPath)
	if err == nil {
		t.Fatal("expected error for an unknown log level")
	}
	requireContains(t, err.Error(), "--log-level")
}

func TestSiteFlagOverridesConfiguredRoot(t *testing.T) {
	site := testsupport.NewSite(t)
	site.AddProject("alps", "a.jpg")

	other := testsupport.NewSite(t)
	out, _, err := runCLI(t, []string{"--site", site.Root, "alps", "Alps", "Snow"}, other.ConfigPath)
	if err != nil {
		t.Fatalf("scaffold --site: %v", err)
	}
	requireContains(t, out, "Scaffolded alps")
	if !site.Exists("projects/alps.html") {
		t.Fatal("expected page under the --site root")
	}
	if other.Exists("projects/alps.html") {
		t.Fatal("configured site root should have been overridden")
	}
}

func TestSyncCommand(t *testing.T) {
	site := testsupport.NewSite(t)
	site.AddProject("one", "a.jpg")
	site.AddProject("two", "a.jpg")
	for _, slug := range []string{"one", "two"} {
		if _, _, err := runCLI(t, []string{slug, "", ""}, site.ConfigPath); err != nil {
			t.Fatalf("scaffold %s: %v", slug, err)
		}
	}

	out, _, err := runCLI(t, []string{"sync"}, site.ConfigPath)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	requireContains(t, out, "index.html")
	requireContains(t, out, "unchanged")
	requireContains(t, out, "Recent projects: two, one")

	if err := os.Remove(site.Path("projects.toml")); err != nil {
		t.Fatalf("remove manifest: %v", err)
	}
	out, _, err = runCLI(t, []string{"sync", "--seed"}, site.ConfigPath)
	if err != nil {
		t.Fatalf("sync --seed: %v", err)
	}
	requireContains(t, out, "Seeded manifest with 2 projects")
	requireContains(t, out, "Recent projects: two, one")
	if !site.Exists("projects.toml") {
		t.Fatal("expected seeded manifest to be written")
	}
}

func TestListCommand(t *testing.T) {
	site := testsupport.NewSite(t, testsupport.WithConfig("[scaffold]\nrecent_limit = 1"))

	out, _, err := runCLI(t, []string{"list"}, site.ConfigPath)
	if err != nil {
		t.Fatalf("list on empty manifest: %v", err)
	}
	requireContains(t, out, "No projects recorded")

	site.AddProject("older", "a.jpg", "b.jpg")
	site.AddProject("newer", "a.jpg")
	for _, slug := range []string{"older", "newer"} {
		if _, _, err := runCLI(t, []string{slug, "", "Sub / Title"}, site.ConfigPath); err != nil {
			t.Fatalf("scaffold %s: %v", slug, err)
		}
	}

	out, _, err = runCLI(t, []string{"list"}, site.ConfigPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "Slug")
	requireContains(t, out, "older")
	requireContains(t, out, "Newer")
	if strings.Index(out, "older") > strings.Index(out, "newer") {
		t.Fatalf("expected manifest order, got %q", out)
	}

	out, _, err = runCLI(t, []string{"list", "--json"}, site.ConfigPath)
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}
	var items []struct {
		Slug   string `json:"slug"`
		Images int    `json:"images"`
		Recent bool   `json:"recent"`
	}
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("decode list: %v\n%s", err, out)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %+v", items)
	}
	if items[0].Slug != "older" || items[0].Images != 2 || items[0].Recent {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[1].Slug != "newer" || !items[1].Recent {
		t.Fatalf("unexpected second item: %+v", items[1])
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "folio.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration to "+target)
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample config: %v", err)
	}

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err == nil {
		t.Fatal("expected error when config exists")
	}
	requireContains(t, err.Error(), "--overwrite")

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidateCommand(t *testing.T) {
	site := testsupport.NewSite(t)
	out, _, err := runCLI(t, []string{"config", "validate"}, site.ConfigPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+site.ConfigPath)
	requireContains(t, out, "Site root: "+site.Root)
	requireContains(t, out, "Configuration valid")

	broken := testsupport.NewSite(t, testsupport.WithIndex("<html><body></body></html>\n"))
	out, _, err = runCLI(t, []string{"config", "validate"}, broken.ConfigPath)
	if err == nil {
		t.Fatal("expected validation error for homepage without markers")
	}
	requireContains(t, err.Error(), "recent-projects:begin")
	requireContains(t, out, "index.html")
	if strings.Contains(out, "Configuration valid") {
		t.Fatalf("did not expect success message, got %q", out)
	}
}
