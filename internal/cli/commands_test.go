package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garnizeh/estimator/pkg/models"
	"github.com/garnizeh/estimator/pkg/repository/mock"
)

func seededRepo(t *testing.T) *mock.EstimateRepo {
	t.Helper()
	repo := mock.NewEstimateRepo()

	_, err := repo.SaveEstimate(context.Background(), &models.Estimate{
		ClientName:  "Acme",
		ProjectName: "Roof",
		TotalAmount: 50.0,
		Items: []models.EstimateItem{
			{Description: "Shingles", Quantity: 10, UnitPrice: 5.0, Amount: 50.0},
		},
	})
	require.NoError(t, err)

	return repo
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestListCommandText(t *testing.T) {
	repo := seededRepo(t)
	opts := &RootOptions{Format: "text", Repo: repo}

	out, err := execute(t, NewListCommand(opts))
	require.NoError(t, err)
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Roof")
	assert.Contains(t, out, "50.00")
}

func TestListCommandJSON(t *testing.T) {
	repo := seededRepo(t)
	opts := &RootOptions{Format: "json", Repo: repo}

	out, err := execute(t, NewListCommand(opts))
	require.NoError(t, err)

	var got []models.Estimate
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Acme", got[0].ClientName)
	require.Len(t, got[0].Items, 1)
	assert.Equal(t, "Shingles", got[0].Items[0].Description)
}

func TestShowCommand(t *testing.T) {
	repo := seededRepo(t)
	opts := &RootOptions{Format: "text", Repo: repo}

	out, err := execute(t, NewShowCommand(opts), "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Shingles")

	_, err = execute(t, NewShowCommand(opts), "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = execute(t, NewShowCommand(opts), "abc")
	require.Error(t, err)
}

func TestSaveCommand(t *testing.T) {
	repo := mock.NewEstimateRepo()
	opts := &RootOptions{Format: "text", Repo: repo}

	out, err := execute(t, NewSaveCommand(opts),
		"--client", "Globex",
		"--project", "Fence",
		"--item", "Posts:8:10.5",
		"--item", "Panels:4:9:36.5",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "saved estimate 1")

	e, err := repo.GetEstimate(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "Globex", e.ClientName)
	require.Len(t, e.Items, 2)
	// explicit amount wins, computed amount fills the gap
	assert.Equal(t, 84.0, e.Items[0].Amount)
	assert.Equal(t, 36.5, e.Items[1].Amount)
	// total defaults to the sum of item amounts
	assert.Equal(t, 120.5, e.TotalAmount)
}

func TestSaveCommandExplicitTotal(t *testing.T) {
	repo := mock.NewEstimateRepo()
	opts := &RootOptions{Format: "text", Repo: repo}

	_, err := execute(t, NewSaveCommand(opts),
		"--client", "Acme", "--project", "Roof",
		"--total", "99",
		"--item", "Shingles:10:5",
	)
	require.NoError(t, err)

	e, err := repo.GetEstimate(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, 99.0, e.TotalAmount)
}

func TestSaveCommandBadItem(t *testing.T) {
	repo := mock.NewEstimateRepo()
	opts := &RootOptions{Format: "text", Repo: repo}

	_, err := execute(t, NewSaveCommand(opts),
		"--client", "Acme", "--project", "Roof",
		"--item", "just-a-description",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid item")
}

func TestUpdateCommand(t *testing.T) {
	repo := seededRepo(t)
	opts := &RootOptions{Format: "text", Repo: repo}

	out, err := execute(t, NewUpdateCommand(opts), "1",
		"--client", "Acme",
		"--project", "Roof and Gutters",
		"--item", "Shingles:10:5",
		"--item", "Gutters:3:20",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "updated estimate 1")

	e, err := repo.GetEstimate(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "Roof and Gutters", e.ProjectName)
	assert.Len(t, e.Items, 2)
}

func TestUpdateCommandNotFound(t *testing.T) {
	repo := seededRepo(t)
	opts := &RootOptions{Format: "text", Repo: repo}

	_, err := execute(t, NewUpdateCommand(opts), "42",
		"--client", "Acme", "--project", "Roof",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteCommand(t *testing.T) {
	repo := seededRepo(t)
	opts := &RootOptions{Format: "text", Repo: repo}

	out, err := execute(t, NewDeleteCommand(opts), "1")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted estimate 1")

	e, err := repo.GetEstimate(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, e)

	// deleting a missing id stays a successful no-op
	_, err = execute(t, NewDeleteCommand(opts), "99")
	require.NoError(t, err)
}

func TestExportImportRoundTrip(t *testing.T) {
	repo := seededRepo(t)
	opts := &RootOptions{Format: "text", Repo: repo}

	for _, ext := range []string{"json", "csv"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "estimates."+ext)

			out, err := execute(t, NewExportCommand(opts), path)
			require.NoError(t, err)
			assert.Contains(t, out, "exported 1 estimates")

			target := mock.NewEstimateRepo()
			targetOpts := &RootOptions{Format: "text", Repo: target}
			out, err = execute(t, NewImportCommand(targetOpts), path)
			require.NoError(t, err)
			assert.Contains(t, out, "imported 1 estimates")

			got, err := target.GetEstimate(context.Background(), 1)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "Acme", got.ClientName)
			require.Len(t, got.Items, 1)
			assert.Equal(t, "Shingles", got.Items[0].Description)
		})
	}
}

func TestImportCommandRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"project_name": "Roof"}]`), 0o600))

	repo := mock.NewEstimateRepo()
	opts := &RootOptions{Format: "text", Repo: repo}

	_, err := execute(t, NewImportCommand(opts), path)
	require.Error(t, err)
	assert.Empty(t, repo.Stored)
}

func TestParseItemSpec(t *testing.T) {
	it, err := parseItemSpec("Shingles:10:5")
	require.NoError(t, err)
	assert.Equal(t, models.EstimateItem{Description: "Shingles", Quantity: 10, UnitPrice: 5, Amount: 50}, it)

	it, err = parseItemSpec("Panels:4:9:36.5")
	require.NoError(t, err)
	assert.Equal(t, 36.5, it.Amount)

	for _, bad := range []string{"", "desc", "desc:1", "desc:x:2", "desc:1:y", "desc:1:2:z", "a:1:2:3:4"} {
		_, err := parseItemSpec(bad)
		assert.Error(t, err, "spec %q", bad)
	}
}

func TestFileType(t *testing.T) {
	for _, c := range []struct {
		explicit, path, want string
		ok                   bool
	}{
		{"", "out.csv", "csv", true},
		{"", "out.JSON", "json", true},
		{"csv", "out.dat", "csv", true},
		{"json", "-", "json", true},
		{"", "out.dat", "", false},
		{"xml", "out.csv", "", false},
	} {
		got, err := fileType(c.explicit, c.path)
		if c.ok {
			require.NoError(t, err, "%+v", c)
			assert.Equal(t, c.want, got)
		} else {
			assert.Error(t, err, "%+v", c)
		}
	}
}
