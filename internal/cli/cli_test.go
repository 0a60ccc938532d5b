package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
)

const testCSV = `competitorname,chocolate,fruity,caramel,peanutyalmondy,nougat,crispedricewafer,hard,bar,pluribus,sugarpercent,pricepercent,winpercent
Twix,1,0,1,0,0,1,0,1,0,.546,.906,81.642914
Starburst,0,1,0,0,0,0,0,0,1,.151,.22,67.037628
Reese's Peanut Butter cup,1,0,0,1,0,0,0,0,0,.72,.651,84.18029
Lemonhead,0,1,0,0,0,0,1,0,0,.046,.104,39.141056
Snickers,1,0,1,1,1,0,0,1,0,.546,.651,76.673782
Dum Dums,0,1,0,0,0,0,1,0,0,.732,.034,39.460556
`

func writeData(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candy.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--data", writeData(t)}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestFilterCommand(t *testing.T) {
	out, err := run(t, "filter", "--flags", "chocolate,caramel")
	require.NoError(t, err)

	assert.Contains(t, out, "Twix")
	assert.Contains(t, out, "Snickers")
	assert.NotContains(t, out, "Starburst")
	assert.Contains(t, out, "2 of 6 candies match")
	assert.Contains(t, out, "Chocolate, Caramel, Crispy/Wafer, Bar")
}

func TestFilterCommandRanges(t *testing.T) {
	out, err := run(t, "filter", "--sugar-min", "70")
	require.NoError(t, err)
	assert.Contains(t, out, "Reese's Peanut Butter cup")
	assert.Contains(t, out, "Dum Dums")
	assert.Contains(t, out, "2 of 6 candies match")

	out, err = run(t, "filter", "--sugar-min", "80", "--sugar-max", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "(no candies match)")
}

func TestFilterCommandRejectsBadInput(t *testing.T) {
	_, err := run(t, "filter", "--flags", "licorice")
	assert.Error(t, err)

	_, err = run(t, "filter", "--price-max", "140")
	assert.Error(t, err)
}

func TestTopCommand(t *testing.T) {
	out, err := run(t, "top", "--why")
	require.NoError(t, err)

	for _, name := range []string{"Reese's Peanut Butter cup", "Twix", "Starburst"} {
		assert.Contains(t, out, name)
	}
	assert.NotContains(t, out, "Lemonhead")
	// Mean win of the three picks: (84.18029 + 81.642914 + 67.037628) / 3
	assert.Contains(t, out, "77.62")
	assert.Contains(t, out, "Highest win percentage")
}

func TestTopCommandUnknownName(t *testing.T) {
	_, err := run(t, "top", "--names", "Twix,Kit Kat")
	assert.True(t, errors.Is(err, candy.ErrUnknownCandy), "got %v", err)
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := run(t, "analyze", "Twix", "Snickers")
	require.NoError(t, err)

	assert.Contains(t, out, "Selection")
	assert.Contains(t, out, "above-average win rate")
	assert.Contains(t, out, "Allergy warning")
	assert.Contains(t, out, "None of your selected candies are fruity")
	assert.NotContains(t, out, "contain chocolate")
}

func TestAnalyzeCommandErrors(t *testing.T) {
	t.Run("too many names", func(t *testing.T) {
		_, err := run(t, "analyze", "Twix", "Snickers", "Starburst", "Lemonhead")
		assert.Error(t, err)
	})
	t.Run("filtered out", func(t *testing.T) {
		_, err := run(t, "analyze", "--flags", "fruity", "Twix")
		assert.True(t, errors.Is(err, candy.ErrUnknownCandy), "got %v", err)
	})
	t.Run("duplicate", func(t *testing.T) {
		_, err := run(t, "analyze", "Twix", "Twix")
		assert.True(t, errors.Is(err, candy.ErrInvalidSelectionSize), "got %v", err)
	})
}

func TestMissingDataFile(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--data", filepath.Join(t.TempDir(), "nope.csv"), "filter"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, candy.ErrDataUnavailable))
	assert.True(t, strings.Contains(err.Error(), "nope.csv"))
}
