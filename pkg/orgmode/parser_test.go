package orgmode

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrisonrobin/daybrief/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const agenda = `#+TITLE: Semester
* TODO [#A] Submit thesis proposal :uni:writing:
  DEADLINE: <2025-07-20 Sun>
* DONE Register for courses
  DEADLINE: <2025-07-01 Tue>
* TODO Read papers
** TODO Prepare slides
   DEADLINE: <2025-07-18 Fri 10:00>
* Notes
  DEADLINE: <2025-07-30 Wed>
`

func TestParse(t *testing.T) {
	entries, err := Parse(strings.NewReader(agenda))
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Title: "Submit thesis proposal", Priority: "A", Deadline: "2025-07-20"},
		{Title: "Prepare slides", Deadline: "2025-07-18"},
	}, entries)
}

func TestSourceDeadlines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agenda.org")
	require.NoError(t, os.WriteFile(path, []byte(agenda), 0600))

	got, err := NewSource([]string{path}).Deadlines(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []model.Deadline{
		{Date: "2025-07-20", Task: "[#A] Submit thesis proposal", Source: "orgmode"},
		{Date: "2025-07-18", Task: "Prepare slides", Source: "orgmode"},
	}, got)

	_, err = NewSource([]string{filepath.Join(t.TempDir(), "missing.org")}).Deadlines(context.Background(), nil)
	assert.Error(t, err)
}
