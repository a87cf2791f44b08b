package taskwarrior

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/harrisonrobin/daybrief/pkg/model"
)

type Client struct {
	// Filter is passed to `task` before the export command.
	Filter []string
	bin    string
}

func NewClient(filter []string) *Client {
	return &Client{Filter: filter, bin: "task"}
}

func (c *Client) GetTasks(ctx context.Context) ([]Task, error) {
	args := append(append([]string{}, c.Filter...), "export", "rc.hooks=0")
	cmd := exec.CommandContext(ctx, c.bin, args...)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("taskwarrior command failed: exit code %d, %s, stderr: %s",
				exitErr.ExitCode(), err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("taskwarrior command failed: %w", err)
	}

	var tasks []Task
	if err := json.Unmarshal(output, &tasks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal taskwarrior output: %w", err)
	}
	return tasks, nil
}

// Deadlines exports the filtered tasks and converts them with ToDeadlines.
func (c *Client) Deadlines(ctx context.Context, loc *time.Location) ([]model.Deadline, error) {
	tasks, err := c.GetTasks(ctx)
	if err != nil {
		return nil, err
	}
	return ToDeadlines(tasks, loc), nil
}

// ParseTasks parses a JSON array export from an io.Reader.
func ParseTasks(r io.Reader) ([]Task, error) {
	var tasks []Task
	if err := json.NewDecoder(r).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("failed to decode task json: %w", err)
	}
	return tasks, nil
}
