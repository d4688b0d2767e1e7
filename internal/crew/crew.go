package crew

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mgpai22/filmcrew/internal/logging"
	"github.com/mgpai22/filmcrew/internal/textgen"
)

// TaskOutput is the reply a task produced.
type TaskOutput struct {
	Task string
	Role string
	Raw  string
}

// Crew runs tasks one after another against a single generator.
type Crew struct {
	gen    textgen.Generator
	tasks  []Task
	logger *logging.Logger
}

func New(gen textgen.Generator, tasks []Task, logger *logging.Logger) *Crew {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Crew{gen: gen, tasks: tasks, logger: logger}
}

// Kickoff runs every task in order. Each prompt carries the outputs of all
// earlier tasks. The first failing task stops the run; outputs produced
// before it are returned alongside the error.
func (c *Crew) Kickoff(ctx context.Context) ([]TaskOutput, error) {
	if c.gen == nil {
		return nil, errors.New("crew has no generator")
	}
	if len(c.tasks) == 0 {
		return nil, errors.New("crew has no tasks")
	}

	outputs := make([]TaskOutput, 0, len(c.tasks))
	for i, task := range c.tasks {
		if err := ctx.Err(); err != nil {
			return outputs, err
		}

		c.logger.Infow("Running task",
			"task", task.Name,
			"agent", task.Agent.Role,
			"step", fmt.Sprintf("%d/%d", i+1, len(c.tasks)),
		)
		started := time.Now()

		reply, err := c.gen.Generate(ctx, textgen.Request{
			System: task.Agent.SystemPrompt(),
			Prompt: taskPrompt(task, outputs),
		})
		if err != nil {
			return outputs, fmt.Errorf("task %s failed: %w", task.Name, err)
		}

		c.logger.Debugw("Task finished",
			"task", task.Name,
			"chars", len(reply),
			"elapsed", time.Since(started).Round(time.Millisecond),
		)

		outputs = append(outputs, TaskOutput{
			Task: task.Name,
			Role: task.Agent.Role,
			Raw:  reply,
		})
	}

	return outputs, nil
}

func taskPrompt(task Task, prior []TaskOutput) string {
	var b strings.Builder

	b.WriteString("Current Task: ")
	b.WriteString(task.Description)
	b.WriteString("\n\nThis is the expected criteria for your final answer: ")
	b.WriteString(task.ExpectedOutput)
	b.WriteString("\nYou MUST return the actual complete content as the final answer, not a summary.")

	if len(prior) > 0 {
		b.WriteString("\n\nThis is the context you're working with:\n")
		for _, out := range prior {
			fmt.Fprintf(&b, "\n## %s (%s)\n%s\n", out.Task, out.Role, strings.TrimSpace(out.Raw))
		}
	}

	return b.String()
}
