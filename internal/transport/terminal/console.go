package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"movie-quiz/internal/app"
	"movie-quiz/internal/domain"
)

// Controller is the part of the engine the console drives.
type Controller interface {
	Start()
	SubmitAnswer(answer bool)
	Restart()
	Retry()
}

type prompt int

const (
	promptAnswer prompt = iota
	promptPlayAgain
	promptRetry
)

func (p prompt) text() string {
	switch p {
	case promptPlayAgain:
		return "Play again? [y/n]: "
	case promptRetry:
		return "Try again? [y/n]: "
	default:
		return "Your answer [y/n]: "
	}
}

// Console is an interactive terminal presenter. Engine calls print to out and
// queue prompts; Run reads the player's replies.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	prompts chan prompt
	stop    chan struct{}
	once    sync.Once
}

func NewConsole(out io.Writer) *Console {
	return &Console{
		out:     out,
		prompts: make(chan prompt, 4),
		stop:    make(chan struct{}),
	}
}

func (c *Console) Render(vm domain.RoundViewModel) {
	poster := "no poster"
	if !vm.Image.IsPlaceholder() {
		poster = fmt.Sprintf("poster %s %dx%d", vm.Image.Format, vm.Image.Width, vm.Image.Height)
	}
	c.printf("\n[%s] (%s)\n%s\n", vm.PositionLabel, poster, vm.PromptText)
}

func (c *Console) RenderSummary(summary domain.Summary) {
	c.printf("\n%s\n%s\n", summary.Title, summary.Message)
	c.ask(promptPlayAgain)
}

func (c *Console) SetImageFeedback(isCorrect bool) {
	if isCorrect {
		c.printf("✓ correct\n")
		return
	}
	c.printf("✗ wrong\n")
}

func (c *Console) SetInputEnabled(enabled bool) {
	if enabled {
		c.ask(promptAnswer)
	}
}

func (c *Console) ShowLoading() {
	c.printf("Loading...\n")
}

func (c *Console) HideLoading() {}

func (c *Console) ShowError(message, retryLabel string) {
	c.printf("\n%s: %s\n(%s)\n", app.ErrorTitle, message, retryLabel)
	c.ask(promptRetry)
}

// Run starts the engine and feeds it the player's replies until the player
// declines to continue, input ends or ctx is cancelled.
func (c *Console) Run(ctx context.Context, in io.Reader, engine Controller) error {
	defer c.once.Do(func() { close(c.stop) })

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-c.stop:
				return
			}
		}
		readErr <- scanner.Err()
		close(lines)
	}()

	engine.Start()
	for {
		var p prompt
		select {
		case <-ctx.Done():
			return ctx.Err()
		case p = <-c.prompts:
		}

		answer, ok, err := c.readYesNo(ctx, p, lines, readErr)
		if err != nil || !ok {
			return err
		}

		switch p {
		case promptAnswer:
			engine.SubmitAnswer(answer)
		case promptPlayAgain:
			if !answer {
				return nil
			}
			engine.Restart()
		case promptRetry:
			if !answer {
				return nil
			}
			engine.Retry()
		}
	}
}

// readYesNo asks until it gets y or n. ok is false once input is exhausted.
func (c *Console) readYesNo(ctx context.Context, p prompt, lines <-chan string, readErr <-chan error) (answer, ok bool, err error) {
	for {
		c.printf("%s", p.text())
		select {
		case <-ctx.Done():
			return false, false, ctx.Err()
		case line, open := <-lines:
			if !open {
				c.printf("\n")
				return false, false, <-readErr
			}
			switch strings.ToLower(line) {
			case "y", "yes":
				return true, true, nil
			case "n", "no":
				return false, true, nil
			}
			c.printf("Please answer y or n.\n")
		}
	}
}

func (c *Console) ask(p prompt) {
	select {
	case c.prompts <- p:
	case <-c.stop:
	}
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}
