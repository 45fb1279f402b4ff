// Package console drives a quiz engine from line-oriented terminal input.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/example/wordquiz/internal/quiz"
)

// errQuit ends the run when the user types q or input runs out
var errQuit = errors.New("quit")

// Runner reads answers from in and writes questions and feedback to out
type Runner struct {
	engine *quiz.Engine
	in     io.Reader
	out    io.Writer

	once    sync.Once
	lines   chan string
	readErr error // Set before lines is closed
}

// New creates a runner over engine
func New(engine *quiz.Engine, in io.Reader, out io.Writer) *Runner {
	return &Runner{engine: engine, in: in, out: out}
}

// Play runs sessions starting with settings until the user quits
func (r *Runner) Play(ctx context.Context, settings quiz.Settings) error {
	if _, err := r.engine.Start(ctx, settings); err != nil {
		return err
	}

	for {
		err := r.runSession(ctx)
		if errors.Is(err, errQuit) {
			r.engine.Abandon()
			r.printf("Bye!\n")
			return nil
		}
		if err != nil {
			r.engine.Abandon()
			return err
		}

		if err := r.showSummary(); err != nil {
			return err
		}
		if err := r.menu(ctx); err != nil {
			if errors.Is(err, errQuit) {
				r.printf("Bye!\n")
				return nil
			}
			return err
		}
	}
}

func (r *Runner) runSession(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		q, err := r.engine.Question()
		if err != nil {
			return err
		}
		r.showQuestion(q)

		judgment, err := r.answer(ctx, q)
		if err != nil {
			return err
		}
		if judgment.Correct {
			r.printf("⭕ Correct!\n")
		} else {
			r.printf("❌ Wrong. Answer: %s\n", judgment.Expected)
		}

		done, err := r.engine.Next(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (r *Runner) showQuestion(q quiz.Question) {
	r.printf("\n[%d/%d] %s\n", q.Index+1, q.Total, q.Prompt)
	for i, opt := range q.Options {
		r.printf("  %d) %s\n", i+1, opt)
	}
}

// answer reads lines until one can be judged
func (r *Runner) answer(ctx context.Context, q quiz.Question) (quiz.Judgment, error) {
	for {
		line, err := r.readLine(ctx, "> ")
		if err != nil {
			return quiz.Judgment{}, err
		}
		if strings.EqualFold(line, "q") {
			return quiz.Judgment{}, errQuit
		}
		if err := ctx.Err(); err != nil {
			return quiz.Judgment{}, err
		}

		if q.Style == quiz.FreeText {
			return r.engine.Answer(ctx, line)
		}

		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(q.Options) {
			r.printf("Enter a number from 1 to %d, or q to quit.\n", len(q.Options))
			continue
		}
		return r.engine.Choose(ctx, n-1)
	}
}

func (r *Runner) showSummary() error {
	sum, err := r.engine.Summary()
	if err != nil {
		return err
	}
	if sum.Total == 0 {
		r.printf("\nNo questions were asked.\n")
		return nil
	}
	r.printf("\nCorrect %d / %d (%.1f%%)\n%s\n", sum.Correct, sum.Total, sum.Percent, sum.Outcome.Message())
	return nil
}

// menu starts the next session chosen by the user
func (r *Runner) menu(ctx context.Context) error {
	for {
		line, err := r.readLine(ctx, "\n[r] retry  [v] review missed  [q] quit\n> ")
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		switch strings.ToLower(line) {
		case "r":
			_, err = r.engine.Retry(ctx)
		case "v":
			_, err = r.engine.StartReview(ctx)
		case "q":
			return errQuit
		default:
			continue
		}

		switch {
		case err == nil:
			return nil
		case errors.Is(err, quiz.ErrNothingToReview), errors.Is(err, quiz.ErrNoMatchingWords):
			r.printf("%s\n", err)
		default:
			return err
		}
	}
}

// readLine waits for the next input line or for ctx to be done
func (r *Runner) readLine(ctx context.Context, prompt string) (string, error) {
	r.printf("%s", prompt)
	r.startReader()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-r.lines:
		if !ok {
			if r.readErr != nil {
				return "", r.readErr
			}
			return "", errQuit
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
}

// startReader feeds input lines to r.lines from its own goroutine
func (r *Runner) startReader() {
	r.once.Do(func() {
		r.lines = make(chan string)
		go func() {
			defer close(r.lines)
			scanner := bufio.NewScanner(r.in)
			for scanner.Scan() {
				r.lines <- scanner.Text()
			}
			r.readErr = scanner.Err()
		}()
	})
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}
