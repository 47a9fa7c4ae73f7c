package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	healthbot "github.com/FabioCLima/healthbot-project"
	"github.com/FabioCLima/healthbot-project/internal/presentation/tui"
	"github.com/FabioCLima/healthbot-project/pkg/domain"
	"github.com/FabioCLima/healthbot-project/pkg/graph"
	"github.com/FabioCLima/healthbot-project/pkg/session"
)

// exitWords end the console session immediately, leaving a checkpoint
// behind so the conversation can be resumed later.
var exitWords = map[string]struct{}{
	"exit": {},
	"quit": {},
	"q":    {},
	"bye":  {},
}

// RunSession executes one interactive console conversation. It either
// starts a fresh session or resumes the one identified by opts.SessionID.
func RunSession(opts RunOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	// The interactive console stays quiet unless debugging; stderr noise
	// competes with the conversation.
	logger := createLogger(opts.Debug, "")
	tui.PrintBanner(healthbot.Version)

	engine := buildEngine(cfg, logger, opts.Debug)

	store, err := buildStore(cfg)
	if err != nil {
		return err
	}
	sessions := newSessionManager(store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := openSession(ctx, engine, sessions, opts.SessionID)
	if err != nil {
		return err
	}

	// A checkpoint taken after a step failure is still mid-step. Re-run
	// the failed step now; the prompt loop only feeds paused sessions.
	if err := resumeInFlight(ctx, sess); err != nil {
		if saveErr := checkpoint(ctx, sessions, sess); saveErr != nil {
			logger.Warn("checkpoint after failure did not persist", "err", saveErr)
		}
		return err
	}

	render := tui.NewRenderer()
	reader := bufio.NewReader(os.Stdin)
	shown := 0

	// Seed topic skips the first prompt, useful for scripted runs.
	pending := strings.TrimSpace(opts.Topic)

	for {
		shown = displayMessages(sess, shown, render)

		if sess.Terminated() {
			if err := sessions.Delete(ctx, sess.RunID()); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
				logger.Warn("failed to remove finished session", "err", err)
			}
			printSystemMessage("Session complete.")
			return nil
		}

		var input string
		if pending != "" {
			input = pending
			pending = ""
			fmt.Printf("> %s\n", input)
		} else {
			fmt.Print("> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				// EOF or closed stdin: checkpoint and leave.
				return checkpoint(ctx, sessions, sess)
			}
			input = strings.TrimSpace(line)
		}

		if input == "" {
			continue
		}
		if _, ok := exitWords[strings.ToLower(input)]; ok {
			if err := checkpoint(ctx, sessions, sess); err != nil {
				return err
			}
			printSystemMessage("Checkpoint saved. Resume with --session %s", sess.RunID())
			return nil
		}

		if err := sess.Resume(ctx, input); err != nil {
			if handled := recoverStep(ctx, sess, err, logger); !handled {
				if saveErr := checkpoint(ctx, sessions, sess); saveErr != nil {
					logger.Warn("checkpoint after failure did not persist", "err", saveErr)
				}
				return err
			}
		}

		if err := checkpoint(ctx, sessions, sess); err != nil {
			return err
		}
	}
}

// openSession starts a new run or rehydrates a stored one.
func openSession(ctx context.Context, engine *healthbot.Engine, sessions *session.Manager, sessionID string) (*graph.Session, error) {
	if sessionID == "" {
		sess, err := engine.Start(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to start session: %w", err)
		}
		printSystemMessage("Session '%s' active.", sess.RunID())
		return sess, nil
	}

	state, err := sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session '%s': %w", sessionID, err)
	}
	sess, err := engine.Attach(state)
	if err != nil {
		return nil, fmt.Errorf("failed to resume session '%s': %w", sessionID, err)
	}
	printSystemMessage("Resuming at '%s'...", state.CurrentStep)
	return sess, nil
}

// displayMessages renders every assistant message appended since the last
// call and returns the new transcript position.
func displayMessages(sess *graph.Session, since int, render tui.Renderer) int {
	msgs := sess.MessagesSince(since)
	for _, m := range msgs {
		if m.Role != domain.RoleAssistant {
			continue
		}
		out, err := render(m.Content)
		if err != nil {
			out = m.Content
		}
		fmt.Print(out)
		if !strings.HasSuffix(out, "\n") {
			fmt.Println()
		}
	}
	return since + len(msgs)
}

// resumeInFlight drives an attached session that is neither paused nor
// terminated. That shape comes from a checkpoint saved after a step failure;
// the failed step left no partial update, so re-running it is safe.
func resumeInFlight(ctx context.Context, sess *graph.Session) error {
	if sess.Paused() || sess.Terminated() {
		return nil
	}
	printSystemMessage("Resuming interrupted step '%s'...", sess.State().CurrentStep)
	return sess.Advance(ctx)
}

// recoverStep retries a failed external step once. The failed step left
// the state untouched, so a retry re-executes it from the same position.
func recoverStep(ctx context.Context, sess *graph.Session, err error, logger *slog.Logger) bool {
	var stepErr *domain.StepError
	if !errors.As(err, &stepErr) {
		return false
	}
	logger.Warn("step failed, retrying", "step", stepErr.Step, "err", stepErr.Err)
	printSystemMessage("A step failed (%s). Retrying...", stepErr.Step)

	if retryErr := sess.Advance(ctx); retryErr != nil {
		printSystemMessage("Retry failed: %v", retryErr)
		return false
	}
	return true
}

// checkpoint persists the current state of the session.
func checkpoint(ctx context.Context, sessions *session.Manager, sess *graph.Session) error {
	if err := sessions.Save(ctx, sess.RunID(), sess.Snapshot()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
