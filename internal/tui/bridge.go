package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/bjtrainer/internal/game"
	"github.com/lox/bjtrainer/internal/strategy"
)

// sender delivers messages into a running program. *tea.Program satisfies it.
type sender interface {
	Send(msg tea.Msg)
}

// Bridge connects the engine to the TUI model. The engine calls it from its
// own goroutine; state flows to the model as messages and answers come back on
// the model's result channel.
type Bridge struct {
	program      sender
	results      <-chan ActionResult
	clock        quartz.Clock
	replayNotice time.Duration
	logger       *log.Logger

	quitPending bool
}

var _ game.Presenter = (*Bridge)(nil)

// NewBridge creates a bridge. replayNotice is how long the replay notice stays
// up before the round starts by itself; zero waits for enter.
func NewBridge(program sender, model *TUIModel, clock quartz.Clock, replayNotice time.Duration, logger *log.Logger) *Bridge {
	return &Bridge{
		program:      program,
		results:      model.actionResult,
		clock:        clock,
		replayNotice: replayNotice,
		logger:       logger.WithPrefix("bridge"),
	}
}

func (b *Bridge) RenderState(view game.RoundView) {
	b.program.Send(stateMsg{view: view})
}

func (b *Bridge) AwaitAction(ctx context.Context, legal strategy.ActionSet) (strategy.Action, error) {
	for {
		r, _, err := b.next(ctx, nil)
		if err != nil {
			return strategy.NoAction, err
		}
		if r.Action != strategy.NoAction {
			return r.Action, nil
		}
	}
}

func (b *Bridge) NotifyMistake(ctx context.Context, mistake game.Mistake) error {
	b.drainAcks()
	b.program.Send(mistakeMsg{mistake: mistake})
	return b.waitAck(ctx, nil)
}

func (b *Bridge) NotifyReplayStart(ctx context.Context, record game.MistakeRecord) error {
	b.drainAcks()

	// The timer starts before the notice is shown so the countdown covers
	// the whole time it is on screen.
	var expired <-chan time.Time
	if b.replayNotice > 0 {
		t := b.clock.NewTimer(b.replayNotice, "bridge", "replayNotice")
		defer t.Stop()
		expired = t.C
	}
	b.program.Send(replayMsg{record: record, auto: b.replayNotice})
	return b.waitAck(ctx, expired)
}

func (b *Bridge) NotifyRoundResult(ctx context.Context, result *game.RoundResult) error {
	b.drainAcks()
	b.program.Send(resultMsg{result: result})
	return b.waitAck(ctx, nil)
}

// waitAck blocks until the player continues or expired fires. Stray actions
// are ignored.
func (b *Bridge) waitAck(ctx context.Context, expired <-chan time.Time) error {
	for {
		r, timedOut, err := b.next(ctx, expired)
		if err != nil {
			return err
		}
		if timedOut {
			b.program.Send(ackedMsg{})
			return nil
		}
		if r.Ack {
			return nil
		}
		b.logger.Debug("Ignoring action while waiting to continue", "action", r.Action)
	}
}

// next waits for one result from the model or for expired to fire.
func (b *Bridge) next(ctx context.Context, expired <-chan time.Time) (ActionResult, bool, error) {
	if b.quitPending {
		return ActionResult{}, false, game.ErrQuit
	}
	select {
	case <-ctx.Done():
		return ActionResult{}, false, ctx.Err()
	case <-expired:
		return ActionResult{}, true, nil
	case r := <-b.results:
		if r.Quit {
			b.quitPending = true
			return ActionResult{}, false, game.ErrQuit
		}
		return r, false, nil
	}
}

// drainAcks drops input left over from an earlier notice. A quit is kept.
func (b *Bridge) drainAcks() {
	for {
		select {
		case r := <-b.results:
			if r.Quit {
				b.quitPending = true
				return
			}
		default:
			return
		}
	}
}
