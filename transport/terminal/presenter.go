// Package terminal implements a line-based text presenter for the game.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wricardo/shadok-gibby/game/command"
	"github.com/wricardo/shadok-gibby/game/engine"
	"github.com/wricardo/shadok-gibby/game/service"
)

// Board glyphs
const (
	GlyphPlayer = '@'
	GlyphEnemy  = 'E'
	GlyphFlower = '*'
	GlyphEmpty  = '.'
)

// Presenter renders the board as text and reads one command per line
type Presenter struct {
	config *engine.Config
	in     *bufio.Scanner
	out    io.Writer
	log    logrus.FieldLogger
	status engine.GameStatus
}

// NewPresenter creates a presenter for games played with config
func NewPresenter(config *engine.Config, in io.Reader, out io.Writer, log logrus.FieldLogger) *Presenter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Presenter{
		config: config,
		in:     bufio.NewScanner(in),
		out:    out,
		log:    log,
	}
}

// Render draws the board, the status line and the prompt
func (p *Presenter) Render(_ context.Context, state engine.State) error {
	p.status = state.Status

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(RenderBoard(state, p.config))
	fmt.Fprintf(&b, "Score: %d/%d  Steps: %d/%d\n",
		state.Player.Score, p.config.MinPlayerScores, state.Player.Steps, p.config.MaxPlayerSteps)
	if msg := service.SoundMessage(state.Sound); msg != "" {
		b.WriteString(msg + "\n")
	}
	b.WriteString(command.Help(state.Status) + "\n> ")

	_, err := io.WriteString(p.out, b.String())
	return err
}

// PollCommand reads lines until one parses for the current status. It
// returns io.EOF when the input ends.
func (p *Presenter) PollCommand(ctx context.Context) (command.Command, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}

		line := p.in.Text()
		if cmd, ok := command.Parse(line, p.status); ok {
			return cmd, nil
		}
		p.log.WithField("input", line).Debug("ignored input")
		if _, err := fmt.Fprintf(p.out, "Unknown command %q. %s\n> ", strings.TrimSpace(line), command.Help(p.status)); err != nil {
			return nil, err
		}
	}
}

// RenderBoard draws the field with y growing upwards: the top line is row
// height-1.
func RenderBoard(state engine.State, config *engine.Config) string {
	rows := make([][]byte, config.FieldHeight)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(string(GlyphEmpty), config.FieldWidth))
	}
	put := func(pos engine.Position, glyph byte) {
		if pos.X >= 0 && pos.X < config.FieldWidth && pos.Y >= 0 && pos.Y < config.FieldHeight {
			rows[pos.Y][pos.X] = glyph
		}
	}

	for _, pos := range state.Flowers.Positions {
		put(pos, GlyphFlower)
	}
	for _, pos := range state.Enemies.Positions {
		put(pos, GlyphEnemy)
	}
	put(state.Player.Position, GlyphPlayer)

	var b strings.Builder
	for y := config.FieldHeight - 1; y >= 0; y-- {
		b.Write(rows[y])
		b.WriteByte('\n')
	}
	return b.String()
}
