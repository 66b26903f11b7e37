package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/repository"
)

const help = "commands: 1-9 place a mark, players 1|2, easy|medium|hard, new, help, quit"

type gameManager interface {
	GetPreferences(ctx context.Context, profileID string) (entity.Preferences, error)
	SetPlayers(ctx context.Context, profileID, gameID string, players int) (*entity.Game, error)
	SetDifficulty(ctx context.Context, profileID, gameID string, difficulty entity.Difficulty) (entity.Preferences, error)

	StartGame(ctx context.Context, profileID, previousGameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
}

// Client - interactive game on a line-oriented terminal.
type Client struct {
	logger      *slog.Logger
	gameManager gameManager
	profileID   string

	in  *bufio.Scanner
	out *termenv.Output

	game *entity.Game
}

func New(logger *slog.Logger, gameManager gameManager, profileID string, in io.Reader, out *termenv.Output) *Client {
	return &Client{
		logger:      logger.With("component", "terminal"),
		gameManager: gameManager,
		profileID:   profileID,
		in:          bufio.NewScanner(in),
		out:         out,
	}
}

// Run - reads commands until quit, end of input or ctx cancellation.
func (that *Client) Run(ctx context.Context) error {
	game, err := that.gameManager.StartGame(ctx, that.profileID, "")
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	that.game = game

	if err = that.printPreferences(ctx); err != nil {
		return err
	}
	that.println(help)
	that.render()

	for {
		fmt.Fprint(that.out, "> ")
		if !that.in.Scan() {
			break
		}

		if ctx.Err() != nil {
			return nil
		}

		quit, err := that.handle(ctx, strings.Fields(strings.ToLower(that.in.Text())))
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}

	if err = that.in.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

// handle - runs one command. Rule violations are printed, only storage failures are returned.
func (that *Client) handle(ctx context.Context, fields []string) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}

	switch cmd := fields[0]; cmd {
	case "quit", "exit", "q":
		return true, nil

	case "help", "?":
		that.println(help)

	case "new", "reset":
		game, err := that.gameManager.StartGame(ctx, that.profileID, that.game.ID)
		if err != nil {
			return false, fmt.Errorf("failed to start game: %w", err)
		}
		that.game = game
		that.render()

	case "players":
		if len(fields) != 2 {
			that.println("usage: players 1|2")
			return false, nil
		}

		players, err := strconv.Atoi(fields[1])
		if err != nil {
			that.println("usage: players 1|2")
			return false, nil
		}

		game, err := that.gameManager.SetPlayers(ctx, that.profileID, that.game.ID, players)
		if err != nil {
			return false, that.reject(ctx, err)
		}
		that.game = game
		that.render()

	case string(entity.DifficultyEasy), string(entity.DifficultyMedium), string(entity.DifficultyHard):
		prefs, err := that.gameManager.SetDifficulty(ctx, that.profileID, that.game.ID, entity.Difficulty(cmd))
		if err != nil {
			return false, that.reject(ctx, err)
		}
		that.game.Difficulty = prefs.Difficulty
		that.println("difficulty: " + string(prefs.Difficulty))

	default:
		cell, err := strconv.Atoi(cmd)
		if err != nil {
			that.println("unknown command " + strconv.Quote(cmd) + "; " + help)
			return false, nil
		}

		game, err := that.gameManager.MakeTurn(ctx, that.game.ID, cell-1)
		if err != nil {
			return false, that.reject(ctx, err)
		}
		that.game = game
		that.render()
	}

	return false, nil
}

// reject - prints errors the player caused and returns the rest. A game that expired is replaced by a new one.
func (that *Client) reject(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, apperror.ErrInvalidCell):
		that.println("pick a cell from 1 to 9")
	case errors.Is(err, apperror.ErrCellOccupied):
		that.println("that cell is taken")
	case errors.Is(err, apperror.ErrGameFinished):
		that.println("the game is over, type new to play again")
	case errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrInvalidPlayers),
		errors.Is(err, apperror.ErrUnknownDifficulty):
		that.println(err.Error())
	case errors.Is(err, repository.ErrGameNotFound):
		that.logger.Info("game expired, starting a new one", "game_id", that.game.ID)
		that.println("the game has expired, starting a new one")

		game, startErr := that.gameManager.StartGame(ctx, that.profileID, "")
		if startErr != nil {
			return fmt.Errorf("failed to start game: %w", startErr)
		}
		that.game = game
		that.render()
	default:
		that.logger.Error("command failed", "error", err)
		return err
	}

	return nil
}

func (that *Client) printPreferences(ctx context.Context) error {
	prefs, err := that.gameManager.GetPreferences(ctx, that.profileID)
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}

	that.println(fmt.Sprintf("players: %d, difficulty: %s", prefs.Players, prefs.Difficulty))

	return nil
}

func (that *Client) render() {
	var sb strings.Builder

	for row := range 3 {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}

		for col := range 3 {
			if col > 0 {
				sb.WriteString("|")
			}

			cell := row*3 + col
			sb.WriteString(" " + that.mark(cell) + " ")
		}

		sb.WriteString("\n")
	}

	fmt.Fprint(that.out, sb.String())

	msg, err := that.game.Message()
	if err != nil {
		that.logger.Error("failed to render status", "error", err)
		return
	}

	that.println(that.out.String(msg).Bold().String())
}

func (that *Client) mark(cell int) string {
	switch that.game.Board[cell] {
	case entity.PlayerX:
		return that.out.String(entity.PlayerX).Foreground(that.out.Color("#E88388")).Bold().String()
	case entity.PlayerO:
		return that.out.String(entity.PlayerO).Foreground(that.out.Color("#71BEF2")).Bold().String()
	default:
		return that.out.String(strconv.Itoa(cell + 1)).Faint().String()
	}
}

func (that *Client) println(line string) {
	fmt.Fprintln(that.out, line)
}
