// Package editor keeps the in-memory node/edge state of one open board and syncs it with the
// board API. An Editor is not safe for concurrent use.
package editor

import (
	"context"
	"encoding/json"

	"process-maps-backend/internal/diagram"

	log "github.com/sirupsen/logrus"
)

const (
	ErrLoadFailed     = "Failed to load board"
	ErrSaveFailed     = "Failed to save board"
	ErrGenerateFailed = "Failed to generate diagram"
)

// BoardAPI is the part of the board API the editor needs. *client.Client implements it.
type BoardAPI interface {
	GetBoard(ctx context.Context, boardID string) (*diagram.BoardView, error)
	SaveBoard(ctx context.Context, boardID string, graph diagram.Graph) error
	Generate(ctx context.Context, prompt string) (json.RawMessage, error)
}

type Editor struct {
	api     BoardAPI
	boardID string
	name    string

	nodes []diagram.Node
	edges []diagram.Edge

	loading    bool
	saving     bool
	generating bool
	err        string
}

func New(api BoardAPI, boardID string) *Editor {
	return &Editor{api: api, boardID: boardID}
}

func (e *Editor) BoardID() string { return e.boardID }
func (e *Editor) Name() string    { return e.name }

// Nodes returns a copy of the current nodes.
func (e *Editor) Nodes() []diagram.Node {
	return append([]diagram.Node(nil), e.nodes...)
}

// Edges returns a copy of the current edges in render order.
func (e *Editor) Edges() []diagram.Edge {
	return append([]diagram.Edge(nil), e.edges...)
}

// Graph is the current content as it would be saved.
func (e *Editor) Graph() diagram.Graph {
	return diagram.Graph{Nodes: e.Nodes(), Edges: e.Edges()}
}

func (e *Editor) Loading() bool    { return e.loading }
func (e *Editor) Saving() bool     { return e.saving }
func (e *Editor) Generating() bool { return e.generating }

// Error is the message of the last failed load, save or generate, or "".
func (e *Editor) Error() string { return e.err }

// Load replaces the local state with the stored board.
func (e *Editor) Load(ctx context.Context) error {
	e.loading = true
	defer func() { e.loading = false }()

	view, err := e.api.GetBoard(ctx, e.boardID)
	if err != nil {
		log.WithError(err).WithField("board_id", e.boardID).Error("load board")
		e.err = ErrLoadFailed
		return err
	}

	e.name = view.Name
	e.nodes = append([]diagram.Node(nil), view.Nodes...)
	e.edges = append([]diagram.Edge(nil), view.Edges...)
	e.err = ""
	return nil
}

// Save sends the whole local state; the server replaces the board content with it.
func (e *Editor) Save(ctx context.Context) error {
	e.saving = true
	defer func() { e.saving = false }()

	if err := e.api.SaveBoard(ctx, e.boardID, e.Graph()); err != nil {
		log.WithError(err).WithField("board_id", e.boardID).Error("save board")
		e.err = ErrSaveFailed
		return err
	}
	e.err = ""
	return nil
}

// Generate asks the AI bridge for a diagram and merges it into the local state.
func (e *Editor) Generate(ctx context.Context, prompt string) error {
	e.generating = true
	defer func() { e.generating = false }()

	raw, err := e.api.Generate(ctx, prompt)
	if err != nil {
		log.WithError(err).Error("generate diagram")
		e.err = ErrGenerateFailed
		return err
	}

	graph, err := decodeGenerated(raw)
	if err != nil {
		log.WithError(err).Error("decode generated diagram")
		e.err = ErrGenerateFailed
		return err
	}

	e.Merge(graph)
	e.err = ""
	return nil
}
