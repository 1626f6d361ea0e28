package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/olivermillard/mention/internal/directory"
	"github.com/olivermillard/mention/internal/mention"
	"github.com/olivermillard/mention/internal/types"
	"go.uber.org/zap"
)

const defaultSuggestionLimit = 8

// Options configure chat.
type Options struct {
	Provider directory.Provider
	Logger   *zap.Logger
	Username string
	// Quiet is the pause after typing before candidates refresh. Zero uses the default.
	Quiet time.Duration
	// Limit caps the candidate rows. Zero uses the default, negative shows all.
	Limit int
}

// Run starts the composer UI.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithMouseCellMotion())
	_, err = program.Run()
	model.Close()
	return err
}

// Model implements the composer UI.
type Model struct {
	controller *mention.Controller
	bridge     *presenterBridge
	logger     *zap.Logger
	username   string
	limit      int

	viewport    viewport.Model
	input       textarea.Model
	zoneManager *zone.Manager
	comments    []comment
	status      string
	width       int
	height      int

	candidates      types.CandidateSet
	suggestionIndex int
	dismissedQuery  string
	lastInputValue  string
	lastInputPos    int
}

type comment struct {
	Author string
	Body   string
	At     time.Time
}

// NewModel creates a composer with an empty buffer.
func NewModel(opts Options) (*Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := opts.Limit
	if limit == 0 {
		limit = defaultSuggestionLimit
	}
	username := opts.Username
	if username == "" {
		username = "you"
	}

	bridge := newPresenterBridge()
	controllerOpts := []mention.Option{
		mention.WithPresenter(bridge),
		mention.WithLogger(logger),
	}
	if opts.Quiet > 0 {
		controllerOpts = append(controllerOpts, mention.WithQuiet(opts.Quiet))
	}

	return &Model{
		controller:      mention.New(opts.Provider, controllerOpts...),
		bridge:          bridge,
		logger:          logger,
		username:        username,
		limit:           limit,
		viewport:        viewport.New(0, 0),
		input:           newInputModel(),
		zoneManager:     zone.New(),
		suggestionIndex: -1,
	}, nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.bridge.listen())
}

// Close stops the controller and the presenter bridge.
func (m *Model) Close() {
	m.bridge.close()
	m.controller.Close()
}
