package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/smorcillor/spotify-profile-dump-cli/internal/services"
	"github.com/smorcillor/spotify-profile-dump-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	logger     *log.Logger
	output     io.Writer
	httpClient *http.Client
	newService func(token string) (services.Service, error)
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Logger     *log.Logger
	Output     io.Writer
	HTTPClient *http.Client

	// NewService overrides the service factory, mainly for tests.
	NewService func(token string) (services.Service, error)
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config:     opts.Config,
		logger:     opts.Logger,
		output:     opts.Output,
		httpClient: opts.HTTPClient,
		newService: opts.NewService,
	}

	if r.newService == nil {
		r.newService = func(token string) (services.Service, error) {
			client, err := services.NewClient(services.ClientOpts{
				Token:         token,
				BaseURL:       r.config.API.BaseURL,
				HTTPClient:    r.httpClient,
				Retry:         r.retryPolicy(),
				RateLimit:     r.config.API.RateLimit,
				FanOutWorkers: r.config.API.FanOutWorkers,
				Logger:        r.logger,
			})
			if err != nil {
				return nil, err
			}
			return client, nil
		}
	}

	return r
}

// retryPolicy derives a retry policy from the config, nil for defaults.
func (r *Runner) retryPolicy() *services.RetryPolicy {
	if r.config.API.MaxRetries <= 0 {
		return nil
	}
	policy := services.DefaultRetryPolicy()
	policy.MaxRetries = r.config.API.MaxRetries
	return &policy
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, dumpCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig replaces the runner config when the command's --config flag
// points at a readable file.
func (r *Runner) loadConfig(cmd *cli.Command) {
	path := cmd.String("config")
	if path == "" {
		return
	}
	if loaded, err := shared.LoadConfig(path); err == nil {
		r.config = loaded
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
