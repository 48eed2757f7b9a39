package app

import (
	"context"
	"io"
	"os"

	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"

	"github.com/maxbolgarin/revu/internal/agent"
	"github.com/maxbolgarin/revu/internal/chat"
	"github.com/maxbolgarin/revu/internal/config"
	ctxbuild "github.com/maxbolgarin/revu/internal/context"
	"github.com/maxbolgarin/revu/internal/git"
	"github.com/maxbolgarin/revu/internal/model"
	"github.com/maxbolgarin/revu/internal/model/interfaces"
	"github.com/maxbolgarin/revu/internal/output"
	"github.com/maxbolgarin/revu/internal/provider"
	"github.com/maxbolgarin/revu/internal/review"
)

// Revu wires the whole pipeline: change source, context builder, agent,
// reviewer, formatter.
type Revu struct {
	source   interfaces.DiffSource
	reader   interfaces.FileReader
	agent    *agent.Agent
	reviewer *review.Reviewer
	format   output.Format

	cfg config.Config
	log logze.Logger
}

// New creates the application from a fully assembled configuration.
func New(ctx contem.Context, cfg config.Config) (*Revu, error) {
	service := &Revu{
		cfg: cfg,
		log: logze.With("component", "app"),
	}

	if err := service.init(ctx, cfg); err != nil {
		return nil, errm.Wrap(err, "failed to initialize service")
	}

	return service, nil
}

func (s *Revu) init(ctx contem.Context, cfg config.Config) (err error) {
	s.format, err = output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	if cfg.UseProvider {
		src, err := provider.New(cfg.Provider)
		if err != nil {
			return errm.Wrap(err, "failed to create VCS provider")
		}
		s.source, s.reader = src, src
	} else {
		cli := git.New(cfg.Git)
		s.source, s.reader = cli, cli
	}

	s.agent, err = agent.New(ctx, cfg.Agent)
	if err != nil {
		return errm.Wrap(err, "failed to create AI agent")
	}

	s.reviewer, err = review.New(cfg.Review, s.agent)
	if err != nil {
		return errm.Wrap(err, "failed to create reviewer")
	}

	return nil
}

// RunReview executes the full pipeline once and writes the rendered result
// to the configured destination.
func (s *Revu) RunReview(ctx context.Context) error {
	changes, err := s.source.Changes(ctx)
	if err != nil {
		return errm.Wrap(err, "failed to get changes")
	}

	contexts := s.buildContexts(changes)

	result, err := s.reviewer.Review(ctx, contexts)
	if err != nil {
		return errm.Wrap(err, "failed to review changes")
	}

	rendered, err := output.Render(result, s.format)
	if err != nil {
		return errm.Wrap(err, "failed to render result")
	}

	return s.write(rendered)
}

// RunChat starts an interactive chat loop on the configured agent, reading
// user lines from in and writing replies to out.
func (s *Revu) RunChat(ctx context.Context, in io.Reader, out io.Writer) error {
	session, err := chat.NewSession(s.cfg.Chat, s.agent)
	if err != nil {
		return errm.Wrap(err, "failed to create chat session")
	}
	return chat.RunLoop(ctx, session, in, out)
}

// buildContexts turns raw changes into review contexts. Imports and
// modified symbols are gathered for every change; the context option
// additionally pulls in related-code snippets.
func (s *Revu) buildContexts(changes []model.FileChange) []model.CodeContext {
	contexts := make([]model.CodeContext, 0, len(changes))
	builder := ctxbuild.NewBuilder(s.reader)

	for _, change := range changes {
		contexts = append(contexts, builder.Build(change, s.cfg.WithContext))
	}
	return contexts
}

func (s *Revu) write(rendered string) error {
	if s.cfg.OutputPath == "" {
		_, err := os.Stdout.WriteString(rendered + "\n")
		return err
	}
	if err := os.WriteFile(s.cfg.OutputPath, []byte(rendered), 0o644); err != nil {
		return errm.Wrap(err, "failed to write output file")
	}
	s.log.Info("result written", "path", s.cfg.OutputPath)
	return nil
}
