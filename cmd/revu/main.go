package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"

	"github.com/maxbolgarin/revu/internal/app"
	"github.com/maxbolgarin/revu/internal/config"
	"github.com/maxbolgarin/revu/internal/provider"
)

var (
	Version, Branch, Commit, BuildDate string
)

var (
	configPath = kingpin.Flag("config", "path to config file").Short('c').String()
	verbose    = kingpin.Flag("verbose", "enable debug logging").Short('v').Bool()

	reviewCmd    = kingpin.Command("review", "review source-control changes").Default()
	target       = reviewCmd.Arg("target", "commit or ref to review").Default("HEAD").String()
	base         = reviewCmd.Flag("base", "base ref to diff against").String()
	format       = reviewCmd.Flag("format", "output format: terminal, markdown, json").String()
	outputPath   = reviewCmd.Flag("output", "write result to file instead of stdout").Short('o').String()
	withContext  = reviewCmd.Flag("context", "include repository context in prompts").Bool()
	providerType = reviewCmd.Flag("provider", "change source: git, github or gitlab").String()
	project      = reviewCmd.Flag("project", "remote project: owner/repo or project path").String()
	number       = reviewCmd.Flag("number", "remote pull/merge request number").Int()

	chatCmd = kingpin.Command("chat", "interactive chat with the configured model")
)

func main() {
	command := kingpin.Parse()

	var err error
	ctx := contem.New(contem.WithLogger(logze.DefaultPtr()), contem.Exit(&err))
	defer ctx.Shutdown()

	err = run(ctx, command)
	if err != nil {
		logze.DefaultPtr().Error("cannot run", "error", err)
	}
}

func run(ctx contem.Context, command string) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return erro.Wrap(err, "load config")
	}
	applyFlags(&cfg)

	logze.Init(logze.C().WithConsole().WithLevel(lang.If(cfg.Verbose, logze.LevelDebug, logze.LevelInfo)))

	revu, err := app.New(ctx, cfg)
	if err != nil {
		return erro.Wrap(err, "create app")
	}

	switch command {
	case chatCmd.FullCommand():
		if err := revu.RunChat(ctx, os.Stdin, os.Stdout); err != nil {
			return erro.Wrap(err, "run chat")
		}
	default:
		if err := revu.RunReview(ctx); err != nil {
			return erro.Wrap(err, "run review")
		}
	}

	return nil
}

// applyFlags lets command-line flags override file and environment values.
func applyFlags(cfg *config.Config) {
	cfg.Git.Target = lang.Check(*target, cfg.Git.Target)
	cfg.Git.Base = lang.Check(*base, cfg.Git.Base)
	cfg.Format = lang.Check(*format, cfg.Format)
	cfg.OutputPath = lang.Check(*outputPath, cfg.OutputPath)
	cfg.WithContext = cfg.WithContext || *withContext
	cfg.Verbose = cfg.Verbose || *verbose

	switch *providerType {
	case "":
	case "git":
		cfg.UseProvider = false
	default:
		cfg.UseProvider = true
		cfg.Provider.Type = provider.ProviderType(*providerType)
		cfg.Provider.Project = lang.Check(*project, cfg.Provider.Project)
		cfg.Provider.Number = lang.Check(*number, cfg.Provider.Number)
	}
}
