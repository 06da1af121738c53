// skyctl is the command-line console for the platform: authenticate, manage
// workspaces, edit and deploy functions, invoke them, and inspect jobs and
// metrics. It drives the same service bundle the web console uses.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/skyfn/skyfn-console/internal/api"
	"github.com/skyfn/skyfn-console/internal/client"
	"github.com/skyfn/skyfn-console/internal/config"
	"github.com/skyfn/skyfn-console/internal/console"
	"github.com/skyfn/skyfn-console/internal/domain"
	"github.com/skyfn/skyfn-console/internal/session"
	"github.com/skyfn/skyfn-console/internal/transport"
)

const usage = `Usage: skyctl <command> [arguments]

Commands:
  login -u <username> -p <password>   authenticate and store the session
  logout                              clear the stored session
  me                                  show the current user

  ws list                             list workspaces
  ws create -name <name>              create a workspace
  ws rm <id>                          delete a workspace
  ws key <id> [-expires <hours>]      mint a workspace auth key
  ws overview <id>                    workspace metrics + functions

  fn list                             list functions
  fn get <id>                         show a function, including code
  fn create -name <n> -runtime <r> -workspace <id> [-file <path>]
  fn deploy <id>                      deploy a function
  fn invoke <id> [-d <json>]          invoke a function
  fn jobs <id>                        list a function's jobs
  fn metrics <id>                     show a function's metrics
  fn watch -workspace <id>            stream job events for a workspace

  job get <id>                        show one job
`

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)
	if os.Getenv("SKYFN_DEBUG") != "" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}

	sess := session.NewFileStore(cfg.SessionDir)
	services := api.New(api.Config{
		Mode:    api.Mode(cfg.Mode),
		BaseURL: cfg.APIBaseURL,
		Session: sess,
		TransportOptions: []transport.Option{
			transport.WithTimeout(cfg.RequestTimeout),
			transport.WithOnAuthExpired(func() {
				fmt.Fprintln(os.Stderr, "Session expired. Run `skyctl login` to authenticate again.")
			}),
		},
	})

	app := &app{cfg: cfg, session: sess, services: services}

	ctx := context.Background()
	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fatal(err)
	}
}

type app struct {
	cfg      *config.Config
	session  session.Store
	services *api.Bundle
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.session.Clear()
	case "me":
		user, err := a.services.Users.CurrentUser(ctx)
		if err != nil {
			return err
		}
		return printJSON(user)
	case "ws":
		return a.workspace(ctx, args)
	case "fn":
		return a.function(ctx, args)
	case "job":
		return a.job(ctx, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n\n%s", command, usage)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	_ = fs.Parse(args)
	if *username == "" || *password == "" {
		return fmt.Errorf("login requires -u and -p")
	}

	token, err := a.services.Users.Login(ctx, domain.UserLogin{Username: *username, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("Logged in (%s token stored)\n", token.TokenType)
	return nil
}

func (a *app) workspace(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("ws requires a subcommand\n\n%s", usage)
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		workspaces, err := a.services.Workspaces.List(ctx)
		if err != nil {
			return err
		}
		return printJSON(workspaces)
	case "create":
		fs := flag.NewFlagSet("ws create", flag.ExitOnError)
		name := fs.String("name", "", "workspace name")
		_ = fs.Parse(rest)
		if *name == "" {
			return fmt.Errorf("ws create requires -name")
		}
		ws, err := a.services.Workspaces.Create(ctx, domain.WorkspaceCreate{Name: *name})
		if err != nil {
			return err
		}
		return printJSON(ws)
	case "rm":
		if len(rest) != 1 {
			return fmt.Errorf("ws rm requires a workspace id")
		}
		return a.services.Workspaces.Delete(ctx, rest[0])
	case "key":
		if len(rest) < 1 {
			return fmt.Errorf("ws key requires a workspace id")
		}
		fs := flag.NewFlagSet("ws key", flag.ExitOnError)
		expires := fs.Int("expires", 0, "expiry in hours (default: platform default)")
		_ = fs.Parse(rest[1:])
		key, err := a.services.Workspaces.GenerateAuthKey(ctx, rest[0], *expires)
		if err != nil {
			return err
		}
		return printJSON(key)
	case "overview":
		if len(rest) != 1 {
			return fmt.Errorf("ws overview requires a workspace id")
		}
		overview, err := console.FetchWorkspaceOverview(ctx, a.services, rest[0])
		if err != nil {
			return err
		}
		return printJSON(overview)
	default:
		return fmt.Errorf("unknown ws subcommand %q", sub)
	}
}

func (a *app) function(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("fn requires a subcommand\n\n%s", usage)
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		functions, err := a.services.Functions.List(ctx)
		if err != nil {
			return err
		}
		return printJSON(functions)
	case "get":
		if len(rest) != 1 {
			return fmt.Errorf("fn get requires a function id")
		}
		fn, err := a.services.Functions.Get(ctx, rest[0])
		if err != nil {
			return err
		}
		return printJSON(fn)
	case "create":
		fs := flag.NewFlagSet("fn create", flag.ExitOnError)
		name := fs.String("name", "", "function name")
		runtime := fs.String("runtime", string(domain.RuntimePython), "runtime (PYTHON or NODEJS)")
		workspaceID := fs.String("workspace", "", "owning workspace id")
		file := fs.String("file", "", "source file (stdin when omitted)")
		_ = fs.Parse(rest)
		if *name == "" || *workspaceID == "" {
			return fmt.Errorf("fn create requires -name and -workspace")
		}
		code, err := readSource(*file)
		if err != nil {
			return err
		}
		fn, err := a.services.Functions.Create(ctx, domain.FunctionCreate{
			Name:        *name,
			Runtime:     domain.Runtime(*runtime),
			Code:        code,
			WorkspaceID: *workspaceID,
		})
		if err != nil {
			return err
		}
		return printJSON(fn)
	case "deploy":
		if len(rest) != 1 {
			return fmt.Errorf("fn deploy requires a function id")
		}
		result, err := a.services.Functions.Deploy(ctx, rest[0], nil)
		if err != nil {
			return err
		}
		return printJSON(result)
	case "invoke":
		if len(rest) < 1 {
			return fmt.Errorf("fn invoke requires a function id")
		}
		fs := flag.NewFlagSet("fn invoke", flag.ExitOnError)
		data := fs.String("d", "{}", "JSON payload")
		_ = fs.Parse(rest[1:])
		result, err := a.services.Functions.Invoke(ctx, rest[0], json.RawMessage(*data))
		if err != nil {
			return err
		}
		return printJSON(result)
	case "jobs":
		if len(rest) != 1 {
			return fmt.Errorf("fn jobs requires a function id")
		}
		jobs, err := a.services.Functions.Jobs(ctx, rest[0])
		if err != nil {
			return err
		}
		return printJSON(jobs)
	case "metrics":
		if len(rest) != 1 {
			return fmt.Errorf("fn metrics requires a function id")
		}
		metrics, err := a.services.Functions.Metrics(ctx, rest[0])
		if err != nil {
			return err
		}
		return printJSON(metrics)
	case "watch":
		fs := flag.NewFlagSet("fn watch", flag.ExitOnError)
		workspaceID := fs.String("workspace", "", "workspace id")
		_ = fs.Parse(rest)
		if *workspaceID == "" {
			return fmt.Errorf("fn watch requires -workspace")
		}
		return a.watch(ctx, *workspaceID)
	default:
		return fmt.Errorf("unknown fn subcommand %q", sub)
	}
}

func (a *app) job(ctx context.Context, args []string) error {
	if len(args) != 2 || args[0] != "get" {
		return fmt.Errorf("usage: skyctl job get <id>")
	}
	job, err := a.services.Jobs.Get(ctx, args[1])
	if err != nil {
		return err
	}
	return printJSON(job)
}

// watch streams job events until interrupted. Only available against a real
// backend; the in-process mock has no event stream.
func (a *app) watch(ctx context.Context, workspaceID string) error {
	if a.cfg.Mode != "api" {
		return fmt.Errorf("fn watch requires api mode")
	}

	watcher := client.NewJobWatcher(a.cfg.APIBaseURL, a.session)
	events, err := watcher.Watch(ctx, workspaceID)
	if err != nil {
		return err
	}
	for ev := range events {
		if err := printJSON(ev); err != nil {
			return err
		}
	}
	return nil
}

func readSource(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read source from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read source file: %w", err)
	}
	return string(data), nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
