package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/target/mmk-rag-console/internal/bootstrap"
	"github.com/target/mmk-rag-console/internal/domain/rag"
	apperrors "github.com/target/mmk-rag-console/internal/errors"
	"github.com/target/mmk-rag-console/internal/render"
	"github.com/target/mmk-rag-console/internal/router"
)

type outputOptions struct {
	Format string
	Select string
}

func addOutputFlags(fs *flag.FlagSet, opts *outputOptions) {
	fs.StringVar(&opts.Format, "o", "json", "Output format: json or yaml")
	fs.StringVar(&opts.Select, "select", "", "JMESPath expression applied to the response before printing")
}

// printer validates the output flags up front so a typo fails before any request is sent.
func (o outputOptions) printer(w io.Writer) (render.Printer, error) {
	format, err := render.ParseFormat(o.Format)
	if err != nil {
		return render.Printer{}, err
	}
	p := render.Printer{Out: w, Format: format, Select: o.Select}
	if err := p.Validate(); err != nil {
		return render.Printer{}, err
	}
	return p, nil
}

func newFlagSet(cmdCtx *commandContext, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Stderr)
	return fs
}

// enter navigates to route. When the guard sends the operator to login, the
// operator is prompted, signed in, and navigation is retried once.
func (cmdCtx *commandContext) enter(route string) error {
	nav := cmdCtx.Console.Navigator
	d, err := nav.Navigate(cmdCtx.Ctx, route)
	if err != nil {
		return err
	}
	if d.Action == router.Allow {
		return nil
	}
	if d.Target.Name != router.RouteLogin {
		return fmt.Errorf("navigation to %q redirected to %q", route, d.Target.Name)
	}

	if cmdCtx.Prompt == nil {
		return errNotInteractive
	}
	creds, err := cmdCtx.Prompt(cmdCtx.Ctx, "")
	if err != nil {
		return err
	}
	if _, err := cmdCtx.Console.Auth.Login(cmdCtx.Ctx, creds.Identifier, creds.Password); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	d, err = nav.Navigate(cmdCtx.Ctx, route)
	if err != nil {
		return err
	}
	if d.Action != router.Allow {
		return fmt.Errorf("still redirected to %q after login", d.Target.Name)
	}
	return nil
}

type loginOptions struct {
	Identifier    string
	PasswordStdin bool
	Output        outputOptions
}

func parseLoginFlags(cmdCtx *commandContext, args []string) (loginOptions, error) {
	fs := newFlagSet(cmdCtx, "login")
	var opts loginOptions
	fs.StringVar(&opts.Identifier, "identifier", "", "Account identifier (prompted when omitted)")
	fs.BoolVar(&opts.PasswordStdin, "password-stdin", false, "Read the password from the first line of stdin")
	addOutputFlags(fs, &opts.Output)
	if err := fs.Parse(args); err != nil {
		return loginOptions{}, err
	}
	if opts.PasswordStdin && strings.TrimSpace(opts.Identifier) == "" {
		return loginOptions{}, errors.New("--password-stdin requires --identifier")
	}
	return opts, nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	opts, err := parseLoginFlags(cmdCtx, args)
	if err != nil {
		return err
	}
	out, err := opts.Output.printer(cmdCtx.Stdout)
	if err != nil {
		return err
	}

	d, err := cmdCtx.Console.Navigator.Navigate(cmdCtx.Ctx, router.RouteLogin)
	if err != nil {
		return err
	}
	if d.Action == router.Redirect {
		if err := writef(cmdCtx.Stderr, "Already signed in for session %s; run `ragconsole logout` to switch accounts.\n",
			cmdCtx.Console.SessionID); err != nil {
			return err
		}
		return out.Print(cmdCtx.Console.Auth.Status(cmdCtx.Ctx))
	}

	identifier, password := strings.TrimSpace(opts.Identifier), ""
	switch {
	case opts.PasswordStdin:
		if password, err = readPasswordLine(cmdCtx.Stdin); err != nil {
			return err
		}
	case cmdCtx.Prompt != nil:
		creds, err := cmdCtx.Prompt(cmdCtx.Ctx, identifier)
		if err != nil {
			return err
		}
		identifier, password = creds.Identifier, creds.Password
	default:
		return errors.New("stdin is not a terminal; use --identifier with --password-stdin")
	}

	if _, err := cmdCtx.Console.Auth.Login(cmdCtx.Ctx, identifier, password); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if _, err := cmdCtx.Console.Navigator.Navigate(cmdCtx.Ctx, router.RouteHome); err != nil {
		return err
	}
	return out.Print(cmdCtx.Console.Auth.Status(cmdCtx.Ctx))
}

func runLogout(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "logout")
	var output outputOptions
	addOutputFlags(fs, &output)
	if err := fs.Parse(args); err != nil {
		return err
	}
	out, err := output.printer(cmdCtx.Stdout)
	if err != nil {
		return err
	}

	cmdCtx.Console.Auth.Logout(cmdCtx.Ctx)
	return out.Print(cmdCtx.Console.Auth.Status(cmdCtx.Ctx))
}

func runStatus(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "status")
	var output outputOptions
	addOutputFlags(fs, &output)
	if err := fs.Parse(args); err != nil {
		return err
	}
	out, err := output.printer(cmdCtx.Stdout)
	if err != nil {
		return err
	}
	return out.Print(cmdCtx.Console.Auth.Status(cmdCtx.Ctx))
}

func runUpload(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "upload")
	var (
		output outputOptions
		quiet  bool
	)
	addOutputFlags(fs, &output)
	fs.BoolVar(&quiet, "quiet", false, "Do not report upload progress")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("upload requires at least one file")
	}
	out, err := output.printer(cmdCtx.Stdout)
	if err != nil {
		return err
	}

	if err := cmdCtx.enter(routeUpload); err != nil {
		return err
	}

	files, closeFiles, err := openFiles(fs.Args())
	if err != nil {
		return err
	}
	defer closeFiles()

	var onProgress func(sent, total int64)
	if !quiet {
		p := newProgressPrinter(cmdCtx.Stderr)
		defer p.done()
		onProgress = p.report
	}

	resp, err := cmdCtx.Console.API.UploadDocuments(cmdCtx.Ctx, files, onProgress)
	if err != nil {
		return err
	}
	return out.Print(resp)
}

func openFiles(paths []string) ([]rag.File, func(), error) {
	files := make([]rag.File, 0, len(paths))
	opened := make([]*os.File, 0, len(paths))
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("open %s: %w", path, err)
		}
		opened = append(opened, f)
		files = append(files, rag.File{Name: filepath.Base(path), Content: f})
	}
	return files, closeAll, nil
}

// progressPrinter redraws one status line per whole-percent change.
type progressPrinter struct {
	w    io.Writer
	last int
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{w: w, last: -1}
}

func (p *progressPrinter) report(sent, total int64) {
	pct := 100
	if total > 0 {
		pct = int(sent * 100 / total)
	}
	if pct == p.last {
		return
	}
	p.last = pct
	_ = writef(p.w, "\rUploading... %3d%% (%d/%d bytes)", pct, sent, total)
}

func (p *progressPrinter) done() {
	if p.last >= 0 {
		_ = writeln(p.w)
	}
}

func runProcess(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "process")
	var output outputOptions
	addOutputFlags(fs, &output)
	if err := fs.Parse(args); err != nil {
		return err
	}
	out, err := output.printer(cmdCtx.Stdout)
	if err != nil {
		return err
	}

	if err := cmdCtx.enter(routeProcess); err != nil {
		return err
	}
	resp, err := cmdCtx.Console.API.ProcessDocuments(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	return out.Print(resp)
}

func runQuery(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "query")
	var output outputOptions
	addOutputFlags(fs, &output)
	if err := fs.Parse(args); err != nil {
		return err
	}
	question := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if question == "" {
		return errors.New("query requires a question")
	}
	out, err := output.printer(cmdCtx.Stdout)
	if err != nil {
		return err
	}

	if err := cmdCtx.enter(routeQuery); err != nil {
		return err
	}
	resp, err := cmdCtx.Console.API.QueryRAG(cmdCtx.Ctx, question)
	if err != nil {
		return err
	}
	return out.Print(resp)
}

func runReset(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "reset")
	var (
		output outputOptions
		yes    bool
	)
	addOutputFlags(fs, &output)
	fs.BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	out, err := output.printer(cmdCtx.Stdout)
	if err != nil {
		return err
	}

	if err := cmdCtx.enter(routeReset); err != nil {
		return err
	}
	if !yes {
		if err := confirmReset(cmdCtx); err != nil {
			return err
		}
	}
	resp, err := cmdCtx.Console.API.ResetDocuments(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	return out.Print(resp)
}

func confirmReset(cmdCtx *commandContext) error {
	if err := writef(cmdCtx.Stderr, "This deletes every uploaded document and the index at %s.\nContinue? [y/N]: ",
		cmdCtx.Console.API.BaseURL()); err != nil {
		return fmt.Errorf("print confirmation prompt: %w", err)
	}
	resp, err := bufio.NewReader(cmdCtx.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return errors.New("aborted by user")
	}
	resp = strings.ToLower(strings.TrimSpace(resp))
	if resp == "y" || resp == "yes" {
		return nil
	}
	return errors.New("aborted by user")
}

func runSession(cmdCtx *commandContext, args []string) error {
	if len(args) == 0 || args[0] != "new" {
		return errors.New("usage: ragconsole session new [--export]")
	}
	fs := newFlagSet(cmdCtx, "session new")
	var export bool
	fs.BoolVar(&export, "export", false, "Print a shell export statement")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	id := bootstrap.NewSessionID()
	if export {
		return writef(cmdCtx.Stdout, "export RAG_SESSION_ID=%s\n", id)
	}
	return writeln(cmdCtx.Stdout, id)
}

// errorHint turns common failures into a next step for the operator.
func errorHint(err error) string {
	switch {
	case apperrors.IsAuthRejected(err):
		return "The backend rejected the credentials. Run `ragconsole logout` and then `ragconsole login`."
	case apperrors.IsTransport(err):
		return "Could not reach the backend. Check API_BASE_URL."
	default:
		return ""
	}
}
