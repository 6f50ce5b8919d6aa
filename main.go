// hml runs a script of map commands against a fresh swap-back map and
// prints one result per command.
//
//	hml [-config hml.jsonc] [-watch] [-keep-going] script.hml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/rgolang/hml/ast"
	"github.com/rgolang/hml/config"
	"github.com/rgolang/hml/interp"
	"github.com/rgolang/hml/omap"
)

type options struct {
	configPath string
	watch      bool
	keepGoing  bool
	script     string
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	fl := flag.NewFlagSet("hml", flag.ContinueOnError)
	fl.SetOutput(stderr)
	fl.StringVar(&opts.configPath, "config", "", "path to a JSON config, comments allowed")
	fl.BoolVar(&opts.watch, "watch", false, "run the script again whenever it changes")
	fl.BoolVar(&opts.keepGoing, "keep-going", false, "report failed commands and continue")
	if err := fl.Parse(args); err != nil {
		return options{}, err
	}
	if fl.NArg() != 1 {
		return options{}, errors.New("usage: hml [-config file] [-watch] [-keep-going] script.hml")
	}
	opts.script = fl.Arg(0)
	return opts, nil
}

func runScript(fs afero.Fs, path string, cfg config.Config, w io.Writer) error {
	f, err := fs.Open(path)
	if err != nil {
		return errors.Wrap(err, "open script")
	}
	defer f.Close()

	cmds, err := ast.Parse(f, filepath.Base(path))
	if err != nil {
		return errors.Wrap(err, "parse")
	}

	m := omap.New[string, string](cfg.Capacity)
	defer m.Release()

	in := interp.New(m, w)
	in.ContinueOnError = cfg.KeepGoing
	return in.Run(cmds)
}

// setup parses the command line and loads the config it names.
func setup(args []string, fs afero.Fs, stderr io.Writer) (options, config.Config, error) {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return opts, config.Config{}, err
	}
	cfg, err := config.Load(fs, opts.configPath)
	if err != nil {
		return opts, cfg, err
	}
	if opts.keepGoing {
		cfg.KeepGoing = true
	}
	return opts, cfg, nil
}

// watch reruns the script each time it is written until ctx is done.
func watch(ctx context.Context, fs afero.Fs, path string, cfg config.Config, w io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its directory.
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(err, "resolve script path")
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrap(err, "watch script")
	}
	log.Printf("watching %s", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != abs || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.Printf("%s changed, running again", path)
			fmt.Fprintln(w, "---")
			if err := runScript(fs, path, cfg, w); err != nil {
				log.Printf("run: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		}
	}
}

func main() {
	fs := afero.NewOsFs()
	opts, cfg, err := setup(os.Args[1:], fs, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	omap.SetDebug(cfg.Debug)

	err = runScript(fs, opts.script, cfg, os.Stdout)
	if !opts.watch {
		if err != nil {
			log.Fatal(err)
		}
		return
	}
	if err != nil {
		log.Printf("run: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := watch(ctx, fs, opts.script, cfg, os.Stdout); err != nil {
		log.Fatalf("watch: %v", err)
	}
}
