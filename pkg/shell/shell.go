// Package shell implements the command surface of the drive terminal:
// parsing a command line, dispatching it to a handler, and rendering
// listings and trees of the remote hierarchy.
//
// The shell is stateless between commands. Everything a command needs to
// remember (the working folder, the clipboard) is read from and written
// back to the session store within a single Execute call.
package shell

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/math-u-t/Drive-CLI/internal/logger"
	"github.com/math-u-t/Drive-CLI/pkg/metrics"
	"github.com/math-u-t/Drive-CLI/pkg/store/content"
	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
	"github.com/math-u-t/Drive-CLI/pkg/store/session"
)

// Options tunes shell behavior. Zero values select the defaults noted on
// each field.
type Options struct {
	// BaseURL is the external URL prefix used when rendering node URLs
	// (url, open, stat, share --link). Default "https://drive.example.com".
	BaseURL string

	// TreeFileLimit caps the number of files rendered per folder in the
	// tree view. Default 50.
	TreeFileLimit int

	// CatMaxBytes caps the content size cat will print. Default 64 KiB.
	CatMaxBytes uint64

	// Locale selects the collation used to sort listings, as a BCP 47
	// tag. Default "en".
	Locale string
}

const (
	defaultBaseURL       = "https://drive.example.com"
	defaultTreeFileLimit = 50
	defaultCatMaxBytes   = 64 * 1024
	defaultLocale        = "en"
)

type handlerFunc func(ctx context.Context, sessionID string, args []string) Result

// Shell routes command lines to handlers over a drive store, a content
// store, and a session store.
type Shell struct {
	drive    drive.Store
	content  content.Store
	sessions session.Store
	metrics  metrics.CommandMetrics
	opts     Options
	collator *collate.Collator
	handlers map[string]handlerFunc
}

// New creates a shell over the given stores. metricsSink may be nil, in
// which case command metrics are discarded.
func New(driveStore drive.Store, contentStore content.Store, sessionStore session.Store, metricsSink metrics.CommandMetrics, opts Options) *Shell {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.TreeFileLimit == 0 {
		opts.TreeFileLimit = defaultTreeFileLimit
	}
	if opts.CatMaxBytes == 0 {
		opts.CatMaxBytes = defaultCatMaxBytes
	}
	if opts.Locale == "" {
		opts.Locale = defaultLocale
	}
	if metricsSink == nil {
		metricsSink = metrics.NewNoopCommandMetrics()
	}

	sh := &Shell{
		drive:    driveStore,
		content:  contentStore,
		sessions: sessionStore,
		metrics:  metricsSink,
		opts:     opts,
		collator: collate.New(language.Make(opts.Locale)),
	}

	// Aliases map to the same handler and resolve at this single
	// lookup site.
	sh.handlers = map[string]handlerFunc{
		"ls":     sh.cmdLs,
		"pwd":    sh.cmdPwd,
		"cd":     sh.cmdCd,
		"find":   sh.cmdFind,
		"new":    sh.cmdNew,
		"touch":  sh.cmdTouch,
		"mkdir":  sh.cmdMkdir,
		"rn":     sh.cmdRename,
		"del":    sh.cmdDelete,
		"rm":     sh.cmdDelete,
		"mv":     sh.cmdMove,
		"cp":     sh.cmdCopyTo,
		"copy":   sh.cmdCopy,
		"paste":  sh.cmdPaste,
		"stat":   sh.cmdStat,
		"url":    sh.cmdURL,
		"open":   sh.cmdOpen,
		"cat":    sh.cmdCat,
		"share":  sh.cmdShare,
		"trash":  sh.cmdTrash,
		"clear":  sh.cmdClear,
		"reload": sh.cmdReload,
		"exit":   sh.cmdExit,
		"color":  sh.cmdColor,
		"clone":  sh.cmdClone,
		"help":   sh.cmdHelp,
	}
	return sh
}

// Execute runs one command line for the given session and returns its
// result. Faults never propagate to the caller: handler panics and store
// failures are converted into failure results at this boundary.
func (sh *Shell) Execute(ctx context.Context, sessionID, commandLine string) (result Result) {
	verb := "unknown"
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in command handler %q: %v", verb, r)
			result = failf("System error: %v", r)
		}
		sh.metrics.ObserveCommand(verb, result.Success, time.Since(start))
	}()

	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return fail("Error: Empty command")
	}

	verb = strings.ToLower(fields[0])
	args := fields[1:]

	handler, known := sh.handlers[verb]
	if !known {
		v := verb
		verb = "unknown"
		return failf("Error: Unknown command '%s'. Type 'help' for available commands.", v)
	}

	logger.Debug("session %s: %s %v", sessionID, verb, args)
	return handler(ctx, sessionID, args)
}
