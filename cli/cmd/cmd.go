package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/arrowconf/lang"
	"github.com/ardnew/arrowconf/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Streams are the standard streams used by commands.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type streamsKey struct{}

// DefaultStreams returns the process standard streams.
func DefaultStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// WithStreams returns a new context.Context containing the given streams.
// Nil fields fall back to the process standard streams.
func WithStreams(ctx context.Context, s Streams) context.Context {
	def := DefaultStreams()

	if s.In == nil {
		s.In = def.In
	}

	if s.Out == nil {
		s.Out = def.Out
	}

	if s.Err == nil {
		s.Err = def.Err
	}

	return context.WithValue(ctx, streamsKey{}, s)
}

// StreamsFrom returns the streams stored in ctx by [WithStreams], or the
// process standard streams.
func StreamsFrom(ctx context.Context) Streams {
	if s, ok := ctx.Value(streamsKey{}).(Streams); ok {
		return s
	}

	return DefaultStreams()
}

// Settings are the global flags shared by all commands.
type Settings struct {
	// Strict turns reported failures into a non-zero exit status.
	Strict bool
	// MaxDepth bounds list nesting. Zero selects [lang.DefaultMaxDepth].
	MaxDepth int
}

type settingsKey struct{}

// WithSettings returns a new context.Context containing the given settings.
func WithSettings(ctx context.Context, s Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

func settingsFrom(ctx context.Context) Settings {
	s, _ := ctx.Value(settingsKey{}).(Settings)

	return s
}

// langOptions returns the interpreter options selected by ctx.
func langOptions(ctx context.Context) []lang.Option {
	return []lang.Option{
		lang.WithMaxDepth(settingsFrom(ctx).MaxDepth),
		lang.WithLogger(log.Default()),
	}
}

type (
	sourceFilesKey struct{}
	sourceFiles    struct {
		paths    []string
		files    []*os.File
		stdin    io.Reader
		hasStdin bool
		reader   io.Reader
	}

	// SourceFiles reads the concatenation of all source inputs. Each input
	// is terminated by a newline so that the last line of one file never
	// joins the first line of the next.
	SourceFiles interface {
		IsZero() bool
		Stdin() io.Reader
		io.ReadCloser
	}
)

// IsZero reports whether there are no source files.
func (s *sourceFiles) IsZero() bool { return len(s.paths) == 0 && !s.hasStdin }

// Stdin returns the standard input stream if stdin was included as a source,
// or nil otherwise.
func (s *sourceFiles) Stdin() io.Reader {
	if s.hasStdin {
		return s.stdin
	}

	return nil
}

// Read implements io.Reader by reading from all source files in order,
// followed by stdin if present. Files are opened on the first call.
func (s *sourceFiles) Read(p []byte) (n int, err error) {
	if s.reader == nil {
		readers := make([]io.Reader, 0, 2*len(s.paths)+2)

		for _, path := range s.paths {
			f, err := os.Open(path)
			if err != nil {
				return 0, err
			}

			s.files = append(s.files, f)
			readers = append(readers, f, strings.NewReader("\n"))
		}

		if s.hasStdin {
			readers = append(readers, s.stdin)
		}

		s.reader = io.MultiReader(readers...)
	}

	return s.reader.Read(p)
}

// Close closes every opened source file. Stdin is left open.
func (s *sourceFiles) Close() error {
	errs := make([]error, 0, len(s.files))

	for _, f := range s.files {
		errs = append(errs, f.Close())
	}

	s.files = nil

	return errors.Join(errs...)
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithSourceFiles returns a new context.Context containing a [SourceFiles]
// that reads from the given source files. No file is opened until the
// first read.
//
// Readers are deduplicated by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-", and any path naming the same file as stdin,
// are replaced with a single stdin reader placed last. Stdin is taken from
// the streams stored in ctx.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(
		ctx,
		sourceFilesKey{},
		buildSourceFiles(StreamsFrom(ctx).In, sources),
	)
}

func buildSourceFiles(stdin io.Reader, sources []string) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	srcs := sourceFiles{
		paths: make([]string, 0, len(sources)),
		stdin: stdin,
	}

	seen := make(map[fileKey]struct{})

	var (
		stdinKey fileKey
		stdinOK  bool
	)

	if f, ok := stdin.(*os.File); ok {
		if info, err := f.Stat(); err == nil {
			stdinKey, stdinOK = makeFileKey(info)
		}
	}

	for _, src := range sources {
		if src == stdinSource {
			srcs.hasStdin = true

			continue
		}

		key, ok := uniqueFileKey(src, seen)
		if !ok {
			continue
		}

		if stdinOK && key == stdinKey {
			srcs.hasStdin = true

			continue
		}

		srcs.paths = append(srcs.paths, src)
	}

	if srcs.IsZero() {
		return nil
	}

	return &srcs
}

// uniqueFileKey resolves path and returns its file key if it hasn't been seen
// before, recording it in seen.
func uniqueFileKey(path string, seen map[fileKey]struct{}) (fileKey, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return fileKey{}, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return fileKey{}, false
	}

	if _, exists := seen[key]; exists {
		return fileKey{}, false
	}

	seen[key] = struct{}{}

	return key, true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// sourceFilesFrom retrieves the SourceFiles stored in ctx by WithSourceFiles.
// Returns nil if none was stored.
func sourceFilesFrom(ctx context.Context) SourceFiles {
	r, _ := ctx.Value(sourceFilesKey{}).(SourceFiles)

	return r
}

// openSource returns the configuration input selected by ctx: the source
// files if any were given, else the standard input stream.
func openSource(ctx context.Context) io.ReadCloser {
	if src := sourceFilesFrom(ctx); src != nil && !src.IsZero() {
		return src
	}

	return io.NopCloser(StreamsFrom(ctx).In)
}

// parseSource reads and evaluates the configuration input selected by ctx.
func parseSource(ctx context.Context) (*lang.Mapping, error) {
	src := openSource(ctx)
	defer src.Close()

	return lang.ParseReader(ctx, src, langOptions(ctx)...)
}
