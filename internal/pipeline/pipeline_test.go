package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/playlistfix/internal/config"
	"github.com/backmassage/playlistfix/internal/logging"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	log, err := logging.New(config.ColorNever, "")
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	return log
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"b.m3u",
		"a.m3u8",
		"notes.txt",
		"UPPER.M3U", // extension match is case-sensitive
		"archive.m3u.bak",
	} {
		touch(t, filepath.Join(dir, name))
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.m3u"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.m3u8"),
		filepath.Join(dir, "b.m3u"),
	}
	if len(files) != len(want) {
		t.Fatalf("Discover returned %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestDiscover_Errors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	touch(t, file)

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing directory", filepath.Join(dir, "nope"), ErrNotFound},
		{"regular file", file, ErrNotADirectory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Discover(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Discover(%q) error = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestDiscover_EmptyDirIsNotAnError(t *testing.T) {
	files, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("Discover returned %v, want no files", files)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeInput := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	writeInput("rock.m3u", "#EXTINF:180,Artist - Song\nC:\\Music\\Rock\\song.mp3\n")
	writeInput("jazz.m3u8", "C:\\Music\\Jazz\\a.mp3\nc:\\music\\Jazz\\b.mp3\n")
	writeInput("README.txt", "not a playlist\n")

	cfg := config.DefaultConfig()
	cfg.InputDir = dir
	cfg.SourcePrefix = "C:/Music/"
	cfg.TargetPrefix = "../"
	cfg.ResolveOutputDir()

	rep := Run(context.Background(), &cfg, testLogger(t))

	if rep.Total != 2 || rep.Converted != 2 || rep.Failed != 0 {
		t.Fatalf("report = %+v, want 2 total, 2 converted, 0 failed", rep)
	}
	if rep.Tracks != 3 {
		t.Errorf("Tracks = %d, want 3", rep.Tracks)
	}
	if rep.Interrupted {
		t.Error("Interrupted = true for a normal run")
	}

	got, err := os.ReadFile(filepath.Join(cfg.OutputDir, "rock.m3u"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "#EXTINF:180,Artist - Song\n../Rock/song.mp3\n"
	if string(got) != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	// Input files stay untouched.
	in, err := os.ReadFile(filepath.Join(dir, "rock.m3u"))
	if err != nil {
		t.Fatalf("read input: %v", err)
	}
	if string(in) != "#EXTINF:180,Artist - Song\nC:\\Music\\Rock\\song.mp3\n" {
		t.Errorf("input file was modified: %q", in)
	}

	// No stray temporary files.
	entries, err := os.ReadDir(cfg.OutputDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestRun_Idempotent(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "p.m3u"), []byte("#EXTM3U\r\nC:\\Music\\a.mp3\r\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.InputDir = dir
	cfg.SourcePrefix = "C:/Music/"
	cfg.TargetPrefix = "../"
	cfg.ResolveOutputDir()
	log := testLogger(t)

	Run(context.Background(), &cfg, log)
	first, err := os.ReadFile(filepath.Join(cfg.OutputDir, "p.m3u"))
	if err != nil {
		t.Fatalf("read first output: %v", err)
	}

	Run(context.Background(), &cfg, log)
	second, err := os.ReadFile(filepath.Join(cfg.OutputDir, "p.m3u"))
	if err != nil {
		t.Fatalf("read second output: %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("second run changed output: %q -> %q", first, second)
	}
}

func TestRun_UnreadableFileIsIsolated(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "good.m3u"), []byte("C:\\Music\\a.mp3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.m3u"), []byte("C:\\Music\\b.mp3\n"), 0o000); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.InputDir = dir
	cfg.SourcePrefix = "C:/Music/"
	cfg.TargetPrefix = "../"
	cfg.ResolveOutputDir()

	rep := Run(context.Background(), &cfg, testLogger(t))

	if rep.Converted != 1 || rep.Failed != 1 {
		t.Fatalf("report = %+v, want 1 converted, 1 failed", rep)
	}
	if len(rep.Failures) != 1 || rep.Failures[0].Name != "bad.m3u" {
		t.Fatalf("Failures = %+v, want one entry for bad.m3u", rep.Failures)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "good.m3u")); err != nil {
		t.Errorf("good.m3u was not converted: %v", err)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "p.m3u"))

	cfg := config.DefaultConfig()
	cfg.InputDir = dir
	cfg.SourcePrefix = "C:/Music/"
	cfg.ResolveOutputDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep := Run(ctx, &cfg, testLogger(t))
	if !rep.Interrupted {
		t.Error("Interrupted = false for cancelled context")
	}
	if rep.Converted != 0 {
		t.Errorf("Converted = %d, want 0", rep.Converted)
	}
}

func TestFailureReason(t *testing.T) {
	permErr := &os.PathError{Op: "open", Path: "x.m3u", Err: os.ErrPermission}
	if got := failureReason(permErr); got != "permission denied: open x.m3u: permission denied" {
		t.Errorf("failureReason(permission) = %q", got)
	}
	if got := failureReason(errors.New("boom")); got != "error: boom" {
		t.Errorf("failureReason(generic) = %q", got)
	}
}
