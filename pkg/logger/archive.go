package logger

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// archiveTimestampLayout is embedded in archive filenames at second
// resolution: <base>_<YYYYMMDD_HHMMSS>.gz
const archiveTimestampLayout = "20060102_150405"

const archiveSuffix = ".gz"

// ArchiveFile describes one rotated archive. CreatedAt is parsed from the
// filename, not taken from filesystem mtime, so it survives copy and backup
// operations that rewrite mtimes.
type ArchiveFile struct {
	Path       string    `json:"path"`
	SourceBase string    `json:"source_base"`
	CreatedAt  time.Time `json:"created_at"`
	Size       int64     `json:"size"`
}

// Archiver compresses filled log files into a retention-bounded archive
// directory. The zero value is not usable; use NewArchiver.
type Archiver struct {
	dir string
	now func() time.Time

	// onPruneWarning receives individual removal failures during Prune.
	onPruneWarning func(path string, err error)
}

// NewArchiver creates an archiver rooted at dir. warn may be nil.
func NewArchiver(dir string, warn func(path string, err error)) *Archiver {
	return &Archiver{dir: dir, now: time.Now, onPruneWarning: warn}
}

// Dir returns the archive directory.
func (a *Archiver) Dir() string {
	return a.dir
}

// ArchiveName returns the archive filename for basePath at time t.
func ArchiveName(basePath string, t time.Time) string {
	return fmt.Sprintf("%s_%s%s", filepath.Base(basePath), t.Format(archiveTimestampLayout), archiveSuffix)
}

// parseArchiveName extracts the source base name and embedded timestamp from
// an archive filename. A -N collision suffix after the timestamp is reported
// through parseArchiveSeq.
func parseArchiveName(name string) (base string, created time.Time, ok bool) {
	if !strings.HasSuffix(name, archiveSuffix) {
		return "", time.Time{}, false
	}
	stem := strings.TrimSuffix(name, archiveSuffix)
	if i := strings.LastIndex(stem, "-"); i > 0 {
		if _, err := strconv.Atoi(stem[i+1:]); err == nil {
			stem = stem[:i]
		}
	}
	// The timestamp is the final "YYYYMMDD_HHMMSS" segment, two underscore
	// fields long.
	i := strings.LastIndex(stem, "_")
	if i <= 0 {
		return "", time.Time{}, false
	}
	j := strings.LastIndex(stem[:i], "_")
	if j <= 0 {
		return "", time.Time{}, false
	}
	ts, err := time.ParseInLocation(archiveTimestampLayout, stem[j+1:], time.Local)
	if err != nil {
		return "", time.Time{}, false
	}
	return stem[:j], ts, true
}

// parseArchiveSeq returns the -N same-second disambiguator, or 0 when absent.
func parseArchiveSeq(name string) int {
	stem := strings.TrimSuffix(name, archiveSuffix)
	i := strings.LastIndex(stem, "-")
	if i <= 0 {
		return 0
	}
	seq, err := strconv.Atoi(stem[i+1:])
	if err != nil {
		return 0
	}
	return seq
}

// Rotate compresses the live file at livePath into the archive directory and
// truncates the live file to empty. The live file keeps existing at the same
// path so callers can continue appending to it. On any failure the live file
// is left untouched and a partial archive is removed.
func (a *Archiver) Rotate(livePath string) (*ArchiveFile, error) {
	src, err := os.Open(livePath)
	if err != nil {
		return nil, &ArchiveError{Op: "rotate", Path: livePath, Err: err}
	}
	defer src.Close()

	archivePath := a.nextArchivePath(livePath)
	dst, err := os.Create(archivePath)
	if err != nil {
		return nil, &ArchiveError{Op: "rotate", Path: archivePath, Err: err}
	}

	gz := gzip.NewWriter(dst)
	_, copyErr := io.Copy(gz, src)
	if err := gz.Close(); copyErr == nil {
		copyErr = err
	}
	if err := dst.Close(); copyErr == nil {
		copyErr = err
	}
	if copyErr != nil {
		os.Remove(archivePath)
		return nil, &ArchiveError{Op: "rotate", Path: archivePath, Err: copyErr}
	}

	// Truncate only after the archive is safely on disk.
	if err := os.Truncate(livePath, 0); err != nil {
		return nil, &ArchiveError{Op: "rotate", Path: livePath, Err: err}
	}

	info, err := os.Stat(archivePath)
	var size int64
	if err == nil {
		size = info.Size()
	}
	base, created, _ := parseArchiveName(filepath.Base(archivePath))
	return &ArchiveFile{
		Path:       archivePath,
		SourceBase: base,
		CreatedAt:  created,
		Size:       size,
	}, nil
}

// nextArchivePath picks a destination that does not collide with an archive
// produced earlier in the same second: app.log_20240101_120000.gz, then
// app.log_20240101_120000-1.gz, and so on.
func (a *Archiver) nextArchivePath(livePath string) string {
	name := ArchiveName(livePath, a.now())
	candidate := filepath.Join(a.dir, name)
	stem := strings.TrimSuffix(name, archiveSuffix)
	for n := 1; ; n++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = filepath.Join(a.dir, fmt.Sprintf("%s-%d%s", stem, n, archiveSuffix))
	}
}

// Prune removes archives for baseName beyond the keep newest entries and
// returns the paths it removed. Ordering is by modification time, newest
// first, with the filename (which embeds the rotation timestamp) as the
// tie-break for same-second rotations. Individual removal failures are
// reported through the warning callback and never abort the sweep. Archives
// whose names do not match baseName are never touched.
func (a *Archiver) Prune(baseName string, keep int) ([]string, error) {
	archives, err := a.List(baseName)
	if err != nil {
		return nil, err
	}
	if keep < 0 {
		keep = 0
	}
	if len(archives) <= keep {
		return nil, nil
	}

	var removed []string
	for _, archive := range archives[keep:] {
		if err := os.Remove(archive.Path); err != nil {
			a.warn(archive.Path, err)
			continue
		}
		removed = append(removed, archive.Path)
	}
	return removed, nil
}

// List returns the archives for baseName, newest first. Entries in the
// archive directory that do not start with baseName or end with .gz are
// ignored; they belong to other logs.
func (a *Archiver) List(baseName string) ([]ArchiveFile, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, &ArchiveError{Op: "list", Path: a.dir, Err: err}
	}

	type candidate struct {
		file    ArchiveFile
		modTime time.Time
		seq     int
		name    string
	}
	var candidates []candidate
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, baseName) || !strings.HasSuffix(name, archiveSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		_, created, _ := parseArchiveName(name)
		candidates = append(candidates, candidate{
			file: ArchiveFile{
				Path:       filepath.Join(a.dir, name),
				SourceBase: baseName,
				CreatedAt:  created,
				Size:       info.Size(),
			},
			modTime: info.ModTime(),
			seq:     parseArchiveSeq(name),
			name:    name,
		})
	}

	// Newest first by mtime; equal mtimes (same-second rotations) fall back to
	// the timestamp embedded in the filename, then the -N disambiguator, then
	// the raw name, keeping the order stable.
	sort.Slice(candidates, func(i, j int) bool {
		ci, cj := candidates[i], candidates[j]
		if !ci.modTime.Equal(cj.modTime) {
			return ci.modTime.After(cj.modTime)
		}
		if !ci.file.CreatedAt.Equal(cj.file.CreatedAt) {
			return ci.file.CreatedAt.After(cj.file.CreatedAt)
		}
		if ci.seq != cj.seq {
			return ci.seq > cj.seq
		}
		return ci.name > cj.name
	})

	archives := make([]ArchiveFile, len(candidates))
	for i, c := range candidates {
		archives[i] = c.file
	}
	return archives, nil
}

func (a *Archiver) warn(path string, err error) {
	if a.onPruneWarning != nil {
		a.onPruneWarning(path, err)
		return
	}
	fmt.Fprintf(os.Stderr, "warning: failed to remove old archive %s: %v\n", path, err)
}
