package discovery

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude are the essay patterns searched when none are configured.
var DefaultInclude = []string{"**/*.md", "**/*.txt"}

// binarySniffLen is how many leading bytes are checked for NUL.
const binarySniffLen = 512

// File represents a discovered essay file with its contents.
type File struct {
	Path     string
	RelPath  string
	Size     int64
	Contents string
}

// ValidateFilePath performs comprehensive validation of a file path for scoring.
//
// This function checks all preconditions required before scoring a file:
//   - File exists
//   - Path is a file (not directory)
//   - File is not empty
//   - File is not binary
//
// Symlinks are resolved to their target.
func ValidateFilePath(path string) (absPath string, err error) {
	absPath, err = filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}

	info, err := os.Lstat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", absPath)
		}
		if os.IsPermission(err) {
			return "", fmt.Errorf("permission denied: %s", absPath)
		}
		return "", fmt.Errorf("cannot access file: %s: %w", absPath, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		realPath, evalErr := filepath.EvalSymlinks(absPath)
		if evalErr != nil {
			return "", fmt.Errorf("cannot resolve symlink %s: %w", absPath, evalErr)
		}
		absPath = realPath
		info, err = os.Stat(absPath)
		if err != nil {
			return "", fmt.Errorf("symlink target inaccessible: %s: %w", absPath, err)
		}
	}

	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", absPath)
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("file is empty: %s", absPath)
	}

	binary, err := isBinary(absPath)
	if err != nil {
		return "", fmt.Errorf("cannot read file: %s: %w", absPath, err)
	}
	if binary {
		return "", fmt.Errorf("file appears to be binary, not text: %s", absPath)
	}

	return absPath, nil
}

func isBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, binarySniffLen)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return false, err
	}
	return bytes.IndexByte(buf[:n], 0) >= 0, nil
}

// FileDiscovery finds essay files under a root directory.
type FileDiscovery struct {
	rootPath       string
	include        []string
	exclude        []string
	followSymlinks bool
}

// NewFileDiscovery creates a FileDiscovery. Empty include falls back to
// DefaultInclude. Patterns are matched against slash-separated paths relative
// to rootPath.
func NewFileDiscovery(rootPath string, include, exclude []string, followSymlinks bool) *FileDiscovery {
	if len(include) == 0 {
		include = DefaultInclude
	}
	return &FileDiscovery{
		rootPath:       rootPath,
		include:        include,
		exclude:        exclude,
		followSymlinks: followSymlinks,
	}
}

// DiscoverFiles returns every non-empty text file matching an include pattern
// and no exclude pattern, sorted by relative path.
func (fd *FileDiscovery) DiscoverFiles() ([]File, error) {
	for _, p := range append(append([]string{}, fd.include...), fd.exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
	}

	seen := make(map[string]bool)
	var files []File
	for _, pattern := range fd.include {
		matches, err := doublestar.Glob(os.DirFS(fd.rootPath), pattern)
		if err != nil {
			return nil, fmt.Errorf("error evaluating pattern %s: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] || fd.excluded(match) {
				continue
			}
			seen[match] = true
			if f, ok := fd.processMatch(match); ok {
				files = append(files, f)
			}
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

func (fd *FileDiscovery) excluded(relPath string) bool {
	for _, pattern := range fd.exclude {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
	}
	return false
}

// processMatch converts a glob match into a File, returning false if the match should be skipped.
func (fd *FileDiscovery) processMatch(match string) (File, bool) {
	fullPath := filepath.Join(fd.rootPath, filepath.FromSlash(match))

	info, err := os.Lstat(fullPath)
	if err != nil {
		return File{}, false
	}
	if info.Mode()&os.ModeSymlink != 0 {
		resolvedInfo, ok := fd.resolveSymlink(fullPath)
		if !ok {
			return File{}, false
		}
		info = resolvedInfo
	}
	if info.IsDir() || info.Size() == 0 {
		return File{}, false
	}

	contents, err := os.ReadFile(fullPath)
	if err != nil {
		return File{}, false
	}
	if bytes.IndexByte(contents[:min(len(contents), binarySniffLen)], 0) >= 0 {
		return File{}, false
	}

	return File{
		Path:     fullPath,
		RelPath:  match,
		Size:     info.Size(),
		Contents: string(contents),
	}, true
}

// resolveSymlink follows a symlink if configured and the target stays inside
// the root.
func (fd *FileDiscovery) resolveSymlink(fullPath string) (os.FileInfo, bool) {
	if !fd.followSymlinks {
		return nil, false
	}

	realPath, err := filepath.EvalSymlinks(fullPath)
	if err != nil {
		return nil, false
	}
	root, err := filepath.EvalSymlinks(fd.rootPath)
	if err != nil {
		return nil, false
	}
	rel, err := filepath.Rel(root, realPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, false
	}

	info, err := os.Stat(realPath)
	if err != nil {
		return nil, false
	}
	return info, true
}

// ReadFile validates path and reads it as a single essay file.
func ReadFile(path string) (File, error) {
	absPath, err := ValidateFilePath(path)
	if err != nil {
		return File{}, err
	}
	contents, err := os.ReadFile(absPath)
	if err != nil {
		return File{}, fmt.Errorf("reading %s: %w", absPath, err)
	}
	return File{
		Path:     absPath,
		RelPath:  path,
		Size:     int64(len(contents)),
		Contents: string(contents),
	}, nil
}
