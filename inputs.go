package aiornot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension lists used by the directory batch helpers.
var (
	ImageExtensions = []string{"jpg", "jpeg", "png", "webp", "heic", "heif", "tiff", "gif", "bmp"}
	VideoExtensions = []string{"mp4", "mov", "avi", "mkv", "webm", "m4v"}
	AudioExtensions = []string{"mp3", "wav", "flac", "m4a", "ogg", "aac", "wma"}
)

// CollectDirectory gathers files under dir whose extension matches one of
// extensions, sorted by path. Fails with *FileError when dir is not a
// directory.
func CollectDirectory(dir string, extensions []string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, &FileError{Path: dir, Err: errors.New("directory not found")}
	}

	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		wanted["."+strings.ToLower(ext)] = true
	}

	var files []string
	if recursive {
		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && wanted[strings.ToLower(filepath.Ext(path))] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory: %w", err)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory: %w", err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && wanted[strings.ToLower(filepath.Ext(entry.Name()))] {
				files = append(files, filepath.Join(dir, entry.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// CSVOptions configures how file paths are read out of a CSV file.
type CSVOptions struct {
	// Key is the column holding the file path. Defaults to "file_path".
	Key string
	// BaseDir, if set, is prepended to every path from the CSV.
	BaseDir string
}

// CollectCSV reads the file paths named in the Key column of a CSV file.
func CollectCSV(path string, opts CSVOptions) ([]string, error) {
	key := opts.Key
	if key == "" {
		key = "file_path"
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: errors.New("file not found")}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	col := -1
	for i, name := range header {
		if name == key {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("CSV column %q not found; available: %v", key, header)
	}

	var files []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		p := record[col]
		if opts.BaseDir != "" {
			p = filepath.Join(opts.BaseDir, p)
		}
		files = append(files, p)
	}

	return files, nil
}

// readInput resolves an Item into bytes, reading files fully into memory. The
// filename is carried for multipart uploads; in-memory data falls back to
// fallbackName.
func readInput(item Item, fallbackName string) ([]byte, string, error) {
	if item.Path == "" {
		return item.Data, fallbackName, nil
	}
	if _, err := os.Stat(item.Path); err != nil {
		return nil, "", &FileError{Path: item.Path, Err: errors.New("file not found")}
	}
	data, err := os.ReadFile(item.Path)
	if err != nil {
		return nil, "", &FileError{Path: item.Path, Err: err}
	}
	return data, filepath.Base(item.Path), nil
}
