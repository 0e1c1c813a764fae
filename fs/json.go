package fs

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/cutil"
)

// SavePathKey is the property holding the destination of SaveProps.
const SavePathKey = "save_path"

// DumpJSON writes data as JSON indented with four spaces to file, adding a
// ".json" extension when missing and creating parent directories. Map keys
// are written in sorted order. The file is replaced atomically. It returns
// the written path.
func DumpJSON(file string, data any) (string, error) {
	if !strings.HasSuffix(file, ".json") {
		file += ".json"
	}

	file, err := CreatePath(file, false)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(data); err != nil {
		return "", cutil.Errorf(cutil.EINVALID, "failed to encode JSON: %v", err)
	}

	if err := writeFileAtomic(file, buf.Bytes()); err != nil {
		return "", err
	}
	return file, nil
}

// SaveProps writes props as JSON to the path stored under SavePathKey with
// ".json" appended. The props, including the save path, are written as-is.
func SaveProps(props map[string]any) (string, error) {
	savePath, ok := props[SavePathKey].(string)
	if !ok || savePath == "" {
		return "", cutil.Errorf(cutil.EINVALID, "props %s required", SavePathKey)
	}
	return DumpJSON(savePath+".json", props)
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
