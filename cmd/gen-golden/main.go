package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/quillhtml"
)

func main() {
	root := "testdata"
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".json") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		fatalf("walk %s: %v", root, err)
	}
	if len(paths) == 0 {
		fatalf("no delta files found under %s", root)
	}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			fatalf("open %s: %v", path, err)
		}
		var out bytes.Buffer
		err = quillhtml.Render(quillhtml.RenderRequest{
			Reader: f,
			Writer: &out,
		})
		_ = f.Close()
		if err != nil {
			fatalf("render %s: %v", path, err)
		}
		goldenPath := goldenPath(root, path)
		if err := os.WriteFile(goldenPath, out.Bytes(), 0o644); err != nil {
			fatalf("write %s: %v", goldenPath, err)
		}
		fmt.Fprintf(os.Stdout, "wrote %s\n", goldenPath)
	}
}

func goldenPath(root string, deltaPath string) string {
	rel, err := filepath.Rel(root, deltaPath)
	if err != nil {
		rel = deltaPath
	}
	name := strings.TrimSuffix(rel, ".json")
	name = strings.ReplaceAll(filepath.ToSlash(name), "/", "__")
	return filepath.Join(root, name+".golden")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
