package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	fset := token.NewFileSet()
	root := filepath.Join("..", "modules")
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		slash := filepath.ToSlash(path)
		module := moduleName(slash)
		layer := detectLayer(slash)
		if module == "" || layer == "" {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if !strings.Contains(importPath, "readtrack/internal/modules/") {
				continue
			}
			if violatesLayerRule(module, layer, importPath) {
				t.Fatalf("forbidden import in %s (%s): %s", slash, layer, importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk modules: %v", err)
	}
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

// hasSegment matches a layer directory whether or not the import path ends
// with it.
func hasSegment(path, segment string) bool {
	return strings.Contains(path+"/", "/"+segment+"/")
}

func isPortIn(path string) bool {
	return hasSegment(path, "port/in")
}

func isDTO(path string) bool {
	return hasSegment(path, "dto")
}

func violatesLayerRule(module, layer, importPath string) bool {
	sameModule := strings.Contains(importPath, "/internal/modules/"+module+"/")
	if !sameModule {
		if hasSegment(importPath, "service") || hasSegment(importPath, "adapter") || hasSegment(importPath, "usecase") {
			return true
		}
		if isPortIn(importPath) || isDTO(importPath) {
			return false
		}
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return hasSegment(importPath, "adapter")
	case "service":
		return hasSegment(importPath, "adapter") || hasSegment(importPath, "usecase")
	case "domain":
		return !sameModule || hasSegment(importPath, "adapter") || hasSegment(importPath, "usecase") || hasSegment(importPath, "service")
	default:
		return false
	}
}

func TestPlatformDoesNotImportModules(t *testing.T) {
	t.Parallel()
	fset := token.NewFileSet()
	root := filepath.Join("..", "platform")
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if strings.HasPrefix(importPath, "readtrack/internal/modules/") || strings.HasPrefix(importPath, "readtrack/internal/ui") {
				t.Fatalf("platform package %s imports %s", filepath.ToSlash(path), importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk platform: %v", err)
	}
}

func TestViolatesLayerRule(t *testing.T) {
	t.Parallel()
	cases := []struct {
		module, layer, importPath string
		want                      bool
	}{
		{"reader", "adapter/out", "readtrack/internal/modules/book/port/in", false},
		{"reader", "adapter/out", "readtrack/internal/modules/book/dto", false},
		{"reader", "adapter/out", "readtrack/internal/modules/book/service", true},
		{"reader", "service", "readtrack/internal/modules/reader/adapter/out", true},
		{"reader", "domain", "readtrack/internal/modules/book/domain", true},
		{"reader", "usecase", "readtrack/internal/modules/reader/service", false},
		{"reader", "adapter/in", "readtrack/internal/modules/reader/service", true},
	}
	for _, tc := range cases {
		if got := violatesLayerRule(tc.module, tc.layer, tc.importPath); got != tc.want {
			t.Fatalf("violatesLayerRule(%s, %s, %s) = %v, want %v", tc.module, tc.layer, tc.importPath, got, tc.want)
		}
	}
}
