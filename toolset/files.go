package toolset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/zero-day-ai/toolchat/schema"
	"github.com/zero-day-ai/toolchat/tool"
	"github.com/zero-day-ai/toolchat/toolerr"
)

type pathArgs struct {
	Path string `json:"path" description:"Path to the file, relative to the workspace"`
}

type writeArgs struct {
	Path    string `json:"path" description:"Path to the file to write, relative to the workspace"`
	Content string `json:"content" description:"Content to write into the file"`
}

func readFileTool(opts Options) (tool.Entry, error) {
	return tool.New(tool.NewConfig().
		SetName(NameReadFile).
		SetDescription("Read a local file from disk").
		SetParameters(schema.FromType(pathArgs{})).
		SetExecuteFunc(func(_ context.Context, args map[string]any) (string, error) {
			var in pathArgs
			if err := decodeArgs(NameReadFile, args, &in); err != nil {
				return "", err
			}
			full, err := resolve(NameReadFile, opts.Workspace, in.Path)
			if err != nil {
				return "", err
			}
			data, err := os.ReadFile(full)
			if err != nil {
				return "", fileError(NameReadFile, "read", in.Path, err)
			}
			return string(data), nil
		}))
}

func writeFileTool(opts Options) (tool.Entry, error) {
	return tool.New(tool.NewConfig().
		SetName(NameWriteFile).
		SetDescription("Write content to a file on disk").
		SetParameters(schema.FromType(writeArgs{})).
		SetExecuteFunc(func(_ context.Context, args map[string]any) (string, error) {
			var in writeArgs
			if err := decodeArgs(NameWriteFile, args, &in); err != nil {
				return "", err
			}
			full, err := resolve(NameWriteFile, opts.Workspace, in.Path)
			if err != nil {
				return "", err
			}
			if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
				return "", fileError(NameWriteFile, "mkdir", in.Path, err)
			}
			if err := os.WriteFile(full, []byte(in.Content), 0o644); err != nil {
				return "", fileError(NameWriteFile, "write", in.Path, err)
			}
			return fmt.Sprintf("Successfully wrote to %s", in.Path), nil
		}))
}

func deleteFileTool(opts Options) (tool.Entry, error) {
	return tool.New(tool.NewConfig().
		SetName(NameDeleteFile).
		SetDescription("Delete a local file from disk").
		SetParameters(schema.FromType(pathArgs{})).
		SetExecuteFunc(func(_ context.Context, args map[string]any) (string, error) {
			var in pathArgs
			if err := decodeArgs(NameDeleteFile, args, &in); err != nil {
				return "", err
			}
			full, err := resolve(NameDeleteFile, opts.Workspace, in.Path)
			if err != nil {
				return "", err
			}
			info, err := os.Stat(full)
			if err != nil {
				return "", fileError(NameDeleteFile, "stat", in.Path, err)
			}
			if info.IsDir() {
				return "", toolerr.New(NameDeleteFile, "delete", toolerr.ErrCodeInvalidInput,
					fmt.Sprintf("%s is a directory", in.Path)).WithCause(toolerr.ErrInvalidInput)
			}
			if err := os.Remove(full); err != nil {
				return "", fileError(NameDeleteFile, "delete", in.Path, err)
			}
			return fmt.Sprintf("Successfully deleted %s", in.Path), nil
		}))
}

// resolve maps a model-supplied path into the workspace. Absolute paths are
// taken relative to the workspace root and paths escaping it are refused.
func resolve(name, root, p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", toolerr.New(name, "resolve", toolerr.ErrCodeInvalidInput, "path cannot be empty").
			WithCause(toolerr.ErrInvalidInput)
	}

	full := filepath.Join(root, filepath.FromSlash(p))
	rel, err := filepath.Rel(root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", toolerr.New(name, "resolve", toolerr.ErrCodePermissionDenied,
			fmt.Sprintf("%s is outside the workspace", p))
	}
	if rel == "." {
		return "", toolerr.New(name, "resolve", toolerr.ErrCodeInvalidInput, "path names the workspace itself").
			WithCause(toolerr.ErrInvalidInput)
	}
	return full, nil
}

func fileError(name, op, p string, err error) error {
	code := toolerr.ErrCodeExecutionFailed
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = toolerr.ErrCodeNotFound
	case errors.Is(err, fs.ErrPermission):
		code = toolerr.ErrCodePermissionDenied
	}
	return toolerr.New(name, op, code, fmt.Sprintf("%s failed for %s", op, p)).WithCause(err)
}
