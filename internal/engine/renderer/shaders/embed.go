// Package shaders provides embedded GLSL shader sources.
package shaders

import (
	"embed"
	"fmt"
)

//go:embed *.vert *.frag
var files embed.FS

// Names lists the programs every renderer compiles.
var Names = []string{"feather", "floor", "cinematic_bars", "debug"}

// Source returns the vertex and fragment source of the named program.
func Source(name string) (vertex, fragment string, err error) {
	v, err := files.ReadFile(name + ".vert")
	if err != nil {
		return "", "", fmt.Errorf("shader %q: %w", name, err)
	}
	f, err := files.ReadFile(name + ".frag")
	if err != nil {
		return "", "", fmt.Errorf("shader %q: %w", name, err)
	}
	return string(v), string(f), nil
}
