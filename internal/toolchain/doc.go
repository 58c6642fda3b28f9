// Package toolchain resolves and "activates" the Python toolchain that
// pycheck drives.
//
// The shell scripts this tool replaced sourced the virtualenv's activate
// file before running anything. Sourcing a shell script is not available
// to a Go process, but activation is nothing more than environment surgery, so
// this package reproduces it directly: the virtualenv's bin directory
// is prepended to PATH, VIRTUAL_ENV is set, PYTHONHOME is removed, and
// an import-path variable (MYPYPATH) can be constructed by prefixing
// configured project-relative entries onto any inherited value.
//
// An optional .env file at the project root is overlaid as well
// (github.com/joho/godotenv), matching its usual semantics: it fills
// variables that the invoking environment does not already set, and it
// never overrides the activation keys constructed here.
package toolchain
