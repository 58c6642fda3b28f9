// Package project locates the Python project that pycheck operates on.
//
// The shell scripts this tool replaced resolved their own location on
// disk and took their parent directory as the project root, which made
// them safe to invoke from any working directory. A compiled binary
// installed outside the project cannot do that, so this package provides
// the equivalent contract: an upward walk from the working directory that
// stops at the first ancestor carrying a project marker (a pycheck
// config file, pyproject.toml, setup.cfg, or .git). The result is the
// same no matter how deep inside the project the command is invoked.
//
// The package also discovers Python source files beneath configured
// targets, which the doctor command uses to sanity-check that the
// configured targets actually contain code.
package project
