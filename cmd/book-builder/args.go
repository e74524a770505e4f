package main

import "strconv"

// usageError is printed verbatim to standard output.
type usageError string

func (e usageError) Error() string { return string(e) }

const (
	errUsage usageError = "The application requires exactly two parameters: [filepath] [depth]."
	errDepth usageError = "The depth parameter should be a positive integer."
)

// parseArgs reads the positional "[filepath] [depth]" pair. No arguments at
// all defers to the environment configuration.
func parseArgs(args []string) (path string, depth uint32, ok bool, err error) {
	if len(args) == 0 {
		return "", 0, false, nil
	}
	if len(args) != 2 {
		return "", 0, false, errUsage
	}

	d, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil || d == 0 {
		return "", 0, false, errDepth
	}
	return args[0], uint32(d), true, nil
}
