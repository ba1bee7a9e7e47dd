package cli

import (
	"fmt"
)

// TreeParams contains parameters for the Tree command
type TreeParams struct {
	Options
	// Path is the directory to print, the root when empty.
	Path string
}

// Tree prints a directory of the hierarchy and everything below it
func Tree(params TreeParams) error {
	s, err := openSession(params.Options)
	if err != nil {
		return err
	}

	res, err := s.engine.Resolver().ParsePathToDirectory(params.Path)
	if err != nil {
		s.output.Failure(err)
		return ErrReported
	}
	fmt.Fprintln(params.stdout(), s.renderer.Directory(res.Directory(), true))
	return nil
}
