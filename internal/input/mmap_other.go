//go:build !unix

package input

import (
	"errors"
	"os"
)

var errNoMmap = errors.New("memory mapping not supported")

func mapFile(*os.File, int64) ([]byte, func() error, error) {
	return nil, nil, errNoMmap
}
