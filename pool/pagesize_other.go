//go:build !unix

package pool

import "os"

func pageSize() int {
	return os.Getpagesize()
}
