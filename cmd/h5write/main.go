// Command h5write writes whitespace-separated numbers into an HDF5 v1
// file, as a thin CLI wrapper around the hdf5 package.
package main

import "os"

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
