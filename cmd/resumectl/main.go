// Command resumectl runs the extraction pipeline on local files.
//
//	resumectl extract cv.pdf
//	resumectl extract --rules rules.yaml --sections cv.docx
//	resumectl rules > rules.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
