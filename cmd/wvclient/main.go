// Command wvclient is a thin reference CLI over the widevine package:
// it drives the transport this module deliberately leaves external,
// so the license-exchange core can be exercised end-to-end from a
// shell instead of only from Go tests.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "wvclient",
		Short: "Drive a Widevine license exchange against a license server",
	}

	root.AddCommand(newFetchCertCommand())
	root.AddCommand(newRequestCommand())
	root.AddCommand(newParseCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
