package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	widevine "github.com/Cooomma/go-widevine"
)

func newFetchCertCommand() *cobra.Command {
	var licenseURL string
	var challengeOnly bool

	cmd := &cobra.Command{
		Use:   "fetch-cert",
		Short: "Submit the service-certificate challenge and print the returned certificate",
		RunE: func(cmd *cobra.Command, args []string) error {
			if challengeOnly {
				fmt.Println(base64.StdEncoding.EncodeToString(widevine.ServiceCertificateChallenge[:]))
				return nil
			}
			if licenseURL == "" {
				return fmt.Errorf("--license-url is required unless --challenge-only is set")
			}

			client := newHTTPClient()
			body, err := postBinary(client, licenseURL, widevine.ServiceCertificateChallenge[:])
			if err != nil {
				return err
			}

			s := widevine.NewSession()
			if derr := s.SetServiceCertificateFromSignedMessage(body); derr != nil {
				return derr
			}
			fmt.Fprintln(os.Stdout, base64.StdEncoding.EncodeToString(body))
			return nil
		},
	}

	cmd.Flags().StringVar(&licenseURL, "license-url", "", "license endpoint to challenge")
	cmd.Flags().BoolVar(&challengeOnly, "challenge-only", false, "print the 2-byte challenge payload instead of submitting it")
	return cmd
}
