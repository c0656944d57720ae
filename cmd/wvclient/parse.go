package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	widevine "github.com/Cooomma/go-widevine"
)

func newParseCommand() *cobra.Command {
	var deviceDir, responseFile, stateFile string

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a license server's response and print the content keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			ldm, err := loadLDM(deviceDir)
			if err != nil {
				return err
			}
			response, err := os.ReadFile(responseFile)
			if err != nil {
				return fmt.Errorf("read --response: %w", err)
			}

			state, err := readSessionState(stateFile)
			if err != nil {
				return fmt.Errorf("read session state: %w", err)
			}
			s, derr := widevine.RestoreSession(state)
			if derr != nil {
				return derr
			}

			keys, derr := s.ParseLicense(ldm, response)
			if derr != nil {
				return derr
			}
			for _, k := range keys {
				fmt.Printf("%s:%s\n", k.Kid, k.Key)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&deviceDir, "device", "", "directory holding private_key.pem and identification.bin")
	cmd.Flags().StringVar(&responseFile, "response", "", "file containing the license server's raw response bytes")
	cmd.Flags().StringVar(&stateFile, "state", "wvclient.state.json", "session correlation data written by the request subcommand")
	_ = cmd.MarkFlagRequired("device")
	_ = cmd.MarkFlagRequired("response")
	return cmd
}
