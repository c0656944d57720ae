package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	widevine "github.com/Cooomma/go-widevine"
)

func newRequestCommand() *cobra.Command {
	var deviceDir, psshB64, certFile, stateFile string

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Build a signed license request for a PSSH and print it to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			ldm, err := loadLDM(deviceDir)
			if err != nil {
				return err
			}
			pssh, err := base64.StdEncoding.DecodeString(psshB64)
			if err != nil {
				return fmt.Errorf("decode --pssh: %w", err)
			}

			s := widevine.NewSession()
			if certFile != "" {
				certBytes, err := os.ReadFile(certFile)
				if err != nil {
					return fmt.Errorf("read --cert: %w", err)
				}
				if derr := s.SetServiceCertificate(certBytes); derr != nil {
					return derr
				}
			}

			reqBytes, derr := s.CreateLicenseRequest(ldm, pssh)
			if derr != nil {
				return derr
			}

			if err := writeSessionState(stateFile, s.ExportState()); err != nil {
				return fmt.Errorf("write session state: %w", err)
			}

			_, err = os.Stdout.Write(reqBytes)
			return err
		},
	}

	cmd.Flags().StringVar(&deviceDir, "device", "", "directory holding private_key.pem and identification.bin")
	cmd.Flags().StringVar(&psshB64, "pssh", "", "base64-encoded PSSH box")
	cmd.Flags().StringVar(&certFile, "cert", "", "optional serialized SignedDrmCertificate to pin before requesting")
	cmd.Flags().StringVar(&stateFile, "state", "wvclient.state.json", "where to persist session correlation data for the parse subcommand")
	_ = cmd.MarkFlagRequired("device")
	_ = cmd.MarkFlagRequired("pssh")
	return cmd
}

// sessionStateJSON mirrors widevine.SessionState with base64 fields,
// since the exchange's raw bytes don't round-trip through JSON.
type sessionStateJSON struct {
	SessionID         string `json:"session_id"`
	LastRequestBytes  string `json:"last_request_bytes"`
	PinnedCertificate string `json:"pinned_certificate,omitempty"`
}

func writeSessionState(path string, state widevine.SessionState) error {
	out := sessionStateJSON{
		SessionID:        base64.StdEncoding.EncodeToString(state.SessionID),
		LastRequestBytes: base64.StdEncoding.EncodeToString(state.LastRequestBytes),
	}
	if state.PinnedCertificate != nil {
		out.PinnedCertificate = base64.StdEncoding.EncodeToString(state.PinnedCertificate)
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

func readSessionState(path string) (widevine.SessionState, error) {
	var parsed sessionStateJSON
	b, err := os.ReadFile(path)
	if err != nil {
		return widevine.SessionState{}, err
	}
	if err := json.Unmarshal(b, &parsed); err != nil {
		return widevine.SessionState{}, err
	}

	sessionID, err := base64.StdEncoding.DecodeString(parsed.SessionID)
	if err != nil {
		return widevine.SessionState{}, fmt.Errorf("decode session_id: %w", err)
	}
	lastRequestBytes, err := base64.StdEncoding.DecodeString(parsed.LastRequestBytes)
	if err != nil {
		return widevine.SessionState{}, fmt.Errorf("decode last_request_bytes: %w", err)
	}
	var pinnedCert []byte
	if parsed.PinnedCertificate != "" {
		pinnedCert, err = base64.StdEncoding.DecodeString(parsed.PinnedCertificate)
		if err != nil {
			return widevine.SessionState{}, fmt.Errorf("decode pinned_certificate: %w", err)
		}
	}

	return widevine.SessionState{
		SessionID:         sessionID,
		LastRequestBytes:  lastRequestBytes,
		PinnedCertificate: pinnedCert,
	}, nil
}
