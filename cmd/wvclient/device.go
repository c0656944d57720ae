package main

import (
	"fmt"
	"os"
	"path/filepath"

	widevine "github.com/Cooomma/go-widevine"
)

// loadLDM reads a provisioned device's credentials from dir:
// private_key.pem (required), identification.bin (required), and
// vmp.bin (optional). Provisioning itself is outside this module's
// scope; these files are expected to already exist on disk.
func loadLDM(dir string) (*widevine.LicenseDecryptionModule, error) {
	keyPEM, err := os.ReadFile(filepath.Join(dir, "private_key.pem"))
	if err != nil {
		return nil, fmt.Errorf("read private_key.pem: %w", err)
	}
	idBlob, err := os.ReadFile(filepath.Join(dir, "identification.bin"))
	if err != nil {
		return nil, fmt.Errorf("read identification.bin: %w", err)
	}
	vmp, err := os.ReadFile(filepath.Join(dir, "vmp.bin"))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read vmp.bin: %w", err)
	}

	ldm, derr := widevine.NewLicenseDecryptionModule(keyPEM, idBlob, vmp)
	if derr != nil {
		return nil, derr
	}
	return ldm, nil
}
