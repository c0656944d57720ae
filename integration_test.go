//go:build integration

package widevine

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cooomma/go-widevine/protocol"
)

// TestBitmovinPublicLicenseExchange runs the full exchange against a
// real, publicly reachable test license server. It is excluded from
// the default test run (build-tagged "integration", mirroring the
// ignored tests in the source this module's protocol flow is modeled
// on) since it requires network access and a server outside this
// module's control.
//
// Run with: go test -tags integration ./... -run TestBitmovinPublicLicenseExchange
func TestBitmovinPublicLicenseExchange(t *testing.T) {
	const psshB64 = "AAAAW3Bzc2gAAAAA7e+LqXnWSs6jyCfc1R0h7QAAADsIARIQ62dqu8s0Xpa7z2FmMPGj2hoNd2lkZXZpbmVfdGVzdCIQZmtqM2xqYVNkZmFsa3IzaioCSEQyAA=="
	const licenseURL = "https://cwip-shaka-proxy.appspot.com/no_auth"

	pssh, err := base64.StdEncoding.DecodeString(psshB64)
	require.NoError(t, err)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	idBlob := (&protocol.DrmCertificate{ProviderID: "widevine_test", HasProviderID: true}).Marshal()
	ldm, derr := NewLicenseDecryptionModule(pemBytes, idBlob, nil)
	require.Nil(t, derr)

	client := &http.Client{Timeout: 10 * time.Second}

	certResp, err := client.Post(licenseURL, "application/octet-stream",
		bytes.NewReader(ServiceCertificateChallenge[:]))
	require.NoError(t, err)
	defer certResp.Body.Close()
	certBody, err := io.ReadAll(certResp.Body)
	require.NoError(t, err)

	s := NewSession()
	require.Nil(t, s.SetServiceCertificateFromSignedMessage(certBody))

	reqBytes, derr := s.CreateLicenseRequest(ldm, pssh)
	require.Nil(t, derr)

	licResp, err := client.Post(licenseURL, "application/octet-stream", bytes.NewReader(reqBytes))
	require.NoError(t, err)
	defer licResp.Body.Close()
	licBody, err := io.ReadAll(licResp.Body)
	require.NoError(t, err)

	keys, derr := s.ParseLicense(ldm, licBody)
	require.Nil(t, derr)
	require.NotEmpty(t, keys)
	assert.Len(t, keys[0].Kid, 32)
	assert.Len(t, keys[0].Key, 32)
}
