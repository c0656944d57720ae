package widevine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cooomma/go-widevine/protocol"
	"github.com/Cooomma/go-widevine/wvcrypto"
)

func TestEncryptClientIdentificationRoundTrips(t *testing.T) {
	ldm := newTestLDM(t)

	s := NewSession()
	require.Nil(t, s.SetDefaultServiceCertificate())

	eci, err := encryptClientIdentification(s.pinnedCert, ldm)
	require.Nil(t, err)

	assert.Equal(t, s.pinnedCert.ProviderID, eci.ProviderID)
	assert.Len(t, eci.EncryptedClientIDIv, 16)

	pub, perr := certificatePublicKey(s.pinnedCert)
	require.Nil(t, perr)
	_ = pub // the cert's public key is the widevineRootPublicKey's test-only counterpart

	k, derr := wvcrypto.DecryptOAEP(widevineRootPrivateKey, eci.EncryptedPrivacyKey)
	require.NoError(t, derr)
	require.Len(t, k, 16)

	plaintext, derr := wvcrypto.DecryptCBC(k, eci.EncryptedClientIDIv, eci.EncryptedClientID)
	require.NoError(t, derr)
	assert.Equal(t, ldm.identificationBlob, plaintext)

	require.NoError(t, protocol.ValidateMessage(plaintext))
}
