// Package widevine implements the client side of Google's Widevine
// DRM license-exchange protocol: given a PSSH box and a provisioned
// device's credentials, it builds a signed license request, and,
// given the server's signed response, extracts the content
// decryption keys.
//
// Transport (delivering the request/response over HTTP), device
// provisioning, and PSSH extraction from a media container are the
// caller's responsibility — this package accepts and returns opaque
// byte buffers.
package widevine

import (
	"bytes"
	"encoding/binary"

	"github.com/sirupsen/logrus"

	"github.com/Cooomma/go-widevine/protocol"
)

// SystemID is the 16-byte UUID identifying Widevine within a PSSH
// box, at bytes [12..28) of the box.
var SystemID = [16]byte{
	0xed, 0xef, 0x8b, 0xa9, 0x79, 0xd6, 0x4a, 0xce,
	0xa3, 0xc8, 0x27, 0xdc, 0xd5, 0x1d, 0x21, 0xed,
}

// ServiceCertificateChallenge is the 2-byte payload some license
// endpoints accept in place of a real license request, responding
// with the wrapped service certificate.
var ServiceCertificateChallenge = [2]byte{0x08, 0x04}

const (
	systemIDOffset = 12
	systemIDEnd    = 28
	psshTailOffset = 32
)

// Logger is the package-wide default logger, used by any Session
// constructed or restored without one of its own.
var Logger = logrus.StandardLogger()

func loggerOrDefault(l *logrus.Logger) *logrus.Logger {
	if l != nil {
		return l
	}
	return Logger
}

// validatePSSH checks that pssh is long enough to contain a Widevine
// system id at the mandated offset and that it actually matches, and
// that the tail (bytes [32..)) parses as a well-formed protobuf
// message, then returns that tail for embedding verbatim in
// WidevinePsshData.pssh_data. Input failing either check is rejected.
func validatePSSH(pssh []byte) ([]byte, *Error) {
	if len(pssh) < systemIDEnd {
		return nil, inputErrorf("pssh too short: %d bytes", len(pssh))
	}
	if !bytes.Equal(pssh[systemIDOffset:systemIDEnd], SystemID[:]) {
		return nil, inputErrorf("pssh system id does not match Widevine")
	}
	if len(pssh) < psshTailOffset {
		return nil, inputErrorf("pssh too short for a tail: %d bytes", len(pssh))
	}
	tail := pssh[psshTailOffset:]
	if err := protocol.ValidateMessage(tail); err != nil {
		return nil, wrapInputErrorf(err, "pssh tail does not parse as WidevinePsshData")
	}
	return tail, nil
}

func le64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}
