package widevine

// KeyContainer is one decrypted content key extracted from a parsed
// license, exposed to callers as hex strings rather than the wire
// types the protocol package models.
type KeyContainer struct {
	Kid string
	Key string
}
