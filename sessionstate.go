package widevine

import "github.com/Cooomma/go-widevine/protocol"

// SessionState is the correlation data an external process needs to
// resume a Session for parse_license after create_license_request
// ran in an earlier process: the core itself persists nothing (see
// Non-goals), but a caller that splits request and response across
// two process invocations — as cmd/wvclient's request/parse
// subcommands do — has to carry this much state across that boundary
// itself.
type SessionState struct {
	SessionID         []byte
	LastRequestBytes  []byte
	PinnedCertificate []byte // serialized SignedDrmCertificate, or nil
}

// ExportState captures the data needed to resume s with
// RestoreSession after create_license_request. Calling it before
// create_license_request or after parse_license yields a state that
// RestoreSession will refuse to use for parse_license.
func (s *Session) ExportState() SessionState {
	var pinned []byte
	if s.pinnedSigned != nil {
		pinned = s.pinnedSigned.Marshal()
	}
	var lastRequestBytes []byte
	if s.phase == sessionPhaseAwaiting {
		lastRequestBytes = s.lastRequestBytes
	}
	return SessionState{
		SessionID:         s.SessionID,
		LastRequestBytes:  lastRequestBytes,
		PinnedCertificate: pinned,
	}
}

// RestoreSession reconstructs a Session in the Awaiting phase from
// state captured by ExportState, so parse_license can run in a
// different process than the one that called create_license_request.
func RestoreSession(state SessionState) (*Session, *Error) {
	if len(state.SessionID) == 0 || len(state.LastRequestBytes) == 0 {
		return nil, inputErrorf("session state is missing session id or request bytes")
	}
	s := &Session{
		SessionID:        state.SessionID,
		Logger:           Logger,
		phase:            sessionPhaseAwaiting,
		lastRequestBytes: state.LastRequestBytes,
	}
	if len(state.PinnedCertificate) > 0 {
		signed, err := protocol.UnmarshalSignedDrmCertificate(state.PinnedCertificate)
		if err != nil {
			return nil, wrapInputErrorf(err, "restore pinned certificate")
		}
		cert, derr := verifyAndDecodeCertificate(signed)
		if derr != nil {
			return nil, derr
		}
		s.pinnedSigned = signed
		s.pinnedCert = cert
	}
	return s, nil
}
