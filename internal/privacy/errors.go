package privacy

import "errors"

// Protocol errors, surfaced verbatim to callers.
var (
	// ErrRecipientKeyMissing means the recipient has no public key on
	// chain, so no shared secret can be derived for them.
	ErrRecipientKeyMissing = errors.New("recipient has no public key on chain")

	// ErrInsufficientPublic means the requested encryption exceeds the
	// current public balance.
	ErrInsufficientPublic = errors.New("amount exceeds public balance")

	// ErrInsufficientEncrypted means the requested decryption exceeds the
	// current encrypted balance.
	ErrInsufficientEncrypted = errors.New("amount exceeds encrypted balance")

	// ErrAlreadyClaimed means the transfer was consumed by an earlier
	// claim; the network never double-credits.
	ErrAlreadyClaimed = errors.New("transfer already claimed")

	// ErrDecodeFailure means ciphertext authentication failed or the
	// plaintext had the wrong length.
	ErrDecodeFailure = errors.New("cannot decode ciphertext")
)
