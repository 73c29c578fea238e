// Package storage provides relational persistence for users, transactions,
// and voice biometric enrollment templates, backing the VoiceBiometric and
// Database ServiceKinds tracked by servicehealth. Per spec.md §1 this is an
// external collaborator: the matching/encryption internals behind voiceprint
// verification are out of scope and treated as an opaque byte template.
package storage

import "time"

// User is a registered mandi participant.
type User struct {
	ID                string
	PhoneNumber       string
	PreferredLanguage string
	CreatedAt         time.Time
}

// TransactionStatus is the lifecycle state of a negotiated transaction.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionCancelled TransactionStatus = "cancelled"
)

// Transaction records a buyer/seller exchange for a commodity.
type Transaction struct {
	ID        string
	BuyerID   string
	SellerID  string
	Commodity string
	AmountINR float64
	Status    TransactionStatus
	CreatedAt time.Time
}

// Voiceprint is an opaque voice biometric enrollment template. Its internal
// encoding (encryption, feature extraction) is out of scope per spec.md §1 —
// callers obtain it from a VoiceBiometric provider and never inspect it.
type Voiceprint []byte
