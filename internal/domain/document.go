package domain

import "time"

// DocumentType identifies the kind of compliance document.
// Documents are stored keyed by type, so a driver holds at most one
// document of each type.
type DocumentType string

const (
	DocumentTypeLicense      DocumentType = "license"
	DocumentTypePermit       DocumentType = "permit"
	DocumentTypeInsurance    DocumentType = "insurance"
	DocumentTypeRegistration DocumentType = "registration"
)

// DocumentStatus is the verification lifecycle state of a document.
// Every uploaded document starts as pending; a reviewer moves it to
// verified or rejected.
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusVerified DocumentStatus = "verified"
	DocumentStatusRejected DocumentStatus = "rejected"
)

// Document is a compliance artifact attached to a driver (license, permit,
// insurance, ...). Identity is the store-generated ID; storage position is
// determined by Type.
type Document struct {
	ID        string         `json:"id" yaml:"id"`
	Type      DocumentType   `json:"type" yaml:"type"`
	Number    string         `json:"number" yaml:"number"`
	IssuedAt  time.Time      `json:"issued_at" yaml:"issued_at"`
	ExpiresAt time.Time      `json:"expires_at" yaml:"expires_at"`
	Status    DocumentStatus `json:"status" yaml:"status"`

	// FileRef points at the uploaded artifact (an object key or path).
	// The store treats it as opaque.
	FileRef string `json:"file_ref,omitempty" yaml:"file_ref,omitempty"`

	// Comments holds the reviewer's remarks, set during verification.
	Comments string `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// DocumentDraft is the caller-supplied input for uploading a document.
// ID and verification status are owned by the store: every upload gets a
// fresh id and starts pending.
type DocumentDraft struct {
	Type      DocumentType
	Number    string
	IssuedAt  time.Time
	ExpiresAt time.Time
	FileRef   string
}
