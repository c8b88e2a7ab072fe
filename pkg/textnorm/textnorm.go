// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm normalizes user-entered text before it is stored.
//
// # Usage
//
// Emails are compared case-insensitively, so they are stored folded. Free-text
// fields are kept as typed but put in NFC so visually identical names compare
// equal regardless of how the client composed accents.
package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Email trims surrounding whitespace and case-folds the address.
func Email(s string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// Text trims surrounding whitespace and converts s to NFC.
func Text(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// LocalPart returns the part of an email address before the last "@".
// An address without "@" is returned unchanged.
func LocalPart(email string) string {
	if at := strings.LastIndex(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}
